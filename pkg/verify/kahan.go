package verify

// KahanSum accumulates float64 values using compensated summation. The
// compensation term re-injects low-order bits lost by each addition, which
// bounds accumulated rounding error to about one ULP regardless of how many
// values are added. The result depends on addition order; values must be
// fed strictly in file order.
type KahanSum struct {
	sum float64
	c   float64
}

// Add folds one value into the running sum.
func (k *KahanSum) Add(v float64) {
	y := v - k.c
	t := k.sum + y
	k.c = (t - k.sum) - y
	k.sum = t
}

// Sum returns the compensated total so far.
func (k *KahanSum) Sum() float64 {
	return k.sum
}
