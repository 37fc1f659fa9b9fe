package verify

import "math"

// DefaultTolerance is the absolute tolerance applied to expected-sum
// comparisons when none is configured.
const DefaultTolerance = 1e-9

// ComparisonResult is the outcome of comparing a computed sum against an
// externally supplied expected value.
type ComparisonResult struct {
	Expected  float64 `json:"expected"`
	Actual    float64 `json:"actual"`
	Diff      float64 `json:"diff"`
	Tolerance float64 `json:"tolerance"`
	Passed    bool    `json:"passed"`
}

// CompareSums compares two sums within an absolute tolerance.
func CompareSums(expected, actual, tolerance float64) ComparisonResult {
	diff := math.Abs(expected - actual)
	return ComparisonResult{
		Expected:  expected,
		Actual:    actual,
		Diff:      diff,
		Tolerance: tolerance,
		Passed:    diff <= tolerance,
	}
}
