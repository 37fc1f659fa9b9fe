package verify

import (
	"time"

	"github.com/mktdata/mktverify/pkg/codec"
)

// FileReaderConfig holds configuration for the capture file reader
type FileReaderConfig struct {
	FilePath string // Path to the capture file
}

// VerifierConfig holds configuration for the verifier
type VerifierConfig struct {
	Tolerance          float64 // Absolute tolerance for expected-sum comparison
	MaxSeqErrorDetails int     // Cap on individually reported sequence violations
	HeadSamples        int     // Leading records retained for display
	TailSamples        int     // Trailing records retained for display
}

// DefaultVerifierConfig returns the verifier defaults used by the CLI.
func DefaultVerifierConfig() VerifierConfig {
	return VerifierConfig{
		Tolerance:          DefaultTolerance,
		MaxSeqErrorDetails: 5,
		HeadSamples:        5,
		TailSamples:        3,
	}
}

// RecordIterator provides streaming access to records
type RecordIterator interface {
	Next() bool
	Record() codec.Record
	Err() error
}

// Metrics receives verification outcomes. Implementations must be safe for
// use from a single verification goroutine; a nil Metrics is ignored.
type Metrics interface {
	RecordFileVerified(passed bool, duration time.Duration)
	RecordRecordsRead(n int64)
	RecordSequenceErrors(n int64)
}

