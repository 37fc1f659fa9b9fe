package verify

import (
	"fmt"
	"io"
	"time"

	"github.com/mktdata/mktverify/pkg/codec"
)

// HeaderInfo is the decoded header as it appears in a report.
type HeaderInfo struct {
	Magic    uint32 `json:"magic"`
	Version  uint16 `json:"version"`
	Flags    uint16 `json:"flags"`
	Complete bool   `json:"complete"`
	Date     uint32 `json:"date"`
	MsgCount int64  `json:"msg_count"`
	FirstSeq int64  `json:"first_seq"`
	LastSeq  int64  `json:"last_seq"`
}

// RecordSample is one retained record for display.
type RecordSample struct {
	SeqNum      int64   `json:"seq_num"`
	TimestampNs int64   `json:"timestamp_ns"`
	Payload     float64 `json:"payload"`
}

// Report is the outcome of verifying one capture file.
type Report struct {
	Path     string `json:"path"`
	FileSize int64  `json:"file_size"`
	Digest   string `json:"digest,omitempty"` // xxhash of file contents

	Header *HeaderInfo `json:"header,omitempty"`

	RecordsDeclared int64   `json:"records_declared"`
	RecordsRead     int64   `json:"records_read"`
	Sum             float64 `json:"sum"`

	SeqErrors    int64          `json:"seq_errors"`
	SeqErrorHead []SeqError     `json:"seq_error_head,omitempty"`
	HeadSamples  []RecordSample `json:"head_samples,omitempty"`
	TailSamples  []RecordSample `json:"tail_samples,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
	Failures []string `json:"failures,omitempty"`

	Comparison *ComparisonResult `json:"comparison,omitempty"`

	Duration time.Duration `json:"duration_ns"`
}

// Passed reports whether the file is fully valid: no hard failures, no
// sequence errors, and a passing sum comparison when one was requested.
// Warnings do not fail a file.
func (r *Report) Passed() bool {
	if len(r.Failures) > 0 || r.SeqErrors > 0 {
		return false
	}
	if r.Comparison != nil && !r.Comparison.Passed {
		return false
	}
	return true
}

func sampleOf(rec codec.Record) RecordSample {
	return RecordSample{SeqNum: rec.SeqNum, TimestampNs: rec.TimestampNs, Payload: rec.Payload}
}

// Render writes the human-readable per-file report.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintf(w, "\nVerifying file: %s\n", r.Path)
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "File size: %d bytes\n", r.FileSize)
	if r.Digest != "" {
		fmt.Fprintf(w, "Digest (xxhash): %s\n", r.Digest)
	}

	for _, f := range r.Failures {
		fmt.Fprintf(w, "Error: %s\n", f)
	}
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warn)
	}

	if r.Header != nil {
		fmt.Fprintf(w, "File version: %d\n", r.Header.Version)
		fmt.Fprintf(w, "File flags: 0x%04X (complete=%v)\n", r.Header.Flags, r.Header.Complete)
		fmt.Fprintf(w, "Message count: %d\n", r.Header.MsgCount)
		fmt.Fprintf(w, "Sequence range: [%d, %d]\n", r.Header.FirstSeq, r.Header.LastSeq)
	}

	if len(r.Failures) > 0 {
		return
	}

	fmt.Fprintf(w, "Read messages: %d messages\n", r.RecordsRead)
	fmt.Fprintf(w, "Sum: %.10f\n", r.Sum)

	for _, se := range r.SeqErrorHead {
		fmt.Fprintf(w, "  Sequence number error: position %d, actual %d\n", se.Position, se.Observed)
	}
	if r.SeqErrors > 0 {
		fmt.Fprintf(w, "Total sequence number errors: %d\n", r.SeqErrors)
	} else {
		fmt.Fprintln(w, "Sequence number verification: PASSED")
	}

	if len(r.HeadSamples) > 0 {
		fmt.Fprintf(w, "\nMessage samples (first %d):\n", len(r.HeadSamples))
		for _, s := range r.HeadSamples {
			fmt.Fprintf(w, "  seq=%d, ts=%d, payload=%.6f\n", s.SeqNum, s.TimestampNs, s.Payload)
		}
		if len(r.TailSamples) > 0 {
			fmt.Fprintln(w, "  ...")
			for _, s := range r.TailSamples {
				fmt.Fprintf(w, "  seq=%d, ts=%d, payload=%.6f\n", s.SeqNum, s.TimestampNs, s.Payload)
			}
		}
	}

	if r.Comparison != nil {
		renderComparison(w, r.Comparison)
	}
}

func renderComparison(w io.Writer, c *ComparisonResult) {
	if c.Passed {
		fmt.Fprintln(w, "\nVerification PASSED!")
	} else {
		fmt.Fprintln(w, "\nVerification FAILED!")
	}
	fmt.Fprintf(w, "  Expected: %.10f\n", c.Expected)
	fmt.Fprintf(w, "  Actual:   %.10f\n", c.Actual)
	if c.Passed {
		fmt.Fprintf(w, "  Diff:     %.2e\n", c.Diff)
	} else {
		fmt.Fprintf(w, "  Diff:     %.2e (exceeds tolerance %g)\n", c.Diff, c.Tolerance)
	}
}
