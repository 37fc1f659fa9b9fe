package verify

import (
	"fmt"

	"github.com/mktdata/mktverify/pkg/codec"
)

// HeaderCheck is the outcome of applying acceptance policy to a decoded
// header. Failures stop verification of the file; warnings do not.
type HeaderCheck struct {
	Failures []string
	Warnings []string
}

// OK reports whether the header passed every hard check.
func (c *HeaderCheck) OK() bool {
	return len(c.Failures) == 0
}

// CheckHeader validates a decoded header against the format constants and
// the actual file size.
//
// The asymmetry is deliberate and matches the recorder's compatibility
// policy: a wrong magic is a hard failure, while a version or size mismatch
// only warns because the header layout is stable across known versions and
// a stale count field leaves the file readable.
func CheckHeader(h *codec.FileHeader, fileSize int64) HeaderCheck {
	var check HeaderCheck

	if h.Magic != codec.FileMagic {
		check.Failures = append(check.Failures,
			fmt.Sprintf("invalid magic number 0x%08X (expected 0x%08X)", h.Magic, codec.FileMagic))
	}
	if h.MsgCount < 0 {
		check.Failures = append(check.Failures,
			fmt.Sprintf("negative declared record count %d", h.MsgCount))
	}
	if !check.OK() {
		return check
	}

	if h.Version != codec.FileVersion {
		check.Warnings = append(check.Warnings,
			fmt.Sprintf("version mismatch %d (expected %d)", h.Version, codec.FileVersion))
	}
	if expected := h.ExpectedFileSize(); fileSize != expected {
		check.Warnings = append(check.Warnings,
			fmt.Sprintf("file size mismatch: %d bytes (expected %d)", fileSize, expected))
	}
	if !h.Complete() {
		check.Warnings = append(check.Warnings,
			"incomplete flag: recording session was not closed cleanly")
	}
	if msg := checkSeqRange(h); msg != "" {
		check.Warnings = append(check.Warnings, msg)
	}

	return check
}

// checkSeqRange validates the header's internal sequence-range invariants:
// an empty file carries InvalidSeq in both range fields, and a non-empty
// file's range must span exactly MsgCount sequence numbers.
func checkSeqRange(h *codec.FileHeader) string {
	if h.MsgCount == 0 {
		if h.FirstSeq != codec.InvalidSeq || h.LastSeq != codec.InvalidSeq {
			return fmt.Sprintf("empty file declares sequence range [%d, %d]", h.FirstSeq, h.LastSeq)
		}
		return ""
	}
	if h.FirstSeq < 0 || h.LastSeq < 0 || h.FirstSeq > h.LastSeq {
		return fmt.Sprintf("invalid sequence range [%d, %d]", h.FirstSeq, h.LastSeq)
	}
	if h.LastSeq-h.FirstSeq+1 != h.MsgCount {
		return fmt.Sprintf("sequence range [%d, %d] does not span declared count %d",
			h.FirstSeq, h.LastSeq, h.MsgCount)
	}
	return ""
}

// SeqError records one sequence-continuity violation.
type SeqError struct {
	Position int64 `json:"position"` // Zero-based position in the file
	Observed int64 `json:"observed"` // Sequence number actually present
}

// SequenceChecker validates that record i carries sequence number i. All
// violations are counted; detail is retained for at most the first limit of
// them to bound report verbosity.
type SequenceChecker struct {
	limit   int
	count   int64
	details []SeqError
}

// NewSequenceChecker creates a checker that retains detail for at most
// limit violations.
func NewSequenceChecker(limit int) *SequenceChecker {
	return &SequenceChecker{limit: limit}
}

// Observe feeds the checker the record at zero-based position pos.
func (c *SequenceChecker) Observe(pos int64, r codec.Record) {
	if r.SeqNum == pos {
		return
	}
	c.count++
	if len(c.details) < c.limit {
		c.details = append(c.details, SeqError{Position: pos, Observed: r.SeqNum})
	}
}

// Errors returns the total violation count.
func (c *SequenceChecker) Errors() int64 {
	return c.count
}

// Details returns the retained violations, at most the configured limit.
func (c *SequenceChecker) Details() []SeqError {
	return c.details
}
