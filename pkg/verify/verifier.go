// Package verify implements the capture file verification pipeline: header
// acceptance checks, streaming record decoding, compensated payload
// summation, sequence-continuity checking, and expected-sum comparison.
package verify

import (
	"fmt"
	"io"
	"time"

	"github.com/mktdata/mktverify/pkg/checksum"
	"github.com/mktdata/mktverify/pkg/codec"
)

// Verifier runs the verification pipeline over capture files. Each file is
// verified independently; no state carries over between files.
type Verifier struct {
	config  VerifierConfig
	metrics Metrics
}

// NewVerifier creates a verifier. metrics may be nil.
func NewVerifier(config VerifierConfig, metrics Metrics) *Verifier {
	if config.Tolerance <= 0 {
		config.Tolerance = DefaultTolerance
	}
	if config.MaxSeqErrorDetails <= 0 {
		config.MaxSeqErrorDetails = 5
	}
	return &Verifier{config: config, metrics: metrics}
}

// VerifyFile verifies one capture file and always returns a report; any
// failure encountered on the way is recorded in the report rather than
// returned, so one bad file never stops a batch.
func (v *Verifier) VerifyFile(path string) *Report {
	start := time.Now()
	report := &Report{Path: path}
	defer func() {
		report.Duration = time.Since(start)
		v.record(report)
	}()

	reader, err := NewFileReader(FileReaderConfig{FilePath: path})
	if err != nil {
		report.Failures = append(report.Failures, fmt.Sprintf("cannot open file: %v", err))
		return report
	}
	defer reader.Close()

	report.FileSize = reader.Size()
	if digest, err := checksum.FileDigest(path); err == nil {
		report.Digest = digest
	}

	header, err := reader.ReadHeader()
	if err != nil {
		report.Failures = append(report.Failures, fmt.Sprintf("cannot read file header: %v", err))
		return report
	}

	report.Header = &HeaderInfo{
		Magic:    header.Magic,
		Version:  header.Version,
		Flags:    header.Flags,
		Complete: header.Complete(),
		Date:     header.Date,
		MsgCount: header.MsgCount,
		FirstSeq: header.FirstSeq,
		LastSeq:  header.LastSeq,
	}
	report.RecordsDeclared = header.MsgCount

	check := CheckHeader(header, reader.Size())
	report.Warnings = check.Warnings
	report.Failures = check.Failures
	if !check.OK() {
		// Hard header failure: no record is decoded.
		return report
	}

	v.readRecords(reader, header, report)
	return report
}

// readRecords drives the streaming decode loop, feeding the aggregator and
// the sequence checker strictly in file order.
func (v *Verifier) readRecords(reader *FileReader, header *codec.FileHeader, report *Report) {
	var sum KahanSum
	seq := NewSequenceChecker(v.config.MaxSeqErrorDetails)

	var read int64
	for read < header.MsgCount {
		rec, err := reader.ReadNext()
		if err != nil {
			if err == io.EOF || err == codec.ErrTruncatedRecord {
				// Expected end of data on truncated files.
				break
			}
			report.Failures = append(report.Failures, fmt.Sprintf("read error at record %d: %v", read, err))
			break
		}

		seq.Observe(read, rec)
		sum.Add(rec.Payload)

		if len(report.HeadSamples) < v.config.HeadSamples {
			report.HeadSamples = append(report.HeadSamples, sampleOf(rec))
		} else if v.config.TailSamples > 0 {
			report.TailSamples = append(report.TailSamples, sampleOf(rec))
			if len(report.TailSamples) > v.config.TailSamples {
				report.TailSamples = report.TailSamples[1:]
			}
		}
		read++
	}

	if read < header.MsgCount {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("truncated data: read %d of %d declared records", read, header.MsgCount))
	}

	report.RecordsRead = read
	report.Sum = sum.Sum()
	report.SeqErrors = seq.Errors()
	report.SeqErrorHead = seq.Details()
}

// VerifyAll verifies every path in order. When expected is non-nil and
// exactly one file was given, the computed sum is compared against it; with
// multiple files the comparison is meaningless and skipped. The boolean
// result is the AND of all per-file outcomes and is false for an empty
// batch.
func (v *Verifier) VerifyAll(paths []string, expected *float64) ([]*Report, bool) {
	reports := make([]*Report, 0, len(paths))
	for _, path := range paths {
		reports = append(reports, v.VerifyFile(path))
	}

	if expected != nil && len(reports) == 1 {
		cmp := CompareSums(*expected, reports[0].Sum, v.config.Tolerance)
		reports[0].Comparison = &cmp
	}

	passed := len(reports) > 0
	for _, r := range reports {
		if !r.Passed() {
			passed = false
		}
	}
	return reports, passed
}

func (v *Verifier) record(report *Report) {
	if v.metrics == nil {
		return
	}
	v.metrics.RecordFileVerified(report.Passed(), report.Duration)
	v.metrics.RecordRecordsRead(report.RecordsRead)
	v.metrics.RecordSequenceErrors(report.SeqErrors)
}
