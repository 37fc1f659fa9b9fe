package verify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mktdata/mktverify/pkg/codec"
)

// writeCaptureFile builds a capture file from a header and records and
// returns its path.
func writeCaptureFile(t *testing.T, name string, h codec.FileHeader, records []codec.Record) string {
	t.Helper()

	hc := codec.NewHeaderCodec()
	rc := codec.NewRecordCodec()

	buf := hc.Encode(&h)
	for _, r := range records {
		buf = append(buf, rc.Encode(r)...)
	}

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

// sequentialRecords returns n records with seq_num 0..n-1 and a constant
// payload.
func sequentialRecords(n int, payload float64) []codec.Record {
	records := make([]codec.Record, n)
	for i := range records {
		records[i] = codec.Record{
			SeqNum:      int64(i),
			TimestampNs: int64(1756512000000000000 + i),
			Payload:     payload,
		}
	}
	return records
}

// truncate cuts the file at the given byte length.
func truncate(t *testing.T, path string, size int64) {
	t.Helper()
	if err := os.Truncate(path, size); err != nil {
		t.Fatalf("Truncate failed: %v", err)
	}
}
