package verify

import (
	"io"
	"testing"

	"github.com/mktdata/mktverify/pkg/codec"
)

func TestFileReader_HeaderThenRecords(t *testing.T) {
	records := sequentialRecords(3, 1.5)
	path := writeCaptureFile(t, "small.bin", validHeader(3), records)

	reader, err := NewFileReader(FileReaderConfig{FilePath: path})
	if err != nil {
		t.Fatalf("NewFileReader failed: %v", err)
	}
	defer reader.Close()

	if want := int64(codec.HeaderSize + 3*codec.RecordSize); reader.Size() != want {
		t.Errorf("Size mismatch: got %d, want %d", reader.Size(), want)
	}

	h, err := reader.ReadHeader()
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if h.Magic != codec.FileMagic || h.MsgCount != 3 {
		t.Errorf("Header mismatch: %+v", h)
	}

	for i := 0; i < 3; i++ {
		rec, err := reader.ReadNext()
		if err != nil {
			t.Fatalf("ReadNext %d failed: %v", i, err)
		}
		if rec != records[i] {
			t.Errorf("Record %d mismatch: got %+v, want %+v", i, rec, records[i])
		}
	}

	if _, err := reader.ReadNext(); err != io.EOF {
		t.Errorf("Expected io.EOF past last record, got %v", err)
	}
}

func TestFileReader_TruncatedHeader(t *testing.T) {
	path := writeCaptureFile(t, "short.bin", validHeader(0), nil)
	truncate(t, path, codec.HeaderSize-10)

	reader, err := NewFileReader(FileReaderConfig{FilePath: path})
	if err != nil {
		t.Fatalf("NewFileReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.ReadHeader(); err != codec.ErrTruncatedHeader {
		t.Errorf("Expected ErrTruncatedHeader, got %v", err)
	}
}

func TestFileReader_TruncatedMidRecord(t *testing.T) {
	path := writeCaptureFile(t, "torn.bin", validHeader(2), sequentialRecords(2, 1.0))
	truncate(t, path, codec.HeaderSize+codec.RecordSize+7)

	reader, err := NewFileReader(FileReaderConfig{FilePath: path})
	if err != nil {
		t.Fatalf("NewFileReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.ReadHeader(); err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if _, err := reader.ReadNext(); err != nil {
		t.Fatalf("First record should read fine: %v", err)
	}
	if _, err := reader.ReadNext(); err != codec.ErrTruncatedRecord {
		t.Errorf("Expected ErrTruncatedRecord on torn record, got %v", err)
	}
}

func TestFileReader_MissingFile(t *testing.T) {
	if _, err := NewFileReader(FileReaderConfig{FilePath: "does/not/exist.bin"}); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestFileReader_Iterator(t *testing.T) {
	path := writeCaptureFile(t, "iter.bin", validHeader(4), sequentialRecords(4, 2.0))

	reader, err := NewFileReader(FileReaderConfig{FilePath: path})
	if err != nil {
		t.Fatalf("NewFileReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.ReadHeader(); err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}

	it := reader.Iterator()
	var n int64
	for it.Next() {
		if it.Record().SeqNum != n {
			t.Errorf("Iterator order mismatch at %d: %+v", n, it.Record())
		}
		n++
	}
	if n != 4 {
		t.Errorf("Iterator yielded %d records, want 4", n)
	}
	if it.Err() != io.EOF {
		t.Errorf("Expected io.EOF after iteration, got %v", it.Err())
	}
}
