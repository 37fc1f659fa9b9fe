package verify

import (
	"bufio"
	"io"
	"os"

	"github.com/mktdata/mktverify/pkg/codec"
)

// FileReader provides sequential access to a capture file: the 64-byte
// header first, then records one at a time in file order.
type FileReader struct {
	file        *os.File
	reader      *bufio.Reader
	headerCodec *codec.HeaderCodec
	recordCodec *codec.RecordCodec
	size        int64
	config      FileReaderConfig
}

// NewFileReader opens the capture file for exclusive sequential reading.
func NewFileReader(config FileReaderConfig) (*FileReader, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	return &FileReader{
		file:        file,
		reader:      bufio.NewReader(file),
		headerCodec: codec.NewHeaderCodec(),
		recordCodec: codec.NewRecordCodec(),
		size:        info.Size(),
		config:      config,
	}, nil
}

// Size returns the physical file size in bytes.
func (r *FileReader) Size() int64 {
	return r.size
}

// ReadHeader reads and decodes the file header. It must be called before
// the first ReadNext.
func (r *FileReader) ReadHeader() (*codec.FileHeader, error) {
	buf := make([]byte, codec.HeaderSize)
	if _, err := io.ReadFull(r.reader, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, codec.ErrTruncatedHeader
		}
		return nil, err
	}

	return r.headerCodec.Decode(buf)
}

// ReadNext reads the next record from the current offset. It returns io.EOF
// at a clean end of data and codec.ErrTruncatedRecord when the file ends
// mid-record; both are expected stop conditions for truncated files.
func (r *FileReader) ReadNext() (codec.Record, error) {
	buf := make([]byte, codec.RecordSize)
	if _, err := io.ReadFull(r.reader, buf); err != nil {
		if err == io.EOF {
			return codec.Record{}, io.EOF
		}
		if err == io.ErrUnexpectedEOF {
			return codec.Record{}, codec.ErrTruncatedRecord
		}
		return codec.Record{}, err
	}

	return r.recordCodec.Decode(buf)
}

// Iterator returns a streaming iterator over the remaining records.
func (r *FileReader) Iterator() RecordIterator {
	return &fileRecordIterator{reader: r}
}

// Close closes the underlying file.
func (r *FileReader) Close() error {
	return r.file.Close()
}

// fileRecordIterator implements RecordIterator for streaming access
type fileRecordIterator struct {
	reader *FileReader
	record codec.Record
	err    error
}

func (it *fileRecordIterator) Next() bool {
	it.record, it.err = it.reader.ReadNext()
	return it.err == nil
}

func (it *fileRecordIterator) Record() codec.Record {
	return it.record
}

// Err reports the error that stopped iteration. io.EOF and
// codec.ErrTruncatedRecord mean the data simply ran out.
func (it *fileRecordIterator) Err() error {
	return it.err
}
