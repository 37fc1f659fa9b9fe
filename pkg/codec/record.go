package codec

import (
	"encoding/binary"
	"math"
)

// Record is one fixed-size data point in a capture file.
type Record struct {
	SeqNum      int64   // Sequence number, expected to equal file position
	TimestampNs int64   // Monotonic nanosecond timestamp
	Payload     float64 // The quantity being summed during verification
}

// RecordCodec handles serialization and deserialization of records.
type RecordCodec struct{}

// NewRecordCodec creates a new record codec instance.
func NewRecordCodec() *RecordCodec {
	return &RecordCodec{}
}

// Decode deserializes a 24-byte binary record.
// Format: [SeqNum(8)][TimestampNs(8)][Payload(8)], little-endian.
//
// A short slice yields ErrTruncatedRecord, which callers treat as
// end-of-data on truncated files rather than a hard parse failure.
func (c *RecordCodec) Decode(data []byte) (Record, error) {
	if len(data) < RecordSize {
		return Record{}, ErrTruncatedRecord
	}

	r := Record{}
	r.SeqNum = int64(binary.LittleEndian.Uint64(data[0:8]))
	r.TimestampNs = int64(binary.LittleEndian.Uint64(data[8:16]))
	r.Payload = math.Float64frombits(binary.LittleEndian.Uint64(data[16:24]))

	return r, nil
}

// Encode serializes a record into its 24-byte binary layout.
func (c *RecordCodec) Encode(r Record) []byte {
	buf := make([]byte, RecordSize)

	binary.LittleEndian.PutUint64(buf[0:], uint64(r.SeqNum))
	binary.LittleEndian.PutUint64(buf[8:], uint64(r.TimestampNs))
	binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(r.Payload))

	return buf
}
