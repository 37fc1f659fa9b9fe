package codec

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestRecordCodec_EncodeDecodeRoundTrip(t *testing.T) {
	codec := NewRecordCodec()

	testCases := []struct {
		name   string
		record Record
	}{
		{
			name:   "ordinary record",
			record: Record{SeqNum: 42, TimestampNs: 1756512000000000000, Payload: 500.0},
		},
		{
			name:   "zero record",
			record: Record{},
		},
		{
			name:   "negative sequence",
			record: Record{SeqNum: -1, TimestampNs: -5, Payload: -273.15},
		},
		{
			name:   "extreme payloads",
			record: Record{SeqNum: math.MaxInt64, TimestampNs: math.MinInt64, Payload: math.MaxFloat64},
		},
		{
			name:   "subnormal payload",
			record: Record{SeqNum: 1, TimestampNs: 1, Payload: math.SmallestNonzeroFloat64},
		},
		{
			name:   "negative zero payload",
			record: Record{SeqNum: 2, TimestampNs: 2, Payload: math.Copysign(0, -1)},
		},
		{
			name:   "infinite payload",
			record: Record{SeqNum: 3, TimestampNs: 3, Payload: math.Inf(1)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded := codec.Encode(tc.record)
			if len(encoded) != RecordSize {
				t.Fatalf("Encoded record size mismatch: got %d, want %d", len(encoded), RecordSize)
			}

			decoded, err := codec.Decode(encoded)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			if decoded.SeqNum != tc.record.SeqNum {
				t.Errorf("SeqNum mismatch: got %d, want %d", decoded.SeqNum, tc.record.SeqNum)
			}
			if decoded.TimestampNs != tc.record.TimestampNs {
				t.Errorf("TimestampNs mismatch: got %d, want %d", decoded.TimestampNs, tc.record.TimestampNs)
			}
			// Bit-exact comparison so -0 and NaN payloads survive too.
			if math.Float64bits(decoded.Payload) != math.Float64bits(tc.record.Payload) {
				t.Errorf("Payload mismatch: got %v, want %v", decoded.Payload, tc.record.Payload)
			}
		})
	}
}

func TestRecordCodec_NaNPayloadRoundTrip(t *testing.T) {
	codec := NewRecordCodec()

	r := Record{SeqNum: 9, TimestampNs: 9, Payload: math.NaN()}
	decoded, err := codec.Decode(codec.Encode(r))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !math.IsNaN(decoded.Payload) {
		t.Errorf("Expected NaN payload, got %v", decoded.Payload)
	}
}

func TestRecordCodec_DecodeKnownLayout(t *testing.T) {
	buf := make([]byte, RecordSize)
	binary.LittleEndian.PutUint64(buf[0:], 7)
	binary.LittleEndian.PutUint64(buf[8:], uint64(1234567890))
	binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(3.5))

	r, err := NewRecordCodec().Decode(buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if r.SeqNum != 7 || r.TimestampNs != 1234567890 || r.Payload != 3.5 {
		t.Errorf("Field mismatch: %+v", r)
	}
}

func TestRecordCodec_Truncated(t *testing.T) {
	codec := NewRecordCodec()

	testCases := []struct {
		name string
		data []byte
	}{
		{name: "empty data", data: []byte{}},
		{name: "one byte short", data: make([]byte, RecordSize-1)},
		{name: "header-only fragment", data: make([]byte, 8)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := codec.Decode(tc.data)
			if err != ErrTruncatedRecord {
				t.Errorf("Expected ErrTruncatedRecord, got %v", err)
			}
		})
	}
}
