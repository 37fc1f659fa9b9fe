// Package codec provides binary serialization for market-data capture files.
//
// A capture file is a fixed 64-byte header followed immediately by a flat
// array of fixed 24-byte records. All fields are little-endian.
//
// # Header Format
//
//	[Magic(4)][Version(2)][Flags(2)][Date(4)][Reserved1(4)]
//	[MsgCount(8)][FirstSeq(8)][LastSeq(8)][Reserved2(24)]
//
// Fields:
//   - Magic: format identifier, 0x4D4B5444 ("MKTD")
//   - Version: format version, currently 2
//   - Flags: bitmask; bit 0 set means the recording closed cleanly
//   - Date: recording date as YYYYMMDD, not interpreted by this package
//   - MsgCount: declared number of records following the header (int64)
//   - FirstSeq/LastSeq: sequence range in the file, -1 when empty (int64)
//   - Reserved1/Reserved2: reserved regions, decoded but opaque
//
// # Record Format
//
//	[SeqNum(8)][TimestampNs(8)][Payload(8)]
//
// SeqNum and TimestampNs are int64; Payload is an IEEE 754 float64 stored
// as its little-endian bit pattern.
//
// Total expected file size is 64 + MsgCount*24 bytes.
//
// # Error Handling
//
// Decoding a short slice returns ErrTruncatedHeader or ErrTruncatedRecord.
// The codecs never reject on field values: a wrong magic or version decodes
// fine, and acceptance policy belongs to the verify package.
package codec
