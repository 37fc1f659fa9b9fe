package codec

import (
	"encoding/binary"
)

// File format constants. The magic is the ASCII tag "MKTD" read as a
// little-endian u32; version 2 widened the header to 64 bytes.
const (
	FileMagic   uint32 = 0x4D4B5444
	FileVersion uint16 = 2

	HeaderSize = 64
	RecordSize = 24

	// FlagComplete is set by the recorder only after a clean close.
	FlagComplete uint16 = 0x0001

	// InvalidSeq marks first/last sequence fields of an empty file.
	InvalidSeq int64 = -1
)

// FileHeader is the fixed 64-byte metadata block at the start of a capture
// file. Reserved regions are decoded byte-for-byte but carry no meaning.
type FileHeader struct {
	Magic     uint32   // Format identifier, must equal FileMagic
	Version   uint16   // Format version
	Flags     uint16   // Bitmask, see FlagComplete
	Date      uint32   // Recording date YYYYMMDD, opaque to the verifier
	Reserved1 uint32   // Reserved
	MsgCount  int64    // Declared number of records following the header
	FirstSeq  int64    // First sequence number in file, InvalidSeq if empty
	LastSeq   int64    // Last sequence number in file, InvalidSeq if empty
	Reserved2 [24]byte // Reserved, opaque
}

// Complete reports whether the recording session was closed cleanly.
func (h *FileHeader) Complete() bool {
	return h.Flags&FlagComplete != 0
}

// HeaderCodec handles serialization and deserialization of file headers.
type HeaderCodec struct{}

// NewHeaderCodec creates a new header codec instance.
func NewHeaderCodec() *HeaderCodec {
	return &HeaderCodec{}
}

// Decode deserializes the first 64 bytes of a file into a FileHeader.
// Format: [Magic(4)][Version(2)][Flags(2)][Date(4)][Reserved1(4)]
// [MsgCount(8)][FirstSeq(8)][LastSeq(8)][Reserved2(24)]
//
// Decode does not judge the decoded values; magic and version policy is
// applied by the integrity checker, not the codec.
func (c *HeaderCodec) Decode(data []byte) (*FileHeader, error) {
	if len(data) < HeaderSize {
		return nil, ErrTruncatedHeader
	}

	h := &FileHeader{}
	h.Magic = binary.LittleEndian.Uint32(data[0:4])
	h.Version = binary.LittleEndian.Uint16(data[4:6])
	h.Flags = binary.LittleEndian.Uint16(data[6:8])
	h.Date = binary.LittleEndian.Uint32(data[8:12])
	h.Reserved1 = binary.LittleEndian.Uint32(data[12:16])
	h.MsgCount = int64(binary.LittleEndian.Uint64(data[16:24]))
	h.FirstSeq = int64(binary.LittleEndian.Uint64(data[24:32]))
	h.LastSeq = int64(binary.LittleEndian.Uint64(data[32:40]))
	copy(h.Reserved2[:], data[40:64])

	return h, nil
}

// Encode serializes a FileHeader into its 64-byte binary layout.
func (c *HeaderCodec) Encode(h *FileHeader) []byte {
	buf := make([]byte, HeaderSize)

	binary.LittleEndian.PutUint32(buf[0:], h.Magic)
	binary.LittleEndian.PutUint16(buf[4:], h.Version)
	binary.LittleEndian.PutUint16(buf[6:], h.Flags)
	binary.LittleEndian.PutUint32(buf[8:], h.Date)
	binary.LittleEndian.PutUint32(buf[12:], h.Reserved1)
	binary.LittleEndian.PutUint64(buf[16:], uint64(h.MsgCount))
	binary.LittleEndian.PutUint64(buf[24:], uint64(h.FirstSeq))
	binary.LittleEndian.PutUint64(buf[32:], uint64(h.LastSeq))
	copy(buf[40:], h.Reserved2[:])

	return buf
}

// ExpectedFileSize returns the physical size a file with this header's
// declared record count should have.
func (h *FileHeader) ExpectedFileSize() int64 {
	return HeaderSize + h.MsgCount*RecordSize
}
