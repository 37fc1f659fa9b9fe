package codec

// Errors
var (
	ErrTruncatedHeader = &CodecError{"header truncated: fewer than 64 bytes"}
	ErrTruncatedRecord = &CodecError{"record truncated: fewer than 24 bytes"}
)

// CodecError represents a binary decoding error.
type CodecError struct {
	Message string
}

func (e *CodecError) Error() string {
	return e.Message
}
