package gpt

import "errors"

var (
	// ErrTruncated is returned when the source ends before a full structure could be read.
	ErrTruncated = errors.New("gpt: short read")
	// ErrMalformedHeader is returned for header values the decoder refuses to work with.
	ErrMalformedHeader = errors.New("gpt: malformed header")
	// ErrInconsistent is returned when the entry table does not match the header's entry count.
	ErrInconsistent = errors.New("gpt: entry table inconsistent with header")
	// ErrInvalidName is returned when a partition name does not form valid text.
	ErrInvalidName = errors.New("gpt: invalid partition name")
	// ErrUnsupportedHost is returned on big-endian hosts.
	ErrUnsupportedHost = errors.New("gpt: big-endian host unsupported")
)
