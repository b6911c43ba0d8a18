package strbuf

import "errors"

var (
	// ErrEmpty indicates a pop from a buffer with no content.
	ErrEmpty = errors.New("strbuf: empty buffer")

	// ErrEmptySource indicates an append or assign from a zero-length
	// string source. The explicit-length byte forms accept empty input;
	// the string forms reject it by policy.
	ErrEmptySource = errors.New("strbuf: empty source rejected")
)
