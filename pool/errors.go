package pool

import "errors"

var (
	// ErrNoSpace indicates that no free block large enough was found.
	ErrNoSpace = errors.New("pool: no free block large enough")

	// ErrBadRef indicates an invalid, misaligned, or out-of-bounds block reference.
	ErrBadRef = errors.New("pool: bad block reference")

	// ErrNotAllocated indicates an operation on a block that is not allocated.
	ErrNotAllocated = errors.New("pool: block is not allocated")

	// ErrClosed indicates the pool's region has been released.
	ErrClosed = errors.New("pool: closed")
)
