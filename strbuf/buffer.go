// Package strbuf provides a pool-backed byte buffer with C-string layout.
//
// # Overview
//
// A Buffer holds a byte sequence whose physical storage always carries one
// trailing zero byte beyond the logical content, so the underlying bytes
// are directly usable wherever a null-terminated string is expected. The
// terminator is an invariant, not data: it is excluded from Len, Bytes,
// comparison, and every other logical view, and every mutator restores it
// before returning, on success and failure alike.
//
// # Storage and pools
//
// Content lives in a vec.Vector leased from a pool.Pool. A Buffer
// references its pool but does not own it; many buffers share one pool.
// Copies and concatenation results inherit the source pool (the left
// operand's, for Concat). A buffer never explicitly bound uses the
// process-wide default pool on first allocation.
//
// # Failure behavior
//
// Pool exhaustion surfaces as a returned error, never a panic. After a
// failed operation the buffer holds either its prior content or a prefix
// of the intended result, with the terminator in place; it never exposes
// bytes beyond the reported length. Index access out of range panics,
// matching Go slice semantics.
package strbuf

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/strkit/internal/arith"
	"github.com/joshuapare/strkit/pool"
	"github.com/joshuapare/strkit/vec"
)

// emptyCString backs CString for buffers that have never allocated.
// Callers must treat CString views as read-only.
var emptyCString = []byte{0}

// Buffer is a growable byte sequence with a physically present null
// terminator. The zero value is an empty, unbound buffer ready for use.
type Buffer struct {
	storage vec.Vector
}

// New returns an empty buffer bound to no pool. Its first allocation binds
// it to the process-wide default pool.
func New() *Buffer {
	return &Buffer{}
}

// NewIn returns an empty buffer bound to p.
func NewIn(p *pool.Pool) *Buffer {
	b := &Buffer{}
	if p != nil {
		b.storage.BindPool(p)
	}
	return b
}

// NewSized returns a buffer of length n filled with zero bytes, bound to p.
func NewSized(p *pool.Pool, n int) (*Buffer, error) {
	b := NewIn(p)
	if err := b.Resize(n); err != nil {
		return nil, err
	}
	return b, nil
}

// NewString returns a buffer holding a copy of s, bound to p.
func NewString(p *pool.Pool, s string) (*Buffer, error) {
	b := NewIn(p)
	if err := b.AppendBytes([]byte(s)); err != nil {
		return nil, err
	}
	return b, nil
}

// NewBytes returns a buffer holding a copy of data, bound to p.
func NewBytes(p *pool.Pool, data []byte) (*Buffer, error) {
	b := NewIn(p)
	if err := b.AppendBytes(data); err != nil {
		return nil, err
	}
	return b, nil
}

// Clone returns a deep copy of b, bound to b's pool.
func (b *Buffer) Clone() (*Buffer, error) {
	out := NewIn(b.storage.Pool())
	if err := out.AppendBuffer(b); err != nil {
		return nil, err
	}
	return out, nil
}

// BindPool binds the buffer to p. Rebinding a buffer with live storage
// from another pool is a contract violation.
func (b *Buffer) BindPool(p *pool.Pool) {
	b.storage.BindPool(p)
}

// Pool returns the bound pool, or nil when the buffer is unbound.
func (b *Buffer) Pool() *pool.Pool {
	return b.storage.Pool()
}

// Len returns the logical length, excluding the terminator.
func (b *Buffer) Len() int {
	if n := b.storage.Len(); n > 0 {
		return n - 1
	}
	return 0
}

// Empty reports whether the buffer has no content.
func (b *Buffer) Empty() bool { return b.Len() == 0 }

// Cap returns the number of content bytes the buffer can hold without
// reallocating, terminator slot excluded.
func (b *Buffer) Cap() int {
	if c := b.storage.Cap(); c > 0 {
		return c - 1
	}
	return 0
}

// Bytes returns the logical content. The view aliases pool storage and is
// invalidated by the next mutation.
func (b *Buffer) Bytes() []byte {
	return b.storage.Bytes()[:b.Len()]
}

// CString returns the content plus the trailing zero byte, for consumers
// that expect null-terminated layout. Read-only; invalidated like Bytes.
func (b *Buffer) CString() []byte {
	if b.storage.Len() == 0 {
		return emptyCString
	}
	return b.storage.Bytes()
}

// String returns the content as a Go string.
func (b *Buffer) String() string {
	return string(b.Bytes())
}

// At returns the content byte at index i. Panics when i is out of range;
// the terminator is not addressable.
func (b *Buffer) At(i int) byte {
	b.check(i)
	return b.storage.At(i)
}

// Set stores c at index i. Panics when i is out of range.
func (b *Buffer) Set(i int, c byte) {
	b.check(i)
	b.storage.Set(i, c)
}

// Front returns the first content byte. Panics on an empty buffer.
func (b *Buffer) Front() byte { return b.At(0) }

// Back returns the last content byte. Panics on an empty buffer.
func (b *Buffer) Back() byte { return b.At(b.Len() - 1) }

// PushBack appends one content byte. Capacity for both the byte and the
// terminator is secured before any existing state is touched, so a failed
// push leaves the buffer exactly as it was.
func (b *Buffer) PushBack(c byte) error {
	phys := b.storage.Len()
	need := phys + 1
	if need < 2 {
		need = 2
	}
	if err := b.storage.Grow(need); err != nil {
		return err
	}
	if phys == 0 {
		if err := b.storage.PushBack(c); err != nil {
			return err
		}
		return b.storage.PushBack(0)
	}
	// Overwrite the old terminator with the new byte, then re-terminate.
	b.storage.Set(phys-1, c)
	return b.storage.PushBack(0)
}

// PopBack removes the last content byte. Fails with ErrEmpty on an empty
// buffer. The terminator is restored even when the buffer becomes empty.
func (b *Buffer) PopBack() error {
	n := b.Len()
	if n == 0 {
		return ErrEmpty
	}
	b.storage.Truncate(n)
	b.storage.Set(n-1, 0)
	return nil
}

// Reserve ensures capacity for at least n content bytes plus the
// terminator. It never shrinks and never changes the contents.
func (b *Buffer) Reserve(n int) error {
	phys, ok := arith.AddCap(n, 1)
	if !ok {
		return pool.ErrNoSpace
	}
	return b.storage.Reserve(phys)
}

// Resize sets the length to n, filling grown space with zero bytes.
func (b *Buffer) Resize(n int) error {
	return b.ResizeFill(n, 0)
}

// ResizeFill sets the length to n. Shrinking truncates from the end;
// growth appends copies of fill. A no-op when n equals the current length.
func (b *Buffer) ResizeFill(n int, fill byte) error {
	cur := b.Len()
	switch {
	case n < 0:
		return fmt.Errorf("strbuf: invalid length %d", n)
	case n == cur:
		return nil
	case n < cur:
		b.storage.Truncate(n + 1)
		b.storage.Set(n, 0)
		return nil
	}

	hadStorage := b.storage.Len() > 0
	phys, ok := arith.AddCap(n, 1)
	if !ok {
		return pool.ErrNoSpace
	}
	if err := b.storage.Resize(phys, fill); err != nil {
		return err
	}
	if hadStorage {
		// The old terminator slot is content now.
		b.storage.Set(cur, fill)
	}
	b.storage.Set(n, 0)
	return nil
}

// ShrinkToFit asks the pool to trim storage to exactly the current
// physical size. An empty buffer releases its block entirely.
func (b *Buffer) ShrinkToFit() error {
	return b.storage.ShrinkToFit()
}

// Clear removes all content. Capacity is kept.
func (b *Buffer) Clear() {
	b.storage.Clear()
}

// Release returns the buffer's storage to its pool. The buffer stays
// usable and re-allocates on the next mutation.
func (b *Buffer) Release() error {
	return b.storage.Release()
}

// AppendString appends the bytes of s. An empty s is rejected with
// ErrEmptySource and the buffer is left untouched; this mirrors the
// null-terminated-source policy where "nothing to append" is a failure,
// unlike AppendBytes.
func (b *Buffer) AppendString(s string) error {
	if len(s) == 0 {
		return ErrEmptySource
	}
	return b.AppendBytes([]byte(s))
}

// AppendBytes appends exactly len(data) bytes, embedded zero bytes
// included. An empty slice is a no-op success.
func (b *Buffer) AppendBytes(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	total, ok := arith.AddCap(b.Len(), len(data))
	if !ok {
		return pool.ErrNoSpace
	}
	if err := b.Reserve(total); err != nil {
		return err
	}
	for _, c := range data {
		if err := b.PushBack(c); err != nil {
			return err
		}
	}
	return nil
}

// AppendBuffer appends the content of src. Safe when src is b itself: the
// length is snapshotted and the final capacity reserved before any byte is
// copied, so the read side never sees a stale block after reallocation.
func (b *Buffer) AppendBuffer(src *Buffer) error {
	n := src.Len()
	if n == 0 {
		return nil
	}
	total, ok := arith.AddCap(b.Len(), n)
	if !ok {
		return pool.ErrNoSpace
	}
	if err := b.Reserve(total); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := b.PushBack(src.At(i)); err != nil {
			return err
		}
	}
	return nil
}

// AssignString replaces the content with the bytes of s. An empty s is
// rejected with ErrEmptySource and the buffer is left untouched.
func (b *Buffer) AssignString(s string) error {
	if len(s) == 0 {
		return ErrEmptySource
	}
	b.Clear()
	return b.AppendBytes([]byte(s))
}

// AssignBytes replaces the content with a copy of data. An empty slice
// empties the buffer and succeeds.
func (b *Buffer) AssignBytes(data []byte) error {
	b.Clear()
	return b.AppendBytes(data)
}

// CopyFrom replaces the content with a deep copy of src and binds b to
// src's pool. Copying a buffer onto itself is a guaranteed no-op.
func (b *Buffer) CopyFrom(src *Buffer) error {
	if b == src {
		return nil
	}
	if err := b.storage.Release(); err != nil {
		return err
	}
	if p := src.storage.Pool(); p != nil {
		b.storage.BindPool(p)
	}
	return b.AppendBuffer(src)
}

// Equal reports whether b and other hold the same content. Terminators,
// capacity, and pool binding do not participate; two empty buffers are
// always equal.
func (b *Buffer) Equal(other *Buffer) bool {
	return bytes.Equal(b.Bytes(), other.Bytes())
}

// EqualString reports whether the content equals s.
func (b *Buffer) EqualString(s string) bool {
	return string(b.Bytes()) == s
}

// Concat returns a new buffer holding b's content followed by right's,
// bound to b's pool. Neither operand is modified; right may be b itself.
// The result is reserved to its final size in one step.
func (b *Buffer) Concat(right *Buffer) (*Buffer, error) {
	out := NewIn(b.storage.Pool())
	total, ok := arith.AddCap(b.Len(), right.Len())
	if !ok {
		return nil, pool.ErrNoSpace
	}
	if err := out.Reserve(total); err != nil {
		return nil, err
	}
	if err := out.AppendBuffer(b); err != nil {
		return nil, err
	}
	if err := out.AppendBuffer(right); err != nil {
		return nil, err
	}
	return out, nil
}

// ConcatString returns a new buffer holding b's content followed by s,
// bound to b's pool. Unlike AppendString, an empty s is fine here: the
// result is simply a copy of b.
func (b *Buffer) ConcatString(s string) (*Buffer, error) {
	out := NewIn(b.storage.Pool())
	total, ok := arith.AddCap(b.Len(), len(s))
	if !ok {
		return nil, pool.ErrNoSpace
	}
	if err := out.Reserve(total); err != nil {
		return nil, err
	}
	if err := out.AppendBuffer(b); err != nil {
		return nil, err
	}
	if err := out.AppendBytes([]byte(s)); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *Buffer) check(i int) {
	if i < 0 || i >= b.Len() {
		panic(fmt.Sprintf("strbuf: index %d out of range [0:%d]", i, b.Len()))
	}
}
