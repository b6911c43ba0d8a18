package strbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/strkit/pool"
)

func newTestPool(t *testing.T, size int) *pool.Pool {
	t.Helper()
	p, err := pool.New(size)
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

// checkInvariants asserts the terminator and length invariants that every
// public operation must preserve.
func checkInvariants(t *testing.T, b *Buffer) {
	t.Helper()
	phys := b.storage.Len()
	if phys == 0 {
		require.Zero(t, b.Len(), "empty storage must mean zero length")
		return
	}
	require.Equal(t, phys-1, b.Len(), "logical length must be physical length minus terminator")
	require.Zero(t, b.storage.At(phys-1), "byte after the content must be the terminator")
	require.GreaterOrEqual(t, b.Cap(), b.Len(), "capacity must cover the length")
}

func TestBuffer_NewIsEmpty(t *testing.T) {
	b := New()
	assert.True(t, b.Empty())
	assert.Zero(t, b.Len())
	assert.Nil(t, b.Pool())
	assert.Empty(t, b.Bytes())
	checkInvariants(t, b)
}

func TestBuffer_NewInBindsPool(t *testing.T) {
	p := newTestPool(t, 4096)
	b := NewIn(p)
	assert.Same(t, p, b.Pool())
	assert.True(t, b.Empty())
}

func TestBuffer_NewSized(t *testing.T) {
	p := newTestPool(t, 4096)
	b, err := NewSized(p, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, b.Len())
	assert.Equal(t, []byte{0, 0, 0, 0, 0}, b.Bytes())
	checkInvariants(t, b)
}

func TestBuffer_NewString(t *testing.T) {
	p := newTestPool(t, 4096)
	b, err := NewString(p, "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hello", b.String())
	assert.Equal(t, 5, b.Len())
	checkInvariants(t, b)

	empty, err := NewString(p, "")
	require.NoError(t, err, "constructing from an empty string is not an append")
	assert.True(t, empty.Empty())
}

func TestBuffer_NewBytesKeepsEmbeddedZeros(t *testing.T) {
	p := newTestPool(t, 4096)
	b, err := NewBytes(p, []byte{'a', 0, 'b'})
	require.NoError(t, err)
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []byte{'a', 0, 'b'}, b.Bytes())
	checkInvariants(t, b)
}

func TestBuffer_CString(t *testing.T) {
	p := newTestPool(t, 4096)
	b, err := NewString(p, "Hi")
	require.NoError(t, err)

	cs := b.CString()
	assert.Equal(t, []byte{'H', 'i', 0}, cs)

	// A never-written buffer still yields a terminated view.
	assert.Equal(t, []byte{0}, New().CString())
}

func TestBuffer_AccessorsPanicOutOfRange(t *testing.T) {
	p := newTestPool(t, 4096)
	b, err := NewString(p, "AB")
	require.NoError(t, err)

	assert.Equal(t, byte('A'), b.At(0))
	assert.Equal(t, byte('A'), b.Front())
	assert.Equal(t, byte('B'), b.Back())

	assert.Panics(t, func() { b.At(2) }, "the terminator slot is not addressable")
	assert.Panics(t, func() { b.At(-1) })
	assert.Panics(t, func() { New().Front() })
	assert.Panics(t, func() { New().Back() })
}

func TestBuffer_SetWritesThrough(t *testing.T) {
	p := newTestPool(t, 4096)
	b, err := NewString(p, "cat")
	require.NoError(t, err)

	b.Set(0, 'b')
	assert.Equal(t, "bat", b.String())
	assert.Panics(t, func() { b.Set(3, 'x') })
	checkInvariants(t, b)
}

func TestBuffer_UnboundUsesDefaultPool(t *testing.T) {
	b := New()
	require.NoError(t, b.PushBack('x'))
	assert.Same(t, pool.Default(), b.Pool(), "first allocation binds the default pool")
	require.NoError(t, b.Release())
}
