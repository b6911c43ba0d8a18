package strbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual_SameContent(t *testing.T) {
	p := newTestPool(t, 4096)
	a, err := NewString(p, "Hello")
	require.NoError(t, err)
	b, err := NewString(p, "Hello")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
}

func TestEqual_DifferentContent(t *testing.T) {
	p := newTestPool(t, 4096)
	a, err := NewString(p, "Hello")
	require.NoError(t, err)
	b, err := NewString(p, "World")
	require.NoError(t, err)

	assert.False(t, a.Equal(b))
}

func TestEqual_CaseSensitive(t *testing.T) {
	p := newTestPool(t, 4096)
	a, err := NewString(p, "Hello")
	require.NoError(t, err)
	b, err := NewString(p, "hello")
	require.NoError(t, err)

	assert.False(t, a.Equal(b))
}

func TestEqual_LengthMismatch(t *testing.T) {
	p := newTestPool(t, 4096)
	a, err := NewString(p, "Hel")
	require.NoError(t, err)
	b, err := NewString(p, "Hello")
	require.NoError(t, err)

	assert.False(t, a.Equal(b))
}

func TestEqual_EmptyBuffers(t *testing.T) {
	p1 := newTestPool(t, 4096)
	p2 := newTestPool(t, 4096)

	a := NewIn(p1)
	b := NewIn(p2)
	require.NoError(t, b.Reserve(100)) // capacity and binding must not matter

	assert.True(t, a.Equal(b))
	assert.True(t, a.Equal(New()))
}

func TestEqualString(t *testing.T) {
	p := newTestPool(t, 4096)
	b, err := NewString(p, "Hello")
	require.NoError(t, err)

	assert.True(t, b.EqualString("Hello"))
	assert.False(t, b.EqualString("hello"))
	assert.False(t, b.EqualString(""))
	assert.True(t, New().EqualString(""))
}

func TestConcat_NonMutating(t *testing.T) {
	p := newTestPool(t, 4096)
	a, err := NewString(p, "Hello ")
	require.NoError(t, err)
	b, err := NewString(p, "World")
	require.NoError(t, err)

	c, err := a.Concat(b)
	require.NoError(t, err)

	assert.Equal(t, "Hello World", c.String())
	assert.Equal(t, a.Len()+b.Len(), c.Len())
	assert.Equal(t, "Hello ", a.String(), "left operand unchanged")
	assert.Equal(t, "World", b.String(), "right operand unchanged")
	checkInvariants(t, c)
}

func TestConcat_BindsLeftPool(t *testing.T) {
	p1 := newTestPool(t, 4096)
	p2 := newTestPool(t, 4096)
	a, err := NewString(p1, "left")
	require.NoError(t, err)
	b, err := NewString(p2, "right")
	require.NoError(t, err)

	c, err := a.Concat(b)
	require.NoError(t, err)
	assert.Same(t, p1, c.Pool(), "result inherits the left operand's pool")
}

func TestConcat_WithSelf(t *testing.T) {
	p := newTestPool(t, 4096)
	a, err := NewString(p, "dup")
	require.NoError(t, err)

	c, err := a.Concat(a)
	require.NoError(t, err)
	assert.Equal(t, "dupdup", c.String())
	assert.Equal(t, "dup", a.String())
	checkInvariants(t, c)
}

func TestConcat_EmptyOperands(t *testing.T) {
	p := newTestPool(t, 4096)
	a, err := NewString(p, "solo")
	require.NoError(t, err)
	empty := NewIn(p)

	c, err := a.Concat(empty)
	require.NoError(t, err)
	assert.Equal(t, "solo", c.String())

	d, err := empty.Concat(a)
	require.NoError(t, err)
	assert.Equal(t, "solo", d.String())

	e, err := empty.Concat(empty)
	require.NoError(t, err)
	assert.True(t, e.Empty())
}

func TestConcatString(t *testing.T) {
	p := newTestPool(t, 4096)
	a, err := NewString(p, "pre")
	require.NoError(t, err)

	c, err := a.ConcatString("fix")
	require.NoError(t, err)
	assert.Equal(t, "prefix", c.String())
	assert.Equal(t, "pre", a.String())

	// Unlike AppendString, an empty right-hand side is fine.
	d, err := a.ConcatString("")
	require.NoError(t, err)
	assert.Equal(t, "pre", d.String())
}
