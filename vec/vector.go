// Package vec provides a pool-backed growable byte vector.
//
// A Vector leases one block from a pool.Pool and grows it geometrically as
// elements are pushed. Every operation that may allocate returns an error
// instead of panicking: pool exhaustion is an expected condition for
// callers in this codebase, not a fault. Index access is the exception and
// panics on out-of-range, matching Go slice semantics.
package vec

import (
	"errors"
	"fmt"

	"github.com/joshuapare/strkit/internal/arith"
	"github.com/joshuapare/strkit/pool"
)

// ErrEmpty indicates a pop from a vector with no elements.
var ErrEmpty = errors.New("vec: empty vector")

// minReserve is the smallest capacity a first allocation asks for, so tiny
// vectors do not realloc on every push.
const minReserve = 8

// Vector is a growable byte sequence stored in a pool block.
//
// The zero value is an empty vector bound to no pool; its first allocation
// binds it to the process-wide default pool unless BindPool was called.
type Vector struct {
	p   *pool.Pool
	ref pool.Ref
	buf []byte // full usable payload of the leased block; nil when no block
	n   int
}

// New returns an empty, unbound vector.
func New() *Vector {
	return &Vector{}
}

// NewIn returns an empty vector bound to p.
func NewIn(p *pool.Pool) *Vector {
	return &Vector{p: p}
}

// BindPool binds the vector to p. Rebinding a vector that already holds
// storage from another pool is a contract violation.
func (v *Vector) BindPool(p *pool.Pool) {
	if v.buf != nil && v.p != p {
		panic("vec: cannot rebind a vector with live storage")
	}
	v.p = p
}

// Pool returns the bound pool, or nil when the vector is unbound.
func (v *Vector) Pool() *pool.Pool {
	return v.p
}

// Len returns the number of elements.
func (v *Vector) Len() int { return v.n }

// Cap returns the usable capacity of the leased block.
func (v *Vector) Cap() int { return len(v.buf) }

// Empty reports whether the vector has no elements.
func (v *Vector) Empty() bool { return v.n == 0 }

// Bytes returns a view of the elements. The view is invalidated by any
// subsequent mutation.
func (v *Vector) Bytes() []byte { return v.buf[:v.n] }

// At returns the element at index i. Panics when i is out of range.
func (v *Vector) At(i int) byte {
	v.check(i)
	return v.buf[i]
}

// Set stores b at index i. Panics when i is out of range.
func (v *Vector) Set(i int, b byte) {
	v.check(i)
	v.buf[i] = b
}

// Front returns the first element. Panics on an empty vector.
func (v *Vector) Front() byte { return v.At(0) }

// Back returns the last element. Panics on an empty vector.
func (v *Vector) Back() byte { return v.At(v.n - 1) }

// PushBack appends one element.
func (v *Vector) PushBack(b byte) error {
	if err := v.grow(v.n + 1); err != nil {
		return err
	}
	v.buf[v.n] = b
	v.n++
	return nil
}

// PopBack removes the last element. Capacity is unchanged.
func (v *Vector) PopBack() error {
	if v.n == 0 {
		return ErrEmpty
	}
	v.n--
	return nil
}

// Reserve ensures capacity for at least n elements. It never shrinks and
// never changes the contents.
func (v *Vector) Reserve(n int) error {
	if n <= len(v.buf) {
		return nil
	}
	return v.relocate(n)
}

// Grow ensures capacity for at least n elements like Reserve, but expands
// geometrically so repeated single-element growth stays amortized O(1).
func (v *Vector) Grow(n int) error {
	return v.grow(n)
}

// Resize sets the length to n. Shrinking truncates from the end; growth
// appends copies of fill.
func (v *Vector) Resize(n int, fill byte) error {
	if n < 0 {
		return fmt.Errorf("vec: invalid length %d", n)
	}
	if n <= v.n {
		v.n = n
		return nil
	}
	if err := v.Reserve(n); err != nil {
		return err
	}
	for i := v.n; i < n; i++ {
		v.buf[i] = fill
	}
	v.n = n
	return nil
}

// Truncate drops elements from the end so at most n remain.
func (v *Vector) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < v.n {
		v.n = n
	}
}

// Clear removes all elements, keeping capacity.
func (v *Vector) Clear() { v.n = 0 }

// ShrinkToFit reduces the leased block to exactly fit the current length.
// An empty vector releases its block entirely.
func (v *Vector) ShrinkToFit() error {
	if v.buf == nil {
		return nil
	}
	if v.n == 0 {
		return v.Release()
	}
	ref, payload, err := v.p.Realloc(v.ref, v.n)
	if err != nil {
		return err
	}
	v.ref, v.buf = ref, payload
	return nil
}

// Release returns the leased block to the pool. The vector becomes empty
// and may allocate again later.
func (v *Vector) Release() error {
	if v.buf == nil {
		v.n = 0
		return nil
	}
	err := v.p.Free(v.ref)
	v.ref, v.buf, v.n = 0, nil, 0
	return err
}

// grow ensures capacity for need elements, expanding geometrically.
func (v *Vector) grow(need int) error {
	if need <= len(v.buf) {
		return nil
	}
	target, ok := arith.GrowCap(len(v.buf), need, minReserve)
	if !ok {
		return pool.ErrNoSpace
	}
	return v.relocate(target)
}

// relocate leases a block of at least n bytes, moving existing contents.
func (v *Vector) relocate(n int) error {
	if v.p == nil {
		v.p = pool.Default()
	}
	if v.buf == nil {
		ref, payload, err := v.p.Alloc(n)
		if err != nil {
			return err
		}
		v.ref, v.buf = ref, payload
		return nil
	}
	ref, payload, err := v.p.Realloc(v.ref, n)
	if err != nil {
		return err
	}
	v.ref, v.buf = ref, payload
	return nil
}

func (v *Vector) check(i int) {
	if i < 0 || i >= v.n {
		panic(fmt.Sprintf("vec: index %d out of range [0:%d]", i, v.n))
	}
}
