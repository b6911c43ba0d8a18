package pool

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/joshuapare/strkit/internal/arith"
	"github.com/joshuapare/strkit/internal/region"
)

// Ref is an offset of a block header within the pool region.
type Ref = uint32

const (
	// headerSize is the per-block bookkeeping overhead.
	headerSize = 4

	// minBlockSize is the minimum total block size (including header).
	// It doubles as the block alignment unit.
	minBlockSize = 8

	// maxPoolSize keeps block offsets representable as int32.
	maxPoolSize = 0x7FFFFFFF

	// DefaultSize is the region size used by the process-wide default pool.
	DefaultSize = 1 << 20
)

// Pool is a bounded allocator over a single contiguous memory region.
type Pool struct {
	mu      sync.Mutex
	data    []byte
	cleanup func() error
	closed  bool

	usedBytes   int // total size of allocated blocks, headers included
	usedBlocks  int
	totalAllocs uint64 // lifetime Alloc count, for Stats
}

// Stats is a point-in-time snapshot of pool occupancy.
type Stats struct {
	Total           int    // region size in bytes
	Used            int    // bytes in allocated blocks, headers included
	Free            int    // bytes in free blocks, headers included
	LargestFree     int    // payload capacity of the largest free block
	AllocatedBlocks int
	FreeBlocks      int
	LifetimeAllocs  uint64
}

// New creates a pool over a fresh region of the given size. The size is
// rounded down to the block alignment unit.
func New(size int) (*Pool, error) {
	size &^= minBlockSize - 1
	if size < minBlockSize {
		return nil, fmt.Errorf("pool: region size %d is below the %d byte minimum", size, minBlockSize)
	}
	if size > maxPoolSize {
		return nil, fmt.Errorf("pool: region size %d exceeds the %d byte maximum", size, maxPoolSize)
	}
	data, cleanup, err := region.Map(size)
	if err != nil {
		return nil, err
	}
	p := &Pool{data: data, cleanup: cleanup}
	// The whole region starts as one free block.
	p.putHeader(0, int32(size))
	return p, nil
}

var (
	defaultOnce sync.Once
	defaultPool *Pool
)

// Default returns the process-wide pool, creating it on first use. It backs
// containers that were never explicitly bound to a pool.
func Default() *Pool {
	defaultOnce.Do(func() {
		p, err := New(DefaultSize)
		if err != nil {
			panic(fmt.Sprintf("pool: cannot create default pool: %v", err))
		}
		defaultPool = p
	})
	return defaultPool
}

// Size returns the region size in bytes.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.data)
}

// Alloc leases a block with at least n usable bytes. It returns the block
// reference and the full usable payload slice, which may be longer than n
// due to alignment. The payload aliases the region and stays valid until
// the block is freed or reallocated.
func (p *Pool) Alloc(n int) (Ref, []byte, error) {
	if n <= 0 {
		return 0, nil, fmt.Errorf("pool: invalid allocation size %d", n)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, nil, ErrClosed
	}
	off, err := p.allocLocked(n)
	if err != nil {
		return 0, nil, err
	}
	p.totalAllocs++
	return Ref(off), p.payload(off), nil
}

// Realloc resizes the block at ref to hold n usable bytes, preserving its
// contents up to the new capacity. Growth may move the block, shrinking
// releases the tail in place when it can stand alone; the
// returned Ref and payload replace the old ones.
func (p *Pool) Realloc(ref Ref, n int) (Ref, []byte, error) {
	if n <= 0 {
		return 0, nil, fmt.Errorf("pool: invalid allocation size %d", n)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, nil, ErrClosed
	}
	off := int(ref)
	if err := p.checkAllocated(off); err != nil {
		return 0, nil, err
	}
	have := -int(p.header(off))
	need, ok := blockSize(n)
	if !ok {
		return 0, nil, ErrNoSpace
	}
	if have >= need {
		// Shrink in place when the tail can stand alone as a free block;
		// otherwise the block simply keeps its slack.
		if have-need >= minBlockSize {
			p.putHeader(off, int32(-need))
			p.putHeader(off+need, int32(have-need))
			p.usedBytes -= have - need
		}
		return ref, p.payload(off), nil
	}

	// In-place growth: absorb the immediate free successor when the
	// combined block covers the request.
	next := off + have
	if next < len(p.data) {
		if nsz := int(p.header(next)); nsz > 0 && have+nsz >= need {
			combined := have + nsz
			total := p.writeAllocated(off, combined, need)
			p.usedBytes += total - have
			return ref, p.payload(off), nil
		}
	}

	newOff, err := p.allocLocked(n)
	if err != nil {
		return 0, nil, err
	}
	copy(p.payload(newOff), p.payload(off))
	p.freeLocked(off)
	return Ref(newOff), p.payload(newOff), nil
}

// Free releases the block at ref. Freeing merges the block with its free
// successor blocks immediately.
func (p *Pool) Free(ref Ref) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	off := int(ref)
	if err := p.checkAllocated(off); err != nil {
		return err
	}
	p.freeLocked(off)
	return nil
}

// Bytes re-resolves the usable payload of an allocated block.
func (p *Pool) Bytes(ref Ref) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}
	off := int(ref)
	if err := p.checkAllocated(off); err != nil {
		return nil, err
	}
	return p.payload(off), nil
}

// Stats walks the region and reports current occupancy.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := Stats{
		Total:          len(p.data),
		Used:           p.usedBytes,
		LifetimeAllocs: p.totalAllocs,
	}
	if p.closed {
		return s
	}
	s.AllocatedBlocks = p.usedBlocks
	for off := 0; off < len(p.data); {
		sz := int(p.header(off))
		if sz < 0 {
			off += -sz
			continue
		}
		// Count a run of adjacent free blocks as the single block it
		// would coalesce into.
		run := sz
		for off+run < len(p.data) {
			nsz := int(p.header(off + run))
			if nsz <= 0 {
				break
			}
			run += nsz
		}
		s.Free += run
		s.FreeBlocks++
		if run-headerSize > s.LargestFree {
			s.LargestFree = run - headerSize
		}
		off += run
	}
	return s
}

// Close releases the backing region. All outstanding refs and payload
// slices become invalid.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.data = nil
	p.usedBytes = 0
	p.usedBlocks = 0
	return p.cleanup()
}

// blockSize converts a payload request into an aligned total block size.
func blockSize(n int) (int, bool) {
	total, ok := arith.AddCap(n, headerSize)
	if !ok {
		return 0, false
	}
	return arith.Align8(total)
}

// allocLocked finds a free block covering n payload bytes, first-fit.
// The walk absorbs runs of adjacent free blocks as it passes them.
func (p *Pool) allocLocked(n int) (int, error) {
	need, ok := blockSize(n)
	if !ok {
		return 0, ErrNoSpace
	}
	for off := 0; off < len(p.data); {
		sz := int(p.header(off))
		if sz < 0 {
			off += -sz
			continue
		}
		for off+sz < len(p.data) {
			nsz := int(p.header(off + sz))
			if nsz <= 0 {
				break
			}
			sz += nsz
			p.putHeader(off, int32(sz))
		}
		if sz >= need {
			p.usedBytes += p.writeAllocated(off, sz, need)
			p.usedBlocks++
			return off, nil
		}
		off += sz
	}
	return 0, ErrNoSpace
}

// writeAllocated marks [off, off+avail) allocated for a need-sized block,
// splitting off the remainder as a free block when it is large enough.
// Returns the total size actually held by the allocated block.
func (p *Pool) writeAllocated(off, avail, need int) int {
	if avail-need >= minBlockSize {
		p.putHeader(off+need, int32(avail-need))
		p.putHeader(off, int32(-need))
		return need
	}
	// Remainder too small to stand alone; the block keeps it.
	p.putHeader(off, int32(-avail))
	return avail
}

func (p *Pool) freeLocked(off int) {
	sz := -int(p.header(off))
	p.usedBytes -= sz
	p.usedBlocks--
	merged := sz
	for off+merged < len(p.data) {
		nsz := int(p.header(off + merged))
		if nsz <= 0 {
			break
		}
		merged += nsz
	}
	p.putHeader(off, int32(merged))
}

func (p *Pool) checkAllocated(off int) error {
	if off < 0 || off%minBlockSize != 0 || off+headerSize > len(p.data) {
		return ErrBadRef
	}
	sz := int(p.header(off))
	if sz >= 0 {
		return ErrNotAllocated
	}
	if off+(-sz) > len(p.data) {
		return ErrBadRef
	}
	return nil
}

func (p *Pool) payload(off int) []byte {
	sz := -int(p.header(off))
	return p.data[off+headerSize : off+sz]
}

func (p *Pool) header(off int) int32 {
	return int32(binary.LittleEndian.Uint32(p.data[off:]))
}

func (p *Pool) putHeader(off int, v int32) {
	binary.LittleEndian.PutUint32(p.data[off:], uint32(v))
}
