// Package pool provides bounded memory pools for allocation-failure-tolerant
// byte containers.
//
// # Overview
//
// A Pool owns a single contiguous region of memory (anonymous mmap on unix,
// heap slice elsewhere) and hands out blocks from it. Allocation never grows
// the region: when the pool is exhausted, Alloc returns ErrNoSpace and the
// caller decides what to do. This models constrained targets where the heap
// is a fixed budget and every allocation must be checked.
//
// # Block format
//
// The region is a sequence of blocks, each starting with a 4-byte
// little-endian int32 header holding the total block size including the
// header. A negative size marks the block allocated, a positive size marks
// it free. All blocks are 8-byte aligned.
//
// # References
//
// Alloc returns a Ref, a uint32 offset of the block header within the
// region. Refs stay valid until Free; the payload slice returned alongside
// a Ref aliases the region directly and must be re-resolved with Bytes
// after any Realloc of the same Ref.
//
// # Fragmentation
//
// Free flips the header sign and merges the block with its free successor.
// The allocation walk additionally absorbs runs of adjacent free blocks as
// it passes them, so free space re-coalesces incrementally under churn.
// Stats reports used/free totals and the largest free block for
// fragmentation visibility.
//
// # Thread safety
//
// A Pool serializes its own Alloc/Realloc/Free/Stats with an internal
// mutex, so many containers may share one pool across goroutines. The
// containers themselves remain single-writer.
package pool
