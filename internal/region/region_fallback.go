//go:build !unix

// Package region provides platform-specific backing storage for memory pools.
package region

import "fmt"

// Map allocates a heap-backed region when mmap is not available.
func Map(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("region: invalid size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}
