//go:build unix

package region

import "testing"

func TestMapAnonymousUnix(t *testing.T) {
	data, cleanup, err := Map(4096)
	if err != nil {
		t.Fatalf("Map failed: %v", err)
	}
	if len(data) != 4096 {
		t.Fatalf("mapped %d bytes, want 4096", len(data))
	}

	// Region must be writable and zero-initialized.
	for i, b := range data {
		if b != 0 {
			t.Fatalf("byte %d is %d, want 0", i, b)
		}
	}
	data[0] = 0xde
	data[len(data)-1] = 0xef
	if data[0] != 0xde || data[len(data)-1] != 0xef {
		t.Fatalf("region writes did not stick")
	}

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if err := cleanup(); err != nil {
		t.Fatalf("second cleanup should be a no-op, got: %v", err)
	}
}

func TestMapRejectsBadSize(t *testing.T) {
	if _, _, err := Map(0); err == nil {
		t.Fatalf("Map(0) should fail")
	}
	if _, _, err := Map(-1); err == nil {
		t.Fatalf("Map(-1) should fail")
	}
}
