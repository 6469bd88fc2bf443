package buf

import "testing"

func TestSlotHelpers(t *testing.T) {
	b := make([]byte, 16)
	PutU64At(b, 0, 0x0123456789abcdef)
	PutU32At(b, 8, 0xdeadbeef)

	if got := U64At(b, 0); got != 0x0123456789abcdef {
		t.Fatalf("U64At = 0x%x, want 0x0123456789abcdef", got)
	}
	if got := U32At(b, 8); got != 0xdeadbeef {
		t.Fatalf("U32At = 0x%x, want 0xdeadbeef", got)
	}
	if b[0] != 0xef || b[7] != 0x01 {
		t.Fatalf("expected little-endian layout, got % x", b[:8])
	}

	if U64At(b, 12) != 0 || U32At(b, 14) != 0 || U32At(b, -1) != 0 {
		t.Fatalf("out-of-bounds reads should return 0")
	}
}
