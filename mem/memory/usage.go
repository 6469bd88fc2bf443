package memory

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/enginemem/internal/format"
)

// Usage is a point-in-time copy of a System's counters.
type Usage struct {
	Tagged      [TagMax]int64
	Total       int64
	Allocations uint64
	Frees       uint64
	Capacity    uint64
	FreeSpace   uint64
}

// Usage snapshots the System's counters. After Shutdown only the counters are
// filled in.
func (s *System) Usage() Usage {
	u := Usage{
		Tagged:      s.tagged,
		Total:       s.total,
		Allocations: s.allocCount,
		Frees:       s.freeCount,
	}
	if s.dyn != nil {
		u.Capacity = s.dyn.Size()
		u.FreeSpace = s.dyn.FreeSpace()
	}
	return u
}

// ByTag returns the non-zero tag counters keyed by tag name.
func (u Usage) ByTag() map[string]int64 {
	m := make(map[string]int64)
	for t, n := range u.Tagged {
		if n != 0 {
			m[Tag(t).String()] = n
		}
	}
	return m
}

// String renders the report printed by PrintUsage: one line per tag, then
// the totals.
func (u Usage) String() string {
	var sb strings.Builder
	sb.WriteString("System memory use (tagged):\n")
	for t, n := range u.Tagged {
		fmt.Fprintf(&sb, "  %-12s: %s\n", Tag(t), signedBytes(n))
	}
	fmt.Fprintf(&sb, "  %-12s: %s (%s bytes)\n", "TOTAL", signedBytes(u.Total), groupedSigned(u.Total))
	fmt.Fprintf(&sb, "Allocations: %s, frees: %s\n", format.Grouped(u.Allocations), format.Grouped(u.Frees))
	if u.Capacity > 0 {
		fmt.Fprintf(&sb, "Free space: %s of %s\n", format.Bytes(u.FreeSpace), format.Bytes(u.Capacity))
	}
	return sb.String()
}

// PrintUsage writes the current usage report to w.
func (s *System) PrintUsage(w io.Writer) error {
	_, err := io.WriteString(w, s.Usage().String())
	return err
}

func signedBytes(n int64) string {
	if n < 0 {
		return "-" + format.Bytes(uint64(-n))
	}
	return format.Bytes(uint64(n))
}

func groupedSigned(n int64) string {
	if n < 0 {
		return "-" + format.Grouped(uint64(-n))
	}
	return format.Grouped(uint64(n))
}
