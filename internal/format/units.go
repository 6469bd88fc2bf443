// Package format renders byte quantities for diagnostics output.
package format

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Binary byte units used by usage reports.
const (
	KiB = 1024
	MiB = 1024 * KiB
	GiB = 1024 * MiB
)

var printer = message.NewPrinter(language.English)

// Scale expresses n in the largest unit it reaches.
//
//	Scale(512)     = 512, "B"
//	Scale(1536)    = 1.5, "KiB"
//	Scale(3 << 20) = 3,   "MiB"
func Scale(n uint64) (float64, string) {
	switch {
	case n >= GiB:
		return float64(n) / GiB, "GiB"
	case n >= MiB:
		return float64(n) / MiB, "MiB"
	case n >= KiB:
		return float64(n) / KiB, "KiB"
	default:
		return float64(n), "B"
	}
}

// Bytes renders n scaled with two decimals, e.g. "1.50KiB".
func Bytes(n uint64) string {
	v, unit := Scale(n)
	return fmt.Sprintf("%.2f%s", v, unit)
}

// Grouped renders n with thousands separators, e.g. "1,048,576".
func Grouped(n uint64) string {
	return printer.Sprintf("%d", n)
}
