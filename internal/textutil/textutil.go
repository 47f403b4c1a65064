// Package textutil holds the small numeric and layout helpers shared by the
// registry and the menu renderer.
package textutil

import (
	"cmp"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Clamp limits v to the range described by a and b. The bounds may be given in
// either order; an inverted pair is swapped before limiting.
func Clamp[T cmp.Ordered](v, a, b T) T {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AddSat returns a+b, saturating at the int limits instead of wrapping.
func AddSat(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	if b < 0 && a < math.MinInt-b {
		return math.MinInt
	}
	return a + b
}

// SubSat returns a-b, saturating at the int limits instead of wrapping.
func SubSat(a, b int) int {
	if b < 0 && a > math.MaxInt+b {
		return math.MaxInt
	}
	if b > 0 && a < math.MinInt+b {
		return math.MinInt
	}
	return a - b
}

// Wrap returns (index + delta) modulo n, always in [0, n).
func Wrap(index, delta, n int) int {
	if n <= 0 {
		return 0
	}
	next := (index + delta) % n
	if next < 0 {
		next += n
	}
	return next
}

// Width reports the display width of s in terminal cells.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Center pads s with spaces so that it sits in the middle of a field of the
// given width. When the padding is odd the extra space goes on the left. Input
// wider than the field is returned unchanged.
func Center(s string, width int) string {
	pad := width - Width(s)
	if pad < 0 {
		return s
	}
	left := pad / 2
	right := pad / 2
	if pad%2 != 0 {
		left++
	}
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// PadRight left-justifies s in a field of the given width.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// NameColumn computes the reserved name column for the longest option name:
// the length is rounded down to a multiple of four and then given two more
// tab stops so there is always visible space before the value.
func NameColumn(longest int) int {
	if longest < 0 {
		longest = 0
	}
	return longest - (longest % 4) + 8
}
