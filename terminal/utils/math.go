package utils

import "cmp"

// Clamp bounds v to the inclusive range [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	Assert(lo <= hi, "clamp with inverted bounds")
	return min(max(v, lo), hi)
}
