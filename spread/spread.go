// Package spread implements spreadsort, an in-place hybrid
// radix/comparison sort over a slice of keys. It buckets keys by one
// digit (byte, or any fixed-size chunk) per pass and falls back to the
// standard library's comparison sort for small ranges and for paths
// that have been subdivided too many times, bounding worst-case work at
// O(N*(K/S + S)) for digit-depth K and split cap S.
//
// Keys are opaque: the engine touches them only through an Accessor
// and an optional comparator, so raw strings, byte slices, fixed-width
// integers and user-defined string-like types all sort through the same
// machinery. Equal keys may be reordered (the sort is not stable).
//
// Panics raised by a caller-supplied accessor or comparator propagate
// to the caller unmodified; the slice is left as some permutation of
// its original elements, since the engine only ever swaps in place.
package spread

import "sort"

// Tuning holds the empirically tuned cutoffs of the hybrid. The zero
// value is not usable; start from DefaultTuning.
type Tuning struct {
	// MinSize is the input size below which a call performs no radix
	// work at all and delegates to the comparison sort, which is
	// cheaper for small inputs.
	MinSize int

	// FallbackSize is the bucket size below which a bucket is finished
	// with the comparison sort instead of being subdivided further.
	FallbackSize int

	// MaxSplits caps how many radix subdivisions a single recursive
	// path may perform before the remainder is handed to the
	// comparison sort. 0 means no cap.
	MaxSplits int
}

// DefaultTuning matches the constants the algorithm was originally
// benchmarked with.
var DefaultTuning = Tuning{
	MinSize:      1000,
	FallbackSize: 128,
	MaxSplits:    11,
}

// Sort sorts keys in ascending order using DefaultTuning. A nil less
// selects the digit-lexicographic order derived from acc; a non-nil
// less must agree with that order or the result is an unspecified
// permutation.
func Sort[K any](keys []K, acc Accessor[K], less func(a, b K) bool) {
	SortTuned(keys, acc, less, DefaultTuning)
}

// SortTuned is Sort with explicit cutoffs.
func SortTuned[K any](keys []K, acc Accessor[K], less func(a, b K) bool, tun Tuning) {
	if len(keys) < 2 {
		return
	}
	if less == nil {
		less = acc.less
	}
	if len(keys) < tun.MinSize {
		fallback(keys, less)
		return
	}
	// An empty key is already minimal and in place; skip leading ones.
	start := 0
	for acc.Length(keys[start]) == 0 {
		start++
		if start == len(keys) {
			return
		}
	}
	sortRange(keys, acc, less, tun, start, len(keys), false)
}

// Reverse sorts keys in descending order using DefaultTuning. The
// comparator, if non-nil, must order descending (a "greater" functor);
// nil selects the reversed digit-lexicographic order. Under descending
// order a key that extends another is greater than its prefix.
func Reverse[K any](keys []K, acc Accessor[K], greater func(a, b K) bool) {
	ReverseTuned(keys, acc, greater, DefaultTuning)
}

// ReverseTuned is Reverse with explicit cutoffs.
func ReverseTuned[K any](keys []K, acc Accessor[K], greater func(a, b K) bool, tun Tuning) {
	if len(keys) < 2 {
		return
	}
	if greater == nil {
		greater = acc.greater
	}
	if len(keys) < tun.MinSize {
		fallback(keys, greater)
		return
	}
	// Descending, the shortest keys belong at the end: skip trailing
	// empties, guarding the single-remaining-element case.
	end := len(keys)
	for acc.Length(keys[end-1]) == 0 {
		if end == 1 {
			return
		}
		end--
	}
	sortRange(keys, acc, greater, tun, 0, end, true)
}

// Strings sorts a string slice in ascending byte order.
func Strings(keys []string) {
	Sort(keys, StringAccessor(), nil)
}

// StringsReverse sorts a string slice in descending byte order.
func StringsReverse(keys []string) {
	Reverse(keys, StringAccessor(), nil)
}

// Bytes sorts a slice of byte slices in ascending byte order.
func Bytes(keys [][]byte) {
	Sort(keys, BytesAccessor(), nil)
}

// BytesReverse sorts a slice of byte slices in descending byte order.
func BytesReverse(keys [][]byte) {
	Reverse(keys, BytesAccessor(), nil)
}

// Uint32s sorts a uint32 slice in ascending order, treating each value
// as four big-endian byte digits.
func Uint32s(keys []uint32) {
	acc := Accessor[uint32]{
		Digit:  func(v uint32, off int) uint { return uint(v>>(24-8*off)) & 0xFF },
		Length: func(uint32) int { return 4 },
		Radix:  256,
	}
	Sort(keys, acc, func(a, b uint32) bool { return a < b })
}

// Uint64s sorts a uint64 slice in ascending order, treating each value
// as eight big-endian byte digits.
func Uint64s(keys []uint64) {
	acc := Accessor[uint64]{
		Digit:  func(v uint64, off int) uint { return uint(v>>(56-8*off)) & 0xFF },
		Length: func(uint64) int { return 8 },
		Radix:  256,
	}
	Sort(keys, acc, func(a, b uint64) bool { return a < b })
}

// fallback finishes a range with the standard library's comparison
// sort, ordered by the call's comparator.
func fallback[K any](keys []K, less func(a, b K) bool) {
	sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })
}
