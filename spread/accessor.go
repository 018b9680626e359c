package spread

// Accessor gives the engine direct access to the digits of a key.
// Digit and Length must be pure and consistent for the duration of a
// sort call; inconsistent accessors produce an unspecified (but still
// permutation-preserving) final order.
type Accessor[K any] struct {
	// Digit returns the unsigned digit of k at position off.
	// It is only called with off < Length(k), and must return a value
	// below Radix.
	Digit func(k K, off int) uint

	// Length returns the number of digits in k.
	Length func(k K) int

	// Radix is the number of distinct digit values (256 for raw bytes).
	// Must be at least 2.
	Radix uint
}

// StringAccessor reads a string one byte at a time. Bytes compare by
// raw unsigned value; no collation is applied.
func StringAccessor() Accessor[string] {
	return Accessor[string]{
		Digit:  func(s string, off int) uint { return uint(s[off]) },
		Length: func(s string) int { return len(s) },
		Radix:  256,
	}
}

// BytesAccessor reads a byte slice one byte at a time.
func BytesAccessor() Accessor[[]byte] {
	return Accessor[[]byte]{
		Digit:  func(b []byte, off int) uint { return uint(b[off]) },
		Length: func(b []byte) int { return len(b) },
		Radix:  256,
	}
}

// less is the digit-lexicographic order derived from the accessor,
// used when the caller supplies no comparator. A key that is a strict
// prefix of another orders before it.
func (a Accessor[K]) less(x, y K) bool {
	lx, ly := a.Length(x), a.Length(y)
	n := lx
	if ly < n {
		n = ly
	}
	for i := 0; i < n; i++ {
		dx, dy := a.Digit(x, i), a.Digit(y, i)
		if dx != dy {
			return dx < dy
		}
	}
	return lx < ly
}

// greater mirrors less for descending sorts.
func (a Accessor[K]) greater(x, y K) bool { return a.less(y, x) }
