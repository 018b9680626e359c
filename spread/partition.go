package spread

// span is one pending unit of radix work: a contiguous range of keys
// sharing a common prefix below offset, and the number of radix splits
// performed along its path. Once created, a span's members never cross
// its boundaries again.
type span struct {
	start, end int
	offset     int
	splits     int
}

// sortRange drives the bucketing through an explicit LIFO work list, so
// stack depth stays bounded no matter how long the keys are. The digit
// counters and bucket boundary slices come from a pool, acquired here
// before any element is moved, and are reused across levels.
func sortRange[K any](keys []K, acc Accessor[K], less func(a, b K) bool, tun Tuning, start, end int, desc bool) {
	s := getScratch(acc.Radix)
	counts, starts, ends := s.counts, s.starts, s.ends

	work := make([]span, 0, 64)
	work = append(work, span{start: start, end: end})
	for len(work) > 0 {
		sp := work[len(work)-1]
		work = work[:len(work)-1]
		if desc {
			work = partitionReverse(keys, acc, less, tun, sp, counts, starts, ends, work)
		} else {
			work = partitionForward(keys, acc, less, tun, sp, counts, starts, ends, work)
		}
	}
	putScratch(s)
}

// partitionForward performs one level of ascending bucketing on sp and
// appends the buckets that still need radix work to the work list.
// Postcondition per level: keys grouped by digit at sp.offset, groups
// contiguous and in final relative order; order within a group is
// established by deeper levels or the fallback sort.
func partitionForward[K any](keys []K, acc Accessor[K], less func(a, b K) bool, tun Tuning, sp span, counts, starts, ends []int, work []span) []span {
	a, b, off := sp.start, sp.end, sp.offset

	enqueue := func(lo, hi, splits int) {
		if hi-lo < 2 {
			return
		}
		if hi-lo < tun.FallbackSize || (tun.MaxSplits > 0 && splits >= tun.MaxSplits) {
			fallback(keys[lo:hi], less)
			return
		}
		work = append(work, span{lo, hi, off + 1, splits})
	}

	// Keys with no digit left at this offset form a terminal bucket at
	// the front: a prefix orders before any of its extensions. The same
	// pass tallies the digit of every remaining key. Terminal keys all
	// share the full prefix, so the bucket needs no further work.
	clear(counts)
	for i := a; i < b; i++ {
		k := keys[i]
		if acc.Length(k) <= off {
			keys[a], keys[i] = keys[i], keys[a]
			a++
			continue
		}
		counts[acc.Digit(k, off)]++
	}
	if b-a < 2 {
		return work
	}

	// Prefix sums over the counts fix every bucket's final contiguous
	// slot without any O(N) scratch. If one digit holds the whole
	// range, no swap pass is needed; the range moves straight to the
	// next offset.
	pos := a
	for d, c := range counts {
		starts[d] = pos
		pos += c
		ends[d] = pos
		if starts[d] == a && ends[d] == b {
			enqueue(a, b, sp.splits+1)
			return work
		}
	}

	// Fill-pointer permutation: walk each bucket's unfilled region and
	// swap whatever sits there onward to its own bucket's next free
	// slot. Every position is visited once, so total swaps are O(n).
	i := a
	for d := 0; d < len(counts); d++ {
		bucketEnd := ends[d]
		lo := i
		i = starts[d]
		for i < bucketEnd {
			dest := acc.Digit(keys[i], off)
			if dest == uint(d) {
				i++
				starts[dest]++
				continue
			}
			keys[i], keys[starts[dest]] = keys[starts[dest]], keys[i]
			starts[dest]++
		}
		enqueue(lo, bucketEnd, sp.splits+1)
	}
	return work
}

// partitionReverse is partitionForward with the two inversions of a
// descending sort: digit buckets are laid out highest value first, and
// the terminal bucket goes after all digit buckets, since a key that
// extends another is greater than its prefix when descending.
func partitionReverse[K any](keys []K, acc Accessor[K], less func(a, b K) bool, tun Tuning, sp span, counts, starts, ends []int, work []span) []span {
	a, b, off := sp.start, sp.end, sp.offset

	enqueue := func(lo, hi, splits int) {
		if hi-lo < 2 {
			return
		}
		if hi-lo < tun.FallbackSize || (tun.MaxSplits > 0 && splits >= tun.MaxSplits) {
			fallback(keys[lo:hi], less)
			return
		}
		work = append(work, span{lo, hi, off + 1, splits})
	}

	// Terminal keys are swapped to the back, scanning from the tail so
	// placed keys are never revisited.
	clear(counts)
	for i := b - 1; i >= a; i-- {
		k := keys[i]
		if acc.Length(k) <= off {
			b--
			keys[i], keys[b] = keys[b], keys[i]
			continue
		}
		counts[acc.Digit(k, off)]++
	}
	if b-a < 2 {
		return work
	}

	// Boundaries assigned in descending digit order.
	pos := a
	for d := len(counts) - 1; d >= 0; d-- {
		c := counts[d]
		starts[d] = pos
		pos += c
		ends[d] = pos
		if starts[d] == a && ends[d] == b {
			enqueue(a, b, sp.splits+1)
			return work
		}
	}

	// Same fill-pointer permutation, visiting buckets in placement
	// order (highest digit first).
	i := a
	for d := len(counts) - 1; d >= 0; d-- {
		bucketEnd := ends[d]
		lo := i
		i = starts[d]
		for i < bucketEnd {
			dest := acc.Digit(keys[i], off)
			if dest == uint(d) {
				i++
				starts[dest]++
				continue
			}
			keys[i], keys[starts[dest]] = keys[starts[dest]], keys[i]
			starts[dest]++
		}
		enqueue(lo, bucketEnd, sp.splits+1)
	}
	return work
}
