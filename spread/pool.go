package spread

import "sync"

// scratch holds the per-sort counter and bucket boundary slices. One
// scratch serves every level of one sort call; pooling it keeps
// repeated small sorts from paying the allocation each time.
type scratch struct {
	counts []int
	starts []int
	ends   []int
}

var scratchPool = sync.Pool{
	New: func() interface{} {
		return &scratch{}
	},
}

// getScratch returns pooled scratch sized for the given radix.
func getScratch(radix uint) *scratch {
	s := scratchPool.Get().(*scratch)
	n := int(radix)
	if cap(s.counts) < n {
		s.counts = make([]int, n)
		s.starts = make([]int, n)
		s.ends = make([]int, n)
	}
	s.counts = s.counts[:n]
	s.starts = s.starts[:n]
	s.ends = s.ends[:n]
	return s
}

func putScratch(s *scratch) {
	scratchPool.Put(s)
}
