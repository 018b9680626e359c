// Package bench times the spreadsort engine against the standard
// library over generated key sets.
package bench

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/orlp/sortx/spread"
)

// Patterns supported by Generate.
var Patterns = []string{"random", "prefix", "short", "equal"}

// Result holds one timed comparison.
type Result struct {
	Pattern  string  `json:"pattern"`
	Size     int     `json:"size"`
	SpreadNS int64   `json:"spread_ns"`
	StdNS    int64   `json:"std_ns"`
	Speedup  float64 `json:"speedup"`
}

// Generate builds a key set of the given shape:
//
//	random: uniform random letters, mixed lengths
//	prefix: long shared prefix followed by a short random suffix
//	short:  1 to 3 byte keys, heavy duplication
//	equal:  every key identical
func Generate(pattern string, size int, seed int64) ([]string, error) {
	rng := rand.New(rand.NewSource(seed))
	data := make([]string, size)
	switch pattern {
	case "random":
		for i := range data {
			b := make([]byte, 4+rng.Intn(16))
			for j := range b {
				b[j] = byte('a' + rng.Intn(26))
			}
			data[i] = string(b)
		}
	case "prefix":
		prefix := strings.Repeat("p", 48)
		for i := range data {
			data[i] = prefix + fmt.Sprintf("%08d", rng.Intn(size))
		}
	case "short":
		for i := range data {
			b := make([]byte, 1+rng.Intn(3))
			for j := range b {
				b[j] = byte('a' + rng.Intn(26))
			}
			data[i] = string(b)
		}
	case "equal":
		for i := range data {
			data[i] = "constant"
		}
	default:
		return nil, fmt.Errorf("unknown pattern %q (have %v)", pattern, Patterns)
	}
	return data, nil
}

// Run times every pattern/size combination. The progress callback, if
// non-nil, receives each result as it completes.
func Run(patterns []string, sizes []int, tun spread.Tuning, progress func(Result)) ([]Result, error) {
	if len(patterns) == 0 {
		patterns = Patterns
	}
	results := make([]Result, 0, len(patterns)*len(sizes))
	for _, pattern := range patterns {
		for _, size := range sizes {
			original, err := Generate(pattern, size, int64(size))
			if err != nil {
				return nil, err
			}

			spreadNS := timeSort(original, func(data []string) {
				spread.SortTuned(data, spread.StringAccessor(), nil, tun)
			})
			stdNS := timeSort(original, sort.Strings)

			r := Result{
				Pattern:  pattern,
				Size:     size,
				SpreadNS: spreadNS,
				StdNS:    stdNS,
			}
			if spreadNS > 0 {
				r.Speedup = float64(stdNS) / float64(spreadNS)
			}
			results = append(results, r)
			if progress != nil {
				progress(r)
			}
		}
	}
	return results, nil
}

// timeSort reports the best of three runs, each over a fresh copy.
func timeSort(original []string, sortFn func([]string)) int64 {
	best := int64(-1)
	for run := 0; run < 3; run++ {
		data := make([]string, len(original))
		copy(data, original)
		start := time.Now()
		sortFn(data)
		elapsed := time.Since(start).Nanoseconds()
		if best < 0 || elapsed < best {
			best = elapsed
		}
	}
	return best
}
