// Package lines reads newline-delimited keys and counts duplicates
// concurrently.
package lines

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/alphadose/haxmap"
)

// Read collects the lines of r, without their terminators. Lines up to
// 2MB are supported.
func Read(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 256*1024), 2*1024*1024) // 2MB max, 256KB initial

	out := make([]string, 0, 1024)
	for scanner.Scan() {
		out = append(out, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading lines: %w", err)
	}
	return out, nil
}

// ReadFile reads every line of the named file.
func ReadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	estimated := int(stat.Size() / 40) // rough bytes-per-line estimate
	if estimated < 1024 {
		estimated = 1024
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 256*1024), 2*1024*1024)

	out := make([]string, 0, estimated)
	for scanner.Scan() {
		out = append(out, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return out, nil
}

// Counter tallies occurrences per distinct line. Safe for concurrent
// use.
type Counter struct {
	m *haxmap.Map[string, *atomic.Int64]
}

func NewCounter() *Counter {
	return &Counter{m: haxmap.New[string, *atomic.Int64]()}
}

// Add records one occurrence of line.
func (c *Counter) Add(line string) {
	n, _ := c.m.GetOrSet(line, new(atomic.Int64))
	n.Add(1)
}

// Count returns how many times line was added.
func (c *Counter) Count(line string) int64 {
	n, ok := c.m.Get(line)
	if !ok {
		return 0
	}
	return n.Load()
}

// Distinct returns the number of distinct lines seen.
func (c *Counter) Distinct() int {
	return int(c.m.Len())
}

// CountAll tallies data across worker goroutines and returns the
// counter. Worker count is capped: counting is memory-bandwidth bound,
// so more workers stop helping quickly.
func CountAll(data []string) *Counter {
	c := NewCounter()
	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	if len(data) < 4096 || workers < 2 {
		for _, line := range data {
			c.Add(line)
		}
		return c
	}

	chunk := (len(data) + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < len(data); start += chunk {
		end := start + chunk
		if end > len(data) {
			end = len(data)
		}
		wg.Add(1)
		go func(part []string) {
			defer wg.Done()
			for _, line := range part {
				c.Add(line)
			}
		}(data[start:end])
	}
	wg.Wait()
	return c
}

// Unique returns the distinct lines of data, in first-seen order, along
// with the counter holding each line's multiplicity.
func Unique(data []string) ([]string, *Counter) {
	c := CountAll(data)
	seen := make(map[string]struct{}, c.Distinct())
	out := make([]string, 0, c.Distinct())
	for _, line := range data {
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out, c
}
