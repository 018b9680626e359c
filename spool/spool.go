// Package spool buffers incoming records and releases them as sorted
// runs.
package spool

import (
	"sync"
	"time"

	"github.com/orlp/sortx/spread"
)

// Spool is a bounded buffer of records awaiting a sort. A flush drains
// everything buffered so far, sorts it with the spreadsort engine and
// hands the run back to the caller. Records are never dropped; the
// bounds only decide when a flush is due.
type Spool struct {
	mu      sync.Mutex
	records []string
	oldest  time.Time

	maxAge     time.Duration
	maxEntries int
	tuning     spread.Tuning
	reverse    bool
}

func New(maxAge time.Duration, maxEntries int, tuning spread.Tuning, reverse bool) *Spool {
	return &Spool{
		records:    make([]string, 0, maxEntries),
		maxAge:     maxAge,
		maxEntries: maxEntries,
		tuning:     tuning,
		reverse:    reverse,
	}
}

// Add buffers records for the next run.
func (s *Spool) Add(records []string) {
	if len(records) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.records) == 0 {
		s.oldest = time.Now()
	}
	s.records = append(s.records, records...)
}

// Len returns the number of buffered records.
func (s *Spool) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Due reports whether a flush is due: the buffer reached its size
// bound, or its oldest record exceeded the age bound.
func (s *Spool) Due(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.records) == 0 {
		return false
	}
	if s.maxEntries > 0 && len(s.records) >= s.maxEntries {
		return true
	}
	return s.maxAge > 0 && now.Sub(s.oldest) >= s.maxAge
}

// Flush drains the buffer and returns its contents as one sorted run.
// Returns nil when nothing is buffered.
func (s *Spool) Flush() []string {
	s.mu.Lock()
	run := s.records
	s.records = make([]string, 0, s.maxEntries)
	s.mu.Unlock()

	if len(run) == 0 {
		return nil
	}
	if s.reverse {
		spread.ReverseTuned(run, spread.StringAccessor(), nil, s.tuning)
	} else {
		spread.SortTuned(run, spread.StringAccessor(), nil, s.tuning)
	}
	return run
}
