package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/orlp/sortx/lines"
)

// Summary is the machine-readable report of one sort run.
type Summary struct {
	Metadata Metadata  `json:"metadata"`
	Input    Input     `json:"input"`
	Sorting  Sorting   `json:"sorting"`
	Warnings []Warning `json:"warnings"`

	// Mutex for thread-safe warning appending
	mu sync.Mutex `json:"-"`
}

// Metadata contains information about the run.
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	Mode        string    `json:"mode"`
	Version     string    `json:"version"`
	DurationMS  int64     `json:"duration_ms"`
}

// Input describes the data that was sorted.
type Input struct {
	Source      string `json:"source,omitempty"`
	TotalLines  int    `json:"total_lines"`
	UniqueLines int    `json:"unique_lines,omitempty"`
}

// Sorting records the parameters and cost of the sort itself.
type Sorting struct {
	Reverse      bool  `json:"reverse"`
	Unique       bool  `json:"unique"`
	MinSize      int   `json:"min_size"`
	FallbackSize int   `json:"fallback_size"`
	MaxSplits    int   `json:"max_splits"`
	SortMS       int64 `json:"sort_ms"`
}

// Warning represents a warning message.
type Warning struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewSummary creates a Summary with default metadata.
func NewSummary(mode, version string, startTime time.Time) *Summary {
	return &Summary{
		Metadata: Metadata{
			GeneratedAt: time.Now().UTC(),
			Mode:        mode,
			Version:     version,
			DurationMS:  time.Since(startTime).Milliseconds(),
		},
		Warnings: []Warning{},
	}
}

// ToJSON converts the summary to pretty-printed JSON.
func (s *Summary) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// ToCompactJSON converts the summary to compact JSON.
func (s *Summary) ToCompactJSON() ([]byte, error) {
	return json.Marshal(s)
}

// AddWarning adds a warning to the summary (thread-safe).
func (s *Summary) AddWarning(warningType, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Warnings = append(s.Warnings, Warning{Type: warningType, Message: message})
}

// UpdateDuration updates the duration in metadata.
func (s *Summary) UpdateDuration(startTime time.Time) {
	s.Metadata.DurationMS = time.Since(startTime).Milliseconds()
}

// WriteResultsJSON writes arbitrary results as pretty-printed JSON.
func WriteResultsJSON(w io.Writer, results interface{}) error {
	buf, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if _, err := w.Write(append(buf, '\n')); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}

// WriteLines writes data one line per element.
func WriteLines(w io.Writer, data []string) error {
	bw := bufio.NewWriterSize(w, 256*1024)
	for _, line := range data {
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return bw.Flush()
}

// WriteCounts writes data with each line's multiplicity, uniq -c style.
func WriteCounts(w io.Writer, data []string, counter *lines.Counter) error {
	bw := bufio.NewWriterSize(w, 256*1024)
	for _, line := range data {
		if _, err := bw.WriteString(strconv.FormatInt(counter.Count(line), 10)); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		if err := bw.WriteByte('\t'); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return bw.Flush()
}
