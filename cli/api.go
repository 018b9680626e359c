package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/orlp/sortx/bench"
	"github.com/orlp/sortx/config"
	"github.com/orlp/sortx/ingest"
	"github.com/orlp/sortx/lines"
	"github.com/orlp/sortx/output"
	"github.com/orlp/sortx/spool"
	"github.com/orlp/sortx/spread"
	"github.com/orlp/sortx/tui"
	"github.com/orlp/sortx/version"
)

// FileJob describes one file-mode sort run.
type FileJob struct {
	Input   string
	Output  string
	Reverse bool
	Unique  bool
	Counts  bool
	Tuning  spread.Tuning
}

// SortFile reads the input, sorts it and writes the result. With
// summaryJSON set, a run summary goes to stderr.
func SortFile(job FileJob, summaryJSON, compact bool) error {
	startTime := time.Now()
	summary := output.NewSummary("file", version.Version, startTime)
	summary.Input.Source = job.Input
	summary.Sorting = output.Sorting{
		Reverse:      job.Reverse,
		Unique:       job.Unique,
		MinSize:      job.Tuning.MinSize,
		FallbackSize: job.Tuning.FallbackSize,
		MaxSplits:    job.Tuning.MaxSplits,
	}

	data, err := readInput(job.Input)
	if err != nil {
		return err
	}
	summary.Input.TotalLines = len(data)

	var counter *lines.Counter
	if job.Unique {
		data, counter = lines.Unique(data)
		summary.Input.UniqueLines = len(data)
	}

	sortStart := time.Now()
	if job.Reverse {
		spread.ReverseTuned(data, spread.StringAccessor(), nil, job.Tuning)
	} else {
		spread.SortTuned(data, spread.StringAccessor(), nil, job.Tuning)
	}
	summary.Sorting.SortMS = time.Since(sortStart).Milliseconds()

	w, closeOut, err := openOutput(job.Output, false)
	if err != nil {
		return err
	}
	if job.Counts {
		err = output.WriteCounts(w, data, counter)
	} else {
		err = output.WriteLines(w, data)
	}
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	summary.UpdateDuration(startTime)
	return emitSummary(summary, summaryJSON, compact)
}

// SortFileFromConfig runs file mode with parameters from a config file.
func SortFileFromConfig(cfg *config.Config, summaryJSON, compact bool) error {
	out := cfg.File.Output
	if out == "" {
		out = "-"
	}
	return SortFile(FileJob{
		Input:   cfg.File.Input,
		Output:  out,
		Reverse: cfg.File.Reverse,
		Unique:  cfg.File.Unique || cfg.File.Counts,
		Counts:  cfg.File.Counts,
		Tuning:  cfg.GetTuning(),
	}, summaryJSON, compact)
}

// BenchJob describes one benchmark run.
type BenchJob struct {
	Patterns []string
	Sizes    []int
	PlotPath string
	TUI      bool
	Tuning   spread.Tuning
}

// RunBench times the engine against the standard library, optionally
// rendering a chart and showing progress in a TUI.
func RunBench(job BenchJob, asJSON bool) error {
	var results []bench.Result
	var err error

	if job.TUI {
		app := tui.NewApp()
		err = app.Run(func(progress func(bench.Result)) error {
			var runErr error
			results, runErr = bench.Run(job.Patterns, job.Sizes, job.Tuning, progress)
			return runErr
		})
	} else {
		results, err = bench.Run(job.Patterns, job.Sizes, job.Tuning, func(r bench.Result) {
			if !asJSON {
				fmt.Printf("%-8s %8d keys  spreadsort %8.2fms  stdlib %8.2fms  %.2fx\n",
					r.Pattern, r.Size,
					float64(r.SpreadNS)/1e6, float64(r.StdNS)/1e6, r.Speedup)
			}
		})
	}
	if err != nil {
		return err
	}

	if asJSON {
		if err := output.WriteResultsJSON(os.Stdout, results); err != nil {
			return err
		}
	}

	if job.PlotPath != "" {
		if err := output.PlotBench(results, job.PlotPath); err != nil {
			return fmt.Errorf("failed to render benchmark chart: %w", err)
		}
		fmt.Fprintf(os.Stderr, "chart written to %s\n", job.PlotPath)
	}
	return nil
}

// LiveJob describes a live ingest run.
type LiveJob struct {
	Port          string
	Output        string
	Reverse       bool
	FlushInterval time.Duration
	SpoolMaxAge   time.Duration
	SpoolMaxSize  int
	Tuning        spread.Tuning
}

// Live listens for lumberjack batches and appends sorted runs to the
// output until interrupted. Each flush is one independently sorted
// block of records.
func Live(job LiveJob) error {
	server, err := ingest.NewServer(":"+job.Port, 30*time.Second)
	if err != nil {
		return err
	}
	defer server.Close()
	if err := server.Accept(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "listening on %s\n", server.Addr())

	out, closeOut, err := openOutput(job.Output, true)
	if err != nil {
		return err
	}
	defer closeOut()

	sp := spool.New(job.SpoolMaxAge, job.SpoolMaxSize, job.Tuning, job.Reverse)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ticker := time.NewTicker(job.FlushInterval)
	defer ticker.Stop()

	flush := func() error {
		run := sp.Flush()
		if run == nil {
			return nil
		}
		if err := output.WriteLines(out, run); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "flushed run of %d records\n", len(run))
		return nil
	}

	for {
		records, open := server.ReadLines()
		sp.Add(records)
		if !open {
			return flush()
		}
		if sp.Due(time.Now()) {
			if err := flush(); err != nil {
				return err
			}
		}

		select {
		case <-ticker.C:
		case <-sigs:
			fmt.Fprintln(os.Stderr, "shutting down")
			return flush()
		}
	}
}

// readInput loads the lines of path, or of stdin for "-".
func readInput(path string) ([]string, error) {
	if path == "-" {
		return lines.Read(os.Stdin)
	}
	return lines.ReadFile(path)
}

// openOutput opens path for writing, or returns stdout for "-". Live
// mode appends so successive runs accumulate; file mode truncates. The
// returned close function is a no-op for stdout.
func openOutput(path string, appendTo bool) (io.Writer, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	mode := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if appendTo {
		mode = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(path, mode, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open output %s: %w", path, err)
	}
	return f, f.Close, nil
}

// emitSummary prints the run summary to stderr when requested.
func emitSummary(s *output.Summary, enabled, compact bool) error {
	if !enabled {
		return nil
	}
	var (
		buf []byte
		err error
	)
	if compact {
		buf, err = s.ToCompactJSON()
	} else {
		buf, err = s.ToJSON()
	}
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	fmt.Fprintln(os.Stderr, string(buf))
	return nil
}
