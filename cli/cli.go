package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v2"

	"github.com/orlp/sortx/bench"
	"github.com/orlp/sortx/config"
	"github.com/orlp/sortx/spread"
	"github.com/orlp/sortx/version"
)

// parseDate attempts to parse the build date
func parseDate(d string) time.Time {
	t, err := time.Parse(time.RFC3339, d)
	if err != nil {
		return time.Now()
	}
	return t
}

// Shared flag definitions to eliminate duplication
var (
	// Configuration flags
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to configuration file (mutually exclusive with most other flags)",
	}

	// Input/output flags
	inputFlag = &cli.StringFlag{
		Name:  "input",
		Usage: "Path to the input file ('-' for stdin)",
		Value: "-",
	}
	outputFlag = &cli.StringFlag{
		Name:  "output",
		Usage: "Path to the output file ('-' for stdout)",
		Value: "-",
	}

	// Ordering flags
	reverseFlag = &cli.BoolFlag{
		Name:  "reverse",
		Usage: "Sort in descending order",
		Value: false,
	}
	uniqueFlag = &cli.BoolFlag{
		Name:  "unique",
		Usage: "Emit each distinct line once",
		Value: false,
	}
	countsFlag = &cli.BoolFlag{
		Name:  "counts",
		Usage: "Prefix each line with its occurrence count (implies --unique)",
		Value: false,
	}

	// Engine tuning flags
	minSizeFlag = &cli.IntFlag{
		Name:  "minSize",
		Usage: "Input size below which the engine uses only the comparison sort",
	}
	fallbackSizeFlag = &cli.IntFlag{
		Name:  "fallbackSize",
		Usage: "Bucket size below which a bucket is finished by the comparison sort",
	}
	maxSplitsFlag = &cli.IntFlag{
		Name:  "maxSplits",
		Usage: "Radix subdivisions per path before handing off (-1 for no cap)",
	}

	// Output format flags
	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print a JSON run summary to stderr",
		Value: false,
	}
	compactFlag = &cli.BoolFlag{
		Name:  "compact",
		Usage: "Output compact JSON (no pretty printing)",
		Value: false,
	}

	// Bench-specific flags
	sizesFlag = &cli.IntSliceFlag{
		Name:  "sizes",
		Usage: "Input sizes to benchmark (multiple can be passed)",
	}
	patternsFlag = &cli.StringSliceFlag{
		Name:  "patterns",
		Usage: fmt.Sprintf("Key patterns to benchmark: %v", bench.Patterns),
	}
	plotPathFlag = &cli.StringFlag{
		Name:  "plotPath",
		Usage: "Path where to save the benchmark chart (e.g., '/path/to/bench.html'). If not provided, no plot is generated.",
	}
	tuiFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Show benchmark progress in a TUI (Terminal User Interface)",
		Value: false,
	}

	// Live-specific flags
	portFlag = &cli.StringFlag{
		Name:  "port",
		Usage: "Port to listen on for lumberjack batches",
	}
	flushIntervalFlag = &cli.DurationFlag{
		Name:  "flushInterval",
		Usage: "How often to check whether a sorted run should be flushed",
		Value: 10 * time.Second,
	}
	spoolMaxAgeFlag = &cli.DurationFlag{
		Name:  "spoolMaxAge",
		Usage: "Maximum age of a buffered record before a flush is forced",
		Value: 2 * time.Minute,
	}
	spoolMaxSizeFlag = &cli.IntFlag{
		Name:  "spoolMaxSize",
		Usage: "Maximum number of buffered records before a flush is forced",
		Value: 100000,
	}
)

// Shared validation functions
func validateConfigModeFlags(c *cli.Context, allowedFlags []string) error {
	// Create a map for quick lookup of allowed flags
	allowed := make(map[string]bool)
	for _, flag := range allowedFlags {
		allowed[flag] = true
	}

	// Check all possible flags
	flagsToCheck := []string{
		"input", "output", "reverse", "unique", "counts",
		"minSize", "fallbackSize", "maxSplits",
		"sizes", "patterns", "plotPath", "tui",
		"port", "flushInterval", "spoolMaxAge", "spoolMaxSize",
		"json", "compact",
	}

	for _, flag := range flagsToCheck {
		if c.IsSet(flag) && !allowed[flag] {
			return fmt.Errorf("when using --config, only %v flags are allowed", allowedFlags)
		}
	}
	return nil
}

func validateInputExists(input string) error {
	if input == "-" {
		return nil
	}
	if _, err := os.Stat(input); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", input)
	}
	return nil
}

func validatePlotPath(plotPath string) error {
	if plotPath != "" {
		plotDir := filepath.Dir(plotPath)
		if plotDir == "." {
			plotDir, _ = os.Getwd()
		}
		if _, err := os.Stat(plotDir); os.IsNotExist(err) {
			return fmt.Errorf("plot directory does not exist: %s", plotDir)
		}
	}
	return nil
}

func validatePatterns(patterns []string) error {
	known := make(map[string]bool, len(bench.Patterns))
	for _, p := range bench.Patterns {
		known[p] = true
	}
	for _, p := range patterns {
		if !known[p] {
			return fmt.Errorf("unknown pattern %q (have %v)", p, bench.Patterns)
		}
	}
	return nil
}

// tuningFromFlags applies tuning overrides on top of the defaults.
func tuningFromFlags(c *cli.Context) spread.Tuning {
	tun := spread.DefaultTuning
	if c.IsSet("minSize") {
		tun.MinSize = c.Int("minSize")
	}
	if c.IsSet("fallbackSize") {
		tun.FallbackSize = c.Int("fallbackSize")
	}
	if c.IsSet("maxSplits") {
		tun.MaxSplits = c.Int("maxSplits")
		if tun.MaxSplits < 0 {
			tun.MaxSplits = 0
		}
	}
	return tun
}

// Command handler functions to reduce deep nesting

func handleFileCommand(c *cli.Context) error {
	configPath := c.String("config")
	if configPath != "" {
		return handleFileConfigMode(c, configPath)
	}
	return handleFileFlagsMode(c)
}

func handleFileConfigMode(c *cli.Context, configPath string) error {
	if err := validateConfigModeFlags(c, []string{"json", "compact"}); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ValidateFile(); err != nil {
		return fmt.Errorf("invalid file configuration: %w", err)
	}

	return SortFileFromConfig(cfg, c.Bool("json"), c.Bool("compact"))
}

func handleFileFlagsMode(c *cli.Context) error {
	if err := validateInputExists(c.String("input")); err != nil {
		return err
	}

	unique := c.Bool("unique") || c.Bool("counts")

	return SortFile(FileJob{
		Input:   c.String("input"),
		Output:  c.String("output"),
		Reverse: c.Bool("reverse"),
		Unique:  unique,
		Counts:  c.Bool("counts"),
		Tuning:  tuningFromFlags(c),
	}, c.Bool("json"), c.Bool("compact"))
}

func handleBenchCommand(c *cli.Context) error {
	configPath := c.String("config")
	if configPath != "" {
		return handleBenchConfigMode(c, configPath)
	}
	return handleBenchFlagsMode(c)
}

func handleBenchConfigMode(c *cli.Context, configPath string) error {
	if err := validateConfigModeFlags(c, []string{"tui", "json"}); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ValidateBench(); err != nil {
		return fmt.Errorf("invalid bench configuration: %w", err)
	}
	if err := validatePlotPath(cfg.Bench.PlotPath); err != nil {
		return err
	}

	return RunBench(BenchJob{
		Patterns: cfg.Bench.Patterns,
		Sizes:    cfg.Bench.Sizes,
		PlotPath: cfg.Bench.PlotPath,
		TUI:      c.Bool("tui"),
		Tuning:   cfg.GetTuning(),
	}, c.Bool("json"))
}

func handleBenchFlagsMode(c *cli.Context) error {
	sizes := c.IntSlice("sizes")
	if len(sizes) == 0 {
		sizes = []int{1000, 10000, 100000}
	}
	for _, size := range sizes {
		if size <= 0 {
			return fmt.Errorf("sizes must be positive, got %d", size)
		}
	}

	if err := validatePatterns(c.StringSlice("patterns")); err != nil {
		return err
	}
	if err := validatePlotPath(c.String("plotPath")); err != nil {
		return err
	}

	return RunBench(BenchJob{
		Patterns: c.StringSlice("patterns"),
		Sizes:    sizes,
		PlotPath: c.String("plotPath"),
		TUI:      c.Bool("tui"),
		Tuning:   tuningFromFlags(c),
	}, c.Bool("json"))
}

func handleLiveCommand(c *cli.Context) error {
	configPath := c.String("config")
	if configPath != "" {
		return handleLiveConfigMode(c, configPath)
	}
	return handleLiveFlagsMode(c)
}

func handleLiveConfigMode(c *cli.Context, configPath string) error {
	if err := validateConfigModeFlags(c, nil); err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ValidateLive(); err != nil {
		return fmt.Errorf("invalid live configuration: %w", err)
	}

	flushInterval, err := cfg.FlushInterval()
	if err != nil {
		return err
	}
	maxAge, err := cfg.SpoolMaxAge()
	if err != nil {
		return err
	}

	fmt.Println("Running in live mode from config file:")
	return Live(LiveJob{
		Port:          cfg.Live.Port,
		Output:        cfg.Live.Output,
		Reverse:       cfg.Live.Reverse,
		FlushInterval: flushInterval,
		SpoolMaxAge:   maxAge,
		SpoolMaxSize:  cfg.Live.SpoolMaxSize,
		Tuning:        cfg.GetTuning(),
	})
}

func handleLiveFlagsMode(c *cli.Context) error {
	if !c.IsSet("port") || !c.IsSet("output") {
		return fmt.Errorf("port and output are required when not using --config")
	}

	fmt.Println("Running in live mode with CLI flags:")
	return Live(LiveJob{
		Port:          c.String("port"),
		Output:        c.String("output"),
		Reverse:       c.Bool("reverse"),
		FlushInterval: c.Duration("flushInterval"),
		SpoolMaxAge:   c.Duration("spoolMaxAge"),
		SpoolMaxSize:  c.Int("spoolMaxSize"),
		Tuning:        tuningFromFlags(c),
	})
}

var App = &cli.App{
	Name:     "sortx",
	Usage:    "Sort newline-delimited keys with a hybrid radix/comparison engine",
	Version:  version.Version,
	Compiled: parseDate(version.Date),
	Commands: []*cli.Command{
		{
			Name:  "file",
			Usage: "Sort the lines of a file or stdin",
			Flags: []cli.Flag{
				// Configuration
				configFlag,
				// Input/output
				inputFlag,
				outputFlag,
				// Ordering
				reverseFlag,
				uniqueFlag,
				countsFlag,
				// Engine tuning
				minSizeFlag,
				fallbackSizeFlag,
				maxSplitsFlag,
				// Output format
				jsonFlag,
				compactFlag,
			},
			Action: handleFileCommand,
		},
		{
			Name:  "bench",
			Usage: "Benchmark the engine against the standard library",
			Flags: []cli.Flag{
				// Configuration
				configFlag,
				// Bench-specific
				sizesFlag,
				patternsFlag,
				plotPathFlag,
				tuiFlag,
				// Engine tuning
				minSizeFlag,
				fallbackSizeFlag,
				maxSplitsFlag,
				// Output format
				jsonFlag,
			},
			Action: handleBenchCommand,
		},
		{
			Name:  "live",
			Usage: "Receive records over lumberjack and emit sorted runs",
			Flags: []cli.Flag{
				// Configuration
				configFlag,
				// Live-specific
				portFlag,
				outputFlag,
				reverseFlag,
				flushIntervalFlag,
				spoolMaxAgeFlag,
				spoolMaxSizeFlag,
				// Engine tuning
				minSizeFlag,
				fallbackSizeFlag,
				maxSplitsFlag,
			},
			Action: handleLiveCommand,
		},
	},
}
