package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/orlp/sortx/spread"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_FullFile(t *testing.T) {
	path := writeConfig(t, `
[tuning]
minSize = 500
fallbackSize = 64
maxSplits = 8

[file]
input = "-"
output = "out.txt"
reverse = true
unique = true
counts = true

[bench]
sizes = [1000, 10000]
patterns = ["random", "prefix"]
plotPath = "bench.html"

[live]
port = "5044"
output = "runs.txt"
flushInterval = "5s"
spoolMaxAge = "1m"
spoolMaxSize = 50000
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	tun := cfg.GetTuning()
	want := spread.Tuning{MinSize: 500, FallbackSize: 64, MaxSplits: 8}
	if tun != want {
		t.Errorf("GetTuning = %+v, want %+v", tun, want)
	}

	if !cfg.File.Reverse || !cfg.File.Unique || !cfg.File.Counts {
		t.Errorf("file flags not parsed: %+v", cfg.File)
	}
	if len(cfg.Bench.Sizes) != 2 || cfg.Bench.Sizes[1] != 10000 {
		t.Errorf("bench sizes not parsed: %v", cfg.Bench.Sizes)
	}
	if cfg.Live.Port != "5044" || cfg.Live.SpoolMaxSize != 50000 {
		t.Errorf("live section not parsed: %+v", cfg.Live)
	}
}

func TestLoadConfig_EmptyFileGetsDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.File == nil || cfg.Bench == nil || cfg.Live == nil {
		t.Fatal("expected all sections to be non-nil")
	}
	if got := cfg.GetTuning(); got != spread.DefaultTuning {
		t.Errorf("GetTuning = %+v, want defaults %+v", got, spread.DefaultTuning)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "[file\ninput = ")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestTuningConfig_NegativeMaxSplitsUncaps(t *testing.T) {
	tc := &TuningConfig{MaxSplits: -1}
	if got := tc.Tuning().MaxSplits; got != 0 {
		t.Errorf("MaxSplits = %d, want 0 (uncapped)", got)
	}
}

func TestTuningConfig_ZeroFieldsKeepDefaults(t *testing.T) {
	tc := &TuningConfig{FallbackSize: 32}
	tun := tc.Tuning()
	if tun.MinSize != spread.DefaultTuning.MinSize {
		t.Errorf("MinSize = %d, want default %d", tun.MinSize, spread.DefaultTuning.MinSize)
	}
	if tun.FallbackSize != 32 {
		t.Errorf("FallbackSize = %d, want 32", tun.FallbackSize)
	}
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name    string
		file    *FileConfig
		wantErr bool
	}{
		{"nil section", nil, true},
		{"missing input", &FileConfig{}, true},
		{"stdin input", &FileConfig{Input: "-"}, false},
		{"nonexistent input", &FileConfig{Input: "/nonexistent/in.txt"}, true},
		{"counts without unique", &FileConfig{Input: "-", Counts: true}, true},
		{"counts with unique", &FileConfig{Input: "-", Counts: true, Unique: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{File: tt.file}
			err := cfg.ValidateFile()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFile() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBench(t *testing.T) {
	tests := []struct {
		name    string
		bench   *BenchConfig
		wantErr bool
	}{
		{"nil section", nil, true},
		{"no sizes", &BenchConfig{}, true},
		{"negative size", &BenchConfig{Sizes: []int{1000, -5}}, true},
		{"valid", &BenchConfig{Sizes: []int{1000}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Bench: tt.bench}
			err := cfg.ValidateBench()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBench() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateLive(t *testing.T) {
	tests := []struct {
		name    string
		live    *LiveConfig
		wantErr bool
	}{
		{"nil section", nil, true},
		{"missing port", &LiveConfig{Output: "out.txt"}, true},
		{"missing output", &LiveConfig{Port: "5044"}, true},
		{"bad flushInterval", &LiveConfig{Port: "5044", Output: "o", FlushInterval: "soon"}, true},
		{"bad spoolMaxAge", &LiveConfig{Port: "5044", Output: "o", SpoolMaxAge: "later"}, true},
		{"negative spoolMaxSize", &LiveConfig{Port: "5044", Output: "o", SpoolMaxSize: -1}, true},
		{"valid", &LiveConfig{Port: "5044", Output: "o", FlushInterval: "10s", SpoolMaxAge: "2m"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Live: tt.live}
			err := cfg.ValidateLive()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLive() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDurations_Defaults(t *testing.T) {
	cfg := &Config{Live: &LiveConfig{}}
	if d, err := cfg.FlushInterval(); err != nil || d != 10*time.Second {
		t.Errorf("FlushInterval = %v, %v; want 10s, nil", d, err)
	}
	if d, err := cfg.SpoolMaxAge(); err != nil || d != 2*time.Minute {
		t.Errorf("SpoolMaxAge = %v, %v; want 2m, nil", d, err)
	}
}

func FuzzLoadConfig(f *testing.F) {
	f.Add("[tuning]\nminSize = 100\n")
	f.Add("[file]\ninput = \"-\"\n")
	f.Add("not toml at all {{{}")
	f.Add("")

	f.Fuzz(func(t *testing.T, content string) {
		path := filepath.Join(t.TempDir(), "fuzz.toml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Skip()
		}
		cfg, err := LoadConfig(path)
		if err != nil {
			return // rejected input is fine, crashing is not
		}
		if cfg.File == nil || cfg.Bench == nil || cfg.Live == nil {
			t.Error("accepted config must have all sections initialized")
		}
		cfg.GetTuning()
	})
}
