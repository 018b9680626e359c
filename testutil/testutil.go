package testutil

import (
	"math/rand"
	"os"
	"strings"
	"testing"
)

// GenerateLineFile creates a temporary newline-delimited key file with
// seeded pseudo-random lowercase keys of mixed lengths for testing.
// Returns the file path, the generated lines and a cleanup function.
func GenerateLineFile(t *testing.T, numLines int, seed int64) (string, []string, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test_keys_*.txt")
	if err != nil {
		t.Fatalf("Failed to create temp key file: %v", err)
	}

	rng := rand.New(rand.NewSource(seed))
	data := make([]string, numLines)
	var content strings.Builder
	for i := range data {
		b := make([]byte, 1+rng.Intn(20))
		for j := range b {
			b[j] = byte('a' + rng.Intn(26))
		}
		data[i] = string(b)
		content.WriteString(data[i])
		content.WriteString("\n")
	}

	if _, err := tmpFile.WriteString(content.String()); err != nil {
		t.Fatalf("Failed to write to temp key file: %v", err)
	}

	tmpFile.Close()

	cleanup := func() {
		os.Remove(tmpFile.Name())
	}

	return tmpFile.Name(), data, cleanup
}

// TempFilePath returns a cross-platform temporary file path
// with the given pattern. Does not create the file.
func TempFilePath(t *testing.T, pattern string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	path := tmpFile.Name()
	tmpFile.Close()
	os.Remove(path) // Remove immediately, just need the path

	return path
}
