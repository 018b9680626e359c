package lines

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/orlp/sortx/testutil"
)

func TestRead_Basic(t *testing.T) {
	got, err := Read(strings.NewReader("banana\napple\nband\n"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	want := []string{"banana", "apple", "band"}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRead_NoTrailingNewline(t *testing.T) {
	got, err := Read(strings.NewReader("a\nb"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got) != 2 || got[1] != "b" {
		t.Errorf("got %v, want [a b]", got)
	}
}

func TestRead_Empty(t *testing.T) {
	got, err := Read(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d lines, want 0", len(got))
	}
}

func TestRead_KeepsEmptyLines(t *testing.T) {
	got, err := Read(strings.NewReader("a\n\n\nb\n"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("got %d lines, want 4 (empty lines are keys too)", len(got))
	}
}

func TestReadFile_RoundTrip(t *testing.T) {
	path, want, cleanup := testutil.GenerateLineFile(t, 5000, 42)
	defer cleanup()

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReadFile_Missing(t *testing.T) {
	if _, err := ReadFile("/nonexistent/keys.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCounter_AddAndCount(t *testing.T) {
	c := NewCounter()
	c.Add("x")
	c.Add("x")
	c.Add("y")

	if got := c.Count("x"); got != 2 {
		t.Errorf("Count(x) = %d, want 2", got)
	}
	if got := c.Count("y"); got != 1 {
		t.Errorf("Count(y) = %d, want 1", got)
	}
	if got := c.Count("z"); got != 0 {
		t.Errorf("Count(z) = %d, want 0", got)
	}
	if got := c.Distinct(); got != 2 {
		t.Errorf("Distinct = %d, want 2", got)
	}
}

func TestCountAll_MatchesSerialCount(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	data := make([]string, 50000)
	for i := range data {
		data[i] = fmt.Sprintf("key-%d", rng.Intn(100))
	}

	want := make(map[string]int64, 100)
	for _, line := range data {
		want[line]++
	}

	c := CountAll(data)
	if c.Distinct() != len(want) {
		t.Fatalf("Distinct = %d, want %d", c.Distinct(), len(want))
	}
	for line, n := range want {
		if got := c.Count(line); got != n {
			t.Errorf("Count(%q) = %d, want %d", line, got, n)
		}
	}
}

func TestCountAll_SmallInputStaysSerial(t *testing.T) {
	c := CountAll([]string{"a", "b", "a"})
	if got := c.Count("a"); got != 2 {
		t.Errorf("Count(a) = %d, want 2", got)
	}
}

func TestUnique_FirstSeenOrder(t *testing.T) {
	data := []string{"b", "a", "b", "c", "a"}
	uniq, c := Unique(data)

	want := []string{"b", "a", "c"}
	if len(uniq) != len(want) {
		t.Fatalf("got %d unique lines, want %d", len(uniq), len(want))
	}
	for i := range want {
		if uniq[i] != want[i] {
			t.Errorf("uniq[%d] = %q, want %q", i, uniq[i], want[i])
		}
	}
	if got := c.Count("a"); got != 2 {
		t.Errorf("Count(a) = %d, want 2", got)
	}
}

func TestUnique_Empty(t *testing.T) {
	uniq, c := Unique(nil)
	if len(uniq) != 0 || c.Distinct() != 0 {
		t.Errorf("got %v / %d distinct, want empty", uniq, c.Distinct())
	}
}
