package ingest

import (
	"testing"

	lj "github.com/elastic/go-lumber/lj"
)

func makeBatch(events ...interface{}) *lj.Batch {
	return &lj.Batch{
		Events: events,
	}
}

func TestEventLine_MissingMessageField(t *testing.T) {
	evt := map[string]interface{}{}
	if _, ok := EventLine(evt); ok {
		t.Error("expected ok=false for event without message field")
	}
}

func TestEventLine_NonStringMessage(t *testing.T) {
	evt := map[string]interface{}{"message": 42}
	if _, ok := EventLine(evt); ok {
		t.Error("expected ok=false for non-string message")
	}
}

func TestEventLine_ReturnsMessage(t *testing.T) {
	evt := map[string]interface{}{"message": "banana", "host": "shipper-1"}
	line, ok := EventLine(evt)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if line != "banana" {
		t.Errorf("expected line banana, got %q", line)
	}
}

func TestReadLines_EmptyChannel(t *testing.T) {
	srv := &Server{
		events: make(chan *lj.Batch),
	}
	got, open := srv.ReadLines()
	if !open {
		t.Error("channel still open, expected open=true")
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestReadLines_ClosedChannel(t *testing.T) {
	srv := &Server{
		events: make(chan *lj.Batch),
	}
	close(srv.events)
	got, open := srv.ReadLines()
	if open {
		t.Error("channel closed, expected open=false")
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestReadLines_DrainsMultipleBatches(t *testing.T) {
	srv := &Server{
		events: make(chan *lj.Batch, 2),
	}
	srv.events <- makeBatch(
		map[string]interface{}{"message": "delta"},
		map[string]interface{}{"message": "alpha"},
	)
	srv.events <- makeBatch(map[string]interface{}{"message": "charlie"})

	got, open := srv.ReadLines()
	if !open {
		t.Error("expected open=true")
	}
	want := []string{"delta", "alpha", "charlie"}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReadLines_SkipsEventsWithoutMessage(t *testing.T) {
	srv := &Server{
		events: make(chan *lj.Batch, 1),
	}
	srv.events <- makeBatch(
		map[string]interface{}{},
		map[string]interface{}{"message": "kept"},
	)
	got, _ := srv.ReadLines()
	if len(got) != 1 || got[0] != "kept" {
		t.Errorf("expected [kept], got %v", got)
	}
}

func TestReadLines_NonMapEventsAreIgnored(t *testing.T) {
	srv := &Server{
		events: make(chan *lj.Batch, 1),
	}
	srv.events <- makeBatch("not a map", 123, nil)
	got, _ := srv.ReadLines()
	if len(got) != 0 {
		t.Errorf("expected 0 lines, got %d", len(got))
	}
}

func TestNewServer_ListensAndCloses(t *testing.T) {
	srv, err := NewServer("127.0.0.1:0", 0)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	if srv.Addr() == nil {
		t.Error("expected a bound address")
	}
	if err := srv.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
