package events

import (
	"context"
	"encoding/json"
	"testing"
)

type recordingSink struct {
	published []Event
	finals    []interface{}
	closed    bool
}

func (r *recordingSink) Publish(_ context.Context, e Event) { r.published = append(r.published, e) }
func (r *recordingSink) PublishFinal(_ context.Context, data interface{}) {
	r.finals = append(r.finals, data)
}
func (r *recordingSink) Close() { r.closed = true }

func TestChannelSinkDrainsInOrder(t *testing.T) {
	s := NewChannelSink(4)
	s.Publish(context.Background(), Event{Level: LevelInfo, Tag: "a", Message: "first"})
	s.Publish(context.Background(), Event{Level: LevelInfo, Tag: "b", Message: "second"})
	s.Close()

	var lines []json.RawMessage
	for raw := range s.Events() {
		lines = append(lines, raw)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var first Event
	if err := json.Unmarshal(lines[0], &first); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if first.Tag != "a" {
		t.Fatalf("expected first event tag 'a', got %q", first.Tag)
	}
}

func TestChannelSinkDropsOldestWhenFull(t *testing.T) {
	s := NewChannelSink(1)
	s.Publish(context.Background(), Event{Tag: "old"})
	s.Publish(context.Background(), Event{Tag: "new"})

	raw := <-s.Events()
	var e Event
	if err := json.Unmarshal(raw, &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.Tag != "new" {
		t.Fatalf("expected the newest event to survive, got %q", e.Tag)
	}
}

func TestMultiSinkFansOutToEverySink(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}
	m := MultiSink{Sinks: []Sink{a, b}}

	m.Publish(context.Background(), Event{Tag: "hello"})
	m.PublishFinal(context.Background(), map[string]string{"ok": "true"})
	m.Close()

	for _, r := range []*recordingSink{a, b} {
		if len(r.published) != 1 || r.published[0].Tag != "hello" {
			t.Fatalf("expected both sinks to receive the event, got %+v", r.published)
		}
		if len(r.finals) != 1 {
			t.Fatalf("expected both sinks to receive the final payload, got %d", len(r.finals))
		}
		if !r.closed {
			t.Fatal("expected MultiSink.Close to close every sink")
		}
	}
}
