package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/action"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/classifier"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/history"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleChange() classifier.StateChange {
	return classifier.StateChange{
		Previous:   classifier.StateNeutral,
		Next:       classifier.StateConcentrated,
		Confidence: 0.5,
		Signals:    classifier.Signals{Concentrated: 5},
		Metrics: history.Metrics{
			AverageDuration: 150,
			DurationSamples: 7,
			ActionVariety:   1,
			TotalActions:    7,
		},
		Timestamp: time.Date(2025, 1, 1, 0, 0, 7, 0, time.UTC),
	}
}

func TestRecordAndList(t *testing.T) {
	s := newTestStore(t)

	if err := s.Record(sampleChange()); err != nil {
		t.Fatalf("record: %v", err)
	}

	entries, err := s.List(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.TransitionID == "" {
		t.Fatal("expected a generated transition ID")
	}
	if e.Previous != classifier.StateNeutral || e.Next != classifier.StateConcentrated {
		t.Fatalf("state round-trip failed: %s → %s", e.Previous, e.Next)
	}
	if e.Confidence != 0.5 {
		t.Fatalf("expected confidence 0.5, got %v", e.Confidence)
	}
	if e.Signals.Concentrated != 5 {
		t.Fatalf("signals round-trip failed: %+v", e.Signals)
	}
	if e.Metrics.AverageDuration != 150 || e.Metrics.TotalActions != 7 {
		t.Fatalf("metrics round-trip failed: %+v", e.Metrics)
	}
	if !e.CreatedAt.Equal(sampleChange().Timestamp) {
		t.Fatalf("timestamp round-trip failed: %v", e.CreatedAt)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)

	first := sampleChange()
	second := sampleChange()
	second.Next = classifier.StateFrustrated
	second.Timestamp = first.Timestamp.Add(time.Minute)

	if err := s.Record(first); err != nil {
		t.Fatalf("record first: %v", err)
	}
	if err := s.Record(second); err != nil {
		t.Fatalf("record second: %v", err)
	}

	entries, err := s.List(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Next != classifier.StateFrustrated {
		t.Fatalf("expected newest first, got %s", entries[0].Next)
	}
}

func TestInterceptorRecordsStateChanges(t *testing.T) {
	s := newTestStore(t)

	passthrough := func(sub any, act action.Action) any { return sub }
	st := store.New(map[string]store.Reducer{"noop": passthrough}, s.Interceptor(nil))

	change := sampleChange()
	act := action.New(classifier.StateChangeType)
	act.Payload = change
	if err := st.Dispatch(act); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	// Ordinary actions are not journaled.
	if err := st.Dispatch(action.New("navigation:right")); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	entries, err := s.List(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 journaled transition, got %d", len(entries))
	}
	if entries[0].Next != classifier.StateConcentrated {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
}
