package action

import (
	"testing"
	"time"
)

func TestInferSuccess(t *testing.T) {
	cases := []struct {
		typ  string
		want bool
	}{
		{"navigation:right", true},
		{"keyboard:shortcut", true},
		{"navigation:error", false},
		{"gesture:FAIL", false},
		{"pointer:click_failed", false},
		// Known limitation of the fallback; producers should set Success.
		{"recovery:error_recovery_succeeded", false},
	}
	for _, c := range cases {
		if got := InferSuccess(c.typ); got != c.want {
			t.Errorf("InferSuccess(%q) = %v, want %v", c.typ, got, c.want)
		}
	}
}

func TestSucceededExplicitOverridesInference(t *testing.T) {
	a := Action{Type: "navigation:error", Success: true, SuccessSet: true}
	if !a.Succeeded() {
		t.Fatal("explicit success must override the substring fallback")
	}
	b := Action{Type: "navigation:right", Success: false, SuccessSet: true}
	if b.Succeeded() {
		t.Fatal("explicit failure must override the substring fallback")
	}
}

func TestNormalizedDefaults(t *testing.T) {
	a := Action{Type: "navigation:right"}
	n := a.Normalized()

	if n.ID == "" {
		t.Fatal("expected a generated ID")
	}
	if n.Timestamp.IsZero() {
		t.Fatal("expected a defaulted timestamp")
	}
	if !n.SuccessSet || !n.Success {
		t.Fatalf("expected inferred success, got success=%v set=%v", n.Success, n.SuccessSet)
	}
	if a.ID != "" || a.SuccessSet {
		t.Fatal("receiver must be left untouched")
	}
}

func TestNormalizedPromotesMetadataDuration(t *testing.T) {
	cases := []struct {
		name string
		meta map[string]any
		want float64
		ok   bool
	}{
		{"float64", map[string]any{"duration_ms": 150.0}, 150, true},
		{"int", map[string]any{"duration_ms": 200}, 200, true},
		{"int64", map[string]any{"duration_ms": int64(75)}, 75, true},
		{"negative ignored", map[string]any{"duration_ms": -5.0}, 0, false},
		{"string ignored", map[string]any{"duration_ms": "fast"}, 0, false},
		{"absent", nil, 0, false},
	}
	for _, c := range cases {
		a := Action{Type: "pointer:click", Timestamp: time.Now(), Metadata: c.meta}
		n := a.Normalized()
		if n.HasDuration != c.ok {
			t.Errorf("%s: HasDuration = %v, want %v", c.name, n.HasDuration, c.ok)
			continue
		}
		if c.ok && n.DurationMS != c.want {
			t.Errorf("%s: DurationMS = %v, want %v", c.name, n.DurationMS, c.want)
		}
	}
}

func TestNormalizedKeepsExplicitDuration(t *testing.T) {
	a := Action{
		Type:        "pointer:click",
		DurationMS:  120,
		HasDuration: true,
		Metadata:    map[string]any{"duration_ms": 999.0},
	}
	if n := a.Normalized(); n.DurationMS != 120 {
		t.Fatalf("explicit duration overwritten: got %v", n.DurationMS)
	}
}
