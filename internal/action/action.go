package action

// #region imports
import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// #endregion

// #region action

// Action is an immutable record of one user-observable interaction outcome.
// Producers fill Type (namespaced, e.g. "navigation:right"), Timestamp, and
// ideally an explicit Success. Once recorded into history an Action is never
// mutated.
type Action struct {
	ID        string
	Type      string
	Timestamp time.Time

	// Success is only meaningful when SuccessSet is true; otherwise the
	// type-substring fallback applies (see Succeeded).
	Success    bool
	SuccessSet bool

	// DurationMS is only meaningful when HasDuration is true. Actions
	// without a duration are excluded from duration averages, never
	// treated as zero.
	DurationMS  float64
	HasDuration bool

	Metadata map[string]any

	// Payload carries typed payloads on engine-emitted actions
	// (e.g. a state change). Nil for ordinary input actions.
	Payload any
}

// New returns an Action of the given type with a fresh ID and UTC timestamp.
func New(typ string) Action {
	return Action{
		ID:        uuid.New().String(),
		Type:      typ,
		Timestamp: time.Now().UTC(),
	}
}

// #endregion action

// #region success

// Succeeded reports the action's effective success. An explicit Success set
// by the producer is authoritative; the substring heuristic is a documented
// fallback only, since it misreads types like "error_recovery_succeeded".
func (a Action) Succeeded() bool {
	if a.SuccessSet {
		return a.Success
	}
	return InferSuccess(a.Type)
}

// InferSuccess guesses success from a namespaced type string: any
// case-insensitive occurrence of "error" or "fail" counts as a failure.
func InferSuccess(typ string) bool {
	lower := strings.ToLower(typ)
	return !strings.Contains(lower, "error") && !strings.Contains(lower, "fail")
}

// #endregion success

// #region normalize

// Normalized returns a copy safe to record: missing ID and Timestamp are
// defaulted, an explicit success flag is resolved via the fallback, and a
// "duration_ms" metadata entry is promoted to the typed field. The receiver
// is left untouched.
func (a Action) Normalized() Action {
	out := a
	if out.ID == "" {
		out.ID = uuid.New().String()
	}
	if out.Timestamp.IsZero() {
		out.Timestamp = time.Now().UTC()
	}
	if !out.SuccessSet {
		out.Success = InferSuccess(out.Type)
		out.SuccessSet = true
	}
	if !out.HasDuration {
		if d, ok := metadataNumber(out.Metadata, "duration_ms"); ok && d >= 0 {
			out.DurationMS = d
			out.HasDuration = true
		}
	}
	return out
}

// metadataNumber extracts a numeric metadata value across the types JSON
// decoding and callers commonly produce.
func metadataNumber(meta map[string]any, key string) (float64, bool) {
	if meta == nil {
		return 0, false
	}
	switch v := meta[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// #endregion normalize
