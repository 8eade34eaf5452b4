package history

// #region imports
import (
	"time"

	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/action"
)

// #endregion

// #region buffer

// DefaultCapacity is the default bound on the session history.
const DefaultCapacity = 100

// Buffer is a bounded FIFO of recorded actions. When full, the oldest entry
// is evicted first. All reads are pure functions of the current contents.
type Buffer struct {
	capacity int
	entries  []action.Action
	start    int
	count    int
}

// New creates a Buffer with the given capacity (DefaultCapacity when <= 0).
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		capacity: capacity,
		entries:  make([]action.Action, capacity),
	}
}

// Add appends an action, evicting the oldest entry when over capacity.
// O(1) amortized.
func (b *Buffer) Add(a action.Action) {
	if b.count < b.capacity {
		b.entries[(b.start+b.count)%b.capacity] = a
		b.count++
		return
	}
	b.entries[b.start] = a
	b.start = (b.start + 1) % b.capacity
}

// Len returns the number of recorded actions.
func (b *Buffer) Len() int {
	return b.count
}

// Capacity returns the buffer bound.
func (b *Buffer) Capacity() int {
	return b.capacity
}

// Latest returns the most recent count entries, oldest first. count is
// clamped to the buffer size.
func (b *Buffer) Latest(count int) []action.Action {
	if count > b.count {
		count = b.count
	}
	if count <= 0 {
		return nil
	}
	out := make([]action.Action, count)
	first := b.count - count
	for i := 0; i < count; i++ {
		out[i] = b.entries[(b.start+first+i)%b.capacity]
	}
	return out
}

// Clear empties the buffer. Used on classifier reset.
func (b *Buffer) Clear() {
	b.entries = make([]action.Action, b.capacity)
	b.start = 0
	b.count = 0
}

// #endregion buffer

// #region metrics

// Metrics holds sliding-window aggregates over recorded actions.
type Metrics struct {
	ErrorRate       float64       `json:"error_rate"`
	RecentErrors    int           `json:"recent_errors"`
	AverageDuration float64       `json:"average_duration_ms"`
	DurationSamples int           `json:"duration_samples"`
	ActionVariety   int           `json:"action_variety"`
	TotalActions    int           `json:"total_actions"`
	TimeWindow      time.Duration `json:"time_window_ns"`
}

// Metrics computes aggregates over the latest window entries. A window <= 0
// means the whole buffer. An empty window yields a zero-valued result,
// never an error. Repeated calls without new actions return identical
// results.
func (b *Buffer) Metrics(window int) Metrics {
	if window <= 0 || window > b.count {
		window = b.count
	}
	entries := b.Latest(window)
	if len(entries) == 0 {
		return Metrics{}
	}

	var failed int
	var durationSum float64
	var durationCount int
	types := make(map[string]struct{}, len(entries))

	for _, e := range entries {
		if !e.Succeeded() {
			failed++
		}
		if e.HasDuration {
			durationSum += e.DurationMS
			durationCount++
		}
		types[e.Type] = struct{}{}
	}

	m := Metrics{
		ErrorRate:     float64(failed) / float64(len(entries)),
		RecentErrors:  failed,
		ActionVariety: len(types),
		TotalActions:  len(entries),
	}
	if durationCount > 0 {
		m.AverageDuration = durationSum / float64(durationCount)
		m.DurationSamples = durationCount
	}
	if len(entries) > 1 {
		m.TimeWindow = entries[len(entries)-1].Timestamp.Sub(entries[0].Timestamp)
	}
	return m
}

// #endregion metrics
