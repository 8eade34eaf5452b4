package reducers

// #region imports
import (
	"time"

	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/classifier"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/history"
)

// #endregion

// #region slice-names

const (
	SliceCognitive  = "cognitive"
	SliceNavigation = "navigation"
	SliceInput      = "input"
)

// #endregion slice-names

// #region cognitive-state

// Cognitive is the queryable projection of classifier output.
type Cognitive struct {
	Current     classifier.State   `json:"current"`
	Previous    classifier.State   `json:"previous"`
	Confidence  float64            `json:"confidence"`
	Signals     classifier.Signals `json:"signals"`
	LastMetrics history.Metrics    `json:"last_metrics"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Transitions int                `json:"transitions"`
}

func initialCognitive() Cognitive {
	return Cognitive{
		Current:  classifier.StateNeutral,
		Previous: classifier.StateNeutral,
	}
}

// #endregion cognitive-state

// #region navigation-state

// Navigation tracks movement actions ("navigation:<direction>").
type Navigation struct {
	Moves         int            `json:"moves"`
	ByDirection   map[string]int `json:"by_direction"`
	LastDirection string         `json:"last_direction"`
	LastAt        time.Time      `json:"last_at"`
}

// #endregion navigation-state

// #region input-state

// Input tallies actions per input modality.
type Input struct {
	Keyboard int    `json:"keyboard"`
	Pointer  int    `json:"pointer"`
	Voice    int    `json:"voice"`
	Gesture  int    `json:"gesture"`
	Failures int    `json:"failures"`
	LastType string `json:"last_type"`
}

// #endregion input-state
