package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/action"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/classifier"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/engine"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/journal"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/replay"
	"github.com/danielpatrickdp/adaptive-ui/go-engine/internal/store"
)

// #region scenario

// Scenario describes a synthetic action stream as a sequence of phases.
type Scenario struct {
	Description string  `yaml:"description"`
	Seed        int64   `yaml:"seed"`
	StepMS      int64   `yaml:"step_ms"`
	Phases      []Phase `yaml:"phases"`
}

// Phase emits Count actions drawn from Types, succeeding with SuccessRate,
// each reporting DurationMS plus uniform jitter.
type Phase struct {
	Name        string   `yaml:"name"`
	Count       int      `yaml:"count"`
	Types       []string `yaml:"types"`
	SuccessRate float64  `yaml:"success_rate"`
	DurationMS  float64  `yaml:"duration_ms"`
	JitterMS    float64  `yaml:"jitter_ms"`
}

func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if len(s.Phases) == 0 {
		return nil, fmt.Errorf("scenario %s has no phases", path)
	}
	if s.StepMS <= 0 {
		s.StepMS = 250
	}
	return &s, nil
}

// #endregion scenario

// #region main

func main() {
	scenarioPath := flag.String("scenario", "", "path to scenario YAML")
	dbPath := flag.String("db", "", "optional transitions journal database")
	recordPath := flag.String("record", "", "optional path to write a replay fixture")
	debug := flag.Bool("debug", false, "enable debug logging of classification cycles")
	flag.Parse()

	if *scenarioPath == "" {
		fmt.Fprintln(os.Stderr, "usage: simulate --scenario path/to/scenario.yaml [--db journal.db] [--record fixture.json] [--debug]")
		os.Exit(2)
	}

	if err := run(*scenarioPath, *dbPath, *recordPath, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region run

func run(scenarioPath, dbPath, recordPath string, debug bool) error {
	scenario, err := loadScenario(scenarioPath)
	if err != nil {
		return err
	}

	var extra []store.Interceptor
	if dbPath != "" {
		js, err := journal.NewStore(dbPath)
		if err != nil {
			return err
		}
		defer js.Close()
		extra = append(extra, js.Interceptor(nil))
	}

	var idx int
	transitions := 0
	capture := func(_ store.API, act action.Action, next store.Next) error {
		if act.Type == classifier.StateChangeType {
			if change, ok := act.Payload.(classifier.StateChange); ok {
				transitions++
				fmt.Printf("  [%3d] %s → %s (confidence %.2f)\n",
					idx, change.Previous, change.Next, change.Confidence)
			}
		}
		return next(act)
	}
	extra = append(extra, capture)

	cfg := engine.DefaultConfig()
	cfg.Debug = debug
	eng, err := engine.New(cfg, extra...)
	if err != nil {
		return err
	}

	if scenario.Description != "" {
		fmt.Printf("scenario: %s\n", scenario.Description)
	}

	rng := rand.New(rand.NewSource(scenario.Seed))
	fixtureActions := synthesize(scenario, rng)

	for i, fa := range fixtureActions {
		idx = i
		act := action.New(fa.Type)
		act.Success = *fa.Success
		act.SuccessSet = true
		act.DurationMS = *fa.DurationMS
		act.HasDuration = true
		if err := eng.Dispatch(act); err != nil {
			return fmt.Errorf("dispatch action %d: %w", i, err)
		}
	}

	final := eng.Cognitive()
	fmt.Printf("dispatched %d actions, %d transitions, final state %s (confidence %.2f)\n",
		len(fixtureActions), transitions, final.Current, final.Confidence)

	if recordPath != "" {
		fix := &replay.Fixture{
			Description: scenario.Description,
			Actions:     fixtureActions,
		}
		if err := replay.SaveFixture(recordPath, fix); err != nil {
			return err
		}
		fmt.Printf("recorded fixture: %s\n", recordPath)
	}
	return nil
}

// synthesize expands scenario phases into a timed fixture action stream.
func synthesize(scenario *Scenario, rng *rand.Rand) []replay.FixtureAction {
	var out []replay.FixtureAction
	var offset int64
	for _, phase := range scenario.Phases {
		types := phase.Types
		if len(types) == 0 {
			types = []string{"navigation:" + phase.Name}
		}
		for i := 0; i < phase.Count; i++ {
			success := rng.Float64() < phase.SuccessRate
			duration := phase.DurationMS
			if phase.JitterMS > 0 {
				duration += rng.Float64() * phase.JitterMS
			}
			out = append(out, replay.FixtureAction{
				Type:       types[rng.Intn(len(types))],
				OffsetMS:   offset,
				Success:    &success,
				DurationMS: &duration,
			})
			offset += scenario.StepMS
		}
	}
	return out
}

// #endregion run
