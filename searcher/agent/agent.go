package agent

import (
	"fmt"

	"twenty48/experiments/metrics"
	"twenty48/game"
	"twenty48/searcher"
)

type Agent interface {
	// FindMove returns a direction, false if no direction is legal, and the
	// search metrics (if collected)
	FindMove(g game.Grid, r game.Rand) (game.Direction, bool, metrics.SearchMetric)
	Name() string
}

// New returns the agent registered under name.
func New(name string, evaluator *searcher.Evaluator, temperature float64) (Agent, error) {
	switch name {
	case "mc":
		return NewEvaluationAgent(evaluator), nil
	case "sample":
		return NewTrainingAgent(evaluator, temperature), nil
	case "random":
		return NewRandomAgent(), nil
	}
	return nil, fmt.Errorf("unknown agent %q", name)
}
