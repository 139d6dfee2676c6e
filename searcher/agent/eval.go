package agent

import (
	"twenty48/experiments/metrics"
	"twenty48/game"
	"twenty48/searcher"
)

type evaluationAgent struct {
	evaluator *searcher.Evaluator
}

// NewEvaluationAgent returns an agent that always plays the best rollout move.
func NewEvaluationAgent(evaluator *searcher.Evaluator) Agent {
	return evaluationAgent{evaluator: evaluator}
}

func (a evaluationAgent) Name() string {
	return "mc"
}

func (a evaluationAgent) FindMove(g game.Grid, r game.Rand) (game.Direction, bool, metrics.SearchMetric) {
	ev := a.evaluator.Evaluate(g, r)
	return ev.Best, ev.Found, ev.Metric
}

type randomAgent struct{}

// NewRandomAgent returns an agent that follows the playout policy: the first
// legal direction of a uniformly shuffled order.
func NewRandomAgent() Agent {
	return randomAgent{}
}

func (a randomAgent) Name() string {
	return "random"
}

func (a randomAgent) FindMove(g game.Grid, r game.Rand) (game.Direction, bool, metrics.SearchMetric) {
	order := game.Directions
	r.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	for _, d := range order {
		probe := g.Clone()
		if _, moved := probe.Swipe(d); moved {
			return d, true, metrics.SearchMetric{}
		}
	}
	return 0, false, metrics.SearchMetric{}
}
