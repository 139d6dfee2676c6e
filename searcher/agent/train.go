package agent

import (
	"math"

	"twenty48/experiments/metrics"
	"twenty48/game"
	"twenty48/searcher"
)

type trainingAgent struct {
	evaluator   *searcher.Evaluator
	temperature float64
}

// NewTrainingAgent returns an agent that samples a direction in proportion to
// its mean rollout score raised to 1/temperature. Low temperatures approach
// the evaluation agent, high ones approach uniform play.
func NewTrainingAgent(evaluator *searcher.Evaluator, temperature float64) Agent {
	if temperature <= 0 {
		temperature = 1.0
	}
	return trainingAgent{evaluator: evaluator, temperature: temperature}
}

func (a trainingAgent) Name() string {
	return "sample"
}

func (a trainingAgent) FindMove(g game.Grid, r game.Rand) (game.Direction, bool, metrics.SearchMetric) {
	ev := a.evaluator.Evaluate(g, r)
	if !ev.Found {
		return 0, false, ev.Metric
	}
	policy := adjustTemperature(ev.Scores, a.temperature)
	return sample(policy, r.Float64()), true, ev.Metric
}

// adjustTemperature turns legal scores into move probabilities indexed like
// game.Directions. Illegal directions get 0. Weights are (mean+1)^(1/T)
// relative to the best mean, computed in log space so small temperatures
// don't overflow.
func adjustTemperature(scores [4]searcher.Score, temperature float64) [4]float64 {
	// +1 keeps zero-score directions playable
	best := math.Inf(-1)
	for _, s := range scores {
		if s.Legal {
			best = math.Max(best, math.Log(s.Mean()+1))
		}
	}

	var policy [4]float64
	sum := 0.0
	for i, s := range scores {
		if !s.Legal {
			continue
		}
		policy[i] = math.Exp((math.Log(s.Mean()+1) - best) / temperature)
		sum += policy[i]
	}
	if sum == 0 {
		return policy
	}
	// Normalize
	for i := range policy {
		policy[i] /= sum
	}
	return policy
}

func sample(policy [4]float64, sampled float64) game.Direction {
	cumulative := 0.0
	var last game.Direction
	for i, prob := range policy {
		if prob == 0 {
			continue
		}
		last = game.Directions[i]
		cumulative += prob
		if sampled < cumulative {
			return last
		}
	}
	return last // Fallback in case of rounding errors
}
