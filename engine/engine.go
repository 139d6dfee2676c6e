package engine

import (
	"context"

	"twenty48/experiments/metrics"
)

type Runner interface {
	// Run plays a game until no direction is legal or the turn cap is reached
	Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error)
}
