package engine

import (
	"context"
	"time"

	"twenty48/experiments/metrics"
	"twenty48/game"
	"twenty48/searcher/agent"
	"twenty48/telemetry"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Turn is what an observer sees each turn: the grid after the spawn and the
// agent's answer. The last turn of a finished game has Found == false.
type Turn struct {
	Step      int
	Grid      game.Grid
	Direction game.Direction
	Found     bool
	Gain      int
	Score     int
}

type Option func(e *Engine)

// Engine owns the canonical grid and the run's random source.
type Engine struct {
	Grid     game.Grid
	Score    int
	agent    agent.Agent
	rng      game.Rand
	seed     uint64
	configID int
	maxTurns int
	observer func(Turn)
}

func WithMaxTurns(turns int) Option {
	return func(e *Engine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

func WithObserver(observer func(Turn)) Option {
	return func(e *Engine) {
		e.observer = observer
	}
}

// WithSeed records the seed of rng in the game metrics.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithConfig tags the game metrics with an experiment agent config.
func WithConfig(id int) Option {
	return func(e *Engine) {
		e.configID = id
	}
}

func LocalEngine(a agent.Agent, r game.Rand, options ...Option) *Engine {
	if a == nil {
		panic("engine needs an agent")
	}
	e := &Engine{
		agent:    a,
		rng:      r,
		observer: func(Turn) {},
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop: spawn, ask the agent, commit its direction.
// The grid gets one extra tile before the first turn so play starts with two.
func (e *Engine) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		ID:        uuid.NewString(),
		Agent:     e.agent.Name(),
		Config:    e.configID,
		Seed:      e.seed,
		StartTime: time.Now(),
	}
	ctx, span := telemetry.StartGame(ctx, gameMetric.ID, gameMetric.Agent)
	defer span.End()
	log.Info().Msgf("game %s started with %s agent", gameMetric.ID, gameMetric.Agent)

	var moveMetrics []metrics.MoveMetric
	finish := func(err error) (metrics.GameMetric, []metrics.MoveMetric, error) {
		gameMetric.EndTime = time.Now()
		gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
		gameMetric.TotalMoves = len(moveMetrics)
		gameMetric.Score = e.Score
		gameMetric.MaxTile = e.Grid.MaxTile()
		span.SetAttributes(
			telemetry.GameMoves.Int(gameMetric.TotalMoves),
			telemetry.GameScore.Int(gameMetric.Score),
			telemetry.GameMaxTile.Int(gameMetric.MaxTile),
		)
		if err != nil {
			log.Warn().Err(err).Msgf("game %s stopped after %d moves", gameMetric.ID, gameMetric.TotalMoves)
		} else {
			log.Info().Msgf("game %s over after %d moves: score %d, max tile %d",
				gameMetric.ID, gameMetric.TotalMoves, gameMetric.Score, gameMetric.MaxTile)
		}
		return gameMetric, moveMetrics, err
	}

	if e.Grid.CountEmpty() > 0 {
		e.Grid.Spawn(e.rng)
	}
	for step := 1; e.maxTurns == 0 || step <= e.maxTurns; step++ {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}

		turn, metric := e.turn(ctx, step)
		e.observer(turn)
		if !turn.Found {
			break
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Direction:    turn.Direction.String(),
			Gain:         turn.Gain,
			Score:        turn.Score,
			SearchMetric: metric,
		})
	}

	return finish(nil)
}

func (e *Engine) turn(ctx context.Context, step int) (Turn, metrics.SearchMetric) {
	_, span := telemetry.StartTurn(ctx, step)
	defer span.End()

	// A legal move on a full grid merges and frees a cell, so only a full
	// grid set on Engine.Grid before Run skips the spawn
	if e.Grid.CountEmpty() > 0 {
		e.Grid.Spawn(e.rng)
	}
	turn := Turn{Step: step, Grid: e.Grid.Clone(), Score: e.Score}

	d, found, metric := e.agent.FindMove(e.Grid.Clone(), e.rng)
	span.SetAttributes(
		telemetry.TurnFound.Bool(found),
		telemetry.SearchPlayouts.Int(metric.Playouts),
	)
	if !found {
		return turn, metric
	}

	gain, moved := e.Grid.Swipe(d)
	if !moved {
		panic("agent returned an illegal direction")
	}
	e.Score += gain
	turn.Direction = d
	turn.Found = true
	turn.Gain = gain
	turn.Score = e.Score
	span.SetAttributes(
		telemetry.TurnDirection.String(d.String()),
		telemetry.TurnGain.Int(gain),
	)
	return turn, metric
}

var _ Runner = (*Engine)(nil)
