package searcher

import (
	"twenty48/experiments/metrics"
	"twenty48/game"
	"twenty48/meta"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type Option func(e *Evaluator)

// Evaluator ranks the four directions by Monte Carlo rollouts.
type Evaluator struct {
	goroutines int
	trials     int
	metrics    metrics.Collector
}

// Score is the rollout result of one direction. Sum adds the immediate gain
// and the playout score of every trial.
type Score struct {
	Direction game.Direction
	Legal     bool
	Gain      int
	Trials    int
	Sum       int
}

func (s Score) Mean() float64 {
	if s.Trials == 0 {
		return 0
	}
	return float64(s.Sum) / float64(s.Trials)
}

type Evaluation struct {
	Scores [4]Score // Indexed like game.Directions
	Best   game.Direction
	Found  bool
	Metric metrics.SearchMetric
}

func WithTrials(trials int) Option {
	return func(e *Evaluator) {
		if trials > 0 {
			e.trials = trials
		}
	}
}

func WithGoroutines(goroutines int) Option {
	return func(e *Evaluator) {
		if goroutines > 0 {
			e.goroutines = goroutines
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(e *Evaluator) {
		if collector != nil {
			e.metrics = collector
		}
	}
}

func NewEvaluator(options ...Option) *Evaluator {
	e := &Evaluator{ // Default values
		goroutines: meta.GO_ROUTINES,
		trials:     meta.TRIALS_PER_MOVE,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Evaluator) Trials() int {
	return e.trials
}

func (e *Evaluator) Goroutines() int {
	return e.goroutines
}

// BestMove returns the direction with the greatest rollout sum, or false when
// no direction is legal.
func (e *Evaluator) BestMove(g game.Grid, r game.Rand) (game.Direction, bool) {
	ev := e.Evaluate(g, r)
	return ev.Best, ev.Found
}

// Evaluate scores every legal direction of g. Sums are compared rather than
// means; every direction runs the same number of trials so the ranking is the
// same.
func (e *Evaluator) Evaluate(g game.Grid, r game.Rand) Evaluation {
	e.metrics.Start(e.goroutines, e.trials)

	var ev Evaluation
	var workers []game.Rand
	best := -1
	legal := 0
	for i, d := range game.Directions {
		ev.Scores[i].Direction = d

		next := g.Clone()
		gain, moved := next.Swipe(d)
		if !moved {
			continue
		}
		legal++

		var sum int
		if e.goroutines == 1 {
			sum = e.sequential(next, gain, r)
		} else {
			if workers == nil {
				workers = seedWorkers(r, e.goroutines)
			}
			sum = e.parallel(next, gain, workers)
		}

		ev.Scores[i] = Score{Direction: d, Legal: true, Gain: gain, Trials: e.trials, Sum: sum}
		if sum > best {
			best = sum
			ev.Best = d
			ev.Found = true
		}
	}

	e.metrics.SetLegalMoves(legal)
	ev.Metric = e.metrics.Complete()
	return ev
}

func (e *Evaluator) sequential(start game.Grid, gain int, r game.Rand) int {
	sum := 0
	for i := 0; i < e.trials; i++ {
		score, moves := trial(start, r)
		sum += gain + score
		e.metrics.AddPlayout(moves)
	}
	return sum
}

// parallel splits the trials statically over the workers (trial i runs on
// worker i mod W) so a given seed always yields the same sum.
func (e *Evaluator) parallel(start game.Grid, gain int, workers []game.Rand) int {
	sums := make([]int, len(workers))

	var group errgroup.Group
	for w := range workers {
		group.Go(func() error {
			for i := w; i < e.trials; i += len(workers) {
				score, moves := trial(start, workers[w])
				sums[w] += gain + score
				e.metrics.AddPlayout(moves)
			}
			return nil
		})
	}
	_ = group.Wait() // Workers never fail

	total := 0
	for _, s := range sums {
		total += s
	}
	return total
}

// seedWorkers derives one independent source per worker from the caller's
// source, which is not safe for concurrent use.
func seedWorkers(r game.Rand, n int) []game.Rand {
	workers := make([]game.Rand, n)
	for i := range workers {
		workers[i] = rand.New(rand.NewSource(r.Uint64()))
	}
	return workers
}
