package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines   int
	Trials       int // Per legal direction
	LegalMoves   int
	Duration     time.Duration
	Playouts     int
	PlayoutMoves int
}

type MoveMetric struct {
	Step      int
	Direction string
	Gain      int
	Score     int // Running game score after the move
	SearchMetric
}

type GameMetric struct {
	ID         string
	Agent      string
	Config     int // AgentConfig.ID, 0 outside experiments
	Seed       uint64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Score      int
	MaxTile    int
}

type AgentConfig struct {
	ID         int
	Agent      string
	Trials     int
	Goroutines int
}

type Collector interface {
	Start(goroutines, trials int)
	SetLegalMoves(n int)
	AddPlayout(moves int)
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	trials       int
	startTime    time.Time
	legalMoves   atomic.Int32
	playouts     atomic.Int64
	playoutMoves atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(goroutines, trials int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.trials = trials
	m.legalMoves.Store(0)
	m.playouts.Store(0)
	m.playoutMoves.Store(0)
}

func (m *collector) SetLegalMoves(n int) {
	m.legalMoves.Store(int32(n))
}

func (m *collector) AddPlayout(moves int) {
	m.playouts.Add(1)
	m.playoutMoves.Add(int64(moves))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Trials:       m.trials,
		LegalMoves:   int(m.legalMoves.Load()),
		Duration:     time.Since(m.startTime),
		Playouts:     int(m.playouts.Load()),
		PlayoutMoves: int(m.playoutMoves.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, trials int) {}
func (m *dummyCollector) SetLegalMoves(n int)          {}
func (m *dummyCollector) AddPlayout(moves int)         {}
func (m *dummyCollector) Complete() SearchMetric       { return SearchMetric{} }
