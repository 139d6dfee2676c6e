package experiments

import (
	"context"
	"fmt"
	"sort"

	"twenty48/engine"
	"twenty48/experiments/metrics"
	"twenty48/searcher"
	"twenty48/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const NumGames = 10 // Per agent config

// Setup describes one experiment run.
type Setup struct {
	Name     string
	Root     string // Records go to Root/Name/<timestamp>
	Configs  []metrics.AgentConfig
	NumGames int
	Seed     uint64
	MaxTurns int
}

var experiments = map[string][]metrics.AgentConfig{
	// Playing strength against the number of playouts per direction
	"trials": {
		{ID: 1, Agent: "random"},
		{ID: 2, Agent: "mc", Trials: 10, Goroutines: 1},
		{ID: 3, Agent: "mc", Trials: 50, Goroutines: 1},
		{ID: 4, Agent: "mc", Trials: 100, Goroutines: 1},
		{ID: 5, Agent: "mc", Trials: 500, Goroutines: 1},
	},
	// Search time against the number of workers at a fixed budget
	"parallelization": {
		{ID: 1, Agent: "mc", Trials: 200, Goroutines: 1},
		{ID: 2, Agent: "mc", Trials: 200, Goroutines: 2},
		{ID: 3, Agent: "mc", Trials: 200, Goroutines: 4},
		{ID: 4, Agent: "mc", Trials: 200, Goroutines: 8},
		{ID: 5, Agent: "mc", Trials: 200, Goroutines: 16},
	},
}

func Names() []string {
	names := make([]string, 0, len(experiments))
	for name := range experiments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run plays a named experiment and stores its records under root.
func Run(ctx context.Context, name, root string, numGames int, seed uint64, maxTurns int) (string, error) {
	configs, ok := experiments[name]
	if !ok {
		return "", fmt.Errorf("unknown experiment %q, want one of %v", name, Names())
	}
	if numGames <= 0 {
		numGames = NumGames
	}
	return runExperiment(ctx, Setup{
		Name:     name,
		Root:     root,
		Configs:  configs,
		NumGames: numGames,
		Seed:     seed,
		MaxTurns: maxTurns,
	})
}

func runExperiment(ctx context.Context, setup Setup) (string, error) {
	gameRecords := []metrics.GameMetric{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", setup.Name)

	for ci, config := range setup.Configs {
		log.Info().Msgf("starting config %d of %d: %+v...", ci+1, len(setup.Configs), config)

		a, err := createAgent(config)
		if err != nil {
			return "", err
		}
		for i := 0; i < setup.NumGames; i++ {
			// Game i uses the same seed under every config
			seed := setup.Seed + uint64(i)
			e := engine.LocalEngine(a, rand.New(rand.NewSource(seed)),
				engine.WithSeed(seed),
				engine.WithConfig(config.ID),
				engine.WithMaxTurns(setup.MaxTurns),
			)

			gameMetric, moveMetrics, err := e.Run(ctx)
			if err != nil {
				return "", fmt.Errorf("config %d game %d: %w", config.ID, i+1, err)
			}
			gameRecords = append(gameRecords, gameMetric)
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       gameMetric.ID,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed config %d game %d of %d with score %d", config.ID, i+1, setup.NumGames, gameMetric.Score)
		}
	}

	log.Info().Msgf("completed %s experiment", setup.Name)

	writer, err := metrics.NewWriter(setup.Root, setup.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteSetup(setup); err != nil {
		return "", err
	}
	if err := writer.WriteAgentConfigs(setup.Configs); err != nil {
		return "", err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", err
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", err
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}

func createAgent(config metrics.AgentConfig) (agent.Agent, error) {
	evaluator := searcher.NewEvaluator(
		searcher.WithTrials(config.Trials),
		searcher.WithGoroutines(config.Goroutines),
		searcher.WithMetrics(metrics.NewCollector()),
	)
	return agent.New(config.Agent, evaluator, 1.0)
}
