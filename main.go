package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"

	"twenty48/config"
	"twenty48/engine"
	"twenty48/experiments"
	"twenty48/experiments/metrics"
	"twenty48/meta"
	"twenty48/searcher"
	"twenty48/searcher/agent"
	"twenty48/telemetry"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	// Optional .env with OTEL_* variables
	if err := godotenv.Load(); err != nil {
		log.Debug().Msgf(".env file not loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Seed == 0 {
		cfg.Seed = frand.Uint64n(math.MaxUint64)
	}
	log.Info().Msgf("using seed %d", cfg.Seed)
	rng := rand.New(rand.NewSource(cfg.Seed))

	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx, telemetry.Run{
			Agent:       cfg.Agent,
			Trials:      cfg.Trials,
			Goroutines:  cfg.Goroutines,
			Seed:        cfg.Seed,
			SampleRatio: cfg.TraceRatio,
		})
		if err != nil {
			log.Warn().Err(err).Msg("telemetry setup failed, running without tracing")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Warn().Err(err).Msg("failed to shut down telemetry")
				}
			}()
		}
	}

	if cfg.Experiment != "" {
		root := cfg.MetricsDir
		if root == "" {
			root = "experiments"
		}
		dir, err := experiments.Run(ctx, cfg.Experiment, root, numGames(cfg), cfg.Seed, cfg.MaxTurns)
		if err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
		log.Info().Msgf("experiment records stored in %s", dir)
		return
	}

	var collector metrics.Collector
	if cfg.MetricsDir != "" {
		collector = metrics.NewCollector()
	}
	a, err := agent.New(cfg.Agent, createEvaluator(cfg, collector), cfg.Temperature)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid agent")
	}

	if cfg.Serve != "" {
		if err := agent.NewServer(a, rng).ListenAndServe(cfg.Serve); err != nil {
			log.Fatal().Err(err).Msg("agent server stopped")
		}
		return
	}

	if err := runGames(ctx, cfg, a, rng); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

// parseConfig loads the optional -config file, then applies the flags that
// were set explicitly on top of it.
func parseConfig(args []string) (config.Config, error) {
	defaults := config.Default()
	fs := flag.NewFlagSet("twenty48", flag.ContinueOnError)
	path := fs.String("config", "", "YAML config file")
	agentName := fs.String("agent", defaults.Agent, "Agent: mc, sample or random")
	trials := fs.Int("trials", defaults.Trials, "Playouts per legal direction")
	goroutines := fs.Int("goroutines", defaults.Goroutines, "Number of playout workers")
	temperature := fs.Float64("temperature", defaults.Temperature, "Sampling temperature of the sample agent")
	seed := fs.Uint64("seed", defaults.Seed, "Random seed, 0 for a fresh one")
	games := fs.Int("games", defaults.Games, "Number of games to play, 0 for the mode default")
	maxTurns := fs.Int("max-turns", defaults.MaxTurns, "Turn cap per game, 0 for none")
	metricsDir := fs.String("metrics-dir", defaults.MetricsDir, "Directory for CSV game and move records")
	serve := fs.String("serve", defaults.Serve, "Serve best moves over HTTP on this address instead of playing")
	experiment := fs.String("experiment", defaults.Experiment, "Run a named experiment: parallelization or trials")
	quiet := fs.Bool("quiet", defaults.Quiet, "Do not print the grid each turn")
	logLevel := fs.String("log-level", defaults.LogLevel, "Log level")
	traceRatio := fs.Float64("trace-ratio", defaults.TraceRatio, "Fraction of games traced when OTEL_EXPORTER_OTLP_ENDPOINT is set")
	if err := fs.Parse(args); err != nil {
		return defaults, err
	}

	cfg := defaults
	if *path != "" {
		loaded, err := config.Load(*path)
		if err != nil {
			return loaded, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "agent":
			cfg.Agent = *agentName
		case "trials":
			cfg.Trials = *trials
		case "goroutines":
			cfg.Goroutines = *goroutines
		case "temperature":
			cfg.Temperature = *temperature
		case "seed":
			cfg.Seed = *seed
		case "games":
			cfg.Games = *games
		case "max-turns":
			cfg.MaxTurns = *maxTurns
		case "metrics-dir":
			cfg.MetricsDir = *metricsDir
		case "serve":
			cfg.Serve = *serve
		case "experiment":
			cfg.Experiment = *experiment
		case "quiet":
			cfg.Quiet = *quiet
		case "log-level":
			cfg.LogLevel = *logLevel
		case "trace-ratio":
			cfg.TraceRatio = *traceRatio
		}
	})
	return cfg, cfg.Validate()
}

// numGames resolves the zero Games value: one game when playing, and
// experiments.NumGames per agent config when running an experiment.
func numGames(cfg config.Config) int {
	switch {
	case cfg.Games > 0:
		return cfg.Games
	case cfg.Experiment != "":
		return experiments.NumGames
	}
	return meta.GAMES
}

func createEvaluator(cfg config.Config, collector metrics.Collector) *searcher.Evaluator {
	options := []searcher.Option{
		searcher.WithTrials(cfg.Trials),
		searcher.WithGoroutines(cfg.Goroutines),
	}
	if collector != nil {
		options = append(options, searcher.WithMetrics(collector))
	}
	return searcher.NewEvaluator(options...)
}

// runGames plays numGames(cfg) games with one random source and stores the
// records when a metrics directory is set.
func runGames(ctx context.Context, cfg config.Config, a agent.Agent, rng *rand.Rand) error {
	gameRecords := []metrics.GameMetric{}
	moveRecords := []metrics.MoveRecord{}

	games := numGames(cfg)
	for i := 0; i < games; i++ {
		log.Info().Msgf("starting game %d of %d...", i+1, games)

		options := []engine.Option{engine.WithSeed(cfg.Seed), engine.WithMaxTurns(cfg.MaxTurns)}
		if !cfg.Quiet {
			options = append(options, engine.WithObserver(printTurn))
		}
		e := engine.LocalEngine(a, rng, options...)

		gameMetric, moveMetrics, err := e.Run(ctx)
		gameRecords = append(gameRecords, gameMetric)
		for _, mm := range moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{Game: gameMetric.ID, MoveMetric: mm})
		}
		if err != nil {
			break // Interrupted, keep what was played
		}
		fmt.Printf("game %d: score %d, max tile %d, moves %d\n",
			i+1, gameMetric.Score, gameMetric.MaxTile, gameMetric.TotalMoves)
	}

	if cfg.MetricsDir == "" {
		return nil
	}
	return writeRecords(cfg, gameRecords, moveRecords)
}

func writeRecords(cfg config.Config, gameRecords []metrics.GameMetric, moveRecords []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(cfg.MetricsDir, cfg.Agent)
	if err != nil {
		return err
	}
	if err := writer.WriteSetup(cfg); err != nil {
		return err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return err
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return err
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}

func printTurn(turn engine.Turn) {
	fmt.Print(turn.Grid)
	fmt.Println("****")
	if turn.Found {
		fmt.Println(turn.Direction)
	} else {
		fmt.Println("no legal move")
	}
}
