// Package telemetry traces games and turns with OpenTelemetry.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "twenty48"
	serviceVersion = "0.2.0"
)

// Span attributes set by the engine
const (
	GameID      = attribute.Key("game.id")
	GameAgent   = attribute.Key("game.agent")
	GameMoves   = attribute.Key("game.moves")
	GameScore   = attribute.Key("game.score")
	GameMaxTile = attribute.Key("game.max_tile")

	TurnStep      = attribute.Key("turn.step")
	TurnFound     = attribute.Key("turn.found")
	TurnDirection = attribute.Key("turn.direction")
	TurnGain      = attribute.Key("turn.gain")

	SearchPlayouts = attribute.Key("search.playouts")
)

// Run describes the traced process. Its fields end up on the resource of
// every exported span.
type Run struct {
	Agent      string
	Trials     int
	Goroutines int
	Seed       uint64
	// Fraction of games traced, 0 traces none. Turns follow their game.
	SampleRatio float64
}

// Enabled reports whether an OTLP endpoint is configured in the environment.
func Enabled() bool {
	return os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" ||
		os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT") != ""
}

// Setup installs a global tracer provider that exports over OTLP HTTP; the
// exporter reads the standard OTEL_* variables. The returned function flushes
// pending spans.
func Setup(ctx context.Context, run Run) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(resourceAttributes(run)...))
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(run.SampleRatio)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

func resourceAttributes(run Run) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
		attribute.String("host.name", hostname()),
		attribute.String("process.runtime.version", runtime.Version()),
		attribute.String("twenty48.agent", run.Agent),
		attribute.Int("twenty48.trials", run.Trials),
		attribute.Int("twenty48.goroutines", run.Goroutines),
		attribute.Int64("twenty48.seed", int64(run.Seed)),
	}
}

// sampler decides per game span; turn spans inherit the decision of their
// parent so a game is either traced whole or not at all.
func sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case ratio <= 0:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

// Tracer returns a named tracer from the global provider, a no-op one until
// Setup runs.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

// StartGame opens the root span of one game.
func StartGame(ctx context.Context, id, agent string) (context.Context, trace.Span) {
	return Tracer("engine").Start(ctx, "game.run", trace.WithAttributes(
		GameID.String(id),
		GameAgent.String(agent),
	))
}

// StartTurn opens the span of one turn below the game span in ctx.
func StartTurn(ctx context.Context, step int) (context.Context, trace.Span) {
	return Tracer("engine").Start(ctx, "game.turn", trace.WithAttributes(
		TurnStep.Int(step),
	))
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
