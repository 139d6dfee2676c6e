package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestEnabled(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	require.False(t, Enabled())

	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318")
	require.True(t, Enabled())
}

// recordSpans installs a global provider with the given sampling ratio for
// the duration of the test.
func recordSpans(t *testing.T, ratio float64) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sampler(ratio)),
		sdktrace.WithSpanProcessor(recorder),
	)
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
	return recorder
}

func playSpans(turns int) {
	ctx, game := StartGame(context.Background(), "g-1", "mc")
	for step := 1; step <= turns; step++ {
		_, turn := StartTurn(ctx, step)
		turn.End()
	}
	game.End()
}

func TestGameSpans(t *testing.T) {
	t.Run("turns are children of their game", func(t *testing.T) {
		recorder := recordSpans(t, 1.0)

		playSpans(2)

		spans := recorder.Ended()
		require.Len(t, spans, 3)
		game := spans[2]
		require.Equal(t, "game.run", game.Name())
		require.Contains(t, game.Attributes(), GameID.String("g-1"))
		require.Contains(t, game.Attributes(), GameAgent.String("mc"))
		for i, turn := range spans[:2] {
			require.Equal(t, "game.turn", turn.Name())
			require.Equal(t, game.SpanContext().SpanID(), turn.Parent().SpanID())
			require.Contains(t, turn.Attributes(), TurnStep.Int(i+1))
		}
	})

	t.Run("unsampled games drop their turns too", func(t *testing.T) {
		recorder := recordSpans(t, 0)

		playSpans(3)

		require.Empty(t, recorder.Ended())
	})
}

func TestResourceAttributes(t *testing.T) {
	attrs := resourceAttributes(Run{Agent: "sample", Trials: 500, Goroutines: 4, Seed: 42})

	require.Contains(t, attrs, attribute.String("service.name", "twenty48"))
	require.Contains(t, attrs, attribute.String("twenty48.agent", "sample"))
	require.Contains(t, attrs, attribute.Int("twenty48.trials", 500))
	require.Contains(t, attrs, attribute.Int("twenty48.goroutines", 4))
	require.Contains(t, attrs, attribute.Int64("twenty48.seed", 42))
}
