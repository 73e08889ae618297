package orchestrator

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// RunEvent captures lightweight execution telemetry for one algorithm run.
type RunEvent struct {
	RunID        string
	AlgorithmTag string
	Duration     time.Duration
	Success      bool
	FallbackUsed bool
	Err          error
	Fields       map[string]any
	StartedAt    time.Time
}

// RunObserver receives run execution events.
type RunObserver interface {
	ObserveRun(ctx context.Context, event RunEvent)
}

// NoopRunObserver ignores all events.
type NoopRunObserver struct{}

func (NoopRunObserver) ObserveRun(context.Context, RunEvent) {}

type logRunObserver struct {
	logger *slog.Logger
}

// NewLogRunObserver writes run events to the provided writer.
func NewLogRunObserver(w io.Writer) RunObserver {
	if w == nil {
		return NoopRunObserver{}
	}
	return &logRunObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logRunObserver) ObserveRun(ctx context.Context, event RunEvent) {
	attrs := make([]any, 0, 10+len(event.Fields)*2)
	attrs = append(attrs,
		"run_id", event.RunID,
		"algorithm", event.AlgorithmTag,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
		"fallback_used", event.FallbackUsed,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "algorithm_run", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "algorithm_run", attrs...)
}

func observerOrNoop(obs RunObserver) RunObserver {
	if obs != nil {
		return obs
	}
	return NoopRunObserver{}
}
