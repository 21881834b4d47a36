package batch

import (
	"context"
	"log/slog"
	"time"
)

// Event describes one finished Execute call.
type Event struct {
	Entity   string
	Table    string
	Mode     Mode
	Items    int
	Inserts  int
	Updates  int
	Duration time.Duration
	Err      error
}

// Observer receives an Event after every batch, committed or not.
type Observer interface {
	ObserveBatch(ctx context.Context, ev Event)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveBatch(context.Context, Event) {}

// Observers fans an event out to several observers.
type Observers []Observer

func (o Observers) ObserveBatch(ctx context.Context, ev Event) {
	for _, obs := range o {
		if obs != nil {
			obs.ObserveBatch(ctx, ev)
		}
	}
}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver logs every batch through logger.
func NewLogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		return NoopObserver{}
	}
	return &logObserver{logger: logger}
}

func (o *logObserver) ObserveBatch(ctx context.Context, ev Event) {
	attrs := []any{
		"entity", ev.Entity,
		"table", ev.Table,
		"mode", ev.Mode.String(),
		"items", ev.Items,
		"inserts", ev.Inserts,
		"updates", ev.Updates,
		"duration_ms", ev.Duration.Milliseconds(),
	}
	if ev.Err != nil {
		attrs = append(attrs, "error", ev.Err.Error(), "retryable", IsRetryable(ev.Err))
		o.logger.WarnContext(ctx, "batch_upsert_failed", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "batch_upsert", attrs...)
}
