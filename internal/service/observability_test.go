package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "plan.upsert",
		Duration: 12 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"inserted": 2},
	})
	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "use_case=plan.upsert")
	assert.Contains(t, buf.String(), "inserted=2")

	buf.Reset()
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "plan.upsert", Err: errors.New("boom")})
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))

	a, b := &recordingUseCaseObserver{}, &recordingUseCaseObserver{}
	obs := useCaseObserverOrNoop([]UseCaseObserver{nil, a, b})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "x"})
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}
