package health_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elecmate/cvbuilder/pkg/health"
	"github.com/elecmate/cvbuilder/pkg/health/checkers"
)

func ok(context.Context) error { return nil }

func TestReady(t *testing.T) {
	require.NoError(t, health.NewService().Ready(context.Background()))

	down := errors.New("connection refused")
	svc := health.NewService(
		checkers.NewPing("postgres", 0, ok),
		checkers.NewPing("redis", 0, func(context.Context) error { return down }),
	)
	err := svc.Ready(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, down)
	assert.Contains(t, err.Error(), "redis")
}

func TestPing_Deadline(t *testing.T) {
	c := checkers.NewPing("slow", 10*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.Equal(t, "slow", c.Name())
	assert.ErrorIs(t, c.Check(context.Background()), context.DeadlineExceeded)
}

func TestReport(t *testing.T) {
	down := errors.New("connection refused")
	svc := health.NewService(
		checkers.NewPing("postgres", 0, func(context.Context) error { return down }),
		checkers.NewPing("redis", 0, ok),
	)
	r := svc.Report(context.Background())
	assert.False(t, r.Ready)
	assert.Equal(t, map[string]string{"postgres": "connection refused", "redis": "ok"}, r.Checks)

	assert.True(t, health.NewService().Report(context.Background()).Ready)
}
