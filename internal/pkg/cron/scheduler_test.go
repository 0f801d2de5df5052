package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/staffsync/attendance-backend-go/internal/config"
	"github.com/staffsync/attendance-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRunLaterToday(t *testing.T) {
	now := time.Date(2024, 3, 7, 5, 0, 0, 0, time.UTC)
	next := nextRun(now, config.TimeOfDay{Hour: 6, Minute: 20})
	assert.Equal(t, time.Date(2024, 3, 7, 6, 20, 0, 0, time.UTC), next)
}

func TestNextRunSlotPassedRollsToTomorrow(t *testing.T) {
	// Process came up after the trigger: today's slot is skipped, not
	// backfilled.
	now := time.Date(2024, 3, 7, 6, 21, 0, 0, time.UTC)
	next := nextRun(now, config.TimeOfDay{Hour: 6, Minute: 20})
	assert.Equal(t, time.Date(2024, 3, 8, 6, 20, 0, 0, time.UTC), next)
}

func TestNextRunExactlyAtSlotRollsToTomorrow(t *testing.T) {
	now := time.Date(2024, 3, 7, 12, 50, 0, 0, time.UTC)
	next := nextRun(now, config.TimeOfDay{Hour: 12, Minute: 50})
	assert.Equal(t, time.Date(2024, 3, 8, 12, 50, 0, 0, time.UTC), next)
}

func TestRunOnceExecutesAllJobs(t *testing.T) {
	s := NewScheduler(clock.NewFixed(time.Date(2024, 3, 7, 5, 0, 0, 0, time.UTC)))

	var morning, afternoon atomic.Int32
	s.AddJob("morning", config.TimeOfDay{Hour: 6, Minute: 20}, func(ctx context.Context) error {
		morning.Add(1)
		return nil
	})
	s.AddJob("afternoon", config.TimeOfDay{Hour: 12, Minute: 50}, func(ctx context.Context) error {
		afternoon.Add(1)
		return nil
	})

	s.RunOnce(context.Background())
	assert.Equal(t, int32(1), morning.Load())
	assert.Equal(t, int32(1), afternoon.Load())
}

func TestRunOnceFailingJobDoesNotBlockOthers(t *testing.T) {
	s := NewScheduler(clock.New())

	var ran atomic.Bool
	s.AddJob("broken", config.TimeOfDay{Hour: 6, Minute: 20}, func(ctx context.Context) error {
		return errors.New("delivery refused")
	})
	s.AddJob("healthy", config.TimeOfDay{Hour: 12, Minute: 50}, func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	s.RunOnce(context.Background())
	assert.True(t, ran.Load())
}

func TestExecuteJobConfinesPanic(t *testing.T) {
	s := NewScheduler(clock.New())

	assert.NotPanics(t, func() {
		s.executeJob(Job{
			Name: "panicky",
			Fn: func(ctx context.Context) error {
				panic("boom")
			},
		})
	})
}

func TestStopTerminatesPromptly(t *testing.T) {
	s := NewScheduler(clock.New())
	s.AddJob("far_future", config.TimeOfDay{Hour: 23, Minute: 59}, func(ctx context.Context) error {
		return nil
	})
	s.Start()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestAddJobRegisters(t *testing.T) {
	s := NewScheduler(clock.New())
	require.Empty(t, s.jobs)

	s.AddJob("a", config.TimeOfDay{Hour: 1}, func(ctx context.Context) error { return nil })
	s.AddJob("b", config.TimeOfDay{Hour: 2}, func(ctx context.Context) error { return nil })
	assert.Len(t, s.jobs, 2)
}
