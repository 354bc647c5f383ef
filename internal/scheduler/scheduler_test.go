package scheduler

import (
	"context"
	"testing"

	"pingpal/internal/config"
	"pingpal/internal/crcon"
	"pingpal/internal/crcon/crcontest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReloadRegistersRemoteSchedule(t *testing.T) {
	fake := &crcontest.Fake{
		ScheduledJobsFunc: func(context.Context) ([]crcon.ScheduledJob, error) {
			return []crcon.ScheduledJob{
				{Name: "morning", Time: "00:09", Ping: 500},
				{Name: "broken", Time: "nonsense", Ping: 100},
				{Name: "evening", Time: "15:00", Ping: 320},
			}, nil
		},
	}
	s := NewScheduler(nil, config.NewMockConfig(nil), fake)

	require.NoError(t, s.Reload())
	assert.Equal(t, 2, s.JobCount(), "malformed entries are skipped")

	// Reload replaces rather than accumulates.
	require.NoError(t, s.Reload())
	assert.Equal(t, 2, s.JobCount())
}

func TestReloadSurfacesFetchFailure(t *testing.T) {
	fake := &crcontest.Fake{
		ScheduledJobsFunc: func(context.Context) ([]crcon.ScheduledJob, error) {
			return nil, &crcon.ConnectionError{Err: context.DeadlineExceeded}
		},
	}
	s := NewScheduler(nil, config.NewMockConfig(nil), fake)

	require.Error(t, s.Reload())
	assert.Equal(t, 0, s.JobCount())
}

func TestRunJobSetsPingAndAnnounces(t *testing.T) {
	var setPings []int
	fake := &crcontest.Fake{
		SetMaxPingFunc: func(_ context.Context, ms int) error {
			setPings = append(setPings, ms)
			return nil
		},
	}
	s := NewScheduler(nil, config.NewMockConfig(nil), fake)

	var announced []string
	s.announce = func(content string) { announced = append(announced, content) }

	s.runJob(crcon.ScheduledJob{Name: "morning", Time: "00:09", Ping: 500})

	assert.Equal(t, []int{500}, setPings)
	require.Len(t, announced, 1)
	assert.Contains(t, announced[0], "morning")
	assert.Contains(t, announced[0], "`500` ms")
}

func TestRunJobFailureDoesNotAnnounce(t *testing.T) {
	fake := &crcontest.Fake{
		SetMaxPingFunc: func(context.Context, int) error {
			return &crcon.ConnectionError{Err: context.DeadlineExceeded}
		},
	}
	s := NewScheduler(nil, config.NewMockConfig(nil), fake)

	var announced []string
	s.announce = func(content string) { announced = append(announced, content) }

	s.runJob(crcon.ScheduledJob{Name: "morning", Time: "00:09", Ping: 500})
	assert.Empty(t, announced)
}

func TestCronSpec(t *testing.T) {
	spec, err := cronSpec("09:05")
	require.NoError(t, err)
	assert.Equal(t, "05 09 * * *", spec)

	_, err = cronSpec("nonsense")
	require.Error(t, err)
}
