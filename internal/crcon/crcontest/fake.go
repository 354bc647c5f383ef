// Package crcontest provides a fake crcon.API for handler tests.
package crcontest

import (
	"context"

	"pingpal/internal/crcon"
)

// Fake implements crcon.API with per-method function fields and records
// every method invocation in Calls. Unset methods return zero values.
type Fake struct {
	Calls []string

	RecentBansFunc      func(ctx context.Context) ([]crcon.Ban, error)
	PlayerNameFunc      func(ctx context.Context, playerID string) (string, error)
	UnbanFunc           func(ctx context.Context, playerID string) error
	MaxPingFunc         func(ctx context.Context) (int, error)
	SetMaxPingFunc      func(ctx context.Context, ms int) error
	ScheduledJobsFunc   func(ctx context.Context) ([]crcon.ScheduledJob, error)
	SetScheduledJobFunc func(ctx context.Context, name, timeOfDay string, ping int) error
	HealthyFunc         func(ctx context.Context) bool
}

var _ crcon.API = (*Fake)(nil)

func (f *Fake) RecentBans(ctx context.Context) ([]crcon.Ban, error) {
	f.Calls = append(f.Calls, "RecentBans")
	if f.RecentBansFunc != nil {
		return f.RecentBansFunc(ctx)
	}
	return nil, nil
}

func (f *Fake) PlayerName(ctx context.Context, playerID string) (string, error) {
	f.Calls = append(f.Calls, "PlayerName")
	if f.PlayerNameFunc != nil {
		return f.PlayerNameFunc(ctx, playerID)
	}
	return "Unknown", nil
}

func (f *Fake) Unban(ctx context.Context, playerID string) error {
	f.Calls = append(f.Calls, "Unban")
	if f.UnbanFunc != nil {
		return f.UnbanFunc(ctx, playerID)
	}
	return nil
}

func (f *Fake) MaxPing(ctx context.Context) (int, error) {
	f.Calls = append(f.Calls, "MaxPing")
	if f.MaxPingFunc != nil {
		return f.MaxPingFunc(ctx)
	}
	return 0, nil
}

func (f *Fake) SetMaxPing(ctx context.Context, ms int) error {
	f.Calls = append(f.Calls, "SetMaxPing")
	if f.SetMaxPingFunc != nil {
		return f.SetMaxPingFunc(ctx, ms)
	}
	return nil
}

func (f *Fake) ScheduledJobs(ctx context.Context) ([]crcon.ScheduledJob, error) {
	f.Calls = append(f.Calls, "ScheduledJobs")
	if f.ScheduledJobsFunc != nil {
		return f.ScheduledJobsFunc(ctx)
	}
	return nil, nil
}

func (f *Fake) SetScheduledJob(ctx context.Context, name, timeOfDay string, ping int) error {
	f.Calls = append(f.Calls, "SetScheduledJob")
	if f.SetScheduledJobFunc != nil {
		return f.SetScheduledJobFunc(ctx, name, timeOfDay, ping)
	}
	return nil
}

func (f *Fake) Healthy(ctx context.Context) bool {
	f.Calls = append(f.Calls, "Healthy")
	if f.HealthyFunc != nil {
		return f.HealthyFunc(ctx)
	}
	return true
}

// Called reports whether method was invoked at least once.
func (f *Fake) Called(method string) bool {
	for _, c := range f.Calls {
		if c == method {
			return true
		}
	}
	return false
}
