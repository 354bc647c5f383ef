package schedule

import (
	"context"
	"testing"

	"pingpal/internal/commands/types"
	"pingpal/internal/config"
	"pingpal/internal/crcon"
	"pingpal/internal/crcon/crcontest"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReloader struct {
	reloads int
}

func (f *fakeReloader) Reload() error {
	f.reloads++
	return nil
}

func newModule(fake *crcontest.Fake, replies *[]string, reloader types.ScheduleReloader) *ScheduleModule {
	deps := &types.Dependencies{
		Config:    config.NewMockConfig(nil),
		CRCON:     fake,
		Scheduler: reloader,
	}
	m := New(deps)
	m.opts = scheduleOpts{
		Respond: func(_ *discordgo.Session, _ *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			*replies = append(*replies, resp.Data.Content)
			return nil
		},
	}
	return m
}

func setInteraction(job, timeOfDay string, ping int64) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:   discordgo.InteractionApplicationCommand,
			Member: &discordgo.Member{User: &discordgo.User{ID: "u1", Username: "admin"}},
			Data: discordgo.ApplicationCommandInteractionData{
				Name: "setscheduledtime",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{Name: "job", Type: discordgo.ApplicationCommandOptionString, Value: job},
					{Name: "time", Type: discordgo.ApplicationCommandOptionString, Value: timeOfDay},
					{Name: "ping", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(ping)},
				},
			},
		},
	}
}

func curInteraction() *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:   discordgo.InteractionApplicationCommand,
			Member: &discordgo.Member{User: &discordgo.User{ID: "u1", Username: "admin"}},
			Data:   discordgo.ApplicationCommandInteractionData{Name: "curscheduledtime"},
		},
	}
}

func TestSetScheduledTimeRejectsMalformedTimeLocally(t *testing.T) {
	for _, bad := range []string{"9:5", "9:05", "09:5", "24:00", "0905", "morning"} {
		fake := &crcontest.Fake{}
		var replies []string
		m := newModule(fake, &replies, nil)

		m.handleSetScheduledTime(nil, setInteraction("morning", bad, 100))

		require.Len(t, replies, 1, "time %q", bad)
		assert.Contains(t, replies[0], "Invalid time format", "time %q", bad)
		assert.False(t, fake.Called("SetScheduledJob"), "API must not be called for time %q", bad)
	}
}

func TestSetScheduledTimeRejectsNonPositivePing(t *testing.T) {
	fake := &crcontest.Fake{}
	var replies []string
	m := newModule(fake, &replies, nil)

	m.handleSetScheduledTime(nil, setInteraction("morning", "09:05", 0))

	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "Ping must be a positive number")
	assert.False(t, fake.Called("SetScheduledJob"))
}

func TestSetScheduledTimeUnknownJob(t *testing.T) {
	fake := &crcontest.Fake{
		SetScheduledJobFunc: func(_ context.Context, _, _ string, _ int) error {
			return crcon.ErrNotFound
		},
	}
	var replies []string
	m := newModule(fake, &replies, nil)

	m.handleSetScheduledTime(nil, setInteraction("ghost", "09:05", 100))

	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "No scheduled job named `ghost`")
}

func TestSetScheduledTimeSuccessReloadsScheduler(t *testing.T) {
	var captured []string
	fake := &crcontest.Fake{
		SetScheduledJobFunc: func(_ context.Context, name, timeOfDay string, ping int) error {
			captured = append(captured, name, timeOfDay)
			return nil
		},
	}
	reloader := &fakeReloader{}
	var replies []string
	m := newModule(fake, &replies, reloader)

	m.handleSetScheduledTime(nil, setInteraction("morning", "09:05", 100))

	require.Len(t, replies, 1)
	assert.Equal(t, "✅ Job `morning` scheduled for `09:05` @ 100ms.", replies[0])
	assert.Equal(t, []string{"morning", "09:05"}, captured)
	assert.Equal(t, 1, reloader.reloads)
}

func TestCurScheduledTimeRoundTrip(t *testing.T) {
	fake := &crcontest.Fake{
		ScheduledJobsFunc: func(context.Context) ([]crcon.ScheduledJob, error) {
			return []crcon.ScheduledJob{
				{Name: "morning", Time: "09:05", Ping: 100},
				{Name: "evening", Time: "15:00", Ping: 320},
			}, nil
		},
	}
	var replies []string
	m := newModule(fake, &replies, nil)

	m.handleCurScheduledTime(nil, curInteraction())

	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "🕒 morning: 09:05 @ 100ms")
	assert.Contains(t, replies[0], "🕒 evening: 15:00 @ 320ms")
}

func TestCurScheduledTimeEmpty(t *testing.T) {
	var replies []string
	m := newModule(&crcontest.Fake{}, &replies, nil)

	m.handleCurScheduledTime(nil, curInteraction())

	require.Len(t, replies, 1)
	assert.Equal(t, "⚠️ No scheduled ping jobs.", replies[0])
}
