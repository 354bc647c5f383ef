package bans

import (
	"context"
	"testing"

	"pingpal/internal/config"
	"pingpal/internal/crcon"
	"pingpal/internal/crcon/crcontest"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture struct {
	responses []string
	edits     []string
}

func testOpts(cap *capture) bansOpts {
	return bansOpts{
		Respond: func(_ *discordgo.Session, _ *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			if resp.Data != nil && resp.Data.Content != "" {
				cap.responses = append(cap.responses, resp.Data.Content)
			}
			return nil
		},
		EditResponse: func(_ *discordgo.Session, _ *discordgo.Interaction, edit *discordgo.WebhookEdit) error {
			if edit != nil && edit.Content != nil {
				cap.edits = append(cap.edits, *edit.Content)
			}
			return nil
		},
	}
}

func newModule(fake *crcontest.Fake, cap *capture) *BansModule {
	return &BansModule{
		config: config.NewMockConfig(nil),
		crcon:  fake,
		opts:   testOpts(cap),
	}
}

func bansInteraction() *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:   discordgo.InteractionApplicationCommand,
			Member: &discordgo.Member{User: &discordgo.User{ID: "u1", Username: "admin"}},
			Data:   discordgo.ApplicationCommandInteractionData{Name: "bans"},
		},
	}
}

func unbanInteraction(playerID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:   discordgo.InteractionApplicationCommand,
			Member: &discordgo.Member{User: &discordgo.User{ID: "u1", Username: "admin"}},
			Data: discordgo.ApplicationCommandInteractionData{
				Name: "unban",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{Name: "player_id", Type: discordgo.ApplicationCommandOptionString, Value: playerID},
				},
			},
		},
	}
}

func TestBansEmptyListHasExplicitMessage(t *testing.T) {
	cap := &capture{}
	m := newModule(&crcontest.Fake{}, cap)

	m.handleBans(nil, bansInteraction())

	require.Len(t, cap.edits, 1)
	assert.Equal(t, "⚠️ No recent temp bans.", cap.edits[0])
}

func TestBansListsWithNames(t *testing.T) {
	fake := &crcontest.Fake{
		RecentBansFunc: func(context.Context) ([]crcon.Ban, error) {
			return []crcon.Ban{
				{PlayerID: "p1", Reason: "teamkilling"},
				{PlayerID: "p2"},
			}, nil
		},
		PlayerNameFunc: func(_ context.Context, playerID string) (string, error) {
			return "Player-" + playerID, nil
		},
	}
	cap := &capture{}
	m := newModule(fake, cap)

	m.handleBans(nil, bansInteraction())

	require.Len(t, cap.edits, 1)
	assert.Contains(t, cap.edits[0], "`1` - Player-p1 (ID: `p1`) — teamkilling")
	assert.Contains(t, cap.edits[0], "`2` - Player-p2 (ID: `p2`)")
}

func TestBansConnectionError(t *testing.T) {
	fake := &crcontest.Fake{
		RecentBansFunc: func(context.Context) ([]crcon.Ban, error) {
			return nil, &crcon.ConnectionError{Err: context.DeadlineExceeded}
		},
	}
	cap := &capture{}
	m := newModule(fake, cap)

	m.handleBans(nil, bansInteraction())

	require.Len(t, cap.edits, 1)
	assert.Contains(t, cap.edits[0], "Could not reach the CRCON server")
}

func TestUnbanNotFoundIsDistinctFromRemoteError(t *testing.T) {
	fake := &crcontest.Fake{
		UnbanFunc: func(_ context.Context, playerID string) error {
			return crcon.ErrNotFound
		},
	}
	cap := &capture{}
	m := newModule(fake, cap)

	m.handleUnban(nil, unbanInteraction("ghost-id"))

	require.Len(t, cap.responses, 1)
	assert.Equal(t, "⚠️ No temp ban found for player `ghost-id`.", cap.responses[0])

	fake = &crcontest.Fake{
		UnbanFunc: func(_ context.Context, _ string) error {
			return &crcon.APIError{Status: 500, Body: "boom"}
		},
	}
	cap = &capture{}
	m = newModule(fake, cap)

	m.handleUnban(nil, unbanInteraction("p1"))

	require.Len(t, cap.responses, 1)
	assert.NotContains(t, cap.responses[0], "No temp ban found")
	assert.Contains(t, cap.responses[0], "CRCON server returned an error")
}

func TestUnbanSuccess(t *testing.T) {
	fake := &crcontest.Fake{}
	cap := &capture{}
	m := newModule(fake, cap)

	m.handleUnban(nil, unbanInteraction("p1"))

	require.Len(t, cap.responses, 1)
	assert.Equal(t, "✅ Unbanned player `p1`.", cap.responses[0])
	assert.True(t, fake.Called("Unban"))
}
