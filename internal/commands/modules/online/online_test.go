package online

import (
	"context"
	"testing"

	"pingpal/internal/config"
	"pingpal/internal/crcon/crcontest"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onlineInteraction() *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:   discordgo.InteractionApplicationCommand,
			Member: &discordgo.Member{User: &discordgo.User{ID: "u1", Username: "admin"}},
			Data:   discordgo.ApplicationCommandInteractionData{Name: "online"},
		},
	}
}

func newModule(fake *crcontest.Fake, replies *[]string) *OnlineModule {
	return &OnlineModule{
		config: config.NewMockConfig(nil),
		crcon:  fake,
		opts: onlineOpts{
			Respond: func(_ *discordgo.Session, _ *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
				*replies = append(*replies, resp.Data.Content)
				return nil
			},
		},
	}
}

func TestOnlineDistinguishesAPIStates(t *testing.T) {
	fake := &crcontest.Fake{
		HealthyFunc: func(context.Context) bool { return true },
	}
	var replies []string
	m := newModule(fake, &replies)

	m.handleOnline(nil, onlineInteraction())

	require.Len(t, replies, 1)
	up := replies[0]
	assert.Equal(t, "🟢 Bot: up, API: up.", up)

	fake = &crcontest.Fake{
		HealthyFunc: func(context.Context) bool { return false },
	}
	replies = nil
	m = newModule(fake, &replies)

	m.handleOnline(nil, onlineInteraction())

	require.Len(t, replies, 1)
	assert.Equal(t, "🟡 Bot: up, API: unreachable.", replies[0])
	assert.NotEqual(t, up, replies[0])
}
