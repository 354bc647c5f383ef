package online

import (
	"context"

	"pingpal/internal/commands/types"
	"pingpal/internal/config"
	"pingpal/internal/crcon"

	"github.com/bwmarrin/discordgo"
)

type onlineOpts struct {
	Respond func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
}

func defaultOnlineOpts() onlineOpts {
	return onlineOpts{
		Respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			return s.InteractionRespond(i, resp)
		},
	}
}

// OnlineModule provides /online, reporting bot and API liveness separately.
// The bot being up is implied by the handler running at all; API
// reachability comes from the health check.
type OnlineModule struct {
	config *config.Config
	crcon  crcon.API
	opts   onlineOpts
}

func New(deps *types.Dependencies) *OnlineModule {
	return &OnlineModule{
		config: deps.Config,
		crcon:  deps.CRCON,
		opts:   defaultOnlineOpts(),
	}
}

func (m *OnlineModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["online"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "online",
			Description: "Check whether the bot and the CRCON API are up",
		},
		HandlerFunc: m.handleOnline,
	}
}

func (m *OnlineModule) handleOnline(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.config.Logger.Infof("[/online] requested by %s", requester(i))

	content := "🟢 Bot: up, API: up."
	if !m.crcon.Healthy(context.Background()) {
		content = "🟡 Bot: up, API: unreachable."
	}
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

func requester(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.Username
	}
	if i.User != nil {
		return i.User.Username
	}
	return "unknown"
}
