package ping

import (
	"context"
	"fmt"

	"pingpal/internal/commands/types"
	"pingpal/internal/config"
	"pingpal/internal/crcon"

	"github.com/bwmarrin/discordgo"
)

type pingOpts struct {
	Respond func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
}

func defaultPingOpts() pingOpts {
	return pingOpts{
		Respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			return s.InteractionRespond(i, resp)
		},
	}
}

// PingModule provides /curping and /setping for the max ping autokick
// threshold.
type PingModule struct {
	config *config.Config
	crcon  crcon.API
	opts   pingOpts
}

func New(deps *types.Dependencies) *PingModule {
	return &PingModule{
		config: deps.Config,
		crcon:  deps.CRCON,
		opts:   defaultPingOpts(),
	}
}

func (m *PingModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["curping"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "curping",
			Description: "Show the current max ping autokick (ms)",
		},
		HandlerFunc: m.handleCurPing,
	}

	minPing := float64(1)
	cmds["setping"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "setping",
			Description: "Set the max ping autokick (ms)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "ping",
					Description: "Ping threshold in milliseconds",
					Required:    true,
					MinValue:    &minPing,
				},
			},
		},
		HandlerFunc: m.handleSetPing,
	}
}

func (m *PingModule) handleCurPing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.config.Logger.Infof("[/curping] requested by %s", requester(i))

	ping, err := m.crcon.MaxPing(context.Background())
	if err != nil {
		m.config.Logger.Errorf("[/curping] failed: %v", err)
		m.respond(s, i, types.ErrorReply(err))
		return
	}
	m.respond(s, i, fmt.Sprintf("📡 Current max ping autokick is `%d` ms.", ping))
}

func (m *PingModule) handleSetPing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var ping int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "ping" {
			ping = opt.IntValue()
		}
	}
	m.config.Logger.Infof("[/setping] requested by %s with ping %d", requester(i), ping)

	// Reject bad input before touching the API client at all.
	if ping <= 0 {
		m.respond(s, i, "⚠️ Ping must be a positive number of milliseconds.")
		return
	}

	if err := m.crcon.SetMaxPing(context.Background(), int(ping)); err != nil {
		m.config.Logger.Errorf("[/setping] failed: %v", err)
		m.respond(s, i, types.ErrorReply(err))
		return
	}
	m.respond(s, i, fmt.Sprintf("✅ Set max ping autokick to `%d` ms.", ping))
}

func (m *PingModule) respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
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
