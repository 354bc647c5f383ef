package bans

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pingpal/internal/commands/types"
	"pingpal/internal/config"
	"pingpal/internal/crcon"

	"github.com/bwmarrin/discordgo"
)

type bansOpts struct {
	Respond      func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	EditResponse func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error
}

func defaultBansOpts() bansOpts {
	return bansOpts{
		Respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			return s.InteractionRespond(i, resp)
		},
		EditResponse: func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error {
			_, err := s.InteractionResponseEdit(i, edit)
			return err
		},
	}
}

// BansModule provides /bans and /unban, relaying to the CRCON ban endpoints.
type BansModule struct {
	config *config.Config
	crcon  crcon.API
	opts   bansOpts
}

func New(deps *types.Dependencies) *BansModule {
	return &BansModule{
		config: deps.Config,
		crcon:  deps.CRCON,
		opts:   defaultBansOpts(),
	}
}

func (m *BansModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["bans"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "bans",
			Description: "Show the last 5 temp bans",
		},
		HandlerFunc: m.handleBans,
	}

	cmds["unban"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "unban",
			Description: "Unban a player by player ID",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "player_id",
					Description: "The player ID to unban",
					Required:    true,
				},
			},
		},
		HandlerFunc: m.handleUnban,
	}
}

// handleBans lists recent temp bans with resolved player names.
func (m *BansModule) handleBans(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.config.Logger.Infof("[/bans] requested by %s", requester(i))

	// Name resolution is one API call per ban; defer to stay under the
	// 3s interaction deadline.
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	ctx := context.Background()
	bans, err := m.crcon.RecentBans(ctx)
	if err != nil {
		m.config.Logger.Errorf("[/bans] failed: %v", err)
		m.edit(s, i, types.ErrorReply(err))
		return
	}

	if len(bans) == 0 {
		m.edit(s, i, "⚠️ No recent temp bans.")
		return
	}

	lines := make([]string, 0, len(bans)+1)
	lines = append(lines, "**Last temp bans:**")
	for n, b := range bans {
		name, err := m.crcon.PlayerName(ctx, b.PlayerID)
		if err != nil {
			name = "Unknown"
		}
		line := fmt.Sprintf("`%d` - %s (ID: `%s`)", n+1, name, b.PlayerID)
		if b.Reason != "" {
			line += " — " + b.Reason
		}
		lines = append(lines, line)
	}
	m.edit(s, i, strings.Join(lines, "\n"))
}

// handleUnban lifts a temp ban by player ID.
func (m *BansModule) handleUnban(s *discordgo.Session, i *discordgo.InteractionCreate) {
	playerID := strings.TrimSpace(stringOption(i, "player_id"))
	m.config.Logger.Infof("[/unban] requested by %s for %q", requester(i), playerID)

	if playerID == "" {
		m.respond(s, i, "⚠️ You must provide a player ID.")
		return
	}

	err := m.crcon.Unban(context.Background(), playerID)
	switch {
	case err == nil:
		m.respond(s, i, fmt.Sprintf("✅ Unbanned player `%s`.", playerID))
	case errors.Is(err, crcon.ErrNotFound):
		m.respond(s, i, fmt.Sprintf("⚠️ No temp ban found for player `%s`.", playerID))
	default:
		m.config.Logger.Errorf("[/unban] failed for %q: %v", playerID, err)
		m.respond(s, i, types.ErrorReply(err))
	}
}

func (m *BansModule) respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

func (m *BansModule) edit(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{Content: &content})
}

func stringOption(i *discordgo.InteractionCreate, name string) string {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
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
