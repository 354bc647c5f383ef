package playerstats

import (
	"context"
	"fmt"

	"pingpal/internal/commands/types"
	"pingpal/internal/config"
	"pingpal/internal/stats"
	"pingpal/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// statsStore is the slice of stats.DB this module needs.
type statsStore interface {
	FindPlayers(ctx context.Context, prefix string) ([]stats.Player, error)
	PlayerSummary(ctx context.Context, steamID int64) (stats.Summary, error)
}

type statsOpts struct {
	Respond      func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	EditResponse func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error
}

func defaultStatsOpts() statsOpts {
	return statsOpts{
		Respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			return s.InteractionRespond(i, resp)
		},
		EditResponse: func(s *discordgo.Session, i *discordgo.Interaction, edit *discordgo.WebhookEdit) error {
			_, err := s.InteractionResponseEdit(i, edit)
			return err
		},
	}
}

// PlayerstatsModule provides /playerstats, backed by CRCON's Postgres
// stats database.
type PlayerstatsModule struct {
	config *config.Config
	store  statsStore
	opts   statsOpts
}

func New(deps *types.Dependencies) *PlayerstatsModule {
	m := &PlayerstatsModule{
		config: deps.Config,
		opts:   defaultStatsOpts(),
	}
	if deps.Stats != nil {
		m.store = deps.Stats
	}
	return m
}

func (m *PlayerstatsModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["playerstats"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "playerstats",
			Description: "Show all-time stats for a player by name",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "All or part of the player's name",
					Required:    true,
				},
			},
		},
		HandlerFunc: m.handlePlayerStats,
	}
}

func (m *PlayerstatsModule) handlePlayerStats(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var search string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "name" {
			search = opt.StringValue()
		}
	}
	m.config.Logger.Infof("[/playerstats] requested by %s, search: %q", requester(i), search)

	if m.store == nil {
		m.respond(s, i, "⚠️ Player stats are not available: no stats database is configured.")
		return
	}

	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	ctx := context.Background()
	players, err := m.store.FindPlayers(ctx, search)
	if err != nil {
		m.config.Logger.Errorf("[/playerstats] search failed: %v", err)
		m.edit(s, i, "❌ Failed to search the stats database.")
		return
	}
	if len(players) == 0 {
		m.edit(s, i, fmt.Sprintf("⚠️ No players found matching `%s`.", search))
		return
	}

	// Best match is the most recently seen player.
	player := players[0]
	summary, err := m.store.PlayerSummary(ctx, player.SteamID)
	if err != nil {
		m.config.Logger.Errorf("[/playerstats] summary failed: %v", err)
		m.edit(s, i, "❌ Failed to read player stats.")
		return
	}

	hours := int(summary.TimePlayed.Hours())
	minutes := int(summary.TimePlayed.Minutes()) % 60
	embed := utils.NewOKEmbed(
		fmt.Sprintf("📊 All-time stats for %s", player.Name),
		fmt.Sprintf("• Games: **%d**\n• Kills / Deaths: **%d / %d**\n• K/D Ratio: **%.2f**\n• Best Kill Streak: **%d**\n• Time Played: **%dh %dm**",
			summary.Matches, summary.Kills, summary.Deaths, summary.KDR(), summary.BestStreak, hours, minutes),
	)
	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
}

func (m *PlayerstatsModule) respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

func (m *PlayerstatsModule) edit(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = m.opts.EditResponse(s, i.Interaction, &discordgo.WebhookEdit{Content: &content})
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
