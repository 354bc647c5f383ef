package help

import (
	"sort"

	"pingpal/internal/commands/types"
	"pingpal/internal/utils"

	"github.com/MakeNowJust/heredoc"
	"github.com/bwmarrin/discordgo"
)

type helpOpts struct {
	Respond func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
}

func defaultHelpOpts() helpOpts {
	return helpOpts{
		Respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			return s.InteractionRespond(i, resp)
		},
	}
}

// HelpModule provides /help. The listing is generated from the command
// registry, so a newly registered command shows up without touching this
// module.
type HelpModule struct {
	registry map[string]*types.Command
	opts     helpOpts
}

func New(deps *types.Dependencies) *HelpModule {
	return &HelpModule{opts: defaultHelpOpts()}
}

func (m *HelpModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	m.registry = cmds
	cmds["help"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "help",
			Description: "Show this help message",
		},
		HandlerFunc: m.handleHelp,
	}
}

func (m *HelpModule) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	_ = m.opts.Respond(s, i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{m.embed()},
		},
	})
}

func (m *HelpModule) embed() *discordgo.MessageEmbed {
	names := make([]string, 0, len(m.registry))
	for name := range m.registry {
		names = append(names, name)
	}
	sort.Strings(names)

	embed := &discordgo.MessageEmbed{
		Title: "🎮 PingPal — CRCON Helper",
		Description: heredoc.Doc(`
			Relay commands for the Hell Let Loose CRCON server.
			All values are stored on the game server, not the bot.
		`),
		Color: utils.Colors.Info(),
	}
	for _, name := range names {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "/" + name,
			Value:  m.registry[name].ApplicationCommand.Description,
			Inline: false,
		})
	}
	return embed
}
