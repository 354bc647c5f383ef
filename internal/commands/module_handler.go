package commands

import (
	"context"
	"strings"

	"pingpal/internal/commands/modules/bans"
	"pingpal/internal/commands/modules/help"
	"pingpal/internal/commands/modules/online"
	"pingpal/internal/commands/modules/ping"
	"pingpal/internal/commands/modules/playerstats"
	"pingpal/internal/commands/modules/schedule"
	"pingpal/internal/commands/types"
	internalConfig "pingpal/internal/config"
	"pingpal/internal/crcon"
	"pingpal/internal/stats"

	"github.com/bwmarrin/discordgo"
)

// ModuleHandler manages command modules and routes interactions. There is
// no cross-invocation state: every dispatch is an independent lookup and
// handler call.
type ModuleHandler struct {
	commands map[string]*types.Command
	config   *internalConfig.Config
	deps     *types.Dependencies

	respond func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
}

// NewModuleHandler creates a new module-based command handler
func NewModuleHandler(cfg *internalConfig.Config) *ModuleHandler {
	client := crcon.New(cfg.GetCRCONAPIURL(), cfg.GetCRCONAPIToken())

	var statsDB *stats.DB
	if dsn := cfg.GetStatsDBURL(); dsn != "" {
		db, err := stats.Open(context.Background(), dsn)
		if err != nil {
			cfg.Logger.Warnf("Failed to connect to stats database, /playerstats disabled: %v", err)
		} else {
			statsDB = db
		}
	}

	return newModuleHandler(cfg, &types.Dependencies{
		Config: cfg,
		CRCON:  client,
		Stats:  statsDB,
	})
}

func newModuleHandler(cfg *internalConfig.Config, deps *types.Dependencies) *ModuleHandler {
	h := &ModuleHandler{
		commands: make(map[string]*types.Command),
		config:   cfg,
		deps:     deps,
		respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			return s.InteractionRespond(i, resp)
		},
	}

	h.registerModules()

	return h
}

// registerModules registers all command modules
func (h *ModuleHandler) registerModules() {
	modules := []types.CommandModule{
		bans.New(h.deps),
		ping.New(h.deps),
		schedule.New(h.deps),
		online.New(h.deps),
		playerstats.New(h.deps),
		help.New(h.deps),
	}

	for _, m := range modules {
		m.Register(h.commands, h.deps)
	}
}

// SetSession stores the Discord session in the shared dependencies.
// Called once the session is established.
func (h *ModuleHandler) SetSession(s *discordgo.Session) {
	h.deps.Session = s
}

// SetScheduler stores the in-bot schedule runner in the shared dependencies
// so modules can trigger a reload after changing the remote schedule.
func (h *ModuleHandler) SetScheduler(r types.ScheduleReloader) {
	h.deps.Scheduler = r
}

// CRCON returns the shared API client.
func (h *ModuleHandler) CRCON() crcon.API {
	return h.deps.CRCON
}

// RegisterCommands registers all slash commands with Discord
func (h *ModuleHandler) RegisterCommands(s *discordgo.Session) error {
	existingCommands, err := s.ApplicationCommands(s.State.User.ID, "")
	if err != nil {
		h.config.Logger.Warnf("Error fetching existing commands: %v", err)
		return err
	}

	existingByName := make(map[string]*discordgo.ApplicationCommand)
	for _, ec := range existingCommands {
		existingByName[ec.Name] = ec
	}

	for _, c := range h.commands {
		if existing := existingByName[c.ApplicationCommand.Name]; existing != nil {
			cmd, err := s.ApplicationCommandEdit(s.State.User.ID, "", existing.ID, c.ApplicationCommand)
			if err != nil {
				return err
			}
			c.ApplicationCommand.ID = cmd.ID
			h.config.Logger.Infof("Updated command: %s", cmd.Name)
		} else {
			cmd, err := s.ApplicationCommandCreate(s.State.User.ID, "", c.ApplicationCommand)
			if err != nil {
				return err
			}
			c.ApplicationCommand.ID = cmd.ID
			h.config.Logger.Infof("Registered command: %s", cmd.Name)
		}
	}

	return nil
}

// HandleInteraction routes slash command interactions to the matching
// handler. Lookup is case-insensitive; an unknown name gets a reply
// pointing at /help rather than silence.
func (h *ModuleHandler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	commandName := i.ApplicationCommandData().Name
	if commandName == "" {
		return
	}

	cmd, exists := h.commands[strings.ToLower(commandName)]
	if !exists {
		_ = h.respond(s, i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "⚠️ Unknown command. See /help for the list of commands.",
			},
		})
		return
	}
	cmd.HandlerFunc(s, i)
}

// UnregisterCommands removes all registered commands
func (h *ModuleHandler) UnregisterCommands(s *discordgo.Session) {
	existingCommands, err := s.ApplicationCommands(s.State.User.ID, "")
	if err != nil {
		h.config.Logger.Warnf("Error fetching existing commands: %v", err)
		return
	}

	for _, existingCmd := range existingCommands {
		if _, exists := h.commands[existingCmd.Name]; exists {
			err := s.ApplicationCommandDelete(s.State.User.ID, "", existingCmd.ID)
			if err != nil {
				h.config.Logger.Warnf("Error deleting command %s: %v", existingCmd.Name, err)
			} else {
				h.config.Logger.Infof("Unregistered command: %s", existingCmd.Name)
			}
		}
	}
}
