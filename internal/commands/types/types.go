package types

import (
	"pingpal/internal/config"
	"pingpal/internal/crcon"
	"pingpal/internal/stats"

	"github.com/bwmarrin/discordgo"
)

// Command represents a Discord application command with its handler
type Command struct {
	ApplicationCommand *discordgo.ApplicationCommand
	HandlerFunc        func(s *discordgo.Session, i *discordgo.InteractionCreate)
}

// CommandModule represents a module that can register commands.
// Each module contains its command definition(s) and handler function(s).
type CommandModule interface {
	// Register adds the module's commands to the provided map
	Register(commands map[string]*Command, deps *Dependencies)
}

// ScheduleReloader is implemented by the in-bot schedule runner. Modules
// that change the remote schedule poke it so the new times take effect
// without waiting for the next refresh.
type ScheduleReloader interface {
	Reload() error
}

// Dependencies contains shared dependencies that command modules may need
type Dependencies struct {
	Config    *config.Config
	CRCON     crcon.API
	Stats     *stats.DB          // nil when no stats database is configured
	Session   *discordgo.Session // Set after bot initialization
	Scheduler ScheduleReloader   // Set after bot initialization
}
