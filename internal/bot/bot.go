package bot

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"pingpal/internal/commands"
	"pingpal/internal/config"
	"pingpal/internal/scheduler"
)

// Bot represents the Discord bot
type Bot struct {
	session              *discordgo.Session
	config               *config.Config
	commandModuleHandler *commands.ModuleHandler
	scheduler            *scheduler.Scheduler
}

// New creates a new Bot instance
func New(cfg *config.Config) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.GetBotToken())
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	handler := commands.NewModuleHandler(cfg)

	bot := &Bot{
		session:              session,
		config:               cfg,
		commandModuleHandler: handler,
	}

	// Slash commands only; no message content needed.
	session.Identify.Intents = discordgo.IntentsGuilds

	session.AddHandler(bot.onReady)
	session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		handler.HandleInteraction(s, i)
	})

	return bot, nil
}

// Start starts the bot and blocks until interrupted.
func (b *Bot) Start() error {
	err := b.session.Open()
	if err != nil {
		return fmt.Errorf("error opening Discord connection: %w", err)
	}
	defer func() {
		if err := b.session.Close(); err != nil {
			b.config.Logger.Warn("error closing Discord session:", err)
		}
	}()

	// Register slash commands
	if err := b.commandModuleHandler.RegisterCommands(b.session); err != nil {
		return fmt.Errorf("error registering commands: %w", err)
	}

	b.commandModuleHandler.SetSession(b.session)

	// Start the in-bot schedule runner and let the schedule module poke it
	// after remote changes.
	b.scheduler = scheduler.NewScheduler(b.session, b.config, b.commandModuleHandler.CRCON())
	b.commandModuleHandler.SetScheduler(b.scheduler)
	b.scheduler.Start()
	defer b.scheduler.Stop()

	b.config.Logger.Info("PingPal is now running. Press CTRL+C to exit.")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Cleanup: Unregister commands, optionally
	if os.Getenv("UNREGISTER_COMMANDS") == "true" {
		b.commandModuleHandler.UnregisterCommands(b.session)
	}

	return nil
}

// onReady handles the ready event
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.config.Logger.Infof("Bot received ready signal! Logged in as: %s#%s", r.User.Username, r.User.Discriminator)

	if channelID := b.config.GetAnnounceChannelID(); channelID != "" {
		if _, err := s.ChannelMessageSend(channelID, "🟢 PingPal is online!"); err != nil {
			b.config.Logger.Warnf("failed to send online notice: %v", err)
		}
	}
}
