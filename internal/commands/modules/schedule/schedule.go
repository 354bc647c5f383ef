package schedule

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"pingpal/internal/commands/types"
	"pingpal/internal/config"
	"pingpal/internal/crcon"

	"github.com/bwmarrin/discordgo"
)

// timeOfDayRe mirrors the client-side check so malformed times are caught
// before any request is made.
var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type scheduleOpts struct {
	Respond func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
}

func defaultScheduleOpts() scheduleOpts {
	return scheduleOpts{
		Respond: func(s *discordgo.Session, i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
			return s.InteractionRespond(i, resp)
		},
	}
}

// ScheduleModule provides /curscheduledtime and /setscheduledtime for the
// remote ping schedule.
type ScheduleModule struct {
	config *config.Config
	crcon  crcon.API
	deps   *types.Dependencies
	opts   scheduleOpts
}

func New(deps *types.Dependencies) *ScheduleModule {
	return &ScheduleModule{
		config: deps.Config,
		crcon:  deps.CRCON,
		deps:   deps,
		opts:   defaultScheduleOpts(),
	}
}

func (m *ScheduleModule) Register(cmds map[string]*types.Command, deps *types.Dependencies) {
	cmds["curscheduledtime"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "curscheduledtime",
			Description: "Show the scheduled ping jobs",
		},
		HandlerFunc: m.handleCurScheduledTime,
	}

	cmds["setscheduledtime"] = &types.Command{
		ApplicationCommand: &discordgo.ApplicationCommand{
			Name:        "setscheduledtime",
			Description: "Set a scheduled job's time and ping",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "job",
					Description: "Name of the scheduled job",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "time",
					Description: "Time of day, 24h HH:MM",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "ping",
					Description: "Ping threshold in milliseconds",
					Required:    true,
				},
			},
		},
		HandlerFunc: m.handleSetScheduledTime,
	}
}

func (m *ScheduleModule) handleCurScheduledTime(s *discordgo.Session, i *discordgo.InteractionCreate) {
	m.config.Logger.Infof("[/curscheduledtime] requested by %s", requester(i))

	jobs, err := m.crcon.ScheduledJobs(context.Background())
	if err != nil {
		m.config.Logger.Errorf("[/curscheduledtime] failed: %v", err)
		m.respond(s, i, types.ErrorReply(err))
		return
	}

	if len(jobs) == 0 {
		m.respond(s, i, "⚠️ No scheduled ping jobs.")
		return
	}

	lines := make([]string, 0, len(jobs))
	for _, j := range jobs {
		lines = append(lines, fmt.Sprintf("🕒 %s: %s @ %dms", j.Name, j.Time, j.Ping))
	}
	m.respond(s, i, strings.Join(lines, "\n"))
}

func (m *ScheduleModule) handleSetScheduledTime(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var job, timeOfDay string
	var ping int64
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "job":
			job = opt.StringValue()
		case "time":
			timeOfDay = opt.StringValue()
		case "ping":
			ping = opt.IntValue()
		}
	}
	m.config.Logger.Infof("[/setscheduledtime] requested by %s - job %q, time %q, ping %d",
		requester(i), job, timeOfDay, ping)

	// Validate before calling out, so bad input never leaves the process.
	if !timeOfDayRe.MatchString(timeOfDay) {
		m.respond(s, i, "⚠️ Invalid time format. Use 24h HH:MM, zero-padded (e.g. `09:05`).")
		return
	}
	if ping <= 0 {
		m.respond(s, i, "⚠️ Ping must be a positive number of milliseconds.")
		return
	}

	err := m.crcon.SetScheduledJob(context.Background(), job, timeOfDay, int(ping))
	switch {
	case err == nil:
		m.respond(s, i, fmt.Sprintf("✅ Job `%s` scheduled for `%s` @ %dms.", job, timeOfDay, ping))
		m.reloadScheduler()
	case errors.Is(err, crcon.ErrNotFound):
		m.respond(s, i, fmt.Sprintf("⚠️ No scheduled job named `%s`. See /curscheduledtime.", job))
	default:
		m.config.Logger.Errorf("[/setscheduledtime] failed: %v", err)
		m.respond(s, i, types.ErrorReply(err))
	}
}

// reloadScheduler tells the in-bot runner to pick up the new schedule.
func (m *ScheduleModule) reloadScheduler() {
	if m.deps.Scheduler == nil {
		return
	}
	if err := m.deps.Scheduler.Reload(); err != nil {
		m.config.Logger.Errorf("schedule reload failed: %v", err)
	}
}

func (m *ScheduleModule) respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
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
