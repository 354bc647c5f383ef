// Package scheduler applies the remote ping schedule from inside the bot.
// The schedule itself lives on the CRCON server; this runner fetches it,
// mirrors it into cron entries in the configured timezone, and pushes the
// ping value when an entry fires.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"pingpal/internal/config"
	"pingpal/internal/crcon"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
)

// refreshSpec re-reads the remote schedule so out-of-band changes are
// picked up without a restart.
const refreshSpec = "@hourly"

type Scheduler struct {
	config *config.Config
	api    crcon.API
	cron   *cron.Cron

	announce func(content string)

	mu      sync.Mutex
	entries []cron.EntryID
}

// NewScheduler creates a scheduler announcing into the configured channel.
func NewScheduler(session *discordgo.Session, cfg *config.Config, api crcon.API) *Scheduler {
	s := &Scheduler{
		config: cfg,
		api:    api,
		cron:   cron.New(cron.WithLocation(cfg.GetLocation())),
	}
	s.announce = func(content string) {
		channelID := cfg.GetAnnounceChannelID()
		if session == nil || channelID == "" {
			return
		}
		if _, err := session.ChannelMessageSend(channelID, content); err != nil {
			cfg.Logger.Warnf("failed to announce scheduled ping change: %v", err)
		}
	}
	return s
}

// Start loads the schedule and begins running it. A failed initial load is
// logged, not fatal; the hourly refresh will retry.
func (s *Scheduler) Start() {
	if err := s.Reload(); err != nil {
		s.config.Logger.Errorf("initial schedule load failed: %v", err)
	}
	if _, err := s.cron.AddFunc(refreshSpec, func() {
		if err := s.Reload(); err != nil {
			s.config.Logger.Errorf("schedule refresh failed: %v", err)
		}
	}); err != nil {
		s.config.Logger.Errorf("failed to register schedule refresh: %v", err)
	}
	s.cron.Start()
	s.config.Logger.Info("Schedule runner started")
}

// Stop stops the runner and waits for any in-flight job.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.config.Logger.Info("Schedule runner stopped")
}

// Reload replaces the cron entries with the current remote schedule.
// Malformed entries are logged and skipped.
func (s *Scheduler) Reload() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	jobs, err := s.api.ScheduledJobs(ctx)
	if err != nil {
		return fmt.Errorf("fetch ping schedule: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.entries {
		s.cron.Remove(id)
	}
	s.entries = s.entries[:0]

	for _, job := range jobs {
		spec, err := cronSpec(job.Time)
		if err != nil {
			s.config.Logger.Warnf("skipping schedule entry %q: %v", job.Name, err)
			continue
		}
		job := job
		id, err := s.cron.AddFunc(spec, func() { s.runJob(job) })
		if err != nil {
			s.config.Logger.Warnf("skipping schedule entry %q: %v", job.Name, err)
			continue
		}
		s.entries = append(s.entries, id)
		s.config.Logger.Infof("scheduled %q: %s @ %dms", job.Name, job.Time, job.Ping)
	}
	return nil
}

// JobCount returns how many schedule entries are currently registered.
func (s *Scheduler) JobCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Scheduler) runJob(job crcon.ScheduledJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.api.SetMaxPing(ctx, job.Ping); err != nil {
		s.config.Logger.Errorf("[%s] failed to set max ping %d: %v", job.Name, job.Ping, err)
		return
	}
	s.config.Logger.Infof("[%s] set max ping to %dms (scheduled %s)", job.Name, job.Ping, job.Time)
	s.announce(fmt.Sprintf("🔄 [%s] Max ping autokick set to `%d` ms (scheduled %s)", job.Name, job.Ping, job.Time))
}

// cronSpec converts "HH:MM" into a daily cron expression.
func cronSpec(timeOfDay string) (string, error) {
	parts := strings.SplitN(timeOfDay, ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("malformed time %q", timeOfDay)
	}
	if _, err := time.Parse("15:04", timeOfDay); err != nil {
		return "", fmt.Errorf("malformed time %q", timeOfDay)
	}
	return fmt.Sprintf("%s %s * * *", parts[1], parts[0]), nil
}
