package config

import "time"

func (c *Config) GetBotToken() string {
	return c.v.GetString("bot_token")
}

func (c *Config) GetCRCONAPIURL() string {
	return c.v.GetString("crcon_api_url")
}

func (c *Config) GetCRCONAPIToken() string {
	return c.v.GetString("crcon_api_token")
}

// GetAnnounceChannelID returns the channel where scheduled ping changes and
// startup notices are posted. Empty disables announcements.
func (c *Config) GetAnnounceChannelID() string {
	return c.v.GetString("announce_channel_id")
}

// GetLocation returns the timezone used to interpret schedule times.
// Falls back to UTC if the configured name is invalid.
func (c *Config) GetLocation() *time.Location {
	name := c.v.GetString("timezone")
	loc, err := time.LoadLocation(name)
	if err != nil {
		c.Logger.Warnf("invalid timezone %q, defaulting to UTC", name)
		return time.UTC
	}
	return loc
}

// GetScheduledPing returns the ping value the pingsetter process pushes.
func (c *Config) GetScheduledPing() int {
	return c.v.GetInt("scheduled_ping")
}

// GetStatsDBURL returns the CRCON stats database DSN. Empty disables
// the /playerstats command.
func (c *Config) GetStatsDBURL() string {
	return c.v.GetString("stats_db_url")
}

func (c *Config) GetLogDir() string {
	return c.v.GetString("log_dir")
}
