package crcon

// Ban is a temporary ban as reported by the remote server.
type Ban struct {
	PlayerID string
	Reason   string
	BanTime  string
}

// ScheduledJob is one named entry in the remote ping schedule. Time is a
// zero-padded 24h "HH:MM" string.
type ScheduledJob struct {
	Name string `json:"name"`
	Time string `json:"time"`
	Ping int    `json:"max_ms"`
}

// envelope is CRCON's standard response wrapper.
type envelope struct {
	Failed bool   `json:"failed"`
	Error  string `json:"error"`
}

type banDTO struct {
	PlayerID string `json:"player_id"`
	Type     string `json:"type"`
	Reason   string `json:"reason"`
	BanTime  string `json:"ban_time"`
}

type bansResponse struct {
	envelope
	Result []banDTO `json:"result"`
}

type serverSettingsResponse struct {
	envelope
	Result struct {
		MaxPingAutokick *int `json:"max_ping_autokick"`
	} `json:"result"`
}

type playerProfileResponse struct {
	envelope
	Result struct {
		Names []struct {
			Name     string `json:"name"`
			LastSeen string `json:"last_seen"`
		} `json:"names"`
	} `json:"result"`
}

type scheduleResponse struct {
	envelope
	Result []ScheduledJob `json:"result"`
}
