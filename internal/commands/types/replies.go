package types

import (
	"errors"

	"pingpal/internal/crcon"
)

// ErrorReply converts a crcon error into a user-readable reply. Each error
// class gets a distinct message so users can tell bad input, an unreachable
// server, and a server-side failure apart.
func ErrorReply(err error) string {
	var invalid *crcon.InvalidArgumentError
	var conn *crcon.ConnectionError
	var api *crcon.APIError

	switch {
	case errors.As(err, &invalid):
		return "⚠️ " + invalid.Reason + "."
	case errors.As(err, &conn):
		return "❌ Could not reach the CRCON server. Try again later."
	case errors.Is(err, crcon.ErrNotFound):
		return "⚠️ Not found."
	case errors.As(err, &api):
		return "❌ The CRCON server returned an error."
	default:
		return "❌ Something went wrong."
	}
}
