package config

import (
	"strings"
	"time"
)

// -----------------------------------------------------------------------------
// Environment table
// -----------------------------------------------------------------------------

// Mode is the build mode the client runs in.
type Mode string

const (
	Development Mode = "development"
	Production  Mode = "production"
)

// Environment holds the backend address of one mode.
type Environment struct {
	BaseURL string
	Timeout time.Duration
}

// Environments is the static fallback table used when no override is given.
var Environments = map[Mode]Environment{
	Development: {
		BaseURL: "http://localhost:8000",
		Timeout: 30 * time.Second,
	},
	Production: {
		BaseURL: "https://k-stock-backend.onrender.com",
		Timeout: 30 * time.Second,
	},
}

// -----------------------------------------------------------------------------

// ParseMode maps a mode string to a Mode. Anything that is not production
// runs as development.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "production", "prod":
		return Production
	default:
		return Development
	}
}

// -----------------------------------------------------------------------------

// ResolveBaseURL returns the override verbatim when it is non-empty, the table
// entry for mode otherwise.
func ResolveBaseURL(mode Mode, override string) string {
	if override != "" {
		return override
	}
	env, ok := Environments[mode]
	if !ok {
		env = Environments[Development]
	}
	return env.BaseURL
}
