package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/netnavi/pkg/log"
)

// GoogleConfig holds the REST endpoints for the Calendar and Gmail wrappers.
// Overridable so tests can point the clients at a local server.
type GoogleConfig struct {
	CalendarBaseURL string `env:"NAVI_CALENDAR_BASE_URL" envDefault:"https://www.googleapis.com/calendar/v3"`
	GmailBaseURL    string `env:"NAVI_GMAIL_BASE_URL" envDefault:"https://gmail.googleapis.com/gmail/v1"`
}

func NewGoogleConfig(ctx context.Context) *GoogleConfig {
	c := &GoogleConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Google config")
	}
	return c
}
