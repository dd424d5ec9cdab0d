package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/netnavi/pkg/log"
)

type ServerConfig struct {
	Addr         string        `env:"NAVI_HTTP_ADDR" envDefault:":8686"`
	ReadTimeout  time.Duration `env:"NAVI_HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout time.Duration `env:"NAVI_HTTP_WRITE_TIMEOUT" envDefault:"5m"`
	SessionTTL   time.Duration `env:"NAVI_SESSION_TTL" envDefault:"1h"`
}

func NewServerConfig(ctx context.Context) *ServerConfig {
	c := &ServerConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Server config")
	}
	return c
}
