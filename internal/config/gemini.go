package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/netnavi/pkg/log"
)

type GeminiConfig struct {
	APIKey  string `env:"NAVI_GEMINI_API_KEY,required,notEmpty"`
	Model   string `env:"NAVI_GEMINI_MODEL" envDefault:"gemini-2.0-flash-001"`
	BaseURL string `env:"NAVI_GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
}

func NewGeminiConfig(ctx context.Context) *GeminiConfig {
	c := &GeminiConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Gemini config")
	}
	return c
}
