package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/netnavi/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"NAVI_RUNTIME_PATH" envDefault:".netnavi"`

	// Context assembly
	HistoryWindow      int `env:"NAVI_HISTORY_WINDOW" envDefault:"20"`
	MemoryWindow       int `env:"NAVI_MEMORY_WINDOW" envDefault:"50"`
	ContextTokenBudget int `env:"NAVI_CONTEXT_TOKEN_BUDGET" envDefault:"4000"`

	// Tool loop guard
	MaxToolIterations int `env:"NAVI_MAX_TOOL_ITERATIONS" envDefault:"10"`

	// Proactive schedule check (off unless a credential is configured)
	ProactiveToken    string        `env:"NAVI_PROACTIVE_TOKEN"`
	ProactiveInterval time.Duration `env:"NAVI_PROACTIVE_INTERVAL" envDefault:"1h"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetSystemPromptPath() string {
	return filepath.Join(c.RuntimePath, "SYSTEM.md")
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "netnavi.db")
}
