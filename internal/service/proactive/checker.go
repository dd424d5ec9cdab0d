// Package proactive runs the periodic schedule check: when a long-lived
// Google credential is configured, it pushes a fixed prompt through the
// agent on an interval so the assistant surfaces upcoming events without
// being asked.
package proactive

import (
	"context"
	"time"

	"github.com/sandevgo/netnavi/internal/config"
	"github.com/sandevgo/netnavi/internal/service/session"
	"github.com/sandevgo/netnavi/pkg/log"
)

const checkPrompt = "今日と明日の予定を確認して、準備が必要なものがあれば教えてください。"

type Responder interface {
	Respond(ctx context.Context, sess *session.Session, message string) (string, error)
}

type Checker struct {
	agent    Responder
	token    string
	interval time.Duration
}

func NewChecker(appCfg *config.AppConfig, agent Responder) *Checker {
	return &Checker{
		agent:    agent,
		token:    appCfg.ProactiveToken,
		interval: appCfg.ProactiveInterval,
	}
}

// Enabled reports whether a credential is configured. Without one the
// checker never starts.
func (c *Checker) Enabled() bool {
	return c.token != ""
}

func (c *Checker) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Dur("interval", c.interval).Msg("starting proactive schedule checker")

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := c.check(ctx); err != nil {
				logger.Error().Err(err).Msg("proactive check failed")
			}
		}
	}
}

func (c *Checker) Shutdown(ctx context.Context) error {
	return nil
}

func (c *Checker) check(ctx context.Context) error {
	sess := &session.Session{ID: "proactive", AccessToken: c.token}

	answer, err := c.agent.Respond(ctx, sess, checkPrompt)
	if err != nil {
		return err
	}

	log.FromCtx(ctx).Info().Str("answer", answer).Msg("proactive schedule check")
	return nil
}
