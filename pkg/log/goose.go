package log

import (
	"context"

	"github.com/rs/zerolog"
)

// GooseLogger routes goose migration output through the context logger.
// Per-migration status lines repeat on every boot, so they log at debug;
// only a failed migration is loud.
type GooseLogger struct {
	logger *zerolog.Logger
}

func NewGooseLoggerFromCtx(ctx context.Context) *GooseLogger {
	return &GooseLogger{logger: FromCtx(ctx)}
}

func (g *GooseLogger) Fatalf(format string, v ...any) {
	g.logger.Fatal().Msgf(format, v...)
}

func (g *GooseLogger) Printf(format string, v ...any) {
	g.logger.Debug().Msgf(format, v...)
}
