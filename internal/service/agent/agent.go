// Package agent runs the conversation: it assembles the model context,
// drives the function-calling loop against the tool registry, and persists
// the exchange once the model settles on a final answer.
package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/netnavi/internal/config"
	"github.com/sandevgo/netnavi/internal/core"
	"github.com/sandevgo/netnavi/internal/service/session"
	"github.com/sandevgo/netnavi/internal/service/tools"
	"github.com/sandevgo/netnavi/pkg/log"
)

// ErrToolLoopExceeded is returned when the model keeps requesting tools
// past the iteration cap instead of producing an answer.
var ErrToolLoopExceeded = errors.New("tool loop exceeded")

type Agent struct {
	model    core.ChatModel
	registry *tools.Registry
	turns    core.TurnRepository
	memories core.MemoryRepository

	historyWindow int
	memoryWindow  int
	tokenBudget   int
	maxIterations int

	now func() time.Time
}

func NewAgent(
	appCfg *config.AppConfig,
	model core.ChatModel,
	registry *tools.Registry,
	turns core.TurnRepository,
	memories core.MemoryRepository,
) *Agent {
	return &Agent{
		model:         model,
		registry:      registry,
		turns:         turns,
		memories:      memories,
		historyWindow: appCfg.HistoryWindow,
		memoryWindow:  appCfg.MemoryWindow,
		tokenBudget:   appCfg.ContextTokenBudget,
		maxIterations: appCfg.MaxToolIterations,
		now:           time.Now,
	}
}

// Respond handles one user message end to end and returns the model's final
// answer. The verbatim user message and the final answer are persisted as a
// pair only after the tool loop completes; intermediate tool exchanges are
// never written.
func (a *Agent) Respond(ctx context.Context, sess *session.Session, message string) (string, error) {
	logger := log.FromCtx(ctx)

	history, err := a.buildHistory(ctx)
	if err != nil {
		return "", err
	}

	chat := a.model.StartChat(history)

	preamble := a.buildPreamble(ctx, sess.HasGoogleAccess())
	parts := []core.Part{{Text: preamble + "\n" + message}}

	var reply core.Content
	for i := 0; ; i++ {
		if i >= a.maxIterations {
			logger.Error().Int("iterations", i).Msg("model never produced a final answer")
			return "", ErrToolLoopExceeded
		}

		reply, err = chat.Send(ctx, parts...)
		if err != nil {
			return "", fmt.Errorf("model call failed: %w", err)
		}

		calls := reply.FunctionCalls()
		if len(calls) == 0 {
			break
		}

		// Only the first requested call is executed per iteration.
		call := calls[0]
		if len(calls) > 1 {
			logger.Debug().Int("dropped", len(calls)-1).Msg("ignoring extra tool calls in batch")
		}
		logger.Info().Str("tool", call.Name).Msg("executing tool")

		result := a.registry.Dispatch(ctx, call, sess)
		parts = []core.Part{{FunctionResponse: &core.FunctionResponse{
			Name:     call.Name,
			Response: result,
		}}}
	}

	answer := reply.Text()

	if err := a.turns.AppendTurn(ctx, core.Turn{Role: core.RoleUser, Text: message}); err != nil {
		return "", fmt.Errorf("failed to save user turn: %w", err)
	}
	if err := a.turns.AppendTurn(ctx, core.Turn{Role: core.RoleModel, Text: answer}); err != nil {
		return "", fmt.Errorf("failed to save model turn: %w", err)
	}

	return answer, nil
}
