package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/netnavi/internal/core"
	"github.com/sandevgo/netnavi/pkg/log"
)

var (
	tk     *tiktoken.Tiktoken
	tkErr  error
	tkOnce sync.Once
)

func getTokenizer() (*tiktoken.Tiktoken, error) {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding("cl100k_base")
	})
	return tk, tkErr
}

// countTokens falls back to bytes/4 when the encoding cannot load; the
// budget is a soft cap, not a contract.
func countTokens(text string) int {
	enc, err := getTokenizer()
	if err != nil {
		return len(text) / 4
	}
	return len(enc.Encode(text, nil, nil))
}

// buildHistory converts the persisted turns into model history, oldest first.
func (a *Agent) buildHistory(ctx context.Context) ([]core.Content, error) {
	turns, err := a.turns.RecentTurns(ctx, a.historyWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}

	history := make([]core.Content, 0, len(turns))
	for _, t := range turns {
		history = append(history, core.TextContent(t.Role, t.Text))
	}
	return history, nil
}

// buildPreamble renders the per-request context block prepended to the user
// message: known facts about the user, the current date, and whether Google
// access is available this session.
func (a *Agent) buildPreamble(ctx context.Context, hasGoogleAccess bool) string {
	var b strings.Builder

	b.WriteString("今日の日付: " + a.now().Format("2006-01-02 (Mon)") + "\n")
	if hasGoogleAccess {
		b.WriteString("GoogleカレンダーとGmailへのアクセス: 利用可能\n")
	} else {
		b.WriteString("GoogleカレンダーとGmailへのアクセス: 未ログインのため利用不可\n")
	}

	if block := a.buildMemoryBlock(ctx); block != "" {
		b.WriteString("\nユーザーについて覚えていること:\n")
		b.WriteString(block)
	}

	return b.String()
}

// buildMemoryBlock renders recent facts newest-first, trimmed to the token
// budget. A failed read degrades to no memory rather than failing the chat.
func (a *Agent) buildMemoryBlock(ctx context.Context) string {
	facts, err := a.memories.RecentFacts(ctx, a.memoryWindow)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to fetch memory facts")
		return ""
	}

	var b strings.Builder
	budget := a.tokenBudget
	for _, f := range facts {
		line := fmt.Sprintf("- [%s] %s (%s)\n", f.Category, f.Content, f.CreatedAt.Format(time.DateOnly))
		cost := countTokens(line)
		if cost > budget {
			break
		}
		budget -= cost
		b.WriteString(line)
	}
	return b.String()
}
