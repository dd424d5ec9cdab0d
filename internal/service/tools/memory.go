package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sandevgo/netnavi/internal/core"
	"github.com/sandevgo/netnavi/internal/service/session"
	"github.com/sandevgo/netnavi/pkg/log"
)

const rememberSchema = `{
  "type": "object",
  "properties": {
    "info": { "type": "string", "description": "保存する記憶の内容" },
    "category": { "type": "string", "description": "記憶のカテゴリ (user_preference, work, hobby, relationship, other)" }
  },
  "required": ["info"]
}`

// Remember appends one fact to the long-term memory store. No credential
// needed: memory is local state.
type Remember struct {
	memories core.MemoryRepository
}

func NewRemember(memories core.MemoryRepository) *Remember {
	return &Remember{memories: memories}
}

func (t *Remember) Declaration() core.FunctionDeclaration {
	return core.FunctionDeclaration{
		Name:        "remember",
		Description: "ユーザーに関する重要な情報を長期記憶に保存します。好み、仕事、人間関係、将来の目標など、忘れてはいけない情報を保存してください。",
		Parameters:  json.RawMessage(rememberSchema),
	}
}

type rememberArgs struct {
	Info     string `json:"info"`
	Category string `json:"category"`
}

func (t *Remember) Execute(ctx context.Context, args map[string]any, _ *session.Session) map[string]any {
	var in rememberArgs
	if errResult := decodeArgs("remember", args, &in); errResult != nil {
		return errResult
	}
	if in.Info == "" {
		return missingArgs("remember", "info")
	}

	category := in.Category
	if category == "" {
		category = "general"
	}

	fact, err := t.memories.SaveFact(ctx, core.MemoryFact{Content: in.Info, Category: category})
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to save memory fact")
		return map[string]any{"error": fmt.Sprintf("Failed to save memory: %v", err)}
	}

	return map[string]any{
		"result": "Memory saved",
		"memory": fact,
	}
}
