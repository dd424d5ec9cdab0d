// Package tools hosts the assistant's tool handlers and the flat dispatch
// table the orchestration loop calls into. Every handler validates its own
// argument shape at the boundary and reports failures as ToolResult error
// maps, never as Go errors: the model is expected to relay them
// conversationally.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sandevgo/netnavi/internal/core"
	"github.com/sandevgo/netnavi/internal/service/session"
	"github.com/sandevgo/netnavi/pkg/log"
)

// noResponseResult is the uniform fallback for tool names the model invents.
const noResponseResult = "No response from tool"

// Handler executes one named tool. The returned map is fed back to the
// model verbatim as the function response.
type Handler interface {
	Declaration() core.FunctionDeclaration
	Execute(ctx context.Context, args map[string]any, sess *session.Session) map[string]any
}

type Registry struct {
	handlers map[string]Handler
	order    []string
}

func NewRegistry(handlers ...Handler) *Registry {
	r := &Registry{handlers: make(map[string]Handler, len(handlers))}
	for _, h := range handlers {
		name := h.Declaration().Name
		r.handlers[name] = h
		r.order = append(r.order, name)
	}
	return r
}

// Declarations lists the tool schemas in registration order, for the model
// configuration built once at startup.
func (r *Registry) Declarations() []core.FunctionDeclaration {
	decls := make([]core.FunctionDeclaration, 0, len(r.order))
	for _, name := range r.order {
		decls = append(decls, r.handlers[name].Declaration())
	}
	return decls
}

// Dispatch routes a single model-requested invocation by name.
func (r *Registry) Dispatch(ctx context.Context, call core.FunctionCall, sess *session.Session) map[string]any {
	h, ok := r.handlers[call.Name]
	if !ok {
		log.FromCtx(ctx).Warn().Str("tool", call.Name).Msg("model requested unknown tool")
		return map[string]any{"error": noResponseResult}
	}
	return h.Execute(ctx, call.Args, sess)
}

// decodeArgs re-marshals the untyped argument map into the handler's typed
// struct. Type mismatches surface here instead of being forwarded to the
// collaborators as zero values.
func decodeArgs(name string, args map[string]any, dst any) map[string]any {
	raw, err := json.Marshal(args)
	if err != nil {
		return invalidArgs(name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return invalidArgs(name, err)
	}
	return nil
}

func invalidArgs(name string, err error) map[string]any {
	return map[string]any{"error": fmt.Sprintf("invalid arguments for %s: %v", name, err)}
}

func missingArgs(name string, fields string) map[string]any {
	return map[string]any{"error": fmt.Sprintf("invalid arguments for %s: missing required %s", name, fields)}
}
