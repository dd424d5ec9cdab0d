package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sandevgo/netnavi/internal/core"
)

// Gemini talks to the generativelanguage generateContent endpoint. The
// system prompt and tool declarations are fixed at construction time and
// shared by every chat session.
type Gemini struct {
	baseProvider
	systemPrompt string
	tools        []core.FunctionDeclaration
}

type GeminiConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	SystemPrompt string
	Tools        []core.FunctionDeclaration
}

func NewGemini(cfg GeminiConfig) *Gemini {
	return &Gemini{
		baseProvider: newBaseProvider(cfg.BaseURL, cfg.APIKey, cfg.Model),
		systemPrompt: cfg.SystemPrompt,
		tools:        cfg.Tools,
	}
}

type geminiTool struct {
	FunctionDeclarations []core.FunctionDeclaration `json:"functionDeclarations"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	SystemInstruction *core.Content     `json:"systemInstruction,omitempty"`
	Contents          []core.Content    `json:"contents"`
	Tools             []geminiTool      `json:"tools,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

// StartChat opens a session seeded with prior conversation turns. The
// transcript grows in memory only; persistence is the caller's concern.
func (g *Gemini) StartChat(history []core.Content) core.ChatSession {
	contents := make([]core.Content, len(history))
	copy(contents, history)
	return &chatSession{g: g, contents: contents}
}

type chatSession struct {
	g        *Gemini
	contents []core.Content
}

func (s *chatSession) Send(ctx context.Context, parts ...core.Part) (core.Content, error) {
	s.contents = append(s.contents, core.Content{Role: core.RoleUser, Parts: parts})

	req := generateRequest{
		Contents: s.contents,
	}
	if s.g.systemPrompt != "" {
		req.SystemInstruction = &core.Content{Parts: []core.Part{{Text: s.g.systemPrompt}}}
	}
	if len(s.g.tools) > 0 {
		req.Tools = []geminiTool{{FunctionDeclarations: s.g.tools}}
	}

	reply, err := s.g.generate(ctx, req)
	if err != nil {
		// Keep the transcript consistent: drop the message that failed.
		s.contents = s.contents[:len(s.contents)-1]
		return core.Content{}, err
	}

	s.contents = append(s.contents, reply)
	return reply, nil
}

// GenerateJSON runs a single constrained-output completion against the same
// model and returns the raw JSON text.
func (g *Gemini) GenerateJSON(ctx context.Context, systemPrompt, prompt string, schema json.RawMessage) ([]byte, error) {
	req := generateRequest{
		Contents: []core.Content{core.TextContent(core.RoleUser, prompt)},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	}
	if systemPrompt != "" {
		req.SystemInstruction = &core.Content{Parts: []core.Part{{Text: systemPrompt}}}
	}

	reply, err := g.generate(ctx, req)
	if err != nil {
		return nil, err
	}
	return []byte(reply.Text()), nil
}

func (g *Gemini) generate(ctx context.Context, payload generateRequest) (core.Content, error) {
	path := fmt.Sprintf("/v1beta/models/%s:generateContent", g.model)
	headers := map[string]string{
		"x-goog-api-key": g.apiKey,
	}

	resp, err := g.doRequest(ctx, http.MethodPost, path, payload, headers)
	if err != nil {
		return core.Content{}, err
	}
	defer resp.Body.Close()

	return parseGenerateResponse(resp)
}

func parseGenerateResponse(resp *http.Response) (core.Content, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.Content{}, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return core.Content{}, fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var result struct {
		Candidates []struct {
			Content core.Content `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return core.Content{}, fmt.Errorf("decode: %w", err)
	}
	if len(result.Candidates) == 0 {
		return core.Content{}, fmt.Errorf("empty candidates: %s", string(data))
	}
	return result.Candidates[0].Content, nil
}
