package core

import "encoding/json"

const (
	NaviName          = "NetNavi"
	NaviUserAgent     = "NetNavi-Agent/0.1"
	NaviRepositoryURL = "https://github.com/sandevgo/netnavi"
	NaviVersion       = "0.1.0"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// FunctionDeclaration describes a callable tool to the model.
type FunctionDeclaration struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"` // JSON Schema
}

// FunctionCall is a tool invocation requested by the model.
type FunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// FunctionResponse carries a tool result back into the same exchange.
type FunctionResponse struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

// Part is one element of a content message. Exactly one field is set.
type Part struct {
	Text             string            `json:"text,omitempty"`
	FunctionCall     *FunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *FunctionResponse `json:"functionResponse,omitempty"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

func TextContent(role, text string) Content {
	return Content{Role: role, Parts: []Part{{Text: text}}}
}

// FunctionCalls collects the tool invocations requested in this content,
// in the order the model listed them.
func (c Content) FunctionCalls() []FunctionCall {
	var calls []FunctionCall
	for _, p := range c.Parts {
		if p.FunctionCall != nil {
			calls = append(calls, *p.FunctionCall)
		}
	}
	return calls
}

// Text concatenates the textual parts of the content.
func (c Content) Text() string {
	var out string
	for _, p := range c.Parts {
		out += p.Text
	}
	return out
}
