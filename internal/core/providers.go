package core

import (
	"context"
	"encoding/json"
)

// ChatSession is one ongoing exchange with the model. Sending a message
// appends it (and the model's reply) to the session transcript.
type ChatSession interface {
	Send(ctx context.Context, parts ...Part) (Content, error)
}

// ChatModel is a conversational model with function calling. The system
// prompt and tool declarations are fixed at construction time.
type ChatModel interface {
	StartChat(history []Content) ChatSession
}

// JSONGenerator produces a single constrained-output completion matching
// the given JSON schema.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, systemPrompt, prompt string, schema json.RawMessage) ([]byte, error)
}

// CalendarEvent mirrors the Google Calendar wire shape. Start and End carry
// either dateTime or date (all-day events).
type CalendarEvent struct {
	ID          string        `json:"id,omitempty"`
	Summary     string        `json:"summary"`
	Description string        `json:"description,omitempty"`
	Location    string        `json:"location,omitempty"`
	Start       EventDateTime `json:"start"`
	End         EventDateTime `json:"end"`
	HTMLLink    string        `json:"htmlLink,omitempty"`
}

type EventDateTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

// When returns whichever of dateTime or date is set.
func (d EventDateTime) When() string {
	if d.DateTime != "" {
		return d.DateTime
	}
	return d.Date
}

type Calendar interface {
	ListEvents(ctx context.Context, token, timeMin, timeMax string) ([]CalendarEvent, error)
	CreateEvent(ctx context.Context, token string, event CalendarEvent) (CalendarEvent, error)
}

// Email is a fetched and decoded Gmail message.
type Email struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	From    string `json:"from"`
	Date    string `json:"date"`
	Snippet string `json:"snippet"`
	Body    string `json:"body"`
}

type Mail interface {
	ListMessages(ctx context.Context, token, query string, maxResults int) ([]string, error)
	GetMessage(ctx context.Context, token, id string) (Email, error)
	SendMessage(ctx context.Context, token, to, subject, body string) error
}
