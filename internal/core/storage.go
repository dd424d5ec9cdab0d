package core

import (
	"context"
	"time"
)

// Turn is one persisted message in the conversation log. Only the verbatim
// user message and the model's final answer become Turns; intermediate
// tool-call exchanges stay transient.
type Turn struct {
	ID        int64     `json:"id"`
	Role      string    `json:"role"` // RoleUser or RoleModel
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// MemoryFact is a long-term fact about the user, written only through the
// remember tool. Facts are never updated or deleted.
type MemoryFact struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

type TurnRepository interface {
	AppendTurn(ctx context.Context, turn Turn) error
	// RecentTurns returns up to limit turns in chronological order.
	RecentTurns(ctx context.Context, limit int) ([]Turn, error)
}

type MemoryRepository interface {
	SaveFact(ctx context.Context, fact MemoryFact) (MemoryFact, error)
	// RecentFacts returns up to limit facts, newest first.
	RecentFacts(ctx context.Context, limit int) ([]MemoryFact, error)
}
