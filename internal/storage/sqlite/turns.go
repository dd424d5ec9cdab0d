package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/netnavi/internal/core"
	"github.com/sandevgo/netnavi/pkg/log"
)

// TurnsRepo is the conversation log. Appends are not serialized across
// concurrent requests; two in-flight chats may interleave their turns
// (best-effort ordering by capture timestamp).
type TurnsRepo struct {
	db *sql.DB
}

func NewTurnsRepo(db *sql.DB) *TurnsRepo {
	return &TurnsRepo{db: db}
}

func (r *TurnsRepo) AppendTurn(ctx context.Context, turn core.Turn) error {
	ts := turn.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	query := `INSERT INTO turns (role, text, timestamp) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, turn.Role, turn.Text, ts); err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

func (r *TurnsRepo) RecentTurns(ctx context.Context, limit int) ([]core.Turn, error) {
	// Fetch the LAST 'limit' turns by ordering DESC, then flip back.
	query := `SELECT id, role, text, timestamp FROM turns ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []core.Turn
	for rows.Next() {
		var t core.Turn
		if err := rows.Scan(&t.ID, &t.Role, &t.Text, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Back to chronological order for the model context.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(turns)).Msg("loaded history turns")
	return turns, nil
}
