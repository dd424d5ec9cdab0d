package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/netnavi/internal/core"
)

// MemoriesRepo is the append-only long-term memory store. Facts are written
// through the remember tool only and never updated or deleted.
type MemoriesRepo struct {
	db *sql.DB
}

func NewMemoriesRepo(db *sql.DB) *MemoriesRepo {
	return &MemoriesRepo{db: db}
}

func (r *MemoriesRepo) SaveFact(ctx context.Context, fact core.MemoryFact) (core.MemoryFact, error) {
	if fact.Category == "" {
		fact.Category = "general"
	}
	if fact.CreatedAt.IsZero() {
		fact.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO memories (content, category, created_at) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, fact.Content, fact.Category, fact.CreatedAt)
	if err != nil {
		return core.MemoryFact{}, fmt.Errorf("failed to insert memory: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.MemoryFact{}, err
	}
	fact.ID = id

	return fact, nil
}

func (r *MemoriesRepo) RecentFacts(ctx context.Context, limit int) ([]core.MemoryFact, error) {
	query := `SELECT id, content, category, created_at FROM memories ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query memories: %w", err)
	}
	defer rows.Close()

	var facts []core.MemoryFact
	for rows.Next() {
		var f core.MemoryFact
		if err := rows.Scan(&f.ID, &f.Content, &f.Category, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan memory: %w", err)
		}
		facts = append(facts, f)
	}

	return facts, rows.Err()
}
