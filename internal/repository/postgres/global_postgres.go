package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"district/internal/model"
	"district/internal/repository"
)

// GlobalPostgres stores globals as JSONB documents keyed by slug.
type GlobalPostgres struct {
	db *sql.DB
}

// NewGlobalPostgres creates a new GlobalPostgres repository.
func NewGlobalPostgres(db *sql.DB) *GlobalPostgres {
	return &GlobalPostgres{db: db}
}

var _ repository.GlobalRepository = (*GlobalPostgres)(nil)

// Find returns the global stored under slug. A missing row surfaces as sql.ErrNoRows.
func (r *GlobalPostgres) Find(ctx context.Context, slug string) (*model.Global, error) {
	const q = `SELECT slug, data, updated_at FROM globals WHERE slug = $1`
	return scanGlobal(r.db.QueryRowContext(ctx, q, slug))
}

// Upsert writes the global's data, replacing any previous document.
func (r *GlobalPostgres) Upsert(ctx context.Context, g *model.Global) (*model.Global, error) {
	data, err := json.Marshal(g.Data)
	if err != nil {
		return nil, fmt.Errorf("encode global %s: %w", g.Slug, err)
	}
	const q = `
		INSERT INTO globals (slug, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
		RETURNING slug, data, updated_at
	`
	return scanGlobal(r.db.QueryRowContext(ctx, q, g.Slug, data, g.UpdatedAt))
}

func scanGlobal(s scanner) (*model.Global, error) {
	var (
		g   model.Global
		raw []byte
	)
	if err := s.Scan(&g.Slug, &raw, &g.UpdatedAt); err != nil {
		return nil, err
	}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &g.Data); err != nil {
			return nil, fmt.Errorf("decode global %s: %w", g.Slug, err)
		}
	}
	return &g, nil
}
