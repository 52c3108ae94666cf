package repository

import (
	"context"

	"district/internal/model"
)

// GlobalRepository stores singleton content documents keyed by slug.
type GlobalRepository interface {
	// Find returns the stored global or sql.ErrNoRows when it was never saved.
	Find(ctx context.Context, slug string) (*model.Global, error)

	// Upsert inserts or replaces the global's data.
	Upsert(ctx context.Context, g *model.Global) (*model.Global, error)
}
