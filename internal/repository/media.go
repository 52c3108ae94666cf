package repository

import (
	"context"

	"district/internal/model"
)

// MediaRepository defines data access for media records using SQL queries only.
type MediaRepository interface {
	// Create inserts a new media record and returns the stored row.
	Create(ctx context.Context, m *model.Media) (*model.Media, error)

	// FindByID returns a media record by its ID.
	FindByID(ctx context.Context, id string) (*model.Media, error)

	// FindByFilename returns the record stored under the exact filename.
	FindByFilename(ctx context.Context, filename string) (*model.Media, error)

	// ExistsFilename reports whether a record already uses the filename.
	ExistsFilename(ctx context.Context, filename string) (bool, error)

	// List returns a paginated list of media and the total rows count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Media], error)

	// Delete removes a media record by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
