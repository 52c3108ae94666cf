package postgres

import (
	"context"
	"database/sql"

	"district/internal/model"
	"district/internal/repository"
)

// MediaPostgres is a PostgreSQL implementation of repository.MediaRepository.
type MediaPostgres struct {
	db *sql.DB
}

// NewMediaPostgres creates a new MediaPostgres repository.
func NewMediaPostgres(db *sql.DB) *MediaPostgres {
	return &MediaPostgres{db: db}
}

var _ repository.MediaRepository = (*MediaPostgres)(nil)

const mediaColumns = `id, filename, storage_path, size, content_type, alt, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanMedia(s scanner) (*model.Media, error) {
	var m model.Media
	if err := s.Scan(
		&m.ID,
		&m.Filename,
		&m.StoragePath,
		&m.Size,
		&m.ContentType,
		&m.Alt,
		&m.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new media row and returns the stored record.
func (r *MediaPostgres) Create(ctx context.Context, m *model.Media) (*model.Media, error) {
	const q = `
		INSERT INTO media (id, filename, storage_path, size, content_type, alt, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + mediaColumns
	row := r.db.QueryRowContext(ctx, q,
		m.ID,
		m.Filename,
		m.StoragePath,
		m.Size,
		m.ContentType,
		m.Alt,
		m.CreatedAt,
	)
	return scanMedia(row)
}

// FindByID fetches a single media record by its ID.
func (r *MediaPostgres) FindByID(ctx context.Context, id string) (*model.Media, error) {
	const q = `SELECT ` + mediaColumns + ` FROM media WHERE id = $1`
	return scanMedia(r.db.QueryRowContext(ctx, q, id))
}

// FindByFilename fetches a single media record by its exact filename.
func (r *MediaPostgres) FindByFilename(ctx context.Context, filename string) (*model.Media, error) {
	const q = `SELECT ` + mediaColumns + ` FROM media WHERE filename = $1`
	return scanMedia(r.db.QueryRowContext(ctx, q, filename))
}

// ExistsFilename reports whether a media row already uses filename.
func (r *MediaPostgres) ExistsFilename(ctx context.Context, filename string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM media WHERE filename = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, filename).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// List returns media using LIMIT/OFFSET pagination and a total count.
func (r *MediaPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Media], error) {
	const qCount = `SELECT COUNT(*) FROM media`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + mediaColumns + `
		FROM media
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Media, 0)
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Media]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes a media row by ID. It does not return an error if the row does not exist.
func (r *MediaPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM media WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
