// Package bootstrap wires configuration, persistence, storage and services for the API
// server and the command-line tool.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"district/internal/cache"
	"district/internal/config"
	"district/internal/database"
	"district/internal/database/migration"
	"district/internal/logger"
	"district/internal/media"
	"district/internal/repository"
	"district/internal/repository/postgres"
	"district/internal/service"
	"district/internal/storage"
)

// Deps holds the long-lived dependencies shared by the server and the CLI.
type Deps struct {
	DB         *sql.DB
	Store      storage.Storage
	MediaRepo  repository.MediaRepository
	GlobalRepo repository.GlobalRepository
	Cache      cache.GlobalCache
	Media      service.MediaService
	Globals    service.GlobalService
	Mapping    media.Mapping

	closers []func() error
}

// CreateLogger builds the process logger from configuration.
func CreateLogger(cfg *config.AppConfig) (logger.Logger, error) {
	return logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: !cfg.IsProduction(),
	})
}

// Open connects to Postgres (applying migrations), object storage and the optional
// cache, then builds the services. Call Close when done.
func Open(ctx context.Context, cfg *config.AppConfig, log logger.Logger) (*Deps, error) {
	d := &Deps{}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	d.DB = db
	d.closers = append(d.closers, db.Close)

	if err := migration.EnsureMigrated(ctx, db, log); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	store, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}
	d.Store = store

	mapping, err := media.LoadMapping(cfg.Media.MappingFile)
	if err != nil {
		_ = d.Close()
		return nil, err
	}
	d.Mapping = mapping

	d.Cache = d.setupCache(ctx, cfg.Redis, log)
	d.MediaRepo = postgres.NewMediaPostgres(db)
	d.GlobalRepo = postgres.NewGlobalPostgres(db)
	d.Media = service.NewMediaService(store, d.MediaRepo, cfg.Media.ListLimit)
	d.Globals = service.NewGlobalService(d.GlobalRepo, d.Cache, log, cfg.Media.URLBase)
	return d, nil
}

// Close releases everything Open acquired, in reverse order.
func (d *Deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}
