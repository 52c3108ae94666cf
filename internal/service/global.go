package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"district/internal/cache"
	"district/internal/content"
	"district/internal/logger"
	"district/internal/model"
	"district/internal/repository"
)

// GlobalService serves CMS globals with every documented field present.
type GlobalService interface {
	// Get returns the defaulted, media-normalized document. Store failures degrade to
	// the all-defaults document rather than an error.
	Get(ctx context.Context, slug string) (content.Node, error)

	// Exists reports whether the global has been saved at least once.
	Exists(ctx context.Context, slug string) (bool, error)

	// Update replaces the stored document and returns its defaulted view.
	Update(ctx context.Context, slug string, data content.Node) (content.Node, error)
}

type globalService struct {
	repo      repository.GlobalRepository
	cache     cache.GlobalCache
	log       logger.Logger
	mediaBase string
}

// NewGlobalService constructs a GlobalService. A nil cache disables caching.
func NewGlobalService(repo repository.GlobalRepository, c cache.GlobalCache, log logger.Logger, mediaBase string) GlobalService {
	if c == nil {
		c = cache.NewNop()
	}
	return &globalService{
		repo:      repo,
		cache:     c,
		log:       log.With(logger.String("component", "globals")),
		mediaBase: mediaBase,
	}
}

func (s *globalService) Get(ctx context.Context, slug string) (content.Node, error) {
	schema, ok := content.Lookup(slug)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGlobal, slug)
	}
	return s.render(schema, s.fetch(ctx, slug)), nil
}

// fetch returns the raw document or nil. Cache problems fall through to the repository;
// repository problems fall through to nil.
func (s *globalService) fetch(ctx context.Context, slug string) content.Node {
	data, hit, err := s.cache.Get(ctx, slug)
	if err != nil {
		s.log.Warn("global_cache_get_failed", logger.String("slug", slug), logger.Error(err))
	}
	if hit {
		return data
	}

	g, err := s.repo.Find(ctx, slug)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Error("global_fetch_failed", logger.String("slug", slug), logger.Error(err))
		}
		return nil
	}

	if err := s.cache.Set(ctx, slug, g.Data); err != nil {
		s.log.Warn("global_cache_set_failed", logger.String("slug", slug), logger.Error(err))
	}
	return g.Data
}

func (s *globalService) render(schema content.Schema, raw content.Node) content.Node {
	return content.NormalizeMedia(schema, content.WithDefaults(schema, raw), s.mediaBase)
}

func (s *globalService) Exists(ctx context.Context, slug string) (bool, error) {
	if _, ok := content.Lookup(slug); !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownGlobal, slug)
	}
	_, err := s.repo.Find(ctx, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *globalService) Update(ctx context.Context, slug string, data content.Node) (content.Node, error) {
	schema, ok := content.Lookup(slug)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGlobal, slug)
	}
	if data == nil {
		data = content.Node{}
	}

	stored, err := s.repo.Upsert(ctx, &model.Global{
		Slug:      slug,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("save global %s: %w", slug, err)
	}
	if err := s.cache.Delete(ctx, slug); err != nil {
		s.log.Warn("global_cache_invalidate_failed", logger.String("slug", slug), logger.Error(err))
	}
	return s.render(schema, stored.Data), nil
}
