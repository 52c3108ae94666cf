package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"district/internal/media"
	"district/internal/model"
	"district/internal/repository"
	"district/internal/storage"
)

const (
	// maxVariants bounds the search for a free "-N" filename.
	maxVariants    = 1000
	presignExpiry  = 15 * time.Minute
	defaultLimit   = 10
	objectKeyspace = "media"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// MediaListResult is the service-level DTO for paginated media.
type MediaListResult struct {
	Items []model.Media `json:"data"`
	Total int           `json:"total"`
}

// MediaService defines the use cases for uploaded media.
type MediaService interface {
	// Upload stores the binary and records it under a unique filename derived from
	// originalFilename. The object is removed again if the record cannot be saved.
	Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64, alt string) (*model.Media, error)

	// List returns media using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*MediaListResult, error)

	// Get returns a single media record by its ID.
	Get(ctx context.Context, id string) (*model.Media, error)

	// Delete removes a media record and its binary.
	Delete(ctx context.Context, id string) error

	// Lookup finds the record standing for filename, tolerating "-N" variants.
	Lookup(ctx context.Context, filename string) (*model.Media, error)

	// Locate returns a short-lived download URL for the record stored under filename.
	Locate(ctx context.Context, filename string) (string, error)

	// Open streams the binary of the record with the given ID. The caller closes the reader.
	Open(ctx context.Context, id string) (io.ReadCloser, *model.Media, error)
}

type mediaService struct {
	store       storage.Storage
	repo        repository.MediaRepository
	lookupLimit int
}

// NewMediaService constructs a MediaService. lookupLimit bounds how many records Lookup scans.
func NewMediaService(store storage.Storage, repo repository.MediaRepository, lookupLimit int) MediaService {
	if lookupLimit <= 0 {
		lookupLimit = 1000
	}
	return &mediaService{store: store, repo: repo, lookupLimit: lookupLimit}
}

// SanitizeFilename keeps the last path element of name and replaces characters that are
// awkward in URLs with dashes.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	name = strings.TrimSpace(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")
	return name
}

func (s *mediaService) Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64, alt string) (*model.Media, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	name := SanitizeFilename(originalFilename)
	if name == "" {
		return nil, ErrFilenameRequired
	}

	filename, err := s.freeFilename(ctx, name)
	if err != nil {
		return nil, err
	}

	key := objectKeyspace + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	rec := &model.Media{
		ID:          uuid.NewString(),
		Filename:    filename,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: contentType,
		Alt:         alt,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, rec)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// freeFilename returns name or its first "-N" variant not used by another record.
func (s *mediaService) freeFilename(ctx context.Context, name string) (string, error) {
	for n := 1; n <= maxVariants; n++ {
		candidate := name
		if n > 1 {
			candidate = media.Variant(name, n)
		}
		taken, err := s.repo.ExistsFilename(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check filename %s: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNameExhausted, name)
}

func (s *mediaService) List(ctx context.Context, limit, offset int) (*MediaListResult, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &MediaListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *mediaService) Get(ctx context.Context, id string) (*model.Media, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// Delete removes the binary first; if that fails the record is kept so the object is
// not orphaned.
func (s *mediaService) Delete(ctx context.Context, id string) error {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, rec.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *mediaService) Lookup(ctx context.Context, filename string) (*model.Media, error) {
	if filename == "" {
		return nil, ErrFilenameRequired
	}
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: s.lookupLimit})
	if err != nil {
		return nil, err
	}
	rec, ok := media.PickLatest(res.Items, filename)
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *mediaService) Locate(ctx context.Context, filename string) (string, error) {
	if filename == "" {
		return "", ErrFilenameRequired
	}
	rec, err := s.repo.FindByFilename(ctx, filename)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	if _, err := s.store.Stat(ctx, rec.StoragePath); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("stat %s: %w", rec.StoragePath, err)
	}
	u, err := s.store.PresignGet(ctx, rec.StoragePath, presignExpiry)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", rec.StoragePath, err)
	}
	return u, nil
}

func (s *mediaService) Open(ctx context.Context, id string) (io.ReadCloser, *model.Media, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.store.Get(ctx, rec.StoragePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("get %s: %w", rec.StoragePath, err)
	}
	return rc, rec, nil
}
