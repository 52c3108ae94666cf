// Package media keeps the media serving directory consistent with the media records of
// the content store.
package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"district/internal/logger"
	"district/internal/model"
	"district/internal/repository"
)

// Outcome holds the per-run counts. Each record lands in exactly one bucket.
type Outcome struct {
	Copied   int `json:"copied"`
	Skipped  int `json:"skipped"`
	NotFound int `json:"not_found"`
}

// Total is the number of records the run looked at.
func (o Outcome) Total() int {
	return o.Copied + o.Skipped + o.NotFound
}

type result int

const (
	resultCopied result = iota
	resultSkipped
	resultNotFound
)

// Lister lists media records. repository.MediaRepository satisfies it.
type Lister interface {
	List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Media], error)
}

// Reconciler copies source assets into the serving directory for every media record.
type Reconciler struct {
	resolver   Resolver
	servingDir string
	log        logger.Logger
	metrics    *Metrics
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger used for per-record diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(r *Reconciler) { r.log = l }
}

// WithMetrics records every run's outcome on m.
func WithMetrics(m *Metrics) Option {
	return func(r *Reconciler) { r.metrics = m }
}

// NewReconciler returns a Reconciler writing into servingDir.
func NewReconciler(resolver Resolver, servingDir string, opts ...Option) *Reconciler {
	r := &Reconciler{
		resolver:   resolver,
		servingDir: servingDir,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run lists up to limit records and reconciles them. It stops between records once ctx is
// done and returns the partial outcome with ctx's error; otherwise only a listing failure
// is returned.
func (r *Reconciler) Run(ctx context.Context, lister Lister, limit int) (Outcome, error) {
	page, err := lister.List(ctx, repository.PageQuery{Limit: limit})
	if err != nil {
		return Outcome{}, fmt.Errorf("list media records: %w", err)
	}
	out, err := r.reconcile(ctx, page.Items)
	if err != nil {
		return out, fmt.Errorf("reconcile interrupted: %w", err)
	}
	return out, nil
}

// Reconcile makes sure servingDir/<filename> exists for every record. It never fails:
// records whose source cannot be resolved or copied are counted as not found.
func (r *Reconciler) Reconcile(records []model.Media) Outcome {
	out, _ := r.reconcile(context.Background(), records)
	return out
}

func (r *Reconciler) reconcile(ctx context.Context, records []model.Media) (Outcome, error) {
	var out Outcome

	dirErr := os.MkdirAll(r.servingDir, 0o755)
	if dirErr != nil {
		r.log.Error("media_serving_dir_unavailable",
			logger.String("serving_dir", r.servingDir),
			logger.Error(dirErr),
		)
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			r.log.Warn("media_reconcile_interrupted",
				logger.Int("processed", out.Total()),
				logger.Int("remaining", len(records)-out.Total()),
			)
			return out, err
		}
		res := resultNotFound
		if dirErr == nil {
			res = r.reconcileOne(rec)
		}
		switch res {
		case resultCopied:
			out.Copied++
		case resultSkipped:
			out.Skipped++
		default:
			out.NotFound++
		}
	}

	if r.metrics != nil {
		r.metrics.observe(out)
	}
	return out, nil
}

func (r *Reconciler) reconcileOne(rec model.Media) result {
	if rec.Filename == "" {
		return resultSkipped
	}
	log := r.log.With(logger.String("media_id", rec.ID), logger.String("filename", rec.Filename))

	if !ValidFilename(rec.Filename) {
		log.Warn("media_filename_rejected")
		return resultNotFound
	}

	base := BaseName(rec.Filename)
	src, ok := r.resolver.Resolve(base)
	if !ok {
		log.Debug("media_source_not_found", logger.String("base_name", base))
		return resultNotFound
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		log.Warn("media_source_stat_failed", logger.Error(err))
		return resultNotFound
	}

	dest := filepath.Join(r.servingDir, rec.Filename)
	// Equal size is taken as "already copied"; contents are not compared.
	if destInfo, err := os.Stat(dest); err == nil && destInfo.Size() == srcInfo.Size() {
		return resultSkipped
	}

	if err := copyFile(src, dest); err != nil {
		log.Warn("media_copy_failed", logger.String("source", src), logger.Error(err))
		return resultNotFound
	}
	log.Debug("media_copied", logger.String("source", src))
	return resultCopied
}

// copyFile writes src to dest through a temporary file in dest's directory so readers
// never observe a partially written asset.
func copyFile(src, dest string) (err error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create destination dir: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("copy: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err = os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
