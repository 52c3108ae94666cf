package bootstrap

import (
	"context"
	"time"

	"district/internal/config"
	"district/internal/logger"
	"district/internal/media"
)

// NewReconciler builds the reconciler for the configured directories. metrics may be nil.
func NewReconciler(cfg config.MediaConfig, mapping media.Mapping, log logger.Logger, metrics *media.Metrics) *media.Reconciler {
	opts := []media.Option{media.WithLogger(log.With(logger.String("component", "media_reconcile")))}
	if metrics != nil {
		opts = append(opts, media.WithMetrics(metrics))
	}
	return media.NewReconciler(media.NewMappingResolver(cfg.SourceDir, mapping), cfg.ServingDir, opts...)
}

// ReconcileOnStartup runs one reconciliation pass. Failures are logged and never stop
// the caller.
func ReconcileOnStartup(ctx context.Context, r *media.Reconciler, lister media.Lister, limit int, log logger.Logger) media.Outcome {
	start := time.Now()
	out, err := r.Run(ctx, lister, limit)
	if err != nil {
		log.Error("media_reconcile_failed", logger.Error(err))
		return out
	}
	log.Info("media_reconcile_done",
		logger.Int("copied", out.Copied),
		logger.Int("skipped", out.Skipped),
		logger.Int("not_found", out.NotFound),
		logger.Duration("took", time.Since(start)),
	)
	return out
}
