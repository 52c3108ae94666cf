// Package cli implements districtctl, the operator tool for media reconciliation,
// first-run seeding and inspecting content defaults.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"district/internal/bootstrap"
	"district/internal/config"
	"district/internal/logger"
)

// NewRootCmd builds the districtctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "districtctl",
		Short:        "Operate the District site backend",
		SilenceUsage: true,
	}
	root.AddCommand(newReconcileCmd(), newSeedCmd(), newDefaultsCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// session is what the database-backed commands share.
type session struct {
	cfg  *config.AppConfig
	log  logger.Logger
	deps *bootstrap.Deps
}

func openSession(ctx context.Context) (*session, error) {
	cfg := config.Load()
	log, err := bootstrap.CreateLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	deps, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return &session{cfg: cfg, log: log, deps: deps}, nil
}

func (s *session) close() {
	if err := s.deps.Close(); err != nil {
		s.log.Error("close_failed", logger.Error(err))
	}
	_ = s.log.Sync()
}
