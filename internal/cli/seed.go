package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"district/internal/bootstrap"
	"district/internal/seed"
)

func newSeedCmd() *cobra.Command {
	var reconcile bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create media records for bundled assets and write first-run content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			seeder := seed.NewSeeder(s.deps.Media, s.deps.Globals, s.cfg.Media.SourceDir, s.deps.Mapping, s.log)
			idx, err := seeder.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "media=%d\n", len(idx))

			if !reconcile {
				return nil
			}
			rec := bootstrap.NewReconciler(s.cfg.Media, s.deps.Mapping, s.log, nil)
			out, err := rec.Run(cmd.Context(), s.deps.MediaRepo, s.cfg.Media.ListLimit)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "copied=%d skipped=%d not_found=%d\n", out.Copied, out.Skipped, out.NotFound)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reconcile, "reconcile", true, "reconcile the serving directory after seeding")
	return cmd
}
