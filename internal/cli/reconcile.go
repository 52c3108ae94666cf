package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"district/internal/bootstrap"
)

func newReconcileCmd() *cobra.Command {
	var sourceDir, servingDir string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Copy bundled assets into the media serving directory",
		Long: `Walks every media record and copies the matching bundled asset into the
serving directory. Files already present with the same size are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			mc := s.cfg.Media
			if sourceDir != "" {
				mc.SourceDir = sourceDir
			}
			if servingDir != "" {
				mc.ServingDir = servingDir
			}

			rec := bootstrap.NewReconciler(mc, s.deps.Mapping, s.log, nil)
			out, err := rec.Run(cmd.Context(), s.deps.MediaRepo, mc.ListLimit)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "copied=%d skipped=%d not_found=%d\n", out.Copied, out.Skipped, out.NotFound)
			return nil
		},
	}
	cmd.Flags().StringVar(&sourceDir, "source-dir", "", "bundled asset directory (default from MEDIA_SOURCE_DIR)")
	cmd.Flags().StringVar(&servingDir, "serving-dir", "", "media serving directory (default from MEDIA_SERVING_DIR)")
	return cmd
}
