package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"district/internal/content"
)

func newDefaultsCmd() *cobra.Command {
	var mediaBase string

	cmd := &cobra.Command{
		Use:   "defaults <slug>",
		Short: "Print the all-defaults document of a global",
		Long:  "Print the all-defaults document of a global. Known globals: " + strings.Join(content.Slugs(), ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, ok := content.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown global %q (known: %s)", args[0], strings.Join(content.Slugs(), ", "))
			}
			doc := content.Defaults(schema)
			if mediaBase != "" {
				doc = content.NormalizeMedia(schema, doc, mediaBase)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}
	cmd.Flags().StringVar(&mediaBase, "media-base", "", "also normalize media fields under this URL prefix")
	return cmd
}
