package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/pwstasks/internal/infra/jsonfmt"
	"github.com/aalvaropc/pwstasks/internal/usecase"
)

func formatJSONCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "format-json <file>...",
		Short: "Rewrite JSON files in place with a stable, diff-friendly layout",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, _, err := prepareWorkspace(opts, false)
			if err != nil {
				return err
			}
			defer ws.Close()

			uc := usecase.NewFormatJSON(jsonfmt.NewFormatter(jsonfmt.WithLogger(ws.logger)))
			results, err := uc.Execute(args)

			out := cmd.OutOrStdout()
			for _, r := range results {
				state := "unchanged"
				if r.Changed {
					state = "formatted"
				}
				fmt.Fprintf(out, "%s %s\n", state, r.Path)
			}
			return err
		},
	}
}
