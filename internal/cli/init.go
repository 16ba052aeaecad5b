package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func initCmd(opts *rootOptions) *cobra.Command {
	var gitignore bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the workspace directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, set, err := prepareWorkspace(opts, gitignore)
			if err != nil {
				return err
			}
			defer ws.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Workspace: %s\n", ws.root)
			for _, dir := range set {
				fmt.Fprintf(out, "- %s\n", relTo(ws.root, dir))
			}
			if gitignore {
				fmt.Fprintln(out, "Updated .gitignore")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&gitignore, "gitignore", false, "List the data directories in the workspace .gitignore")
	return cmd
}
