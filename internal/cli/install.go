package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/aalvaropc/pwstasks/internal/domain"
	"github.com/aalvaropc/pwstasks/internal/infra/fetch"
	"github.com/aalvaropc/pwstasks/internal/usecase"
)

func installInputCmd(opts *rootOptions) *cobra.Command {
	var url string
	var dest string
	var mechanism string

	cmd := &cobra.Command{
		Use:   "install-input",
		Short: "Download the published input data archive into the input directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, _, err := prepareWorkspace(opts, false)
			if err != nil {
				return err
			}
			defer ws.Close()

			fcfg := ws.cfg.Fetch
			if strings.TrimSpace(url) != "" {
				fcfg.InputDataURL = url
			}
			if mechanism != "" {
				fcfg.Mechanism = domain.FetchMechanism(mechanism)
			}

			fetcher, err := fetch.New(fcfg, ws.logger)
			if err != nil {
				return err
			}

			destDir := domain.Resolve(ws.root, ws.cfg.Paths.InputDir)
			if dest != "" {
				destDir = domain.Resolve(ws.root, dest)
			}

			files, err := usecase.NewInstallInputData(fetcher).Execute(cmd.Context(), fcfg.InputDataURL, destDir, fcfg.Timeout)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Installed into %s\n", relTo(ws.root, destDir))
			t := newTable(out)
			t.AppendHeader(table.Row{"File", "Size"})
			for _, f := range files {
				t.AppendRow(table.Row{f.Path, humanize.Bytes(uint64(f.Size))})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Archive URL (defaults to fetch.input_data_url)")
	cmd.Flags().StringVar(&dest, "path", "", "Destination directory (defaults to paths.input_dir)")
	cmd.Flags().StringVar(&mechanism, "mechanism", "", "Fetch mechanism: auto|http|blob|command")
	return cmd
}
