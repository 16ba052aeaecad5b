package cli

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/aalvaropc/pwstasks/internal/domain"
	"github.com/aalvaropc/pwstasks/internal/usecase"
)

func pathsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show the resolved workspace layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, _, err := prepareWorkspace(opts, false)
			if err != nil {
				return err
			}
			defer ws.Close()

			c := ws.cfg
			rows := []struct{ name, path string }{
				{"input_dir", c.Paths.InputDir},
				{"data_dir", c.Paths.DataDir},
				{"archives_dir", c.Paths.ArchivesDir},
				{"intermediate_dir", c.Paths.IntermediateDir},
				{"logs_dir", c.Paths.LogsDir},
				{"html_urls", c.Files.HTMLURLs},
				{"urls", c.Files.URLs},
				{"requests_cache_db", c.Files.RequestsCacheDB},
				{"input_archive", usecase.ArchivePath(c, "", domain.InputDataArchive)},
				{"intermediate_archive", usecase.ArchivePath(c, "", domain.IntermediateResultsArchive)},
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Name", "Path", "Exists"})
			for _, r := range rows {
				_, statErr := os.Stat(domain.Resolve(ws.root, r.path))
				t.AppendRow(table.Row{r.name, r.path, statErr == nil})
			}
			t.AppendFooter(table.Row{"urls_to_process", c.Scrape.URLsToProcess, ""})
			t.Render()
			return nil
		},
	}
}
