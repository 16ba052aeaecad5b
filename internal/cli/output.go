package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/aalvaropc/pwstasks/internal/domain"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func printSummary(w io.Writer, root string, sum domain.ArchiveSummary, listEntries bool) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Archive", "Entries", "Uncompressed", "Compressed"})
	t.AppendRow(table.Row{
		relTo(root, sum.Destination),
		sum.Entries,
		humanize.Bytes(uint64(sum.UncompressedBytes)),
		humanize.Bytes(uint64(sum.ArchiveBytes)),
	})
	t.Render()

	if !listEntries || len(sum.Names) == 0 {
		return
	}
	names := newTable(w)
	names.AppendHeader(table.Row{"#", "Entry"})
	for i, n := range sum.Names {
		names.AppendRow(table.Row{i + 1, n})
	}
	names.Render()
}

// progressPrinter reports each archived entry as it is written.
func progressPrinter(w io.Writer) func(name string, size int64) {
	n := 0
	return func(name string, size int64) {
		n++
		fmt.Fprintf(w, "[%d] %s (%s)\n", n, name, humanize.Bytes(uint64(size)))
	}
}
