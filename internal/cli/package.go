package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/pwstasks/internal/domain"
	"github.com/aalvaropc/pwstasks/internal/infra/ziparchive"
	"github.com/aalvaropc/pwstasks/internal/usecase"
)

type packageOptions struct {
	failIfExists bool
	symlinks     string
	list         bool
	quiet        bool
}

func packageCmd(opts *rootOptions) *cobra.Command {
	popts := &packageOptions{}

	c := &cobra.Command{
		Use:   "package",
		Short: "Package workspace data into zip archives",
	}

	c.PersistentFlags().BoolVar(&popts.failIfExists, "fail-if-exists", false, "Refuse to replace an existing archive")
	c.PersistentFlags().StringVar(&popts.symlinks, "symlinks", "", "Symlink policy: skip|follow (defaults to config)")
	c.PersistentFlags().BoolVar(&popts.list, "list", false, "Print every archived entry")
	c.PersistentFlags().BoolVarP(&popts.quiet, "quiet", "q", false, "Do not report progress per entry")

	c.AddCommand(
		packageInputCmd(opts, popts),
		packageIntermediateCmd(opts, popts),
		packagePathCmd(opts, popts),
	)
	return c
}

func packageInputCmd(opts *rootOptions, popts *packageOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "input",
		Short: "Archive the scraped URL table into " + domain.InputDataArchive,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPackage(cmd, opts, popts, func(uc *usecase.PackageArchive, ws *workspaceCtx) (domain.ArchiveSummary, error) {
				return uc.Input(ws.cfg, ws.root)
			})
		},
	}
}

func packageIntermediateCmd(opts *rootOptions, popts *packageOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "intermediate",
		Short: "Archive intermediate results into " + domain.IntermediateResultsArchive,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPackage(cmd, opts, popts, func(uc *usecase.PackageArchive, ws *workspaceCtx) (domain.ArchiveSummary, error) {
				return uc.Intermediate(ws.cfg, ws.root)
			})
		},
	}
}

func packagePathCmd(opts *rootOptions, popts *packageOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "path <source>",
		Short: "Archive any file or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackage(cmd, opts, popts, func(uc *usecase.PackageArchive, ws *workspaceCtx) (domain.ArchiveSummary, error) {
				return uc.Path(ws.cfg, ws.root, args[0], out)
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Destination archive (defaults to <archives_dir>/<source>.zip)")
	return cmd
}

type packageFunc func(uc *usecase.PackageArchive, ws *workspaceCtx) (domain.ArchiveSummary, error)

func runPackage(cmd *cobra.Command, opts *rootOptions, popts *packageOptions, run packageFunc) error {
	ws, _, err := prepareWorkspace(opts, false)
	if err != nil {
		return err
	}
	defer ws.Close()

	policy := ws.cfg.Archive.Symlinks
	if popts.symlinks != "" {
		policy = domain.SymlinkPolicy(popts.symlinks)
		if policy != domain.SymlinksSkip && policy != domain.SymlinksFollow {
			return fmt.Errorf("unsupported --symlinks %q (expected skip|follow)", popts.symlinks)
		}
	}

	bopts := []ziparchive.Option{
		ziparchive.WithLogger(ws.logger),
		ziparchive.WithFailIfExists(ws.cfg.Archive.FailIfExists || popts.failIfExists),
		ziparchive.WithSymlinks(policy),
	}
	if !popts.quiet {
		bopts = append(bopts, ziparchive.WithProgress(progressPrinter(cmd.ErrOrStderr())))
	}
	builder := ziparchive.NewBuilder(bopts...)

	sum, err := run(usecase.NewPackageArchive(builder), ws)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), ws.root, sum, popts.list)
	return nil
}
