package usecase

import (
	"path/filepath"

	"github.com/aalvaropc/pwstasks/internal/domain"
	"github.com/aalvaropc/pwstasks/internal/ports"
)

type PackageArchive struct {
	builder ports.ArchiveBuilder
}

func NewPackageArchive(b ports.ArchiveBuilder) *PackageArchive {
	return &PackageArchive{builder: b}
}

// Input packs the scraped URL table into archives/input-data.zip.
func (uc *PackageArchive) Input(cfg domain.Config, root string) (domain.ArchiveSummary, error) {
	return uc.builder.Build(domain.ArchiveJob{
		SourceRoot:  domain.Resolve(root, cfg.Files.HTMLURLs),
		Destination: ArchivePath(cfg, root, domain.InputDataArchive),
	})
}

// Intermediate packs the intermediate results directory.
func (uc *PackageArchive) Intermediate(cfg domain.Config, root string) (domain.ArchiveSummary, error) {
	return uc.builder.Build(domain.ArchiveJob{
		SourceRoot:  domain.Resolve(root, cfg.Paths.IntermediateDir),
		Destination: ArchivePath(cfg, root, domain.IntermediateResultsArchive),
	})
}

// Path packs an arbitrary source. An empty dst puts <base>.zip in the
// archives directory.
func (uc *PackageArchive) Path(cfg domain.Config, root, src, dst string) (domain.ArchiveSummary, error) {
	src = domain.Resolve(root, src)
	if dst == "" {
		dst = ArchivePath(cfg, root, filepath.Base(src)+".zip")
	} else {
		dst = domain.Resolve(root, dst)
	}
	return uc.builder.Build(domain.ArchiveJob{SourceRoot: src, Destination: dst})
}

func ArchivePath(cfg domain.Config, root, name string) string {
	return filepath.Join(domain.Resolve(root, cfg.Paths.ArchivesDir), name)
}
