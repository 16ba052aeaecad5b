package ports

import "github.com/aalvaropc/pwstasks/internal/domain"

// ArchiveBuilder packs a file or directory tree into a zip archive.
type ArchiveBuilder interface {
	Build(job domain.ArchiveJob) (domain.ArchiveSummary, error)
}
