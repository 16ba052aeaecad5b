package domain

// DirectorySet is an ordered list of directories that must exist before the
// tasks that depend on them run. Ensuring it is idempotent.
type DirectorySet []string

// ArchiveJob pairs a source (file or directory tree) with the zip it packs into.
type ArchiveJob struct {
	SourceRoot  string
	Destination string
}

// ArchiveSummary describes a finished archive.
type ArchiveSummary struct {
	Destination       string
	Entries           int
	UncompressedBytes int64
	ArchiveBytes      int64
	// Names holds the in-archive names in write order.
	Names []string
}

// FormatResult describes one JSON reformat.
type FormatResult struct {
	Path    string
	Changed bool
	Bytes   int
}

// InstalledFile is one file found in the destination after a fetch.
type InstalledFile struct {
	Path string
	Size int64
}
