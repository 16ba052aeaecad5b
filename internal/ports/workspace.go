package ports

import "github.com/aalvaropc/pwstasks/internal/domain"

// DirectoryBootstrapper makes sure every directory in a set exists.
type DirectoryBootstrapper interface {
	Ensure(set domain.DirectorySet) error
}

// ConfigLoader reads the workspace configuration rooted at root.
type ConfigLoader interface {
	Load(root string) (domain.Config, error)
}
