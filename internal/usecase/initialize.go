package usecase

import (
	"github.com/aalvaropc/pwstasks/internal/domain"
	"github.com/aalvaropc/pwstasks/internal/ports"
)

// Initialize creates the workspace directories every task depends on. The
// entry point runs it once before any task.
type Initialize struct {
	bootstrapper ports.DirectoryBootstrapper
}

func NewInitialize(b ports.DirectoryBootstrapper) *Initialize {
	return &Initialize{bootstrapper: b}
}

func (uc *Initialize) Execute(cfg domain.Config, root string) (domain.DirectorySet, error) {
	set := cfg.Directories(root)
	if err := uc.bootstrapper.Ensure(set); err != nil {
		return nil, err
	}
	return set, nil
}
