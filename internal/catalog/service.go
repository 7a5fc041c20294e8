package catalog

import (
	"log/slog"

	catalogDatamodel "github.com/edumanage/school-management/internal/core/datamodel/catalog"
)

type RepositoryAPI interface {
	GetModuleTree() ([]*catalogDatamodel.Module, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetModules returns the whole catalog tree. No partial tree is ever served:
// a load failure or an empty catalog is an error, so consumers either see
// the complete module list or none of it.
func (s *Service) GetModules() ([]Module, error) {
	dataModules, err := s.repo.GetModuleTree()
	if err != nil {
		s.logger.Error("failed to load module catalog", "error", err)
		return nil, err
	}

	if len(dataModules) == 0 {
		s.logger.Error("module catalog is empty")
		return nil, ErrCatalogEmpty
	}

	modules := make([]Module, 0, len(dataModules))
	for _, dataModule := range dataModules {
		modules = append(modules, FromDataModel(dataModule))
	}

	s.logger.Info("loaded module catalog",
		"modules", len(modules),
		"categories", CategoryCount(modules))
	return modules, nil
}
