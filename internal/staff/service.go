package staff

import (
	"log/slog"

	staffDatamodel "github.com/edumanage/school-management/internal/core/datamodel/staff"
)

type RepositoryAPI interface {
	GetBySchool(schoolCode string, limit, offset int) ([]*staffDatamodel.Staff, error)
	GetByID(schoolCode string, id int64) (*staffDatamodel.Staff, error)
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

// GetRoster returns the school's active staff, paginated.
func (s *Service) GetRoster(schoolCode string, limit, offset int) ([]StaffResponse, error) {
	dataStaff, err := s.repo.GetBySchool(schoolCode, limit, offset)
	if err != nil {
		s.logger.Error("failed to load staff roster", "error", err, "school_code", schoolCode)
		return nil, err
	}

	responses := make([]StaffResponse, 0, len(dataStaff))
	for _, dataMember := range dataStaff {
		responses = append(responses, FromDataModel(dataMember).ToResponse())
	}

	s.logger.Info("loaded staff roster", "school_code", schoolCode, "count", len(responses))
	return responses, nil
}

// GetByID returns one staff member, scoped to the school.
func (s *Service) GetByID(schoolCode string, id int64) (*Staff, error) {
	dataMember, err := s.repo.GetByID(schoolCode, id)
	if err != nil {
		s.logger.Error("failed to load staff member", "error", err, "staff_id", id, "school_code", schoolCode)
		return nil, ErrStaffNotFound
	}
	return FromDataModel(dataMember), nil
}
