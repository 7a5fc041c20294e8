package permission

import (
	"context"
	"log/slog"

	"github.com/edumanage/school-management/internal"
	"github.com/edumanage/school-management/internal/core/events"
)

// RepositoryAPI is the persistence surface the service needs. All reads and
// the override replacement are scoped to one staff member.
type RepositoryAPI interface {
	GetStaffRole(schoolCode string, staffID int64) (roleID int64, err error)
	GetRolePermissions(roleID int64) ([]RolePermission, error)
	GetStaffOverrides(staffID int64) ([]StaffOverride, error)
	// ReplaceStaffOverrides swaps the staff member's override rows for the
	// given set in one transaction: rows absent from entries are deleted,
	// the rest upserted.
	ReplaceStaffOverrides(staffID, assignedBy int64, entries []OverrideEntry) error
	PairExists(subModuleID, categoryID int64) (bool, error)
	ResolvePairKeys(subModuleKey, categoryKey string) (subModuleID, categoryID int64, err error)
}

// EventPublisher decouples the service from the bus implementation.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service resolves merged permissions and applies override saves.
type Service struct {
	repo   RepositoryAPI
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// GetMergedPermissions loads role permissions and overrides for the staff
// member and resolves them. Recomputed on every call so provenance is never
// stale.
func (s *Service) GetMergedPermissions(actor internal.ActorContext, staffID int64) ([]MergedPermission, error) {
	roleID, err := s.repo.GetStaffRole(actor.SchoolCode, staffID)
	if err != nil {
		s.logger.Error("failed to look up staff role", "error", err, "staff_id", staffID, "school_code", actor.SchoolCode)
		return nil, err
	}

	rolePerms, err := s.repo.GetRolePermissions(roleID)
	if err != nil {
		s.logger.Error("failed to load role permissions", "error", err, "role_id", roleID, "staff_id", staffID)
		return nil, err
	}

	overrides, err := s.repo.GetStaffOverrides(staffID)
	if err != nil {
		s.logger.Error("failed to load staff overrides", "error", err, "staff_id", staffID)
		return nil, err
	}

	merged := Resolve(rolePerms, overrides)

	s.logger.Info("resolved staff permissions",
		"staff_id", staffID,
		"role_permissions", len(rolePerms),
		"overrides", len(overrides),
		"merged", len(merged))

	return merged, nil
}

// SaveOverrides validates the payload and replaces the staff member's
// override rows with exactly the pairs it contains. Omitted pairs are
// deleted, so RemoveOverride on the editor takes effect through the payload.
// On any failure nothing is persisted and no event is published, so the
// caller can retry with the same working set.
func (s *Service) SaveOverrides(ctx context.Context, actor internal.ActorContext, staffID int64, dto SavePermissionsDTO) (int, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("override save rejected", "error", err, "staff_id", staffID)
		return 0, err
	}

	// the staff lookup doubles as tenant scoping: a staff id outside the
	// actor's school resolves to not found
	if _, err := s.repo.GetStaffRole(actor.SchoolCode, staffID); err != nil {
		s.logger.Error("override save for unknown staff", "error", err, "staff_id", staffID, "school_code", actor.SchoolCode)
		return 0, err
	}

	entries := dto.Entries()
	for _, entry := range entries {
		exists, err := s.repo.PairExists(entry.SubModuleID, entry.CategoryID)
		if err != nil {
			s.logger.Error("failed to validate permission pair", "error", err,
				"sub_module_id", entry.SubModuleID, "category_id", entry.CategoryID)
			return 0, err
		}
		if !exists {
			s.logger.Warn("override save references unknown pair",
				"sub_module_id", entry.SubModuleID, "category_id", entry.CategoryID, "staff_id", staffID)
			return 0, ErrUnknownPair
		}
	}

	assignedBy := dto.AssignedBy
	if assignedBy == 0 {
		assignedBy = actor.StaffID
	}

	if err := s.repo.ReplaceStaffOverrides(staffID, assignedBy, entries); err != nil {
		s.logger.Error("failed to replace staff overrides", "error", err, "staff_id", staffID)
		return 0, ErrSaveFailed
	}

	s.logger.Info("staff overrides saved",
		"staff_id", staffID,
		"assigned_by", assignedBy,
		"override_count", len(entries))

	if s.bus != nil {
		event := events.NewPermissionsUpdatedEvent(staffID, assignedBy, actor.SchoolCode, len(entries))
		if err := s.bus.Publish(ctx, event); err != nil {
			// the save already committed; a lost audit event is logged,
			// not surfaced to the operator
			s.logger.Error("failed to publish permissions.updated event", "error", err, "staff_id", staffID)
		}
	}

	return len(entries), nil
}

// EffectiveAccess resolves the acting staff member's own access to a pair
// identified by catalog keys. Used by the HTTP access gate.
func (s *Service) EffectiveAccess(actor internal.ActorContext, subModuleKey, categoryKey string) (Access, error) {
	subModuleID, categoryID, err := s.repo.ResolvePairKeys(subModuleKey, categoryKey)
	if err != nil {
		s.logger.Error("failed to resolve pair keys", "error", err,
			"sub_module_key", subModuleKey, "category_key", categoryKey)
		return Access{}, err
	}

	merged, err := s.GetMergedPermissions(actor, actor.StaffID)
	if err != nil {
		return Access{}, err
	}

	m := Lookup(merged, subModuleID, categoryID)
	return Access{View: m.ViewAccess, Edit: m.EditAccess}, nil
}
