package permission

import (
	"errors"

	permissionDatamodel "github.com/edumanage/school-management/internal/core/datamodel/permission"
)

// Source records where a merged permission's access values came from.
type Source string

const (
	SourceRole  Source = "role"
	SourceStaff Source = "staff"
	SourceNone  Source = "none"
)

// AccessKind names the two capabilities tracked per (sub-module, category) pair.
type AccessKind string

const (
	KindView AccessKind = "view"
	KindEdit AccessKind = "edit"
)

// RolePermission is access a staff member inherits from their role. Read-only
// input to resolution; absence of a pair means no role-derived access.
type RolePermission struct {
	SubModuleID int64 `json:"sub_module_id"`
	CategoryID  int64 `json:"category_id"`
	ViewAccess  bool  `json:"view_access"`
	EditAccess  bool  `json:"edit_access"`
}

// StaffOverride is a persisted per-staff exception that supersedes the
// role-derived value for one pair.
type StaffOverride struct {
	StaffID     int64 `json:"staff_id"`
	SubModuleID int64 `json:"sub_module_id"`
	CategoryID  int64 `json:"category_id"`
	ViewAccess  bool  `json:"view_access"`
	EditAccess  bool  `json:"edit_access"`
}

// MergedPermission is the resolved access value for a pair, with provenance.
// It is derived on every load and never persisted.
type MergedPermission struct {
	SubModuleID int64  `json:"sub_module_id"`
	CategoryID  int64  `json:"category_id"`
	ViewAccess  bool   `json:"view_access"`
	EditAccess  bool   `json:"edit_access"`
	Source      Source `json:"source"`
}

// Access is the effective capability pair for one (sub-module, category).
type Access struct {
	View bool `json:"view"`
	Edit bool `json:"edit"`
}

// PairKey identifies one (sub-module, category) pair.
type PairKey struct {
	SubModuleID int64
	CategoryID  int64
}

// OverrideEntry is the flat save shape produced by the editor and accepted
// by the save endpoint.
type OverrideEntry struct {
	SubModuleID int64 `json:"sub_module_id"`
	CategoryID  int64 `json:"category_id"`
	ViewAccess  bool  `json:"view_access"`
	EditAccess  bool  `json:"edit_access"`
}

// Domain errors
var (
	ErrStaffNotFound   = errors.New("staff member not found")
	ErrUnknownPair     = errors.New("unknown sub-module/category pair")
	ErrDuplicatePair   = errors.New("duplicate sub-module/category pair")
	ErrEditWithoutView = errors.New("edit access requires view access")
	ErrSaveFailed      = errors.New("failed to save staff overrides")
)

// clampAccess enforces the cascade rule on loaded values: edit without view
// is not representable, so edit is forced to false.
func clampAccess(view, edit bool) (bool, bool) {
	if !view {
		return view, false
	}
	return view, edit
}

func FromDataModel(row *permissionDatamodel.StaffOverride) StaffOverride {
	view, edit := clampAccess(row.ViewAccess, row.EditAccess)
	return StaffOverride{
		StaffID:     row.StaffID,
		SubModuleID: row.SubModuleID,
		CategoryID:  row.CategoryID,
		ViewAccess:  view,
		EditAccess:  edit,
	}
}

func ToDataModel(staffID, assignedBy int64, entry OverrideEntry) *permissionDatamodel.StaffOverride {
	view, edit := clampAccess(entry.ViewAccess, entry.EditAccess)
	return &permissionDatamodel.StaffOverride{
		StaffID:     staffID,
		SubModuleID: entry.SubModuleID,
		CategoryID:  entry.CategoryID,
		ViewAccess:  view,
		EditAccess:  edit,
		AssignedBy:  assignedBy,
	}
}

func RoleFromDataModel(row *permissionDatamodel.RolePermission) RolePermission {
	view, edit := clampAccess(row.ViewAccess, row.EditAccess)
	return RolePermission{
		SubModuleID: row.SubModuleID,
		CategoryID:  row.CategoryID,
		ViewAccess:  view,
		EditAccess:  edit,
	}
}
