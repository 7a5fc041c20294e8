package permission

import "time"

// RolePermission grants a (sub-module, category) pair to every staff member
// holding the role. Absence of a row means no role-derived access.
type RolePermission struct {
	ID          int64     `gorm:"primaryKey"`
	RoleID      int64     `gorm:"column:role_id;not null;uniqueIndex:idx_role_permissions_pair"`
	SubModuleID int64     `gorm:"column:sub_module_id;not null;uniqueIndex:idx_role_permissions_pair"`
	CategoryID  int64     `gorm:"column:category_id;not null;uniqueIndex:idx_role_permissions_pair"`
	ViewAccess  bool      `gorm:"column:view_access;default:false"`
	EditAccess  bool      `gorm:"column:edit_access;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

// StaffOverride supersedes the role-derived value for one staff member and
// one (sub-module, category) pair. At most one row per (staff, pair).
type StaffOverride struct {
	ID          int64     `gorm:"primaryKey"`
	StaffID     int64     `gorm:"column:staff_id;not null;uniqueIndex:idx_staff_overrides_pair"`
	SubModuleID int64     `gorm:"column:sub_module_id;not null;uniqueIndex:idx_staff_overrides_pair"`
	CategoryID  int64     `gorm:"column:category_id;not null;uniqueIndex:idx_staff_overrides_pair"`
	ViewAccess  bool      `gorm:"column:view_access;default:false"`
	EditAccess  bool      `gorm:"column:edit_access;default:false"`
	AssignedBy  int64     `gorm:"column:assigned_by"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (StaffOverride) TableName() string {
	return "staff_overrides"
}
