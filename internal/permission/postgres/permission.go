package postgres

import (
	"database/sql"
	"errors"

	catalogDatamodel "github.com/edumanage/school-management/internal/core/datamodel/catalog"
	permissionDatamodel "github.com/edumanage/school-management/internal/core/datamodel/permission"
	"github.com/edumanage/school-management/internal/permission"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PermissionRepository implements permission.RepositoryAPI using GORM.
type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) permission.RepositoryAPI {
	return &PermissionRepository{db: db}
}

// GetStaffRole resolves the role of an active staff member within a school.
// A staff id outside the school resolves to permission.ErrStaffNotFound,
// which is how tenant scoping is enforced.
func (r *PermissionRepository) GetStaffRole(schoolCode string, staffID int64) (int64, error) {
	var roleID int64
	row := r.db.Raw(
		`SELECT role_id FROM staff WHERE id = ? AND school_code = ? AND is_active = true`,
		staffID, schoolCode,
	).Row()
	if err := row.Scan(&roleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, permission.ErrStaffNotFound
		}
		return 0, err
	}
	return roleID, nil
}

func (r *PermissionRepository) GetRolePermissions(roleID int64) ([]permission.RolePermission, error) {
	var rows []permissionDatamodel.RolePermission
	err := r.db.Where("role_id = ?", roleID).
		Order("sub_module_id, category_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	perms := make([]permission.RolePermission, 0, len(rows))
	for i := range rows {
		perms = append(perms, permission.RoleFromDataModel(&rows[i]))
	}
	return perms, nil
}

func (r *PermissionRepository) GetStaffOverrides(staffID int64) ([]permission.StaffOverride, error) {
	var rows []permissionDatamodel.StaffOverride
	err := r.db.Where("staff_id = ?", staffID).
		Order("sub_module_id, category_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	overrides := make([]permission.StaffOverride, 0, len(rows))
	for i := range rows {
		overrides = append(overrides, permission.FromDataModel(&rows[i]))
	}
	return overrides, nil
}

// ReplaceStaffOverrides swaps the staff member's override rows for the given
// set in one transaction. Pairs omitted from entries are deleted, the rest
// upserted on the (staff_id, sub_module_id, category_id) key.
func (r *PermissionRepository) ReplaceStaffOverrides(staffID, assignedBy int64, entries []permission.OverrideEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(entries) == 0 {
			return tx.Where("staff_id = ?", staffID).
				Delete(&permissionDatamodel.StaffOverride{}).Error
		}

		keep := tx.Where("staff_id = ?", staffID)
		for _, entry := range entries {
			keep = keep.Where(
				"NOT (sub_module_id = ? AND category_id = ?)",
				entry.SubModuleID, entry.CategoryID,
			)
		}
		if err := keep.Delete(&permissionDatamodel.StaffOverride{}).Error; err != nil {
			return err
		}

		rows := make([]*permissionDatamodel.StaffOverride, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, permission.ToDataModel(staffID, assignedBy, entry))
		}

		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "staff_id"},
				{Name: "sub_module_id"},
				{Name: "category_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"view_access", "edit_access", "assigned_by", "updated_at",
			}),
		}).Create(&rows).Error
	})
}

func (r *PermissionRepository) PairExists(subModuleID, categoryID int64) (bool, error) {
	var count int64
	err := r.db.Model(&catalogDatamodel.PermissionCategory{}).
		Where("id = ? AND sub_module_id = ?", categoryID, subModuleID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PermissionRepository) ResolvePairKeys(subModuleKey, categoryKey string) (int64, int64, error) {
	var pair struct {
		SubModuleID int64
		CategoryID  int64
	}
	err := r.db.Raw(
		`SELECT sm.id AS sub_module_id, pc.id AS category_id
		 FROM permission_categories pc
		 JOIN sub_modules sm ON sm.id = pc.sub_module_id
		 WHERE sm.key = ? AND pc.key = ?`,
		subModuleKey, categoryKey,
	).Scan(&pair).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, permission.ErrUnknownPair
		}
		return 0, 0, err
	}
	if pair.SubModuleID == 0 || pair.CategoryID == 0 {
		return 0, 0, permission.ErrUnknownPair
	}
	return pair.SubModuleID, pair.CategoryID, nil
}
