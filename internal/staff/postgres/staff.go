package postgres

import (
	"errors"

	staffDatamodel "github.com/edumanage/school-management/internal/core/datamodel/staff"
	"github.com/edumanage/school-management/internal/staff"
	"gorm.io/gorm"
)

// StaffRepository implements staff.RepositoryAPI using GORM.
type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) staff.RepositoryAPI {
	return &StaffRepository{db: db}
}

// GetBySchool returns a page of the school's active staff. Filtering happens
// in the query so limit and offset count active rows only and pages never
// come up short.
func (r *StaffRepository) GetBySchool(schoolCode string, limit, offset int) ([]*staffDatamodel.Staff, error) {
	var members []*staffDatamodel.Staff
	err := r.db.Where("school_code = ? AND is_active = true", schoolCode).
		Order("full_name").
		Limit(limit).
		Offset(offset).
		Find(&members).Error
	return members, err
}

func (r *StaffRepository) GetByID(schoolCode string, id int64) (*staffDatamodel.Staff, error) {
	var member staffDatamodel.Staff
	err := r.db.Where("id = ? AND school_code = ? AND is_active = true", id, schoolCode).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, staff.ErrStaffNotFound
		}
		return nil, err
	}
	return &member, nil
}
