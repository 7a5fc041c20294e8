package staff

import (
	"errors"
	"time"

	staffDatamodel "github.com/edumanage/school-management/internal/core/datamodel/staff"
)

// Staff is one member of a school's staff roster.
type Staff struct {
	ID          int64     `json:"id"`
	StaffID     string    `json:"staff_id"`
	SchoolCode  string    `json:"school_code"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Designation string    `json:"designation"`
	RoleID      int64     `json:"role_id"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var ErrStaffNotFound = errors.New("staff member not found")

func FromDataModel(s *staffDatamodel.Staff) *Staff {
	return &Staff{
		ID:          s.ID,
		StaffID:     s.StaffID,
		SchoolCode:  s.SchoolCode,
		FullName:    s.FullName,
		Email:       s.Email,
		Designation: s.Designation,
		RoleID:      s.RoleID,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
