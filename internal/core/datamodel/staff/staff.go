package staff

import "time"

type Staff struct {
	ID           int64     `gorm:"primaryKey"`
	StaffID      string    `gorm:"column:staff_id;uniqueIndex;not null"`
	SchoolCode   string    `gorm:"column:school_code;not null;index"`
	FullName     string    `gorm:"column:full_name;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Designation  string    `gorm:"column:designation"`
	RoleID       int64     `gorm:"column:role_id;index"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Staff) TableName() string {
	return "staff"
}

type Role struct {
	ID         int64     `gorm:"primaryKey"`
	SchoolCode string    `gorm:"column:school_code;not null;uniqueIndex:idx_roles_school_key"`
	Name       string    `gorm:"column:name;not null"`
	Key        string    `gorm:"column:key;not null;uniqueIndex:idx_roles_school_key"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Role) TableName() string {
	return "roles"
}
