package postgres

import (
	"database/sql"
	"fmt"

	"github.com/edumanage/school-management/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetPasswordForEmail(email string) (string, int64, error) {
	var passwordHash string
	var staffID int64
	query := `SELECT id, password_hash FROM staff WHERE email = ? AND is_active = true`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&staffID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, fmt.Errorf("staff member not found")
		}
		return "", 0, err
	}
	return passwordHash, staffID, nil
}

func (r *Repository) GetActorByID(staffID int64) (*auth.Actor, error) {
	var actor auth.Actor
	query := `SELECT s.id, s.email, s.full_name, s.school_code, COALESCE(s.designation, '') AS designation, COALESCE(r.key, '') AS role
	          FROM staff s
	          LEFT JOIN roles r ON r.id = s.role_id
	          WHERE s.id = ? AND s.is_active = true`

	row := r.db.Raw(query, staffID).Row()
	if err := row.Scan(&actor.ID, &actor.Email, &actor.FullName, &actor.SchoolCode, &actor.Designation, &actor.Role); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("staff member not found")
		}
		return nil, err
	}

	return &actor, nil
}

var _ auth.RepositoryAPI = (*Repository)(nil)
