package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed a demo school: permission catalog, roles, role permissions and a principal account.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm connection: %v", err)
		}

		if clearData {
			for _, table := range []string{"staff_overrides", "role_permissions", "staff", "roles", "permission_categories", "sub_modules", "modules"} {
				if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		const schoolCode = "GHS001"

		seedCatalog(db)
		principalRoleID := seedRoles(db, schoolCode)
		seedPrincipal(db, schoolCode, principalRoleID, cfg.Security.BCryptCost)

		fmt.Println("Seeding complete for school:", schoolCode)
	},
}

type seedModule struct {
	Name       string
	Key        string
	SubModules []seedSubModule
}

type seedSubModule struct {
	Name       string
	Key        string
	Categories []seedCategory
}

type seedCategory struct {
	Name string
	Key  string
	Type string
}

var demoCatalog = []seedModule{
	{
		Name: "Fees", Key: "fees",
		SubModules: []seedSubModule{
			{Name: "Fee Structures", Key: "fee_structures", Categories: []seedCategory{
				{Name: "Structure Setup", Key: "setup", Type: "data"},
				{Name: "Structure Reports", Key: "reports", Type: "report"},
			}},
			{Name: "Fee Collection", Key: "fee_collection", Categories: []seedCategory{
				{Name: "Collect Payments", Key: "collect", Type: "data"},
				{Name: "Collection Reports", Key: "reports", Type: "report"},
			}},
		},
	},
	{
		Name: "Attendance", Key: "attendance",
		SubModules: []seedSubModule{
			{Name: "Student Attendance", Key: "student_attendance", Categories: []seedCategory{
				{Name: "Mark Attendance", Key: "mark", Type: "data"},
				{Name: "Attendance Reports", Key: "reports", Type: "report"},
			}},
		},
	},
	{
		Name: "Transport", Key: "transport",
		SubModules: []seedSubModule{
			{Name: "Routes", Key: "routes", Categories: []seedCategory{
				{Name: "Route Setup", Key: "setup", Type: "data"},
			}},
		},
	},
	{
		Name: "Calendar", Key: "calendar",
		SubModules: []seedSubModule{
			{Name: "Events", Key: "events", Categories: []seedCategory{
				{Name: "Manage Events", Key: "manage", Type: "data"},
			}},
		},
	},
	{
		Name: "Staff Administration", Key: "staff_admin",
		SubModules: []seedSubModule{
			{Name: "Staff", Key: "staff", Categories: []seedCategory{
				{Name: "Staff Records", Key: "records", Type: "data"},
				{Name: "Staff Permissions", Key: "permissions", Type: "data"},
			}},
		},
	},
}

func seedCatalog(db *gorm.DB) {
	for mi, m := range demoCatalog {
		var moduleID int64
		if err := db.Raw("SELECT id FROM modules WHERE key = ?", m.Key).Row().Scan(&moduleID); err != nil {
			if err := db.Exec(
				"INSERT INTO modules (name, key, sort_order, created_at, updated_at) VALUES (?, ?, ?, now(), now())",
				m.Name, m.Key, mi,
			).Error; err != nil {
				log.Fatalf("failed to insert module %s: %v", m.Key, err)
			}
			if err := db.Raw("SELECT id FROM modules WHERE key = ?", m.Key).Row().Scan(&moduleID); err != nil {
				log.Fatalf("module not found after insert %s: %v", m.Key, err)
			}
		}

		for si, sm := range m.SubModules {
			var subModuleID int64
			if err := db.Raw("SELECT id FROM sub_modules WHERE module_id = ? AND key = ?", moduleID, sm.Key).Row().Scan(&subModuleID); err != nil {
				if err := db.Exec(
					"INSERT INTO sub_modules (module_id, name, key, sort_order, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
					moduleID, sm.Name, sm.Key, si,
				).Error; err != nil {
					log.Fatalf("failed to insert sub-module %s: %v", sm.Key, err)
				}
				if err := db.Raw("SELECT id FROM sub_modules WHERE module_id = ? AND key = ?", moduleID, sm.Key).Row().Scan(&subModuleID); err != nil {
					log.Fatalf("sub-module not found after insert %s: %v", sm.Key, err)
				}
			}

			for _, c := range sm.Categories {
				var exists int
				if err := db.Raw("SELECT 1 FROM permission_categories WHERE sub_module_id = ? AND key = ?", subModuleID, c.Key).Row().Scan(&exists); err == nil {
					continue
				}
				if err := db.Exec(
					"INSERT INTO permission_categories (sub_module_id, name, key, type, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
					subModuleID, c.Name, c.Key, c.Type,
				).Error; err != nil {
					log.Fatalf("failed to insert category %s: %v", c.Key, err)
				}
			}
		}
	}
	fmt.Println("Seeded permission catalog")
}

func seedRoles(db *gorm.DB, schoolCode string) int64 {
	roles := []struct {
		Name string
		Key  string
	}{
		{"Principal", "principal"},
		{"Teacher", "teacher"},
		{"Accountant", "accountant"},
	}

	for _, r := range roles {
		var exists int
		if err := db.Raw("SELECT 1 FROM roles WHERE school_code = ? AND key = ?", schoolCode, r.Key).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec(
			"INSERT INTO roles (school_code, name, key, created_at, updated_at) VALUES (?, ?, ?, now(), now())",
			schoolCode, r.Name, r.Key,
		).Error; err != nil {
			log.Fatalf("failed to insert role %s: %v", r.Key, err)
		}
	}

	var principalRoleID int64
	if err := db.Raw("SELECT id FROM roles WHERE school_code = ? AND key = 'principal'", schoolCode).Row().Scan(&principalRoleID); err != nil {
		log.Fatalf("failed to lookup principal role: %v", err)
	}

	// the principal role gets view+edit on every catalog pair
	rows, err := db.Raw("SELECT sub_module_id, id FROM permission_categories").Rows()
	if err != nil {
		log.Fatalf("failed to enumerate categories: %v", err)
	}
	defer rows.Close()

	type pair struct{ subModuleID, categoryID int64 }
	var pairs []pair
	for rows.Next() {
		var p pair
		if err := rows.Scan(&p.subModuleID, &p.categoryID); err != nil {
			log.Fatalf("failed to scan category: %v", err)
		}
		pairs = append(pairs, p)
	}

	for _, p := range pairs {
		var exists int
		if err := db.Raw(
			"SELECT 1 FROM role_permissions WHERE role_id = ? AND sub_module_id = ? AND category_id = ?",
			principalRoleID, p.subModuleID, p.categoryID,
		).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec(
			"INSERT INTO role_permissions (role_id, sub_module_id, category_id, view_access, edit_access, created_at, updated_at) VALUES (?, ?, ?, true, true, now(), now())",
			principalRoleID, p.subModuleID, p.categoryID,
		).Error; err != nil {
			log.Fatalf("failed to grant role permission: %v", err)
		}
	}

	fmt.Println("Seeded roles and principal role permissions")
	return principalRoleID
}

func seedPrincipal(db *gorm.DB, schoolCode string, roleID int64, bcryptCost int) {
	email := "principal@greenhill.example"
	var exists int
	if err := db.Raw("SELECT 1 FROM staff WHERE email = ?", email).Row().Scan(&exists); err == nil {
		fmt.Println("principal account already exists:", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	if err := db.Exec(
		`INSERT INTO staff (staff_id, school_code, full_name, email, password_hash, designation, role_id, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, true, now(), now())`,
		"GHS001-P001", schoolCode, "Asha Verma", email, string(hash), "Principal", roleID,
	).Error; err != nil {
		log.Fatalf("failed to insert principal: %v", err)
	}

	fmt.Println("Seeded principal account:", email)
}
