package catalog

import "time"

type Module struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Key       string    `gorm:"column:key;uniqueIndex;not null"`
	SortOrder int       `gorm:"column:sort_order;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	SubModules []SubModule `gorm:"foreignKey:ModuleID"`
}

func (Module) TableName() string {
	return "modules"
}

type SubModule struct {
	ID        int64     `gorm:"primaryKey"`
	ModuleID  int64     `gorm:"column:module_id;not null;uniqueIndex:idx_sub_modules_module_key"`
	Name      string    `gorm:"column:name;not null"`
	Key       string    `gorm:"column:key;not null;uniqueIndex:idx_sub_modules_module_key"`
	SortOrder int       `gorm:"column:sort_order;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Categories []PermissionCategory `gorm:"foreignKey:SubModuleID"`
}

func (SubModule) TableName() string {
	return "sub_modules"
}

type PermissionCategory struct {
	ID          int64     `gorm:"primaryKey"`
	SubModuleID int64     `gorm:"column:sub_module_id;not null;index"`
	Name        string    `gorm:"column:name;not null"`
	Key         string    `gorm:"column:key;not null"`
	Type        string    `gorm:"column:type;default:data"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (PermissionCategory) TableName() string {
	return "permission_categories"
}
