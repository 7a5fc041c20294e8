package catalog

import (
	"errors"

	catalogDatamodel "github.com/edumanage/school-management/internal/core/datamodel/catalog"
)

// Module is a top-level grouping of permissionable features, e.g. "Fees".
type Module struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Key        string      `json:"key"`
	SubModules []SubModule `json:"sub_modules"`
}

// SubModule belongs to exactly one Module.
type SubModule struct {
	ID         int64                `json:"id"`
	ModuleID   int64                `json:"module_id"`
	Name       string               `json:"name"`
	Key        string               `json:"key"`
	Categories []PermissionCategory `json:"categories"`
}

// PermissionCategory is the leaf of the catalog tree. Type is a free-form
// classifier ("data", "report") with no behavioral effect.
type PermissionCategory struct {
	ID          int64  `json:"id"`
	SubModuleID int64  `json:"sub_module_id"`
	Name        string `json:"name"`
	Key         string `json:"key"`
	Type        string `json:"type"`
}

var ErrCatalogEmpty = errors.New("permission catalog is empty")

func FromDataModel(m *catalogDatamodel.Module) Module {
	module := Module{
		ID:         m.ID,
		Name:       m.Name,
		Key:        m.Key,
		SubModules: make([]SubModule, 0, len(m.SubModules)),
	}
	for i := range m.SubModules {
		sm := &m.SubModules[i]
		subModule := SubModule{
			ID:         sm.ID,
			ModuleID:   sm.ModuleID,
			Name:       sm.Name,
			Key:        sm.Key,
			Categories: make([]PermissionCategory, 0, len(sm.Categories)),
		}
		for j := range sm.Categories {
			c := &sm.Categories[j]
			subModule.Categories = append(subModule.Categories, PermissionCategory{
				ID:          c.ID,
				SubModuleID: c.SubModuleID,
				Name:        c.Name,
				Key:         c.Key,
				Type:        c.Type,
			})
		}
		module.SubModules = append(module.SubModules, subModule)
	}
	return module
}

// CategoryCount returns the number of categories across the whole tree.
func CategoryCount(modules []Module) int {
	n := 0
	for _, m := range modules {
		for _, sm := range m.SubModules {
			n += len(sm.Categories)
		}
	}
	return n
}
