package catalog

// ModulesResponse wraps the full catalog tree.
type ModulesResponse struct {
	Modules []Module `json:"modules"`
}
