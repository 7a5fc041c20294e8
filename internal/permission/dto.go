package permission

import "fmt"

// OverrideEntryDTO mirrors OverrideEntry on the wire.
type OverrideEntryDTO struct {
	SubModuleID int64 `json:"sub_module_id"`
	CategoryID  int64 `json:"category_id"`
	ViewAccess  bool  `json:"view_access"`
	EditAccess  bool  `json:"edit_access"`
}

// SavePermissionsDTO is the save payload: the full replacement set of
// override rows for one staff member. Pairs omitted here are deleted
// server-side.
type SavePermissionsDTO struct {
	Permissions []OverrideEntryDTO `json:"permissions"`
	AssignedBy  int64              `json:"assigned_by"`
}

// Validate rejects payloads the core must never see: a row granting edit
// without view, a pair listed twice, or non-positive identifiers. Rejecting
// (rather than clamping) keeps client bugs visible; the in-memory editor is
// the layer that clamps.
func (dto SavePermissionsDTO) Validate() error {
	seen := make(map[PairKey]bool, len(dto.Permissions))
	for i, p := range dto.Permissions {
		if p.SubModuleID <= 0 || p.CategoryID <= 0 {
			return fmt.Errorf("permissions[%d]: %w", i, ErrUnknownPair)
		}
		if p.EditAccess && !p.ViewAccess {
			return fmt.Errorf("permissions[%d]: %w", i, ErrEditWithoutView)
		}
		key := PairKey{SubModuleID: p.SubModuleID, CategoryID: p.CategoryID}
		if seen[key] {
			return fmt.Errorf("permissions[%d]: %w", i, ErrDuplicatePair)
		}
		seen[key] = true
	}
	return nil
}

// Entries converts the payload to domain entries.
func (dto SavePermissionsDTO) Entries() []OverrideEntry {
	entries := make([]OverrideEntry, 0, len(dto.Permissions))
	for _, p := range dto.Permissions {
		entries = append(entries, OverrideEntry{
			SubModuleID: p.SubModuleID,
			CategoryID:  p.CategoryID,
			ViewAccess:  p.ViewAccess,
			EditAccess:  p.EditAccess,
		})
	}
	return entries
}

// MergedPermissionsResponse wraps the resolved list for one staff member.
type MergedPermissionsResponse struct {
	StaffID     int64              `json:"staff_id"`
	Permissions []MergedPermission `json:"permissions"`
}

// SaveResponse reports how many override rows are now persisted.
type SaveResponse struct {
	StaffID int64  `json:"staff_id"`
	Saved   int    `json:"saved"`
	Status  string `json:"status"`
}
