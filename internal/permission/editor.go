package permission

import "sort"

type editorEntry struct {
	View     bool
	Edit     bool
	FromRole bool
}

// OverrideEditor holds the operator's in-progress override edits for one
// staff member. Entries appear only when the operator toggles a pair or when
// a persisted override was loaded; an absent pair means "inherit the merged
// baseline". All operations are synchronous, never block and never fail.
//
// The editor is scoped to a single staff selection. Switching staff means
// discarding the editor and constructing a fresh one from that staff's
// baseline.
type OverrideEditor struct {
	overrides map[int64]map[int64]editorEntry
}

// NewOverrideEditor builds an editor pre-seeded with the baseline's persisted
// overrides (Source == staff), so the working set starts reflecting what is
// already stored. Loaded values are clamped: edit without view becomes
// view-only.
func NewOverrideEditor(baseline []MergedPermission) *OverrideEditor {
	e := &OverrideEditor{overrides: make(map[int64]map[int64]editorEntry)}
	for _, m := range baseline {
		if m.Source != SourceStaff {
			continue
		}
		view, edit := clampAccess(m.ViewAccess, m.EditAccess)
		e.set(m.SubModuleID, m.CategoryID, editorEntry{View: view, Edit: edit})
	}
	return e
}

func (e *OverrideEditor) set(subModuleID, categoryID int64, entry editorEntry) {
	byCategory, ok := e.overrides[subModuleID]
	if !ok {
		byCategory = make(map[int64]editorEntry)
		e.overrides[subModuleID] = byCategory
	}
	byCategory[categoryID] = entry
}

// Toggle flips one capability for a pair. A pair without a working entry is
// first seeded from the merged baseline (zero access when the pair is absent
// there), recording whether that baseline value came from a role. Unchecking
// view cascades: edit is forced off, since edit can never exist without view.
// Toggling the same kind twice restores the pre-toggle values.
func (e *OverrideEditor) Toggle(subModuleID, categoryID int64, kind AccessKind, baseline []MergedPermission) {
	entry, ok := e.entry(subModuleID, categoryID)
	if !ok {
		base := Lookup(baseline, subModuleID, categoryID)
		view, edit := clampAccess(base.ViewAccess, base.EditAccess)
		entry = editorEntry{View: view, Edit: edit, FromRole: base.Source == SourceRole}
	}

	switch kind {
	case KindView:
		entry.View = !entry.View
		if !entry.View {
			entry.Edit = false
		}
	case KindEdit:
		entry.Edit = !entry.Edit
		if entry.Edit && !entry.View {
			// the UI disables this combination; clamp anyway so the
			// invariant holds regardless of caller
			entry.Edit = false
		}
	}

	e.set(subModuleID, categoryID, entry)
}

// RemoveOverride drops the working entry for a pair, reverting it to the
// role-derived baseline on the next resolve. Empty sub-module maps are
// pruned. No-op when the pair has no entry.
func (e *OverrideEditor) RemoveOverride(subModuleID, categoryID int64) {
	byCategory, ok := e.overrides[subModuleID]
	if !ok {
		return
	}
	delete(byCategory, categoryID)
	if len(byCategory) == 0 {
		delete(e.overrides, subModuleID)
	}
}

func (e *OverrideEditor) entry(subModuleID, categoryID int64) (editorEntry, bool) {
	byCategory, ok := e.overrides[subModuleID]
	if !ok {
		return editorEntry{}, false
	}
	entry, ok := byCategory[categoryID]
	return entry, ok
}

// Has reports whether a working entry exists for the pair.
func (e *OverrideEditor) Has(subModuleID, categoryID int64) bool {
	_, ok := e.entry(subModuleID, categoryID)
	return ok
}

// Access returns the working values for a pair. The second return is false
// when the pair has no entry and therefore inherits the baseline.
func (e *OverrideEditor) Access(subModuleID, categoryID int64) (Access, bool) {
	entry, ok := e.entry(subModuleID, categoryID)
	if !ok {
		return Access{}, false
	}
	return Access{View: entry.View, Edit: entry.Edit}, true
}

// FromRole reports whether the pair's pre-toggle baseline came from a role.
// Informational only; it never affects what gets saved.
func (e *OverrideEditor) FromRole(subModuleID, categoryID int64) bool {
	entry, _ := e.entry(subModuleID, categoryID)
	return entry.FromRole
}

// Len returns the number of working entries.
func (e *OverrideEditor) Len() int {
	n := 0
	for _, byCategory := range e.overrides {
		n += len(byCategory)
	}
	return n
}

// SaveList flattens the working set into the rows to persist, ordered by
// (sub_module_id, category_id) so payloads are deterministic. Every entry is
// included, even ones whose values coincide with the role baseline.
func (e *OverrideEditor) SaveList() []OverrideEntry {
	entries := make([]OverrideEntry, 0, e.Len())
	for subModuleID, byCategory := range e.overrides {
		for categoryID, entry := range byCategory {
			entries = append(entries, OverrideEntry{
				SubModuleID: subModuleID,
				CategoryID:  categoryID,
				ViewAccess:  entry.View,
				EditAccess:  entry.Edit,
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].SubModuleID != entries[j].SubModuleID {
			return entries[i].SubModuleID < entries[j].SubModuleID
		}
		return entries[i].CategoryID < entries[j].CategoryID
	})
	return entries
}
