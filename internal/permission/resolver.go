package permission

// Resolve merges role-derived permissions with per-staff overrides into the
// authoritative MergedPermission list for one staff member. Overrides take
// strict precedence; pairs present only in the role input fall back to the
// role values; pairs in neither input are not emitted. Exactly one output
// row exists per pair that appears in either input.
//
// Both inputs are expected to be scoped to a single staff member. The
// function is pure and keeps input order: overrides first, then the
// remaining role permissions.
func Resolve(rolePerms []RolePermission, overrides []StaffOverride) []MergedPermission {
	merged := make([]MergedPermission, 0, len(rolePerms)+len(overrides))
	overridden := make(map[PairKey]bool, len(overrides))

	for _, o := range overrides {
		key := PairKey{SubModuleID: o.SubModuleID, CategoryID: o.CategoryID}
		if overridden[key] {
			// at most one override per pair is a store invariant; a
			// duplicate here means corrupt input, keep the first
			continue
		}
		overridden[key] = true

		view, edit := clampAccess(o.ViewAccess, o.EditAccess)
		merged = append(merged, MergedPermission{
			SubModuleID: o.SubModuleID,
			CategoryID:  o.CategoryID,
			ViewAccess:  view,
			EditAccess:  edit,
			Source:      SourceStaff,
		})
	}

	seen := make(map[PairKey]bool, len(rolePerms))
	for _, rp := range rolePerms {
		key := PairKey{SubModuleID: rp.SubModuleID, CategoryID: rp.CategoryID}
		if overridden[key] || seen[key] {
			continue
		}
		seen[key] = true

		view, edit := clampAccess(rp.ViewAccess, rp.EditAccess)
		merged = append(merged, MergedPermission{
			SubModuleID: rp.SubModuleID,
			CategoryID:  rp.CategoryID,
			ViewAccess:  view,
			EditAccess:  edit,
			Source:      SourceRole,
		})
	}

	return merged
}

// Lookup returns the merged permission for a pair, or a zero-access entry
// with SourceNone when the pair appears nowhere in the baseline. This is the
// value the editor seeds from when the operator first touches a pair.
func Lookup(baseline []MergedPermission, subModuleID, categoryID int64) MergedPermission {
	for _, m := range baseline {
		if m.SubModuleID == subModuleID && m.CategoryID == categoryID {
			return m
		}
	}
	return MergedPermission{
		SubModuleID: subModuleID,
		CategoryID:  categoryID,
		Source:      SourceNone,
	}
}
