package permission_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/edumanage/school-management/internal/permission"
)

var _ = Describe("OverrideEditor", func() {
	var baseline []permission.MergedPermission

	BeforeEach(func() {
		baseline = []permission.MergedPermission{
			{SubModuleID: 10, CategoryID: 100, ViewAccess: true, EditAccess: false, Source: permission.SourceRole},
			{SubModuleID: 10, CategoryID: 101, ViewAccess: true, EditAccess: true, Source: permission.SourceStaff},
		}
	})

	Describe("NewOverrideEditor", func() {
		It("should seed only the persisted overrides from the baseline", func() {
			editor := permission.NewOverrideEditor(baseline)

			Expect(editor.Len()).To(Equal(1))
			Expect(editor.Has(10, 101)).To(BeTrue())
			Expect(editor.Has(10, 100)).To(BeFalse())

			access, ok := editor.Access(10, 101)
			Expect(ok).To(BeTrue())
			Expect(access.View).To(BeTrue())
			Expect(access.Edit).To(BeTrue())
		})

		It("should clamp a loaded override carrying edit without view", func() {
			corrupt := []permission.MergedPermission{
				{SubModuleID: 30, CategoryID: 300, ViewAccess: false, EditAccess: true, Source: permission.SourceStaff},
			}

			editor := permission.NewOverrideEditor(corrupt)

			access, ok := editor.Access(30, 300)
			Expect(ok).To(BeTrue())
			Expect(access.View).To(BeFalse())
			Expect(access.Edit).To(BeFalse())
		})
	})

	Describe("Toggle", func() {
		Context("when the pair has no working entry", func() {
			It("should seed from the role baseline and then flip", func() {
				editor := permission.NewOverrideEditor(baseline)

				// baseline for (10,100) is view=true edit=false from role
				editor.Toggle(10, 100, permission.KindEdit, baseline)

				access, ok := editor.Access(10, 100)
				Expect(ok).To(BeTrue())
				Expect(access.View).To(BeTrue())
				Expect(access.Edit).To(BeTrue())
				Expect(editor.FromRole(10, 100)).To(BeTrue())
			})

			It("should seed zero access for a pair absent from the baseline", func() {
				editor := permission.NewOverrideEditor(baseline)

				editor.Toggle(50, 500, permission.KindView, baseline)

				access, ok := editor.Access(50, 500)
				Expect(ok).To(BeTrue())
				Expect(access.View).To(BeTrue())
				Expect(access.Edit).To(BeFalse())
				Expect(editor.FromRole(50, 500)).To(BeFalse())
			})
		})

		Context("when view is unchecked", func() {
			It("should cascade edit off", func() {
				editor := permission.NewOverrideEditor(baseline)

				// (10,101) starts view=true edit=true
				editor.Toggle(10, 101, permission.KindView, baseline)

				access, _ := editor.Access(10, 101)
				Expect(access.View).To(BeFalse())
				Expect(access.Edit).To(BeFalse())
			})
		})

		Context("when edit is toggled on without view", func() {
			It("should clamp edit back off", func() {
				editor := permission.NewOverrideEditor(nil)

				editor.Toggle(50, 500, permission.KindEdit, nil)

				access, ok := editor.Access(50, 500)
				Expect(ok).To(BeTrue())
				Expect(access.View).To(BeFalse())
				Expect(access.Edit).To(BeFalse())
			})
		})

		Context("when the same kind is toggled twice", func() {
			It("should restore the pre-toggle values", func() {
				editor := permission.NewOverrideEditor(baseline)

				editor.Toggle(10, 100, permission.KindEdit, baseline)
				editor.Toggle(10, 100, permission.KindEdit, baseline)

				access, ok := editor.Access(10, 100)
				Expect(ok).To(BeTrue())
				Expect(access.View).To(BeTrue())
				Expect(access.Edit).To(BeFalse())
			})

			It("should restore view exactly even when the first flip cascaded", func() {
				editor := permission.NewOverrideEditor(baseline)

				// (10,101) starts view=true edit=true; unchecking view
				// cascades edit off, so re-checking view leaves edit off
				editor.Toggle(10, 101, permission.KindView, baseline)
				editor.Toggle(10, 101, permission.KindView, baseline)

				access, ok := editor.Access(10, 101)
				Expect(ok).To(BeTrue())
				Expect(access.View).To(BeTrue())
				Expect(access.Edit).To(BeFalse())
			})
		})

		It("should never hold edit without view after any toggle sequence", func() {
			editor := permission.NewOverrideEditor(baseline)

			pairs := []struct{ sub, cat int64 }{{10, 100}, {10, 101}, {50, 500}}
			kinds := []permission.AccessKind{
				permission.KindEdit, permission.KindView, permission.KindEdit,
				permission.KindView, permission.KindEdit, permission.KindView,
			}
			for i, kind := range kinds {
				p := pairs[i%len(pairs)]
				editor.Toggle(p.sub, p.cat, kind, baseline)
			}

			for _, entry := range editor.SaveList() {
				if entry.EditAccess {
					Expect(entry.ViewAccess).To(BeTrue())
				}
			}
		})
	})

	Describe("RemoveOverride", func() {
		It("should drop the working entry so the pair inherits the baseline", func() {
			editor := permission.NewOverrideEditor(baseline)
			Expect(editor.Has(10, 101)).To(BeTrue())

			editor.RemoveOverride(10, 101)

			Expect(editor.Has(10, 101)).To(BeFalse())
			Expect(editor.Len()).To(Equal(0))
		})

		It("should be a no-op for a pair with no entry", func() {
			editor := permission.NewOverrideEditor(baseline)

			editor.RemoveOverride(99, 999)

			Expect(editor.Len()).To(Equal(1))
		})

		It("should leave the pair out of the save list after any toggles", func() {
			editor := permission.NewOverrideEditor(baseline)
			editor.Toggle(10, 100, permission.KindEdit, baseline)
			editor.Toggle(10, 100, permission.KindView, baseline)

			editor.RemoveOverride(10, 100)

			for _, entry := range editor.SaveList() {
				Expect(entry.SubModuleID == 10 && entry.CategoryID == 100).To(BeFalse())
			}
		})
	})

	Describe("SaveList", func() {
		It("should flatten the working set ordered by sub-module then category", func() {
			editor := permission.NewOverrideEditor(nil)
			editor.Toggle(20, 201, permission.KindView, nil)
			editor.Toggle(10, 100, permission.KindView, nil)
			editor.Toggle(20, 200, permission.KindView, nil)

			list := editor.SaveList()

			Expect(list).To(HaveLen(3))
			Expect(list[0].SubModuleID).To(Equal(int64(10)))
			Expect(list[0].CategoryID).To(Equal(int64(100)))
			Expect(list[1].SubModuleID).To(Equal(int64(20)))
			Expect(list[1].CategoryID).To(Equal(int64(200)))
			Expect(list[2].SubModuleID).To(Equal(int64(20)))
			Expect(list[2].CategoryID).To(Equal(int64(201)))
		})

		It("should include entries whose values match the role baseline", func() {
			editor := permission.NewOverrideEditor(baseline)

			// flip edit on then off again for (10,100); values now equal
			// the role baseline but the entry still exists
			editor.Toggle(10, 100, permission.KindEdit, baseline)
			editor.Toggle(10, 100, permission.KindEdit, baseline)

			list := editor.SaveList()

			found := false
			for _, entry := range list {
				if entry.SubModuleID == 10 && entry.CategoryID == 100 {
					found = true
					Expect(entry.ViewAccess).To(BeTrue())
					Expect(entry.EditAccess).To(BeFalse())
				}
			}
			Expect(found).To(BeTrue())
		})

		It("should return an empty list for an empty working set", func() {
			editor := permission.NewOverrideEditor(nil)
			Expect(editor.SaveList()).To(BeEmpty())
		})
	})

	Describe("round trip through resolve", func() {
		It("should make saved toggles win over the role on the next load", func() {
			rolePerms := []permission.RolePermission{
				{SubModuleID: 10, CategoryID: 100, ViewAccess: true, EditAccess: false},
			}
			merged := permission.Resolve(rolePerms, nil)

			editor := permission.NewOverrideEditor(merged)
			editor.Toggle(10, 100, permission.KindView, merged)

			overrides := make([]permission.StaffOverride, 0)
			for _, entry := range editor.SaveList() {
				overrides = append(overrides, permission.StaffOverride{
					StaffID:     1,
					SubModuleID: entry.SubModuleID,
					CategoryID:  entry.CategoryID,
					ViewAccess:  entry.ViewAccess,
					EditAccess:  entry.EditAccess,
				})
			}

			reloaded := permission.Resolve(rolePerms, overrides)

			Expect(reloaded).To(HaveLen(1))
			Expect(reloaded[0].ViewAccess).To(BeFalse())
			Expect(reloaded[0].EditAccess).To(BeFalse())
			Expect(reloaded[0].Source).To(Equal(permission.SourceStaff))
		})
	})
})
