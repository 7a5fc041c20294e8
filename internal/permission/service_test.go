package permission_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/edumanage/school-management/internal"
	"github.com/edumanage/school-management/internal/core/events"
	"github.com/edumanage/school-management/internal/permission"
)

// Mock repository for testing
type mockPermissionRepository struct {
	rolesByStaff     map[int64]int64
	rolePermissions  map[int64][]permission.RolePermission
	staffOverrides   map[int64][]permission.StaffOverride
	knownPairs       map[permission.PairKey]bool
	pairKeys         map[string]permission.PairKey
	getRoleError     error
	getPermsError    error
	getOverrideError error
	pairExistsError  error
	replaceError     error

	replacedStaffID    int64
	replacedAssignedBy int64
	replacedEntries    []permission.OverrideEntry
	replaceCalled      bool
}

func newMockPermissionRepository() *mockPermissionRepository {
	return &mockPermissionRepository{
		rolesByStaff:    make(map[int64]int64),
		rolePermissions: make(map[int64][]permission.RolePermission),
		staffOverrides:  make(map[int64][]permission.StaffOverride),
		knownPairs:      make(map[permission.PairKey]bool),
		pairKeys:        make(map[string]permission.PairKey),
	}
}

func (m *mockPermissionRepository) GetStaffRole(schoolCode string, staffID int64) (int64, error) {
	if m.getRoleError != nil {
		return 0, m.getRoleError
	}
	roleID, exists := m.rolesByStaff[staffID]
	if !exists {
		return 0, permission.ErrStaffNotFound
	}
	return roleID, nil
}

func (m *mockPermissionRepository) GetRolePermissions(roleID int64) ([]permission.RolePermission, error) {
	if m.getPermsError != nil {
		return nil, m.getPermsError
	}
	return m.rolePermissions[roleID], nil
}

func (m *mockPermissionRepository) GetStaffOverrides(staffID int64) ([]permission.StaffOverride, error) {
	if m.getOverrideError != nil {
		return nil, m.getOverrideError
	}
	return m.staffOverrides[staffID], nil
}

func (m *mockPermissionRepository) ReplaceStaffOverrides(staffID, assignedBy int64, entries []permission.OverrideEntry) error {
	if m.replaceError != nil {
		return m.replaceError
	}
	m.replaceCalled = true
	m.replacedStaffID = staffID
	m.replacedAssignedBy = assignedBy
	m.replacedEntries = entries
	return nil
}

func (m *mockPermissionRepository) PairExists(subModuleID, categoryID int64) (bool, error) {
	if m.pairExistsError != nil {
		return false, m.pairExistsError
	}
	return m.knownPairs[permission.PairKey{SubModuleID: subModuleID, CategoryID: categoryID}], nil
}

func (m *mockPermissionRepository) ResolvePairKeys(subModuleKey, categoryKey string) (int64, int64, error) {
	key, exists := m.pairKeys[subModuleKey+"/"+categoryKey]
	if !exists {
		return 0, 0, permission.ErrUnknownPair
	}
	return key.SubModuleID, key.CategoryID, nil
}

// Mock event publisher for testing
type mockEventPublisher struct {
	published    []events.Event
	publishError error
}

func (m *mockEventPublisher) Publish(ctx context.Context, event events.Event) error {
	if m.publishError != nil {
		return m.publishError
	}
	m.published = append(m.published, event)
	return nil
}

var _ = Describe("PermissionService", func() {
	var (
		service  *permission.Service
		mockRepo *mockPermissionRepository
		mockBus  *mockEventPublisher
		actor    internal.ActorContext
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = newMockPermissionRepository()
		mockBus = &mockEventPublisher{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = permission.NewService(mockRepo, mockBus, logger)
		actor = internal.ActorContext{StaffID: 7, SchoolCode: "GHS001", Role: "principal"}
	})

	Describe("GetMergedPermissions", func() {
		Context("when the staff member has role permissions and overrides", func() {
			It("should resolve them with override precedence", func() {
				mockRepo.rolesByStaff[42] = 3
				mockRepo.rolePermissions[3] = []permission.RolePermission{
					{SubModuleID: 10, CategoryID: 100, ViewAccess: true, EditAccess: true},
					{SubModuleID: 10, CategoryID: 101, ViewAccess: true, EditAccess: false},
				}
				mockRepo.staffOverrides[42] = []permission.StaffOverride{
					{StaffID: 42, SubModuleID: 10, CategoryID: 100, ViewAccess: false, EditAccess: false},
				}

				merged, err := service.GetMergedPermissions(actor, 42)

				Expect(err).ToNot(HaveOccurred())
				Expect(merged).To(HaveLen(2))

				overridden := permission.Lookup(merged, 10, 100)
				Expect(overridden.ViewAccess).To(BeFalse())
				Expect(overridden.Source).To(Equal(permission.SourceStaff))

				inherited := permission.Lookup(merged, 10, 101)
				Expect(inherited.ViewAccess).To(BeTrue())
				Expect(inherited.Source).To(Equal(permission.SourceRole))
			})
		})

		Context("when the staff member does not exist in the actor's school", func() {
			It("should return staff not found", func() {
				merged, err := service.GetMergedPermissions(actor, 999)

				Expect(err).To(MatchError(permission.ErrStaffNotFound))
				Expect(merged).To(BeNil())
			})
		})

		Context("when loading role permissions fails", func() {
			It("should propagate the error", func() {
				mockRepo.rolesByStaff[42] = 3
				mockRepo.getPermsError = errors.New("database error")

				_, err := service.GetMergedPermissions(actor, 42)

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("database error"))
			})
		})
	})

	Describe("SaveOverrides", func() {
		var dto permission.SavePermissionsDTO

		BeforeEach(func() {
			mockRepo.rolesByStaff[42] = 3
			mockRepo.knownPairs[permission.PairKey{SubModuleID: 10, CategoryID: 100}] = true
			mockRepo.knownPairs[permission.PairKey{SubModuleID: 10, CategoryID: 101}] = true
			dto = permission.SavePermissionsDTO{
				Permissions: []permission.OverrideEntryDTO{
					{SubModuleID: 10, CategoryID: 100, ViewAccess: true, EditAccess: true},
					{SubModuleID: 10, CategoryID: 101, ViewAccess: true, EditAccess: false},
				},
			}
		})

		Context("with a valid payload", func() {
			It("should replace the staff member's overrides", func() {
				saved, err := service.SaveOverrides(context.Background(), actor, 42, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(saved).To(Equal(2))
				Expect(mockRepo.replaceCalled).To(BeTrue())
				Expect(mockRepo.replacedStaffID).To(Equal(int64(42)))
				Expect(mockRepo.replacedEntries).To(HaveLen(2))
			})

			It("should default assigned_by to the acting staff member", func() {
				_, err := service.SaveOverrides(context.Background(), actor, 42, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(mockRepo.replacedAssignedBy).To(Equal(actor.StaffID))
			})

			It("should honor an explicit assigned_by", func() {
				dto.AssignedBy = 99

				_, err := service.SaveOverrides(context.Background(), actor, 42, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(mockRepo.replacedAssignedBy).To(Equal(int64(99)))
			})

			It("should publish a permissions.updated event after the save", func() {
				_, err := service.SaveOverrides(context.Background(), actor, 42, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(mockBus.published).To(HaveLen(1))
				Expect(mockBus.published[0].EventType()).To(Equal(events.PermissionsUpdatedEventType))

				payload, ok := mockBus.published[0].Payload().(map[string]interface{})
				Expect(ok).To(BeTrue())
				Expect(payload["staff_id"]).To(Equal(int64(42)))
				Expect(payload["school_code"]).To(Equal("GHS001"))
				Expect(payload["override_count"]).To(Equal(2))
			})

			It("should accept an empty payload and clear all overrides", func() {
				empty := permission.SavePermissionsDTO{}

				saved, err := service.SaveOverrides(context.Background(), actor, 42, empty)

				Expect(err).ToNot(HaveOccurred())
				Expect(saved).To(Equal(0))
				Expect(mockRepo.replaceCalled).To(BeTrue())
				Expect(mockRepo.replacedEntries).To(BeEmpty())
			})

			It("should not fail the save when publishing fails", func() {
				mockBus.publishError = errors.New("bus unavailable")

				saved, err := service.SaveOverrides(context.Background(), actor, 42, dto)

				Expect(err).ToNot(HaveOccurred())
				Expect(saved).To(Equal(2))
			})
		})

		Context("when a row grants edit without view", func() {
			It("should reject the payload before touching the repository", func() {
				dto.Permissions = append(dto.Permissions, permission.OverrideEntryDTO{
					SubModuleID: 10, CategoryID: 101, ViewAccess: false, EditAccess: true,
				})

				_, err := service.SaveOverrides(context.Background(), actor, 42, dto)

				Expect(err).To(MatchError(permission.ErrEditWithoutView))
				Expect(mockRepo.replaceCalled).To(BeFalse())
				Expect(mockBus.published).To(BeEmpty())
			})
		})

		Context("when the same pair appears twice", func() {
			It("should reject the payload", func() {
				dto.Permissions = append(dto.Permissions, dto.Permissions[0])

				_, err := service.SaveOverrides(context.Background(), actor, 42, dto)

				Expect(err).To(MatchError(permission.ErrDuplicatePair))
				Expect(mockRepo.replaceCalled).To(BeFalse())
			})
		})

		Context("when a pair is not in the catalog", func() {
			It("should reject the payload with unknown pair", func() {
				dto.Permissions = append(dto.Permissions, permission.OverrideEntryDTO{
					SubModuleID: 77, CategoryID: 777, ViewAccess: true,
				})

				_, err := service.SaveOverrides(context.Background(), actor, 42, dto)

				Expect(err).To(MatchError(permission.ErrUnknownPair))
				Expect(mockRepo.replaceCalled).To(BeFalse())
			})
		})

		Context("when the staff member is outside the actor's school", func() {
			It("should return staff not found and persist nothing", func() {
				_, err := service.SaveOverrides(context.Background(), actor, 555, dto)

				Expect(err).To(MatchError(permission.ErrStaffNotFound))
				Expect(mockRepo.replaceCalled).To(BeFalse())
				Expect(mockBus.published).To(BeEmpty())
			})
		})

		Context("when the replacement transaction fails", func() {
			It("should return save failed and publish no event", func() {
				mockRepo.replaceError = errors.New("constraint violation")

				_, err := service.SaveOverrides(context.Background(), actor, 42, dto)

				Expect(err).To(MatchError(permission.ErrSaveFailed))
				Expect(mockBus.published).To(BeEmpty())
			})
		})
	})

	Describe("EffectiveAccess", func() {
		BeforeEach(func() {
			mockRepo.pairKeys["staff/permissions"] = permission.PairKey{SubModuleID: 10, CategoryID: 100}
			mockRepo.rolesByStaff[actor.StaffID] = 3
			mockRepo.rolePermissions[3] = []permission.RolePermission{
				{SubModuleID: 10, CategoryID: 100, ViewAccess: true, EditAccess: false},
			}
		})

		It("should resolve the actor's own access by catalog keys", func() {
			access, err := service.EffectiveAccess(actor, "staff", "permissions")

			Expect(err).ToNot(HaveOccurred())
			Expect(access.View).To(BeTrue())
			Expect(access.Edit).To(BeFalse())
		})

		It("should apply the actor's own overrides", func() {
			mockRepo.staffOverrides[actor.StaffID] = []permission.StaffOverride{
				{StaffID: actor.StaffID, SubModuleID: 10, CategoryID: 100, ViewAccess: true, EditAccess: true},
			}

			access, err := service.EffectiveAccess(actor, "staff", "permissions")

			Expect(err).ToNot(HaveOccurred())
			Expect(access.Edit).To(BeTrue())
		})

		It("should return unknown pair for keys missing from the catalog", func() {
			_, err := service.EffectiveAccess(actor, "nope", "missing")

			Expect(err).To(MatchError(permission.ErrUnknownPair))
		})
	})
})
