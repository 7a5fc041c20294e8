package permission_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/edumanage/school-management/internal"
	"github.com/edumanage/school-management/internal/permission"
)

// Mock service for testing the handler in isolation
type mockPermissionService struct {
	merged    []permission.MergedPermission
	getError  error
	saved     int
	saveError error

	savedStaffID int64
	savedDTO     permission.SavePermissionsDTO
}

func (m *mockPermissionService) GetMergedPermissions(actor internal.ActorContext, staffID int64) ([]permission.MergedPermission, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.merged, nil
}

func (m *mockPermissionService) SaveOverrides(ctx context.Context, actor internal.ActorContext, staffID int64, dto permission.SavePermissionsDTO) (int, error) {
	if m.saveError != nil {
		return 0, m.saveError
	}
	m.savedStaffID = staffID
	m.savedDTO = dto
	return m.saved, nil
}

var _ = Describe("Permission Handler", func() {
	var (
		mockService *mockPermissionService
		router      chi.Router
	)

	actor := internal.ActorContext{StaffID: 7, SchoolCode: "GHS001", Role: "principal"}

	withActor := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(internal.ContextWithActor(r.Context(), actor)))
		})
	}

	BeforeEach(func() {
		mockService = &mockPermissionService{}
		handler := permission.NewHandler(mockService)

		router = chi.NewRouter()
		router.Use(withActor)
		router.Get("/staff/{id}/permissions", handler.GetStaffPermissions)
		router.Post("/staff/{id}/permissions", handler.SaveStaffPermissions)
	})

	Describe("GET /staff/{id}/permissions", func() {
		It("should return the resolved permission list", func() {
			mockService.merged = []permission.MergedPermission{
				{SubModuleID: 10, CategoryID: 100, ViewAccess: true, EditAccess: false, Source: permission.SourceRole},
				{SubModuleID: 10, CategoryID: 101, ViewAccess: false, EditAccess: false, Source: permission.SourceStaff},
			}

			req := httptest.NewRequest(http.MethodGet, "/staff/42/permissions", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			var response permission.MergedPermissionsResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.StaffID).To(Equal(int64(42)))
			Expect(response.Permissions).To(HaveLen(2))
			Expect(response.Permissions[0].Source).To(Equal(permission.SourceRole))
			Expect(response.Permissions[1].Source).To(Equal(permission.SourceStaff))
		})

		It("should return 404 for an unknown staff member", func() {
			mockService.getError = permission.ErrStaffNotFound

			req := httptest.NewRequest(http.MethodGet, "/staff/999/permissions", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Body.String()).To(ContainSubstring("STAFF_NOT_FOUND"))
		})

		It("should return 400 for a non-numeric staff id", func() {
			req := httptest.NewRequest(http.MethodGet, "/staff/abc/permissions", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("POST /staff/{id}/permissions", func() {
		It("should save the payload and report the persisted count", func() {
			mockService.saved = 2
			payload := permission.SavePermissionsDTO{
				Permissions: []permission.OverrideEntryDTO{
					{SubModuleID: 10, CategoryID: 100, ViewAccess: true, EditAccess: true},
					{SubModuleID: 10, CategoryID: 101, ViewAccess: true, EditAccess: false},
				},
			}
			body, err := json.Marshal(payload)
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodPost, "/staff/42/permissions", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response permission.SaveResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.StaffID).To(Equal(int64(42)))
			Expect(response.Saved).To(Equal(2))
			Expect(response.Status).To(Equal("saved"))

			Expect(mockService.savedStaffID).To(Equal(int64(42)))
			Expect(mockService.savedDTO.Permissions).To(HaveLen(2))
		})

		It("should return 400 when the payload grants edit without view", func() {
			mockService.saveError = permission.ErrEditWithoutView

			body := []byte(`{"permissions":[{"sub_module_id":10,"category_id":100,"view_access":false,"edit_access":true}]}`)
			req := httptest.NewRequest(http.MethodPost, "/staff/42/permissions", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("EDIT_WITHOUT_VIEW"))
		})

		It("should return 400 for a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/staff/42/permissions", bytes.NewReader([]byte("{not json")))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("INVALID_PAYLOAD"))
		})

		It("should return 500 when the save transaction fails", func() {
			mockService.saveError = permission.ErrSaveFailed

			body := []byte(`{"permissions":[]}`)
			req := httptest.NewRequest(http.MethodPost, "/staff/42/permissions", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Body.String()).To(ContainSubstring("OVERRIDE_SAVE_FAILED"))
		})
	})
})
