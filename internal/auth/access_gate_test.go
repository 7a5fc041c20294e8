package auth_test

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/edumanage/school-management/internal"
	"github.com/edumanage/school-management/internal/auth"
	"github.com/edumanage/school-management/internal/permission"
)

// Mock access checker for testing
type mockAccessChecker struct {
	access     permission.Access
	checkError error

	lastActor       internal.ActorContext
	lastSubModule   string
	lastCategoryKey string
}

func (m *mockAccessChecker) EffectiveAccess(actor internal.ActorContext, subModuleKey, categoryKey string) (permission.Access, error) {
	m.lastActor = actor
	m.lastSubModule = subModuleKey
	m.lastCategoryKey = categoryKey
	if m.checkError != nil {
		return permission.Access{}, m.checkError
	}
	return m.access, nil
}

var _ = Describe("AccessGate", func() {
	var (
		gate    *auth.AccessGate
		checker *mockAccessChecker
		next    http.Handler
		reached bool
	)

	actor := internal.ActorContext{StaffID: 7, SchoolCode: "GHS001", Role: "principal"}

	newRequest := func(withActor bool) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/staff", nil)
		if withActor {
			req = req.WithContext(internal.ContextWithActor(req.Context(), actor))
		}
		return req
	}

	BeforeEach(func() {
		checker = &mockAccessChecker{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		gate = auth.NewAccessGate(checker, logger)
		reached = false
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			w.WriteHeader(http.StatusOK)
		})
	})

	Describe("RequireView", func() {
		It("should admit an actor with view access", func() {
			checker.access = permission.Access{View: true}
			rec := httptest.NewRecorder()

			gate.RequireView("staff", "permissions")(next).ServeHTTP(rec, newRequest(true))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(reached).To(BeTrue())
			Expect(checker.lastActor.StaffID).To(Equal(int64(7)))
			Expect(checker.lastSubModule).To(Equal("staff"))
			Expect(checker.lastCategoryKey).To(Equal("permissions"))
		})

		It("should reject an actor without view access", func() {
			checker.access = permission.Access{}
			rec := httptest.NewRecorder()

			gate.RequireView("staff", "permissions")(next).ServeHTTP(rec, newRequest(true))

			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(reached).To(BeFalse())
		})

		It("should reject a request with no actor in context", func() {
			rec := httptest.NewRecorder()

			gate.RequireView("staff", "permissions")(next).ServeHTTP(rec, newRequest(false))

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(reached).To(BeFalse())
		})

		It("should fail closed when the access check errors", func() {
			checker.checkError = errors.New("catalog unavailable")
			rec := httptest.NewRecorder()

			gate.RequireView("staff", "permissions")(next).ServeHTTP(rec, newRequest(true))

			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
			Expect(reached).To(BeFalse())
		})
	})

	Describe("RequireEdit", func() {
		It("should reject an actor with only view access", func() {
			checker.access = permission.Access{View: true}
			rec := httptest.NewRecorder()

			gate.RequireEdit("staff", "permissions")(next).ServeHTTP(rec, newRequest(true))

			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(reached).To(BeFalse())
		})

		It("should admit an actor with edit access", func() {
			checker.access = permission.Access{View: true, Edit: true}
			rec := httptest.NewRecorder()

			gate.RequireEdit("staff", "permissions")(next).ServeHTTP(rec, newRequest(true))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(reached).To(BeTrue())
		})
	})
})
