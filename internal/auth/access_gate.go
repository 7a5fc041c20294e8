package auth

import (
	"log/slog"
	"net/http"

	"github.com/edumanage/school-management/internal"
	"github.com/edumanage/school-management/internal/permission"
)

// AccessChecker resolves the acting staff member's effective access to a
// catalog pair. Implemented by the permission service, so the gate enforces
// the same merged model it administers.
type AccessChecker interface {
	EffectiveAccess(actor internal.ActorContext, subModuleKey, categoryKey string) (permission.Access, error)
}

// AccessGate guards routes behind the actor's own resolved permissions.
type AccessGate struct {
	checker AccessChecker
	logger  *slog.Logger
}

func NewAccessGate(checker AccessChecker, logger *slog.Logger) *AccessGate {
	return &AccessGate{
		checker: checker,
		logger:  logger,
	}
}

// RequireView admits requests whose actor has view access to the pair.
func (g *AccessGate) RequireView(subModuleKey, categoryKey string) func(http.Handler) http.Handler {
	return g.require(subModuleKey, categoryKey, permission.KindView)
}

// RequireEdit admits requests whose actor has edit access to the pair.
func (g *AccessGate) RequireEdit(subModuleKey, categoryKey string) func(http.Handler) http.Handler {
	return g.require(subModuleKey, categoryKey, permission.KindEdit)
}

func (g *AccessGate) require(subModuleKey, categoryKey string, kind permission.AccessKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := internal.ActorFromContext(r.Context())
			if !ok {
				g.logger.Warn("access gate: actor not found in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			access, err := g.checker.EffectiveAccess(actor, subModuleKey, categoryKey)
			if err != nil {
				g.logger.ErrorContext(r.Context(), "access check failed",
					"error", err,
					"staff_id", actor.StaffID,
					"sub_module_key", subModuleKey,
					"category_key", categoryKey)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			allowed := access.View
			if kind == permission.KindEdit {
				allowed = access.Edit
			}

			if !allowed {
				g.logger.WarnContext(r.Context(), "access denied: insufficient access",
					"staff_id", actor.StaffID,
					"sub_module_key", subModuleKey,
					"category_key", categoryKey,
					"required", kind)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
