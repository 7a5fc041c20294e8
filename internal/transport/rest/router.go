package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/edumanage/school-management/internal/auth"
	"github.com/edumanage/school-management/internal/catalog"
	"github.com/edumanage/school-management/internal/permission"
	"github.com/edumanage/school-management/internal/staff"
	"github.com/edumanage/school-management/internal/transport/middleware"
	"github.com/edumanage/school-management/internal/transport/swagger"
	"github.com/go-chi/chi"
)

// Catalog keys the permission-administration routes are themselves gated on.
// Staff need view access to (staff, permissions) to browse, edit access to
// change overrides.
const (
	staffSubModuleKey = "staff"
	permissionsCatKey = "permissions"
)

// RegisterAllRoutes wires every handler onto the router. The permission
// routes are protected by the access gate, which resolves the caller's own
// merged permissions through the same resolver it administers.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	allowedOrigins string,
	authHandler *auth.Handler,
	gate *auth.AccessGate,
	catalogHandler *catalog.Handler,
	staffHandler *staff.Handler,
	permissionHandler *permission.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec at root, swagger UI alongside
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Post("/logout", authHandler.Logout)
			})
		}

		if authHandler != nil {
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				pr.Get("/me", authHandler.Me)

				if catalogHandler != nil {
					pr.Group(func(cr chi.Router) {
						cr.Use(gate.RequireView(staffSubModuleKey, permissionsCatKey))
						cr.Get("/catalog/modules", catalogHandler.GetModules)
					})
				}

				if staffHandler != nil {
					pr.Group(func(sr chi.Router) {
						sr.Use(gate.RequireView(staffSubModuleKey, permissionsCatKey))
						sr.Get("/staff", staffHandler.GetRoster)
						sr.Get("/staff/{id}", staffHandler.GetStaff)
					})
				}

				if permissionHandler != nil {
					pr.Route("/staff/{id}/permissions", func(pmr chi.Router) {
						pmr.Group(func(vr chi.Router) {
							vr.Use(gate.RequireView(staffSubModuleKey, permissionsCatKey))
							vr.Get("/", permissionHandler.GetStaffPermissions)
						})
						pmr.Group(func(er chi.Router) {
							er.Use(gate.RequireEdit(staffSubModuleKey, permissionsCatKey))
							er.Post("/", permissionHandler.SaveStaffPermissions)
						})
					})
				}
			})
		}
	})
}
