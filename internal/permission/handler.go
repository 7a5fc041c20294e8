package permission

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/edumanage/school-management/internal"
	"github.com/edumanage/school-management/internal/transport"
	"github.com/edumanage/school-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetMergedPermissions(actor internal.ActorContext, staffID int64) ([]MergedPermission, error)
	SaveOverrides(ctx context.Context, actor internal.ActorContext, staffID int64, dto SavePermissionsDTO) (int, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// GetStaffPermissions returns the resolved MergedPermission list for one
// staff member.
func (h *Handler) GetStaffPermissions(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.Logger.Error("GetStaffPermissions: actor not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	staffID, err := parseStaffID(r)
	if err != nil {
		h.Logger.Error("GetStaffPermissions: invalid staff ID", "id", chi.URLParam(r, "id"))
		h.WriteError(w, http.StatusBadRequest, "invalid staff ID")
		return
	}

	merged, err := h.Service.GetMergedPermissions(actor, staffID)
	if err != nil {
		h.Logger.Error("GetStaffPermissions: service error", "error", err, "staff_id", staffID)
		h.writePermissionError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, MergedPermissionsResponse{
		StaffID:     staffID,
		Permissions: merged,
	})
}

// SaveStaffPermissions replaces the staff member's override rows with the
// payload's set.
func (h *Handler) SaveStaffPermissions(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.Logger.Error("SaveStaffPermissions: actor not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	staffID, err := parseStaffID(r)
	if err != nil {
		h.Logger.Error("SaveStaffPermissions: invalid staff ID", "id", chi.URLParam(r, "id"))
		h.WriteError(w, http.StatusBadRequest, "invalid staff ID")
		return
	}

	var dto SavePermissionsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SaveStaffPermissions: invalid request body", "error", err)
		h.HandleServiceError(w, internal.NewValidationError("invalid request body", internal.ErrCodeInvalidPayload))
		return
	}

	saved, err := h.Service.SaveOverrides(r.Context(), actor, staffID, dto)
	if err != nil {
		h.Logger.Error("SaveStaffPermissions: service error", "error", err, "staff_id", staffID, "actor_id", actor.StaffID)
		h.writePermissionError(w, err)
		return
	}

	h.Logger.Info("SaveStaffPermissions: overrides saved",
		"staff_id", staffID,
		"actor_id", actor.StaffID,
		"saved", saved)

	h.WriteJSON(w, http.StatusOK, SaveResponse{
		StaffID: staffID,
		Saved:   saved,
		Status:  "saved",
	})
}

// writePermissionError translates the service's sentinel errors into the
// shared AppError taxonomy before writing the response.
func (h *Handler) writePermissionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrStaffNotFound):
		h.HandleServiceError(w, internal.ErrStaffNotFound)
	case errors.Is(err, ErrEditWithoutView):
		h.HandleServiceError(w, internal.NewValidationError(
			"edit access cannot be granted without view access", internal.ErrCodeEditWithoutView))
	case errors.Is(err, ErrDuplicatePair):
		h.HandleServiceError(w, internal.NewValidationError(
			"duplicate sub-module/category pair in payload", internal.ErrCodeDuplicatePair))
	case errors.Is(err, ErrUnknownPair):
		h.HandleServiceError(w, internal.NewValidationError(
			"unknown sub-module/category pair", internal.ErrCodeUnknownPair))
	case errors.Is(err, ErrSaveFailed):
		h.HandleServiceError(w, internal.NewInternalError(
			"failed to save overrides, edits were not applied", err).WithCode(internal.ErrCodeOverrideSaveFailed))
	default:
		h.HandleServiceError(w, err)
	}
}

func parseStaffID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
