package staff

import (
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
	GetRoster(schoolCode string, limit, offset int) ([]StaffResponse, error)
	GetByID(schoolCode string, id int64) (*Staff, error)
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

// GetRoster serves the tenant-scoped staff list.
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.Logger.Error("GetRoster: actor not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 50
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 200 {
			limit = l
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	roster, err := h.Service.GetRoster(actor.SchoolCode, limit, offset)
	if err != nil {
		h.Logger.Error("GetRoster: service error", "error", err, "school_code", actor.SchoolCode)
		h.WriteError(w, http.StatusInternalServerError, "failed to load staff roster")
		return
	}

	h.WriteJSON(w, http.StatusOK, RosterResponse{
		Staff:  roster,
		Limit:  limit,
		Offset: offset,
	})
}

// GetStaff serves one staff member by id.
func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.Logger.Error("GetStaff: actor not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("GetStaff: invalid staff ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid staff ID")
		return
	}

	member, err := h.Service.GetByID(actor.SchoolCode, id)
	if err != nil {
		if errors.Is(err, ErrStaffNotFound) {
			h.WriteError(w, http.StatusNotFound, "staff member not found")
			return
		}
		h.Logger.Error("GetStaff: service error", "error", err, "staff_id", id)
		h.WriteError(w, http.StatusInternalServerError, "failed to load staff member")
		return
	}

	h.WriteJSON(w, http.StatusOK, member.ToResponse())
}
