package catalog

import (
	"log/slog"
	"net/http"

	"github.com/edumanage/school-management/internal"
	"github.com/edumanage/school-management/internal/transport"
	"github.com/edumanage/school-management/pkg/logger"
)

type ServiceAPI interface {
	GetModules() ([]Module, error)
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

// GetModules serves the full module/sub-module/category tree.
func (h *Handler) GetModules(w http.ResponseWriter, r *http.Request) {
	modules, err := h.Service.GetModules()
	if err != nil {
		h.Logger.Error("GetModules: service error", "error", err)
		h.HandleServiceError(w, internal.ErrCatalogUnavailable)
		return
	}

	h.WriteJSON(w, http.StatusOK, ModulesResponse{Modules: modules})
}
