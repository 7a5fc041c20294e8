package permission

import (
	"context"
	"log/slog"

	"github.com/edumanage/school-management/internal/core/events"
)

// AuditHandler turns permissions.updated events into structured audit log
// entries. It is the only subscriber the service ships with; external sinks
// can register their own handlers on the same bus.
type AuditHandler struct {
	logger *slog.Logger
}

func NewAuditHandler(logger *slog.Logger) *AuditHandler {
	return &AuditHandler{logger: logger}
}

func (h *AuditHandler) HandlePermissionsUpdated(ctx context.Context, event events.Event) error {
	data, _ := event.Payload().(map[string]interface{})

	h.logger.Info("audit: staff permission overrides replaced",
		"event_id", event.EventID(),
		"occurred_at", event.OccurredAt(),
		"staff_id", data["staff_id"],
		"assigned_by", data["assigned_by"],
		"school_code", data["school_code"],
		"override_count", data["override_count"])

	return nil
}

func (h *AuditHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.PermissionsUpdatedEventType, h.HandlePermissionsUpdated)

	h.logger.Info("permission audit handlers registered",
		"handlers", []string{events.PermissionsUpdatedEventType})
}
