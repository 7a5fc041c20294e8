package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	PermissionsUpdatedEventType = "permissions.updated"
)

// NewPermissionsUpdatedEvent records that a staff member's override set was
// replaced. Published after the save transaction commits.
func NewPermissionsUpdatedEvent(staffID, assignedBy int64, schoolCode string, overrideCount int) Event {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      PermissionsUpdatedEventType,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"staff_id":       staffID,
			"assigned_by":    assignedBy,
			"school_code":    schoolCode,
			"override_count": overrideCount,
		},
	}
}
