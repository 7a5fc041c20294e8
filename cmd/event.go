package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/edumanage/school-management/internal/core/events"
	"github.com/edumanage/school-management/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Manage events: publish test events, inspect handlers`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test event",
	Long:  `Publish a test event to the in-process bus for debugging handlers`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		publishTestEvent(args[0])
	},
}

func publishTestEvent(eventType string) {
	lg := logger.L()

	eventBus := events.NewEventBus(lg)

	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		lg.Info("test handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	event := events.NewPermissionsUpdatedEvent(0, 0, "TEST", 0)
	if eventType != events.PermissionsUpdatedEventType {
		event = events.BaseEvent{
			ID:        event.EventID(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data:      map[string]interface{}{"test": true},
		}
	}

	if err := eventBus.PublishSync(context.Background(), event); err != nil {
		fmt.Println("publish failed:", err)
		return
	}

	fmt.Println("published test event:", eventType)
}

func init() {
	eventCmd.AddCommand(publishEventCmd)
}
