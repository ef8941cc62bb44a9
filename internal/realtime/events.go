package realtime

import "github.com/google/uuid"

type SSEEvent string

const (
	SSEEventNotificationCreated SSEEvent = "NotificationCreated"
	SSEEventNotificationRead    SSEEvent = "NotificationRead"
	SSEEventMealTracked         SSEEvent = "MealTracked"
	SSEEventMealPlanGenerated   SSEEvent = "MealPlanGenerated"
	SSEEventMealPlanUpdated     SSEEvent = "MealPlanUpdated"
)

type SSEMessage struct {
	Channel string   `json:"channel"`
	Event   SSEEvent `json:"event"`
	Data    any      `json:"data,omitempty"`
}

// UserChannel is the per-user channel every authenticated stream joins.
func UserChannel(userID uuid.UUID) string {
	return "user:" + userID.String()
}
