package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/N0Xl0US/HMP-issue-fix/internal/domain/nutrition"
)

type Notification struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID                   `gorm:"type:uuid;not null;index:idx_notification_user_created,priority:1;column:user_id" json:"user_id"`
	Nutrient    nutrition.Nutrient          `gorm:"not null;column:nutrient" json:"nutrient"`
	Status      nutrition.State             `gorm:"not null;column:status" json:"status"`
	Message     string                      `gorm:"type:text;not null;column:message" json:"message"`
	Suggestions datatypes.JSONSlice[string] `gorm:"column:suggestions" json:"suggestions"`
	IsRead      bool                        `gorm:"not null;default:false;column:is_read" json:"is_read"`
	CreatedAt   time.Time                   `gorm:"not null;index:idx_notification_user_created,priority:2" json:"created_at"`
}

func (Notification) TableName() string { return "notification" }

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
