package tracking

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/N0Xl0US/HMP-issue-fix/internal/domain/catalog"
)

// Record is one logged meal. Records are immutable once created.
type Record struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index:idx_meal_tracking_user_time,priority:1;column:user_id" json:"user_id"`
	MealID    uuid.UUID        `gorm:"type:uuid;not null;index;column:meal_id" json:"meal_id"`
	MealType  catalog.MealType `gorm:"not null;column:meal_type" json:"meal_type"`
	Quantity  float64          `gorm:"not null;column:quantity" json:"quantity"`
	Feedback  string           `gorm:"type:text;column:feedback" json:"feedback,omitempty"`
	TrackedAt time.Time        `gorm:"not null;index:idx_meal_tracking_user_time,priority:2;column:tracked_at" json:"tracked_at"`
	CreatedAt time.Time        `gorm:"not null" json:"created_at"`

	Meal *catalog.Meal `gorm:"foreignKey:MealID;constraint:OnDelete:RESTRICT" json:"meal,omitempty"`
}

func (Record) TableName() string { return "meal_tracking" }

func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
