package health

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SleepRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index:idx_user_sleep_user_date,priority:1;column:user_id" json:"user_id"`
	DurationHours float64   `gorm:"not null;column:duration_hours" json:"duration_hours"`
	Quality       int       `gorm:"not null;column:sleep_quality" json:"sleep_quality"`
	SleepDate     time.Time `gorm:"type:date;not null;index:idx_user_sleep_user_date,priority:2;column:sleep_date" json:"sleep_date"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}

func (SleepRecord) TableName() string { return "user_sleep" }

func (s *SleepRecord) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type SleepStats struct {
	TotalHours     float64 `json:"total_sleep_duration"`
	AverageQuality float64 `json:"avg_sleep_quality"`
	Nights         int64   `json:"nights"`
}
