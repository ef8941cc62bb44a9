package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Action string

const (
	ActionLogin             Action = "LOGIN"
	ActionLogout            Action = "LOGOUT"
	ActionSignupVerified    Action = "SIGNUP_VERIFIED"
	ActionPasswordReset     Action = "PASSWORD_RESET"
	ActionMealPlanGenerated Action = "MEAL_PLAN_GENERATED"
)

type Log struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      *uuid.UUID `gorm:"type:uuid;index;column:user_id" json:"user_id,omitempty"`
	ActionType  Action     `gorm:"not null;index;column:action_type" json:"action_type"`
	Description string     `gorm:"type:text;column:description" json:"description"`
	ActionDate  time.Time  `gorm:"not null;column:action_date" json:"action_date"`
}

func (Log) TableName() string { return "audit_log" }

func (l *Log) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.ActionDate.IsZero() {
		l.ActionDate = time.Now().UTC()
	}
	return nil
}
