package db

import (
	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// identity
		&types.User{},
		&types.AuditLog{},

		// catalog
		&types.Meal{},
		&types.Recipe{},

		// tracking + derived alerts
		&types.TrackingRecord{},
		&types.Notification{},

		// planning
		&types.MealPlan{},

		// health
		&types.SleepRecord{},
	)
}
