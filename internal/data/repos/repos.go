package repos

import (
	"gorm.io/gorm"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos/audit"
	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos/catalog"
	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos/health"
	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos/notification"
	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos/planning"
	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos/tracking"
	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos/user"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

type UserRepo = user.UserRepo
type AuditLogRepo = audit.AuditLogRepo

type MealRepo = catalog.MealRepo
type RecipeRepo = catalog.RecipeRepo
type RecipeFilter = catalog.RecipeFilter

type TrackingRepo = tracking.TrackingRepo
type NotificationRepo = notification.NotificationRepo
type MealPlanRepo = planning.MealPlanRepo
type SleepRepo = health.SleepRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewAuditLogRepo(db *gorm.DB, baseLog *logger.Logger) AuditLogRepo {
	return audit.NewAuditLogRepo(db, baseLog)
}

func NewMealRepo(db *gorm.DB, baseLog *logger.Logger) MealRepo {
	return catalog.NewMealRepo(db, baseLog)
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return catalog.NewRecipeRepo(db, baseLog)
}

func NewTrackingRepo(db *gorm.DB, baseLog *logger.Logger) TrackingRepo {
	return tracking.NewTrackingRepo(db, baseLog)
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	return notification.NewNotificationRepo(db, baseLog)
}

func NewMealPlanRepo(db *gorm.DB, baseLog *logger.Logger) MealPlanRepo {
	return planning.NewMealPlanRepo(db, baseLog)
}

func NewSleepRepo(db *gorm.DB, baseLog *logger.Logger) SleepRepo {
	return health.NewSleepRepo(db, baseLog)
}
