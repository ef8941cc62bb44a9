package app

import (
	"gorm.io/gorm"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

type Repos struct {
	User         repos.UserRepo
	AuditLog     repos.AuditLogRepo
	Meal         repos.MealRepo
	Recipe       repos.RecipeRepo
	Tracking     repos.TrackingRepo
	Notification repos.NotificationRepo
	MealPlan     repos.MealPlanRepo
	Sleep        repos.SleepRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		AuditLog:     repos.NewAuditLogRepo(db, log),
		Meal:         repos.NewMealRepo(db, log),
		Recipe:       repos.NewRecipeRepo(db, log),
		Tracking:     repos.NewTrackingRepo(db, log),
		Notification: repos.NewNotificationRepo(db, log),
		MealPlan:     repos.NewMealPlanRepo(db, log),
		Sleep:        repos.NewSleepRepo(db, log),
	}
}
