package app

import (
	"gorm.io/gorm"

	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
	"github.com/N0Xl0US/HMP-issue-fix/internal/realtime"
	"github.com/N0Xl0US/HMP-issue-fix/internal/services"
)

type Services struct {
	Auth         services.AuthService
	User         services.UserService
	Audit        services.AuditService
	Nutrition    services.NutritionService
	Suggestion   services.SuggestionService
	Limits       services.LimitService
	Notification services.NotificationService
	Recipe       services.RecipeService
	MealPlan     services.MealPlanService
	Tracking     services.TrackingService
	Health       services.HealthService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients, emitter realtime.Emitter) Services {
	log.Info("Wiring services...")
	planner := cfg.Planner

	audit := services.NewAuditService(log, repos.AuditLog)
	nutrition := services.NewNutritionService(db, log, repos.User, repos.Tracking)
	suggestion := services.NewSuggestionService(log, repos.Meal, repos.Tracking, planner)
	limits := services.NewLimitService(log, suggestion, planner)
	notification := services.NewNotificationService(db, log, repos.Notification, emitter, planner)
	recipe := services.NewRecipeService(log, repos.Recipe, planner)

	return Services{
		Auth:         services.NewAuthService(db, log, repos.User, clients.Codes, clients.Mailer, audit, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		User:         services.NewUserService(db, log, repos.User),
		Audit:        audit,
		Nutrition:    nutrition,
		Suggestion:   suggestion,
		Limits:       limits,
		Notification: notification,
		Recipe:       recipe,
		MealPlan:     services.NewMealPlanService(db, log, repos.User, repos.Recipe, repos.MealPlan, recipe, audit, emitter, planner),
		Tracking:     services.NewTrackingService(db, log, repos.User, repos.Meal, repos.Tracking, nutrition, limits, notification, emitter),
		Health:       services.NewHealthService(log, repos.Sleep, nutrition),
	}
}
