package app

import (
	"context"

	"gorm.io/gorm"

	apphttp "github.com/N0Xl0US/HMP-issue-fix/internal/http"
	httpH "github.com/N0Xl0US/HMP-issue-fix/internal/http/handlers"
	httpMW "github.com/N0Xl0US/HMP-issue-fix/internal/http/middleware"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
	"github.com/N0Xl0US/HMP-issue-fix/internal/realtime"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health       *httpH.HealthHandler
	Auth         *httpH.AuthHandler
	User         *httpH.UserHandler
	Realtime     *httpH.RealtimeHandler
	Meal         *httpH.MealHandler
	Sleep        *httpH.SleepHandler
	Notification *httpH.NotificationHandler
	Recipe       *httpH.RecipeHandler
	MealPlan     *httpH.MealPlanHandler
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{Auth: httpMW.NewAuthMiddleware(log, services.Auth)}
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services, hub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       httpH.NewHealthHandler(pingDB(db)),
		Auth:         httpH.NewAuthHandler(services.Auth),
		User:         httpH.NewUserHandler(services.User),
		Realtime:     httpH.NewRealtimeHandler(log, hub),
		Meal:         httpH.NewMealHandler(services.Tracking, services.Nutrition),
		Sleep:        httpH.NewSleepHandler(services.Health),
		Notification: httpH.NewNotificationHandler(services.Notification),
		Recipe:       httpH.NewRecipeHandler(services.Recipe),
		MealPlan:     httpH.NewMealPlanHandler(services.MealPlan),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *apphttp.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return apphttp.NewServer(":"+cfg.Port, apphttp.RouterConfig{
		Log:                 log,
		ServiceName:         serviceName,
		CORSOrigins:         cfg.CORSOrigins,
		AuthHandler:         handlers.Auth,
		AuthMiddleware:      middleware.Auth,
		UserHandler:         handlers.User,
		RealtimeHandler:     handlers.Realtime,
		MealHandler:         handlers.Meal,
		SleepHandler:        handlers.Sleep,
		NotificationHandler: handlers.Notification,
		RecipeHandler:       handlers.Recipe,
		MealPlanHandler:     handlers.MealPlan,
		HealthHandler:       handlers.Health,
	})
}

func pingDB(db *gorm.DB) httpH.Pinger {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
