package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/N0Xl0US/HMP-issue-fix/internal/http/handlers"
	httpMW "github.com/N0Xl0US/HMP-issue-fix/internal/http/middleware"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string

	AuthHandler     *httpH.AuthHandler
	AuthMiddleware  *httpMW.AuthMiddleware
	UserHandler     *httpH.UserHandler
	RealtimeHandler *httpH.RealtimeHandler

	MealHandler         *httpH.MealHandler
	SleepHandler        *httpH.SleepHandler
	NotificationHandler *httpH.NotificationHandler
	RecipeHandler       *httpH.RecipeHandler
	MealPlanHandler     *httpH.MealPlanHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/signup", cfg.AuthHandler.Signup)
			api.POST("/verify-email", cfg.AuthHandler.VerifyEmail)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/send-otp", cfg.AuthHandler.SendOTP)
			api.POST("/reset-password", cfg.AuthHandler.ResetPassword)
		}
	}

	// Realtime (SSE)
	if cfg.RealtimeHandler != nil {
		stream := api.Group("/sse")
		if cfg.AuthMiddleware != nil {
			stream.Use(cfg.AuthMiddleware.RequireStreamAuth())
		}
		stream.GET("/stream", cfg.RealtimeHandler.SSEStream)
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PATCH("/me/health", cfg.UserHandler.UpdateHealth)
		}

		// Meals and tracking
		if cfg.MealHandler != nil {
			protected.GET("/meals", cfg.MealHandler.ListMeals)
			protected.POST("/meals/track", cfg.MealHandler.TrackMeal)
			protected.GET("/stats/today", cfg.MealHandler.TodayStats)
			protected.GET("/stats", cfg.MealHandler.RangeStats)
		}

		// Sleep
		if cfg.SleepHandler != nil {
			protected.POST("/sleep", cfg.SleepHandler.RecordSleep)
			protected.GET("/health-stats", cfg.SleepHandler.HealthStats)
		}

		// Notifications
		if cfg.NotificationHandler != nil {
			protected.GET("/notifications", cfg.NotificationHandler.List)
			protected.GET("/notifications/unread-count", cfg.NotificationHandler.UnreadCount)
			protected.POST("/notifications/:id/read", cfg.NotificationHandler.MarkRead)
		}

		// Recipes
		if cfg.RecipeHandler != nil {
			protected.GET("/recipes", cfg.RecipeHandler.ListRecipes)
		}

		// Meal plans
		if cfg.MealPlanHandler != nil {
			protected.POST("/meal-plans", cfg.MealPlanHandler.Generate)
			protected.GET("/meal-plans", cfg.MealPlanHandler.List)
			protected.GET("/meal-plans/:id", cfg.MealPlanHandler.Get)
			protected.PATCH("/meal-plans/:id", cfg.MealPlanHandler.Customize)
		}
	}

	return r
}
