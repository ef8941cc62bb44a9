package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos"
	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos/testutil"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

type harness struct {
	ctx context.Context
	tx  *gorm.DB
	dbc dbctx.Context
	log *logger.Logger
	cfg PlannerConfig

	users         repos.UserRepo
	meals         repos.MealRepo
	recipes       repos.RecipeRepo
	tracking      repos.TrackingRepo
	notifications repos.NotificationRepo
	plans         repos.MealPlanRepo
	sleep         repos.SleepRepo
	audit         repos.AuditLogRepo
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()
	tx := testutil.DB(t)
	log := testutil.Logger(t)
	return &harness{
		ctx:           ctx,
		tx:            tx,
		dbc:           dbctx.Context{Ctx: ctx, Tx: tx},
		log:           log,
		cfg:           DefaultPlannerConfig(),
		users:         repos.NewUserRepo(tx, log),
		meals:         repos.NewMealRepo(tx, log),
		recipes:       repos.NewRecipeRepo(tx, log),
		tracking:      repos.NewTrackingRepo(tx, log),
		notifications: repos.NewNotificationRepo(tx, log),
		plans:         repos.NewMealPlanRepo(tx, log),
		sleep:         repos.NewSleepRepo(tx, log),
		audit:         repos.NewAuditLogRepo(tx, log),
	}
}

func (h *harness) nutrition() NutritionService {
	return NewNutritionService(h.tx, h.log, h.users, h.tracking)
}

func (h *harness) suggestion() SuggestionService {
	return NewSuggestionService(h.log, h.meals, h.tracking, h.cfg)
}

func (h *harness) limits() LimitService {
	return NewLimitService(h.log, h.suggestion(), h.cfg)
}

func (h *harness) notificationService() NotificationService {
	return NewNotificationService(h.tx, h.log, h.notifications, nil, h.cfg)
}

func (h *harness) recipeService() RecipeService {
	return NewRecipeService(h.log, h.recipes, h.cfg)
}

func (h *harness) auditService() AuditService {
	return NewAuditService(h.log, h.audit)
}

func (h *harness) mealPlanService(recipes RecipeService) MealPlanService {
	if recipes == nil {
		recipes = h.recipeService()
	}
	return NewMealPlanService(h.tx, h.log, h.users, h.recipes, h.plans, recipes, h.auditService(), nil, h.cfg)
}
