package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos"
	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/apierr"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
	"github.com/N0Xl0US/HMP-issue-fix/internal/realtime"
)

type MealPlanService interface {
	// GenerateDailyPlan picks one recipe per slot and persists the plan only
	// when every slot has a candidate.
	GenerateDailyPlan(dbc dbctx.Context, userID uuid.UUID, date time.Time) (*types.MealPlan, error)
	// CustomizeMealPlan overwrites the named slots, marks the plan custom and
	// returns it reloaded. Slots not in updates are untouched.
	CustomizeMealPlan(dbc dbctx.Context, planID uuid.UUID, updates map[types.MealType]uuid.UUID) (*types.MealPlan, error)
	GetPlan(dbc dbctx.Context, planID uuid.UUID) (*types.MealPlan, error)
	ListPlans(dbc dbctx.Context, userID uuid.UUID, date time.Time) ([]*types.MealPlan, error)
}

type mealPlanService struct {
	db         *gorm.DB
	log        *logger.Logger
	userRepo   repos.UserRepo
	recipeRepo repos.RecipeRepo
	planRepo   repos.MealPlanRepo
	recipes    RecipeService
	audit      AuditService
	emitter    realtime.Emitter
	cfg        PlannerConfig
}

func NewMealPlanService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	recipeRepo repos.RecipeRepo,
	planRepo repos.MealPlanRepo,
	recipes RecipeService,
	audit AuditService,
	emitter realtime.Emitter,
	cfg PlannerConfig,
) MealPlanService {
	if emitter == nil {
		emitter = realtime.NopEmitter{}
	}
	if audit == nil {
		audit = NewAuditService(baseLog, nil)
	}
	return &mealPlanService{
		db:         db,
		log:        baseLog.With("service", "MealPlanService"),
		userRepo:   userRepo,
		recipeRepo: recipeRepo,
		planRepo:   planRepo,
		recipes:    recipes,
		audit:      audit,
		emitter:    emitter,
		cfg:        cfg.WithDefaults(),
	}
}

func (s *mealPlanService) GenerateDailyPlan(dbc dbctx.Context, userID uuid.UUID, date time.Time) (*types.MealPlan, error) {
	if date.IsZero() {
		return nil, apierr.Invalid("plan date required")
	}
	u, err := s.userRepo.GetByID(dbc, userID)
	if err != nil {
		return nil, apierr.DataAccess("load user", err)
	}
	if u == nil {
		return nil, apierr.NotFound("user %s", userID)
	}

	daily := u.DailyCalories
	if daily <= 0 {
		daily = s.cfg.DefaultDailyCalories
	}
	tags := u.ConditionTags()

	plan := &types.MealPlan{
		UserID:   userID,
		PlanDate: types.DateOnly(date),
	}
	chosen := make(map[uuid.UUID]*types.Recipe, len(types.MealTypes))
	for _, slot := range types.MealTypes {
		budget := s.cfg.SlotFractions[slot] * daily
		candidates, err := s.recipes.Select(dbc, slot, tags, budget)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			s.log.Info("no candidate recipe for slot", "user_id", userID, "slot", string(slot), "budget", budget)
			return nil, apierr.NoCandidate("no suitable %s recipe for a %s kcal budget", slot, formatAmount(budget))
		}
		pick := candidates[0]
		plan.SetRecipeID(slot, pick.ID)
		chosen[pick.ID] = pick
	}

	created, err := s.planRepo.Create(dbc, plan)
	if err != nil {
		return nil, apierr.DataAccess("create meal plan", err)
	}
	created.Resolve(chosen)

	s.audit.Record(dbc, userID, types.ActionMealPlanGenerated,
		fmt.Sprintf("Meal plan %s generated for %s", created.ID, created.PlanDate.Format("2006-01-02")))
	s.emitter.Emit(dbc.Ctx, userID, realtime.SSEEventMealPlanGenerated, created)
	return created, nil
}

func (s *mealPlanService) CustomizeMealPlan(dbc dbctx.Context, planID uuid.UUID, updates map[types.MealType]uuid.UUID) (*types.MealPlan, error) {
	if len(updates) == 0 {
		return nil, apierr.Invalid("at least one slot update is required")
	}
	slots := make(map[types.MealType]uuid.UUID, len(updates))
	ids := make([]uuid.UUID, 0, len(updates))
	for raw, recipeID := range updates {
		slot, ok := types.ParseMealType(string(raw))
		if !ok {
			return nil, apierr.Invalid("unknown slot %q", raw)
		}
		if recipeID == uuid.Nil {
			return nil, apierr.Invalid("recipe id required for slot %s", slot)
		}
		slots[slot] = recipeID
		ids = append(ids, recipeID)
	}

	var out *types.MealPlan
	err := inTx(s.db, dbc, func(inner dbctx.Context) error {
		found, err := s.recipeRepo.GetByIDs(inner, ids)
		if err != nil {
			return apierr.DataAccess("load recipes", err)
		}
		known := make(map[uuid.UUID]bool, len(found))
		for _, r := range found {
			known[r.ID] = true
		}
		for slot, id := range slots {
			if !known[id] {
				return apierr.NotFound("recipe %s for slot %s", id, slot)
			}
		}

		ok, err := s.planRepo.ReplaceSlots(inner, planID, slots)
		if err != nil {
			return apierr.DataAccess("update meal plan", err)
		}
		if !ok {
			return apierr.NotFound("meal plan %s", planID)
		}
		out, err = s.load(inner, planID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.emitter.Emit(dbc.Ctx, out.UserID, realtime.SSEEventMealPlanUpdated, out)
	return out, nil
}

func (s *mealPlanService) GetPlan(dbc dbctx.Context, planID uuid.UUID) (*types.MealPlan, error) {
	return s.load(dbc, planID)
}

func (s *mealPlanService) ListPlans(dbc dbctx.Context, userID uuid.UUID, date time.Time) ([]*types.MealPlan, error) {
	if date.IsZero() {
		return nil, apierr.Invalid("plan date required")
	}
	plans, err := s.planRepo.ListByUserDate(dbc, userID, date)
	if err != nil {
		return nil, apierr.DataAccess("list meal plans", err)
	}
	if err := s.resolve(dbc, plans...); err != nil {
		return nil, err
	}
	return plans, nil
}

func (s *mealPlanService) load(dbc dbctx.Context, planID uuid.UUID) (*types.MealPlan, error) {
	plan, err := s.planRepo.GetByID(dbc, planID)
	if err != nil {
		return nil, apierr.DataAccess("load meal plan", err)
	}
	if plan == nil {
		return nil, apierr.NotFound("meal plan %s", planID)
	}
	if err := s.resolve(dbc, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *mealPlanService) resolve(dbc dbctx.Context, plans ...*types.MealPlan) error {
	if len(plans) == 0 {
		return nil
	}
	var ids []uuid.UUID
	for _, p := range plans {
		ids = append(ids, p.RecipeIDs()...)
	}
	recipes, err := s.recipeRepo.GetByIDs(dbc, ids)
	if err != nil {
		return apierr.DataAccess("load plan recipes", err)
	}
	byID := make(map[uuid.UUID]*types.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID] = r
	}
	for _, p := range plans {
		p.Resolve(byID)
	}
	return nil
}
