package planning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

type MealPlanRepo interface {
	Create(dbc dbctx.Context, plan *types.MealPlan) (*types.MealPlan, error)
	GetByID(dbc dbctx.Context, planID uuid.UUID) (*types.MealPlan, error)
	ListByUserDate(dbc dbctx.Context, userID uuid.UUID, date time.Time) ([]*types.MealPlan, error)
	CountByUser(dbc dbctx.Context, userID uuid.UUID) (int64, error)
	// ReplaceSlots overwrites the given slot columns and marks the plan custom.
	ReplaceSlots(dbc dbctx.Context, planID uuid.UUID, slots map[types.MealType]uuid.UUID) (bool, error)
}

type mealPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMealPlanRepo(db *gorm.DB, baseLog *logger.Logger) MealPlanRepo {
	return &mealPlanRepo{db: db, log: baseLog.With("repo", "MealPlanRepo")}
}

func (r *mealPlanRepo) Create(dbc dbctx.Context, plan *types.MealPlan) (*types.MealPlan, error) {
	plan.PlanDate = types.DateOnly(plan.PlanDate)
	if err := dbc.DB(r.db).Create(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

func (r *mealPlanRepo) GetByID(dbc dbctx.Context, planID uuid.UUID) (*types.MealPlan, error) {
	var out []*types.MealPlan
	if err := dbc.DB(r.db).Where("id = ?", planID).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *mealPlanRepo) ListByUserDate(dbc dbctx.Context, userID uuid.UUID, date time.Time) ([]*types.MealPlan, error) {
	var out []*types.MealPlan
	if err := dbc.DB(r.db).
		Where("user_id = ? AND plan_date = ?", userID, types.DateOnly(date)).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mealPlanRepo) CountByUser(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := dbc.DB(r.db).Model(&types.MealPlan{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *mealPlanRepo) ReplaceSlots(dbc dbctx.Context, planID uuid.UUID, slots map[types.MealType]uuid.UUID) (bool, error) {
	updates := map[string]any{
		"is_custom":  true,
		"updated_at": time.Now().UTC(),
	}
	for slot, recipeID := range slots {
		col, ok := types.PlanSlotColumn(slot)
		if !ok {
			continue
		}
		updates[col] = recipeID
	}
	res := dbc.DB(r.db).
		Model(&types.MealPlan{}).
		Where("id = ?", planID).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
