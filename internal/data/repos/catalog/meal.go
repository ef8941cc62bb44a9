package catalog

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

type MealRepo interface {
	Create(dbc dbctx.Context, meals []*types.Meal) ([]*types.Meal, error)
	GetByIDs(dbc dbctx.Context, mealIDs []uuid.UUID) ([]*types.Meal, error)
	GetByID(dbc dbctx.Context, mealID uuid.UUID) (*types.Meal, error)
	List(dbc dbctx.Context, mealType types.MealType) ([]*types.Meal, error)
	// SampleBelow returns up to n meals, in random order, whose value for the
	// nutrient is known and strictly below threshold.
	SampleBelow(dbc dbctx.Context, nutrient types.Nutrient, threshold float64, n int) ([]*types.Meal, error)
}

type mealRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMealRepo(db *gorm.DB, baseLog *logger.Logger) MealRepo {
	return &mealRepo{db: db, log: baseLog.With("repo", "MealRepo")}
}

func (r *mealRepo) Create(dbc dbctx.Context, meals []*types.Meal) ([]*types.Meal, error) {
	if len(meals) == 0 {
		return []*types.Meal{}, nil
	}
	if err := dbc.DB(r.db).Create(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *mealRepo) GetByIDs(dbc dbctx.Context, mealIDs []uuid.UUID) ([]*types.Meal, error) {
	var out []*types.Meal
	if len(mealIDs) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).Where("id IN ?", mealIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mealRepo) GetByID(dbc dbctx.Context, mealID uuid.UUID) (*types.Meal, error) {
	rows, err := r.GetByIDs(dbc, []uuid.UUID{mealID})
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *mealRepo) List(dbc dbctx.Context, mealType types.MealType) ([]*types.Meal, error) {
	var out []*types.Meal
	q := dbc.DB(r.db).Model(&types.Meal{})
	if mealType != "" {
		q = q.Where("meal_type = ?", mealType)
	}
	if err := q.Order("meal_name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mealRepo) SampleBelow(dbc dbctx.Context, nutrient types.Nutrient, threshold float64, n int) ([]*types.Meal, error) {
	col, err := nutrientColumn(nutrient)
	if err != nil {
		return nil, err
	}
	var out []*types.Meal
	if n <= 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where(clause.Lt{Column: clause.Column{Name: col}, Value: threshold}).
		Order("RANDOM()").
		Limit(n).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func nutrientColumn(n types.Nutrient) (string, error) {
	for _, known := range types.Nutrients {
		if n == known {
			return string(n), nil
		}
	}
	return "", fmt.Errorf("unknown nutrient %q", n)
}
