package planning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/N0Xl0US/HMP-issue-fix/internal/domain/catalog"
)

// MealPlan references exactly one recipe per slot. Total calories are derived
// from the resolved recipes and never stored.
type MealPlan struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index:idx_meal_plan_user_date,priority:1;column:user_id" json:"user_id"`
	PlanDate          time.Time `gorm:"type:date;not null;index:idx_meal_plan_user_date,priority:2;column:plan_date" json:"plan_date"`
	BreakfastRecipeID uuid.UUID `gorm:"type:uuid;not null;column:breakfast_recipe_id" json:"breakfast_recipe_id"`
	LunchRecipeID     uuid.UUID `gorm:"type:uuid;not null;column:lunch_recipe_id" json:"lunch_recipe_id"`
	DinnerRecipeID    uuid.UUID `gorm:"type:uuid;not null;column:dinner_recipe_id" json:"dinner_recipe_id"`
	SnackRecipeID     uuid.UUID `gorm:"type:uuid;not null;column:snack_recipe_id" json:"snack_recipe_id"`
	IsCustom          bool      `gorm:"not null;default:false;column:is_custom" json:"is_custom"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	Recipes       map[catalog.MealType]*catalog.Recipe `gorm:"-" json:"recipes,omitempty"`
	TotalCalories float64                              `gorm:"-" json:"total_calories"`
}

func (MealPlan) TableName() string { return "meal_plan" }

func (p *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *MealPlan) RecipeID(slot catalog.MealType) uuid.UUID {
	switch slot {
	case catalog.Breakfast:
		return p.BreakfastRecipeID
	case catalog.Lunch:
		return p.LunchRecipeID
	case catalog.Dinner:
		return p.DinnerRecipeID
	case catalog.Snack:
		return p.SnackRecipeID
	}
	return uuid.Nil
}

func (p *MealPlan) SetRecipeID(slot catalog.MealType, id uuid.UUID) {
	switch slot {
	case catalog.Breakfast:
		p.BreakfastRecipeID = id
	case catalog.Lunch:
		p.LunchRecipeID = id
	case catalog.Dinner:
		p.DinnerRecipeID = id
	case catalog.Snack:
		p.SnackRecipeID = id
	}
}

// RecipeIDs returns the referenced recipe ids in slot order.
func (p *MealPlan) RecipeIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(catalog.MealTypes))
	for _, slot := range catalog.MealTypes {
		out = append(out, p.RecipeID(slot))
	}
	return out
}

// SlotColumn maps a slot to its recipe reference column.
func SlotColumn(slot catalog.MealType) (string, bool) {
	switch slot {
	case catalog.Breakfast, catalog.Lunch, catalog.Dinner, catalog.Snack:
		return string(slot) + "_recipe_id", true
	}
	return "", false
}

// Resolve attaches recipes by slot and recomputes total calories.
func (p *MealPlan) Resolve(byID map[uuid.UUID]*catalog.Recipe) {
	p.Recipes = make(map[catalog.MealType]*catalog.Recipe, len(catalog.MealTypes))
	p.TotalCalories = 0
	for _, slot := range catalog.MealTypes {
		r := byID[p.RecipeID(slot)]
		if r == nil {
			continue
		}
		p.Recipes[slot] = r
		p.TotalCalories += r.Calories
	}
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
