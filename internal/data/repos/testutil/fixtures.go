package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
)

func F(v float64) *float64 { return &v }

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string, mutate ...func(*types.User)) *types.User {
	tb.Helper()
	u := &types.User{
		ID:            uuid.New(),
		FullName:      "Test User",
		Email:         email,
		Password:      "pw",
		EmailVerified: true,
	}
	for _, m := range mutate {
		m(u)
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedMeal(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, mealType types.MealType, mutate ...func(*types.Meal)) *types.Meal {
	tb.Helper()
	m := &types.Meal{
		ID:       uuid.New(),
		Name:     name,
		MealType: mealType,
	}
	for _, fn := range mutate {
		fn(m)
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed meal: %v", err)
	}
	return m
}

func SeedRecipe(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, mealType types.MealType, calories float64, suitableFor string) *types.Recipe {
	tb.Helper()
	r := &types.Recipe{
		ID:          uuid.New(),
		Name:        name,
		MealType:    mealType,
		Calories:    calories,
		SuitableFor: suitableFor,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed recipe: %v", err)
	}
	return r
}

func SeedTracking(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, meal *types.Meal, quantity float64, at time.Time) *types.TrackingRecord {
	tb.Helper()
	rec := &types.TrackingRecord{
		ID:        uuid.New(),
		UserID:    userID,
		MealID:    meal.ID,
		MealType:  meal.MealType,
		Quantity:  quantity,
		TrackedAt: at.UTC(),
	}
	if err := tx.WithContext(ctx).Create(rec).Error; err != nil {
		tb.Fatalf("seed tracking: %v", err)
	}
	return rec
}

func SeedNotification(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, nutrient types.Nutrient, createdAt time.Time) *types.Notification {
	tb.Helper()
	n := &types.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Nutrient:  nutrient,
		Status:    types.StateExceeded,
		Message:   "seeded",
		CreatedAt: createdAt.UTC(),
	}
	if err := tx.WithContext(ctx).Create(n).Error; err != nil {
		tb.Fatalf("seed notification: %v", err)
	}
	return n
}
