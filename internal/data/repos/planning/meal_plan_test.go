package planning

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos/testutil"
	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
)

func TestMealPlanRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewMealPlanRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx}

	userID := uuid.New()
	date := time.Date(2026, 5, 1, 15, 30, 0, 0, time.UTC)
	plan := &types.MealPlan{
		UserID:            userID,
		PlanDate:          date,
		BreakfastRecipeID: uuid.New(),
		LunchRecipeID:     uuid.New(),
		DinnerRecipeID:    uuid.New(),
		SnackRecipeID:     uuid.New(),
	}
	created, err := repo.Create(dbc, plan)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("Create: expected id to be assigned")
	}
	if _, err := repo.Create(dbc, &types.MealPlan{
		UserID:            userID,
		PlanDate:          date,
		BreakfastRecipeID: uuid.New(),
		LunchRecipeID:     uuid.New(),
		DinnerRecipeID:    uuid.New(),
		SnackRecipeID:     uuid.New(),
	}); err != nil {
		t.Fatalf("Create (same date): %v", err)
	}

	sameDay, err := repo.ListByUserDate(dbc, userID, date.Add(5*time.Hour))
	if err != nil {
		t.Fatalf("ListByUserDate: %v", err)
	}
	if len(sameDay) != 2 {
		t.Fatalf("ListByUserDate: want=2 got=%d", len(sameDay))
	}

	newLunch := uuid.New()
	ok, err := repo.ReplaceSlots(dbc, created.ID, map[types.MealType]uuid.UUID{types.Lunch: newLunch})
	if err != nil {
		t.Fatalf("ReplaceSlots: %v", err)
	}
	if !ok {
		t.Fatalf("ReplaceSlots: expected a row to change")
	}
	got, err := repo.GetByID(dbc, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.LunchRecipeID != newLunch || !got.IsCustom {
		t.Fatalf("ReplaceSlots: unexpected plan: %+v", got)
	}
	if got.BreakfastRecipeID != plan.BreakfastRecipeID || got.DinnerRecipeID != plan.DinnerRecipeID || got.SnackRecipeID != plan.SnackRecipeID {
		t.Fatalf("ReplaceSlots: untouched slots changed: %+v", got)
	}

	ok, err = repo.ReplaceSlots(dbc, uuid.New(), map[types.MealType]uuid.UUID{types.Lunch: newLunch})
	if err != nil {
		t.Fatalf("ReplaceSlots (missing): %v", err)
	}
	if ok {
		t.Fatalf("ReplaceSlots (missing): expected no match")
	}
}
