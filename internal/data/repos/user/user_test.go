package user

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos/testutil"
	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	created, err := repo.Create(dbc, []*types.User{
		{
			ID:         uuid.New(),
			FullName:   "Ada Lovelace",
			Email:      " UserRepo@Example.com ",
			Password:   "pw",
			Conditions: []string{"diabetic"},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 user, got %d", len(created))
	}
	if created[0].Email != "userrepo@example.com" {
		t.Fatalf("Create: email not normalized: want=%q got=%q", "userrepo@example.com", created[0].Email)
	}

	got, err := repo.GetByID(dbc, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.ID != created[0].ID {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}
	if len(got.Conditions) != 1 || got.Conditions[0] != "diabetic" {
		t.Fatalf("GetByID: conditions want=[diabetic] got=%v", got.Conditions)
	}

	missing, err := repo.GetByID(dbc, uuid.New())
	if err != nil {
		t.Fatalf("GetByID (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID (missing): expected nil, got %+v", missing)
	}

	byEmail, err := repo.GetByEmail(dbc, "USERREPO@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail == nil || byEmail.ID != created[0].ID {
		t.Fatalf("GetByEmail: unexpected result: %+v", byEmail)
	}

	exists, err := repo.EmailExists(dbc, created[0].Email)
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if !exists {
		t.Fatalf("EmailExists: expected true")
	}
	exists, err = repo.EmailExists(dbc, "does-not-exist@example.com")
	if err != nil {
		t.Fatalf("EmailExists (missing): %v", err)
	}
	if exists {
		t.Fatalf("EmailExists (missing): expected false")
	}

	if err := repo.UpdateFields(dbc, created[0].ID, map[string]any{
		"calorie_limit":  2200.0,
		"sodium_limit":   1500.0,
		"daily_calories": 2000.0,
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if err := repo.UpdatePassword(dbc, created[0].ID, "hash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	got, err = repo.GetByID(dbc, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID (after update): %v", err)
	}
	if got.CalorieLimit != 2200 || got.SodiumLimit != 1500 || got.DailyCalories != 2000 {
		t.Fatalf("UpdateFields: unexpected limits: %+v", got.Limits())
	}
	if got.Password != "hash" {
		t.Fatalf("UpdatePassword: want=%q got=%q", "hash", got.Password)
	}
}
