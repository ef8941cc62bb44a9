package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos/testutil"
	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/apierr"
)

func TestAggregate_NoRecordsIsAllZero(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.tx, "zero@example.com")

	start, end := DayWindow(time.Now())
	got, err := h.nutrition().Aggregate(h.dbc, u.ID, start, end)
	require.NoError(t, err)
	assert.Equal(t, types.NutrientTotals{}, got)
}

func TestAggregate_SumsQuantityTimesNutrient(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.tx, "sum@example.com")
	oats := testutil.SeedMeal(t, h.ctx, h.tx, "Oats", types.Breakfast, func(m *types.Meal) {
		m.Calories = testutil.F(150)
		m.Sugar = testutil.F(1)
		m.Sodium = testutil.F(10)
	})
	soup := testutil.SeedMeal(t, h.ctx, h.tx, "Soup", types.Lunch, func(m *types.Meal) {
		m.Calories = testutil.F(200)
		m.Sodium = testutil.F(800)
		m.Proteins = testutil.F(12)
	})

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	testutil.SeedTracking(t, h.ctx, h.tx, u.ID, oats, 2, day.Add(8*time.Hour))
	testutil.SeedTracking(t, h.ctx, h.tx, u.ID, soup, 1.5, day.Add(13*time.Hour))
	// Outside the window.
	testutil.SeedTracking(t, h.ctx, h.tx, u.ID, soup, 4, day.Add(-time.Hour))

	start, end := DayWindow(day)
	got, err := h.nutrition().Aggregate(h.dbc, u.ID, start, end)
	require.NoError(t, err)
	got = got.Rounded()
	assert.Equal(t, 600.0, got.Calories)
	assert.Equal(t, 18.0, got.Proteins)
	assert.Equal(t, 2.0, got.Sugar)
	assert.Equal(t, 1220.0, got.Sodium)
	assert.Equal(t, 0.0, got.Carbs)
	assert.Equal(t, 0.0, got.Fats)
}

func TestAggregate_Errors(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.tx, "err@example.com")
	now := time.Now().UTC()

	_, err := h.nutrition().Aggregate(h.dbc, u.ID, now, now.Add(-time.Hour))
	assert.True(t, errors.Is(err, apierr.ErrInvalidArgument))

	_, err = h.nutrition().Aggregate(h.dbc, u.ID, time.Time{}, now)
	assert.True(t, errors.Is(err, apierr.ErrInvalidArgument))

	_, err = h.nutrition().Aggregate(h.dbc, uuid.New(), now.Add(-time.Hour), now)
	assert.True(t, errors.Is(err, apierr.ErrNotFound))
}

func TestDayWindow(t *testing.T) {
	at := time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC)
	start, end := DayWindow(at)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), start)
	assert.True(t, end.Before(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, !at.After(end))
}
