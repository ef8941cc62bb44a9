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
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
)

type failingNotifications struct {
	NotificationService
}

func (failingNotifications) Record(dbctx.Context, uuid.UUID, []types.NutrientStatus) ([]*types.Notification, error) {
	return nil, errors.New("notification store down")
}

func (h *harness) trackingService(notifications NotificationService) *trackingService {
	if notifications == nil {
		notifications = h.notificationService()
	}
	svc := NewTrackingService(h.tx, h.log, h.users, h.meals, h.tracking, h.nutrition(), h.limits(), notifications, nil)
	return svc.(*trackingService)
}

func TestTrackMeal_RecordsAndNotifies(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.tx, "track@example.com", func(u *types.User) {
		u.CalorieLimit = 1000
		u.SodiumLimit = 2300
	})
	burger := testutil.SeedMeal(t, h.ctx, h.tx, "Burger", types.Lunch, func(m *types.Meal) {
		m.Calories = testutil.F(550)
		m.Sodium = testutil.F(400)
	})
	svc := h.trackingService(nil)
	svc.now = func() time.Time { return time.Date(2024, 7, 4, 12, 0, 0, 0, time.UTC) }

	res, err := svc.TrackMeal(h.dbc, u.ID, TrackMealInput{MealID: burger.ID, Quantity: 1.5, Feedback: " tasty "})
	require.NoError(t, err)
	assert.Equal(t, types.Lunch, res.Record.MealType)
	assert.Equal(t, "tasty", res.Record.Feedback)
	assert.InDelta(t, 825, res.Totals.Calories, 1e-9)
	require.Len(t, res.Statuses, 1)
	assert.Equal(t, types.StateApproaching, res.Statuses[0].State)
	require.Len(t, res.Notifications, 1)
	assert.Equal(t, types.NutrientCalories, res.Notifications[0].Nutrient)

	today, err := svc.Today(h.dbc, u.ID)
	require.NoError(t, err)
	assert.InDelta(t, 600, today.Sodium, 1e-9)
}

func TestTrackMeal_NotificationFailureIsBestEffort(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.tx, "besteffort@example.com", func(u *types.User) { u.SugarLimit = 10 })
	cake := testutil.SeedMeal(t, h.ctx, h.tx, "Cake", types.Snack, func(m *types.Meal) { m.Sugar = testutil.F(30) })
	svc := h.trackingService(failingNotifications{})

	res, err := svc.TrackMeal(h.dbc, u.ID, TrackMealInput{MealID: cake.ID, MealType: "Dinner", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, types.Dinner, res.Record.MealType)
	require.Len(t, res.Statuses, 1)
	assert.Equal(t, types.StateExceeded, res.Statuses[0].State)
	assert.Empty(t, res.Notifications)

	start, end := DayWindow(res.Record.TrackedAt)
	recs, err := h.tracking.ListByUser(h.dbc, u.ID, start, end)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestTrackMeal_Validation(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.tx, "valid@example.com")
	meal := testutil.SeedMeal(t, h.ctx, h.tx, "Apple", types.Snack)
	svc := h.trackingService(nil)

	_, err := svc.TrackMeal(h.dbc, u.ID, TrackMealInput{MealID: meal.ID, Quantity: 0})
	assert.True(t, errors.Is(err, apierr.ErrInvalidArgument))

	_, err = svc.TrackMeal(h.dbc, u.ID, TrackMealInput{MealID: meal.ID, Quantity: 1, MealType: "brunch"})
	assert.True(t, errors.Is(err, apierr.ErrInvalidArgument))

	_, err = svc.TrackMeal(h.dbc, u.ID, TrackMealInput{MealID: uuid.New(), Quantity: 1})
	assert.True(t, errors.Is(err, apierr.ErrNotFound))
}

func TestListMeals(t *testing.T) {
	h := newHarness(t)
	testutil.SeedMeal(t, h.ctx, h.tx, "Eggs", types.Breakfast)
	testutil.SeedMeal(t, h.ctx, h.tx, "Rice", types.Dinner)
	svc := h.trackingService(nil)

	all, err := svc.ListMeals(h.dbc, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	bf, err := svc.ListMeals(h.dbc, "breakfast")
	require.NoError(t, err)
	require.Len(t, bf, 1)
	assert.Equal(t, "Eggs", bf[0].Name)

	_, err = svc.ListMeals(h.dbc, "elevenses")
	assert.True(t, errors.Is(err, apierr.ErrInvalidArgument))
}
