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

func TestRecord_OneRowPerStatus(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.tx, "rec@example.com")
	svc := h.notificationService()

	statuses := []types.NutrientStatus{
		{Nutrient: types.NutrientCalories, Total: 2100, Limit: 2000, State: types.StateExceeded, Suggestions: []string{"a", "b"}},
		{Nutrient: types.NutrientSodium, Total: 1900, Limit: 2300, State: types.StateApproaching},
	}
	created, err := svc.Record(h.dbc, u.ID, statuses)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "You have exceeded your daily calories limit (2100 / 2000 kcal)", created[0].Message)
	assert.Equal(t, "You are approaching your daily sodium limit (1900 / 2300 mg)", created[1].Message)

	listed, err := svc.List(h.dbc, u.ID, 0)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	byNutrient := map[types.Nutrient]*types.Notification{}
	for _, n := range listed {
		byNutrient[n.Nutrient] = n
		assert.False(t, n.IsRead)
	}
	assert.Equal(t, []string{"a", "b"}, []string(byNutrient[types.NutrientCalories].Suggestions))
	assert.Empty(t, byNutrient[types.NutrientSodium].Suggestions)
}

func TestRecord_EmptyStatusesWritesNothing(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.tx, "none@example.com")
	created, err := h.notificationService().Record(h.dbc, u.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, created)
	n, err := h.notifications.CountUnread(h.dbc, u.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestList_MostRecentFirstWithLimit(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.tx, "list@example.com")
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 12; i++ {
		n := testutil.SeedNotification(t, h.ctx, h.tx, u.ID, types.NutrientSugar, base.Add(time.Duration(i)*time.Minute))
		ids = append(ids, n.ID)
	}

	got, err := h.notificationService().List(h.dbc, u.ID, 0)
	require.NoError(t, err)
	require.Len(t, got, 10)
	assert.Equal(t, ids[11], got[0].ID)
	assert.Equal(t, ids[2], got[9].ID)

	got, err = h.notificationService().List(h.dbc, u.ID, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, ids[9], got[2].ID)
}

func TestMarkRead_IdempotentForOwner(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.tx, "owner@example.com")
	n := testutil.SeedNotification(t, h.ctx, h.tx, u.ID, types.NutrientCalories, time.Now())
	svc := h.notificationService()

	first, err := svc.MarkRead(h.dbc, u.ID, n.ID)
	require.NoError(t, err)
	assert.True(t, first.IsRead)

	second, err := svc.MarkRead(h.dbc, u.ID, n.ID)
	require.NoError(t, err)
	assert.True(t, second.IsRead)

	unread, err := svc.UnreadCount(h.dbc, u.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestMarkRead_OtherUserForbidden(t *testing.T) {
	h := newHarness(t)
	owner := testutil.SeedUser(t, h.ctx, h.tx, "a@example.com")
	other := testutil.SeedUser(t, h.ctx, h.tx, "b@example.com")
	n := testutil.SeedNotification(t, h.ctx, h.tx, owner.ID, types.NutrientCalories, time.Now())

	_, err := h.notificationService().MarkRead(h.dbc, other.ID, n.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierr.ErrAuthorization))

	row, err := h.notifications.GetByID(h.dbc, n.ID)
	require.NoError(t, err)
	assert.False(t, row.IsRead)
}

func TestMarkRead_MissingIsNotFound(t *testing.T) {
	h := newHarness(t)
	u := testutil.SeedUser(t, h.ctx, h.tx, "missing@example.com")
	_, err := h.notificationService().MarkRead(h.dbc, u.ID, uuid.New())
	assert.True(t, errors.Is(err, apierr.ErrNotFound))
}

func TestStatusMessage_RoundsToOneDecimal(t *testing.T) {
	msg := StatusMessage(types.NutrientStatus{Nutrient: types.NutrientSugar, Total: 41.26, Limit: 50, State: types.StateApproaching})
	assert.Equal(t, "You are approaching your daily sugar limit (41.3 / 50 g)", msg)
}
