package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos/testutil"
	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/apierr"
)

func TestSelect_FiltersAndCaps(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 7; i++ {
		testutil.SeedRecipe(t, h.ctx, h.tx, "Diabetic Lunch "+string(rune('A'+i)), types.Lunch, 300+float64(i)*50, "diabetic,heart")
	}
	testutil.SeedRecipe(t, h.ctx, h.tx, "Too Big", types.Lunch, 801, "diabetic")
	testutil.SeedRecipe(t, h.ctx, h.tx, "Wrong Tag", types.Lunch, 300, "vegan")
	testutil.SeedRecipe(t, h.ctx, h.tx, "Wrong Slot", types.Dinner, 300, "diabetic")

	got, err := h.recipeService().Select(h.dbc, types.Lunch, []string{"diabetic"}, 2000)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for _, r := range got {
		assert.Equal(t, types.Lunch, r.MealType)
		assert.LessOrEqual(t, r.Calories, 800.0)
		assert.Contains(t, r.SuitableFor, "diabetic")
	}
}

func TestSelect_TagsAreOrCombined(t *testing.T) {
	h := newHarness(t)
	testutil.SeedRecipe(t, h.ctx, h.tx, "Veg Bowl", types.Dinner, 200, "vegan")
	testutil.SeedRecipe(t, h.ctx, h.tx, "Low Salt Fish", types.Dinner, 250, "hypertension")
	testutil.SeedRecipe(t, h.ctx, h.tx, "Steak", types.Dinner, 250, "keto")

	got, err := h.recipeService().Select(h.dbc, types.Dinner, []string{"Vegan", " hypertension "}, 1000)
	require.NoError(t, err)
	names := map[string]bool{}
	for _, r := range got {
		names[r.Name] = true
	}
	assert.Equal(t, map[string]bool{"Veg Bowl": true, "Low Salt Fish": true}, names)
}

func TestSelect_TagsWithWildcardCharactersMatchLiterally(t *testing.T) {
	h := newHarness(t)
	testutil.SeedRecipe(t, h.ctx, h.tx, "GF Muffin", types.Breakfast, 300, "Gluten_Free")
	testutil.SeedRecipe(t, h.ctx, h.tx, "Lookalike", types.Breakfast, 300, "glutenXfree")
	testutil.SeedRecipe(t, h.ctx, h.tx, "Whole Oats", types.Breakfast, 300, "100%")

	got, err := h.recipeService().Select(h.dbc, types.Breakfast, []string{"gluten_free"}, 2000)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "GF Muffin", got[0].Name)

	got, err = h.recipeService().Select(h.dbc, types.Breakfast, []string{"100%"}, 2000)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Whole Oats", got[0].Name)
}

func TestSelect_NoTagsMatchesEverythingInBudget(t *testing.T) {
	h := newHarness(t)
	testutil.SeedRecipe(t, h.ctx, h.tx, "Toast", types.Breakfast, 150, "")
	testutil.SeedRecipe(t, h.ctx, h.tx, "Pancakes", types.Breakfast, 600, "")

	got, err := h.recipeService().Select(h.dbc, types.Breakfast, nil, 500)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Toast", got[0].Name)
}

func TestSelect_EmptyIsNotAnError(t *testing.T) {
	h := newHarness(t)
	got, err := h.recipeService().Select(h.dbc, types.Snack, []string{"diabetic"}, 100)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSelect_InvalidInput(t *testing.T) {
	h := newHarness(t)
	_, err := h.recipeService().Select(h.dbc, types.MealType("brunch"), nil, 500)
	assert.True(t, errors.Is(err, apierr.ErrInvalidArgument))
	_, err = h.recipeService().Select(h.dbc, types.Lunch, nil, 0)
	assert.True(t, errors.Is(err, apierr.ErrInvalidArgument))
}
