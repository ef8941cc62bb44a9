package services

import (
	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos"
	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/apierr"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

type RecipeService interface {
	// Select returns up to the candidate limit of recipes of mealType whose
	// calories fit under the ceiling ratio of calorieBudget and whose
	// suitability matches any tag. Order is random; an empty result is not an
	// error.
	Select(dbc dbctx.Context, mealType types.MealType, tags []string, calorieBudget float64) ([]*types.Recipe, error)
}

type recipeService struct {
	log          *logger.Logger
	recipeRepo   repos.RecipeRepo
	ceilingRatio float64
	limit        int
}

func NewRecipeService(baseLog *logger.Logger, recipeRepo repos.RecipeRepo, cfg PlannerConfig) RecipeService {
	cfg = cfg.WithDefaults()
	return &recipeService{
		log:          baseLog.With("service", "RecipeService"),
		recipeRepo:   recipeRepo,
		ceilingRatio: cfg.RecipeCeilingRatio,
		limit:        cfg.CandidateLimit,
	}
}

func (s *recipeService) Select(dbc dbctx.Context, mealType types.MealType, tags []string, calorieBudget float64) ([]*types.Recipe, error) {
	mt, ok := types.ParseMealType(string(mealType))
	if !ok {
		return nil, apierr.Invalid("unknown meal type %q", mealType)
	}
	if calorieBudget <= 0 {
		return nil, apierr.Invalid("calorie budget must be positive")
	}
	out, err := s.recipeRepo.Candidates(dbc, repos.RecipeFilter{
		MealType:    mt,
		MaxCalories: s.ceilingRatio * calorieBudget,
		Tags:        types.NormalizeTags(tags),
		Limit:       s.limit,
	})
	if err != nil {
		return nil, apierr.DataAccess("select recipes", err)
	}
	if out == nil {
		out = []*types.Recipe{}
	}
	return out, nil
}
