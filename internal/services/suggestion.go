package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos"
	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

// Prefixes of the entry that carries named catalog alternatives.
const (
	RecentLowCaloriePrefix = "Lower-calorie meals you've logged recently: "
	LowSugarPrefix         = "Low-sugar alternatives: "
	LowSodiumPrefix        = "Low-sodium alternatives: "
)

type SuggestionService interface {
	// Suggest returns zero to three advisory lines. Catalog failures yield an
	// empty slice, never an error.
	Suggest(dbc dbctx.Context, nutrient types.Nutrient, value, limit float64, userID uuid.UUID) []string
}

type suggestionService struct {
	log          *logger.Logger
	mealRepo     repos.MealRepo
	trackingRepo repos.TrackingRepo
	cfg          PlannerConfig
	now          func() time.Time
}

func NewSuggestionService(baseLog *logger.Logger, mealRepo repos.MealRepo, trackingRepo repos.TrackingRepo, cfg PlannerConfig) SuggestionService {
	return &suggestionService{
		log:          baseLog.With("service", "SuggestionService"),
		mealRepo:     mealRepo,
		trackingRepo: trackingRepo,
		cfg:          cfg.WithDefaults(),
		now:          time.Now,
	}
}

func (s *suggestionService) Suggest(dbc dbctx.Context, nutrient types.Nutrient, value, limit float64, userID uuid.UUID) []string {
	switch nutrient {
	case types.NutrientCalories:
		out := []string{"Try smaller portions or swap one high-calorie item for vegetables, lean protein or whole grains."}
		since := s.now().UTC().Add(-s.cfg.RecentMealLookback)
		meals, err := s.trackingRepo.RecentMealsByCalories(dbc, userID, since, s.cfg.RecentMealCount)
		if err != nil {
			s.log.Warn("recent meal lookup failed; skipping suggestions", "user_id", userID, "error", err)
			return []string{}
		}
		if names := mealNames(meals); len(names) > 0 {
			out = append(out, RecentLowCaloriePrefix+strings.Join(names, ", "))
		}
		return out

	case types.NutrientSugar:
		return s.withAlternatives(dbc, nutrient, s.cfg.SugarThreshold, LowSugarPrefix, []string{
			"Cut back on sweetened drinks, desserts and packaged snacks for the rest of the day.",
			"Choose whole fruit over juice and check labels for added sugar.",
		})

	case types.NutrientSodium:
		return s.withAlternatives(dbc, nutrient, s.cfg.SodiumThreshold, LowSodiumPrefix, []string{
			"Avoid processed and canned foods, cured meats and salty sauces for the rest of the day.",
			"Season with herbs, spices or lemon instead of salt.",
		})
	}
	return []string{}
}

func (s *suggestionService) withAlternatives(dbc dbctx.Context, nutrient types.Nutrient, threshold float64, prefix string, guidance []string) []string {
	meals, err := s.mealRepo.SampleBelow(dbc, nutrient, threshold, s.cfg.AlternativeSample)
	if err != nil {
		s.log.Warn("catalog lookup failed; skipping suggestions", "nutrient", string(nutrient), "error", err)
		return []string{}
	}
	out := append([]string{}, guidance...)
	if names := mealNames(meals); len(names) > 0 {
		out = append(out, prefix+strings.Join(names, ", "))
	}
	return out
}

func mealNames(meals []*types.Meal) []string {
	names := make([]string, 0, len(meals))
	seen := make(map[string]bool, len(meals))
	for _, m := range meals {
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// AlternativeNames extracts the catalog meal names from a suggestion list.
func AlternativeNames(suggestions []string) []string {
	for _, line := range suggestions {
		for _, prefix := range []string{RecentLowCaloriePrefix, LowSugarPrefix, LowSodiumPrefix} {
			if rest, ok := strings.CutPrefix(line, prefix); ok {
				return strings.Split(rest, ", ")
			}
		}
	}
	return nil
}
