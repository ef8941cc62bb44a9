package services

import (
	"github.com/google/uuid"

	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

type LimitService interface {
	// Evaluate walks calories, sugar, sodium in that order and emits a status
	// only for nutrients at or past the approach threshold of a positive limit.
	Evaluate(dbc dbctx.Context, userID uuid.UUID, totals types.NutrientTotals, limits types.NutrientLimits) []types.NutrientStatus
}

type limitService struct {
	log        *logger.Logger
	suggestion SuggestionService
	ratio      float64
}

func NewLimitService(baseLog *logger.Logger, suggestion SuggestionService, cfg PlannerConfig) LimitService {
	cfg = cfg.WithDefaults()
	return &limitService{
		log:        baseLog.With("service", "LimitService"),
		suggestion: suggestion,
		ratio:      cfg.ApproachRatio,
	}
}

func (s *limitService) Evaluate(dbc dbctx.Context, userID uuid.UUID, totals types.NutrientTotals, limits types.NutrientLimits) []types.NutrientStatus {
	out := make([]types.NutrientStatus, 0, len(types.NutrientPriority))
	for _, n := range types.NutrientPriority {
		limit := limits.Get(n)
		total, _ := totals.Get(n)
		state, ok := Classify(total, limit, s.ratio)
		if !ok {
			continue
		}
		st := types.NutrientStatus{
			Nutrient: n,
			Total:    total,
			Limit:    limit,
			State:    state,
		}
		if s.suggestion != nil {
			st.Suggestions = s.suggestion.Suggest(dbc, n, total, limit, userID)
		}
		if st.Suggestions == nil {
			st.Suggestions = []string{}
		}
		out = append(out, st)
	}
	return out
}

// Classify reports exceeded when total >= limit and approaching when
// ratio*limit <= total < limit. Non-positive limits are never evaluated.
func Classify(total, limit, ratio float64) (types.NutrientState, bool) {
	if limit <= 0 {
		return "", false
	}
	switch {
	case total >= limit:
		return types.StateExceeded, true
	case total >= ratio*limit:
		return types.StateApproaching, true
	default:
		return "", false
	}
}
