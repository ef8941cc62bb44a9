package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos"
	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/apierr"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

type NutritionService interface {
	// Aggregate recomputes totals from tracking rows in the inclusive window.
	// A user with no rows gets all-zero totals.
	Aggregate(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) (types.NutrientTotals, error)
	AggregateDays(dbc dbctx.Context, userID uuid.UUID, firstDay, lastDay time.Time) (types.NutrientTotals, error)
}

type nutritionService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	trackingRepo repos.TrackingRepo
}

func NewNutritionService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo, trackingRepo repos.TrackingRepo) NutritionService {
	return &nutritionService{
		db:           db,
		log:          baseLog.With("service", "NutritionService"),
		userRepo:     userRepo,
		trackingRepo: trackingRepo,
	}
}

func (s *nutritionService) Aggregate(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) (types.NutrientTotals, error) {
	if userID == uuid.Nil {
		return types.NutrientTotals{}, apierr.Invalid("user id required")
	}
	if start.IsZero() || end.IsZero() {
		return types.NutrientTotals{}, apierr.Invalid("window start and end are required")
	}
	if start.After(end) {
		return types.NutrientTotals{}, apierr.Invalid("window start %s is after end %s", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	u, err := s.userRepo.GetByID(dbc, userID)
	if err != nil {
		return types.NutrientTotals{}, apierr.DataAccess("load user", err)
	}
	if u == nil {
		return types.NutrientTotals{}, apierr.NotFound("user %s", userID)
	}

	totals, err := s.trackingRepo.SumNutrients(dbc, userID, start, end)
	if err != nil {
		s.log.Warn("nutrient aggregation failed", "user_id", userID, "error", err)
		return types.NutrientTotals{}, apierr.DataAccess("aggregate nutrients", err)
	}
	return totals, nil
}

func (s *nutritionService) AggregateDays(dbc dbctx.Context, userID uuid.UUID, firstDay, lastDay time.Time) (types.NutrientTotals, error) {
	start, _ := DayWindow(firstDay)
	_, end := DayWindow(lastDay)
	return s.Aggregate(dbc, userID, start, end)
}

// DayWindow returns the first and last instant of t's UTC calendar day.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := types.DateOnly(t.UTC())
	return start, start.Add(24*time.Hour - time.Nanosecond)
}
