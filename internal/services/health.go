package services

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos"
	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/apierr"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

type SleepInput struct {
	DurationHours float64 `validate:"gt=0,lte=24"`
	Quality       int     `validate:"gte=1,lte=10"`
}

type HealthStats struct {
	Period Period               `json:"period"`
	From   time.Time            `json:"from"`
	To     time.Time            `json:"to"`
	Meals  types.NutrientTotals `json:"meal_stats"`
	Sleep  types.SleepStats     `json:"sleep_stats"`
}

type HealthService interface {
	RecordSleep(dbc dbctx.Context, userID uuid.UUID, in SleepInput) (*types.SleepRecord, error)
	Stats(dbc dbctx.Context, userID uuid.UUID, period string) (*HealthStats, error)
}

type healthService struct {
	log       *logger.Logger
	validate  *validator.Validate
	sleepRepo repos.SleepRepo
	nutrition NutritionService
	now       func() time.Time
}

func NewHealthService(baseLog *logger.Logger, sleepRepo repos.SleepRepo, nutrition NutritionService) HealthService {
	return &healthService{
		log:       baseLog.With("service", "HealthService"),
		validate:  validator.New(),
		sleepRepo: sleepRepo,
		nutrition: nutrition,
		now:       time.Now,
	}
}

func (s *healthService) RecordSleep(dbc dbctx.Context, userID uuid.UUID, in SleepInput) (*types.SleepRecord, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apierr.Invalid("%s", validationMessage(err))
	}
	if _, err := s.sleepRepo.Create(dbc, &types.SleepRecord{
		UserID:        userID,
		DurationHours: in.DurationHours,
		Quality:       in.Quality,
		SleepDate:     s.now().UTC(),
	}); err != nil {
		return nil, apierr.DataAccess("record sleep", err)
	}
	latest, err := s.sleepRepo.Latest(dbc, userID)
	if err != nil {
		return nil, apierr.DataAccess("load latest sleep", err)
	}
	return latest, nil
}

func (s *healthService) Stats(dbc dbctx.Context, userID uuid.UUID, period string) (*HealthStats, error) {
	p := Period(strings.ToLower(strings.TrimSpace(period)))
	if p == "" {
		p = PeriodDaily
	}
	from, to, err := PeriodRange(p, s.now())
	if err != nil {
		return nil, err
	}
	meals, err := s.nutrition.AggregateDays(dbc, userID, from, to)
	if err != nil {
		return nil, err
	}
	sleep, err := s.sleepRepo.Stats(dbc, userID, from, to)
	if err != nil {
		return nil, apierr.DataAccess("sleep stats", err)
	}
	return &HealthStats{Period: p, From: from, To: to, Meals: meals.Rounded(), Sleep: sleep}, nil
}

// PeriodRange maps a reporting period to inclusive calendar days ending today.
func PeriodRange(p Period, now time.Time) (time.Time, time.Time, error) {
	today := types.DateOnly(now.UTC())
	switch p {
	case PeriodDaily:
		return today, today, nil
	case PeriodWeekly:
		return today.AddDate(0, 0, -7), today, nil
	case PeriodMonthly:
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), today, nil
	case PeriodYearly:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), today, nil
	}
	return time.Time{}, time.Time{}, apierr.Invalid("unknown period %q", p)
}
