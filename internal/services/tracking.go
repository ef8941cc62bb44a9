package services

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos"
	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/apierr"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
	"github.com/N0Xl0US/HMP-issue-fix/internal/realtime"
)

type TrackMealInput struct {
	MealID   uuid.UUID `validate:"required"`
	MealType string    `validate:"omitempty,oneof=breakfast lunch dinner snack"`
	Quantity float64   `validate:"gt=0,lte=100"`
	Feedback string    `validate:"max=2000"`
}

type TrackMealResult struct {
	Record        *types.TrackingRecord  `json:"record"`
	Totals        types.NutrientTotals   `json:"totals"`
	Statuses      []types.NutrientStatus `json:"statuses"`
	Notifications []*types.Notification  `json:"notifications"`
}

type TrackingService interface {
	// TrackMeal stores an immutable record, then re-evaluates the day. The
	// evaluation step is best-effort: its failures are logged and the record
	// is still returned.
	TrackMeal(dbc dbctx.Context, userID uuid.UUID, in TrackMealInput) (*TrackMealResult, error)
	ListMeals(dbc dbctx.Context, mealType string) ([]*types.Meal, error)
	Today(dbc dbctx.Context, userID uuid.UUID) (types.NutrientTotals, error)
}

type trackingService struct {
	db            *gorm.DB
	log           *logger.Logger
	validate      *validator.Validate
	userRepo      repos.UserRepo
	mealRepo      repos.MealRepo
	trackingRepo  repos.TrackingRepo
	nutrition     NutritionService
	limits        LimitService
	notifications NotificationService
	emitter       realtime.Emitter
	now           func() time.Time
}

func NewTrackingService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	mealRepo repos.MealRepo,
	trackingRepo repos.TrackingRepo,
	nutrition NutritionService,
	limits LimitService,
	notifications NotificationService,
	emitter realtime.Emitter,
) TrackingService {
	if emitter == nil {
		emitter = realtime.NopEmitter{}
	}
	return &trackingService{
		db:            db,
		log:           baseLog.With("service", "TrackingService"),
		validate:      validator.New(),
		userRepo:      userRepo,
		mealRepo:      mealRepo,
		trackingRepo:  trackingRepo,
		nutrition:     nutrition,
		limits:        limits,
		notifications: notifications,
		emitter:       emitter,
		now:           time.Now,
	}
}

func (s *trackingService) TrackMeal(dbc dbctx.Context, userID uuid.UUID, in TrackMealInput) (*TrackMealResult, error) {
	in.MealType = strings.ToLower(strings.TrimSpace(in.MealType))
	if err := s.validate.Struct(in); err != nil {
		return nil, apierr.Invalid("%s", validationMessage(err))
	}
	u, err := s.userRepo.GetByID(dbc, userID)
	if err != nil {
		return nil, apierr.DataAccess("load user", err)
	}
	if u == nil {
		return nil, apierr.NotFound("user %s", userID)
	}
	meal, err := s.mealRepo.GetByID(dbc, in.MealID)
	if err != nil {
		return nil, apierr.DataAccess("load meal", err)
	}
	if meal == nil {
		return nil, apierr.NotFound("meal %s", in.MealID)
	}
	mealType := meal.MealType
	if in.MealType != "" {
		mealType = types.MealType(in.MealType)
	}

	rec, err := s.trackingRepo.Create(dbc, &types.TrackingRecord{
		UserID:    userID,
		MealID:    meal.ID,
		MealType:  mealType,
		Quantity:  in.Quantity,
		Feedback:  strings.TrimSpace(in.Feedback),
		TrackedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, apierr.DataAccess("create tracking record", err)
	}
	rec.Meal = meal

	result := &TrackMealResult{
		Record:        rec,
		Statuses:      []types.NutrientStatus{},
		Notifications: []*types.Notification{},
	}
	s.emitter.Emit(dbc.Ctx, userID, realtime.SSEEventMealTracked, rec)

	start, end := DayWindow(rec.TrackedAt)
	totals, err := s.nutrition.Aggregate(dbc, userID, start, end)
	if err != nil {
		s.log.Warn("post-tracking aggregation failed", "user_id", userID, "error", err)
		return result, nil
	}
	result.Totals = totals
	result.Statuses = s.limits.Evaluate(dbc, userID, totals, u.Limits())
	if len(result.Statuses) == 0 {
		return result, nil
	}
	created, err := s.notifications.Record(dbc, userID, result.Statuses)
	if err != nil {
		s.log.Warn("notification recording failed", "user_id", userID, "error", err)
		return result, nil
	}
	result.Notifications = created
	return result, nil
}

func (s *trackingService) ListMeals(dbc dbctx.Context, mealType string) ([]*types.Meal, error) {
	var mt types.MealType
	if strings.TrimSpace(mealType) != "" {
		parsed, ok := types.ParseMealType(mealType)
		if !ok {
			return nil, apierr.Invalid("unknown meal type %q", mealType)
		}
		mt = parsed
	}
	meals, err := s.mealRepo.List(dbc, mt)
	if err != nil {
		return nil, apierr.DataAccess("list meals", err)
	}
	return meals, nil
}

func (s *trackingService) Today(dbc dbctx.Context, userID uuid.UUID) (types.NutrientTotals, error) {
	start, end := DayWindow(s.now())
	return s.nutrition.Aggregate(dbc, userID, start, end)
}
