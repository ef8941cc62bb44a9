package services

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos"
	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/apierr"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/ctxutil"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

// HealthSettings is a partial update; nil fields are left untouched.
type HealthSettings struct {
	Conditions    []string `json:"conditions" validate:"omitempty,max=32,dive,max=64"`
	CalorieLimit  *float64 `json:"calorie_limit" validate:"omitempty,gte=0"`
	SugarLimit    *float64 `json:"sugar_limit" validate:"omitempty,gte=0"`
	SodiumLimit   *float64 `json:"sodium_limit" validate:"omitempty,gte=0"`
	DailyCalories *float64 `json:"daily_calories" validate:"omitempty,gte=0"`
}

type UserService interface {
	GetMe(dbc dbctx.Context) (*types.User, error)
	UpdateHealth(dbc dbctx.Context, in HealthSettings) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	validate *validator.Validate
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		db:       db,
		log:      log.With("service", "UserService"),
		validate: validator.New(),
		userRepo: userRepo,
	}
}

func (us *userService) GetMe(dbc dbctx.Context) (*types.User, error) {
	userID, ok := ctxutil.CurrentUserID(dbc.Ctx)
	if !ok {
		us.log.Warn("User id not set in request data")
		return nil, apierr.Unauthorized("user id not set in request data")
	}
	return us.load(dbc, userID)
}

func (us *userService) UpdateHealth(dbc dbctx.Context, in HealthSettings) (*types.User, error) {
	userID, ok := ctxutil.CurrentUserID(dbc.Ctx)
	if !ok {
		return nil, apierr.Unauthorized("user id not set in request data")
	}
	if err := us.validate.Struct(in); err != nil {
		return nil, apierr.Invalid("%s", validationMessage(err))
	}

	updates := map[string]any{}
	if in.Conditions != nil {
		updates["conditions"] = datatypes.JSONSlice[string](types.NormalizeTags(in.Conditions))
	}
	if in.CalorieLimit != nil {
		updates["calorie_limit"] = *in.CalorieLimit
	}
	if in.SugarLimit != nil {
		updates["sugar_limit"] = *in.SugarLimit
	}
	if in.SodiumLimit != nil {
		updates["sodium_limit"] = *in.SodiumLimit
	}
	if in.DailyCalories != nil {
		updates["daily_calories"] = *in.DailyCalories
	}
	if len(updates) == 0 {
		return nil, apierr.Invalid("no health settings provided")
	}

	var updated *types.User
	err := inTx(us.db, dbc, func(inner dbctx.Context) error {
		if _, err := us.load(inner, userID); err != nil {
			return err
		}
		if err := us.userRepo.UpdateFields(inner, userID, updates); err != nil {
			return apierr.DataAccess("update health settings", err)
		}
		u, err := us.load(inner, userID)
		if err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		us.log.Warn("UpdateHealth failed", "user_id", userID, "error", err)
		return nil, err
	}
	return updated, nil
}

func (us *userService) load(dbc dbctx.Context, userID uuid.UUID) (*types.User, error) {
	u, err := us.userRepo.GetByID(dbc, userID)
	if err != nil {
		return nil, apierr.DataAccess(fmt.Sprintf("load user %s", userID), err)
	}
	if u == nil {
		return nil, apierr.NotFound("user %s", userID)
	}
	return u, nil
}
