package domain

import (
	"github.com/N0Xl0US/HMP-issue-fix/internal/domain/audit"
	"github.com/N0Xl0US/HMP-issue-fix/internal/domain/catalog"
	"github.com/N0Xl0US/HMP-issue-fix/internal/domain/health"
	"github.com/N0Xl0US/HMP-issue-fix/internal/domain/notification"
	"github.com/N0Xl0US/HMP-issue-fix/internal/domain/nutrition"
	"github.com/N0Xl0US/HMP-issue-fix/internal/domain/planning"
	"github.com/N0Xl0US/HMP-issue-fix/internal/domain/tracking"
	"github.com/N0Xl0US/HMP-issue-fix/internal/domain/user"
)

const (
	Breakfast = catalog.Breakfast
	Lunch     = catalog.Lunch
	Dinner    = catalog.Dinner
	Snack     = catalog.Snack

	NutrientCalories = nutrition.Calories
	NutrientProteins = nutrition.Proteins
	NutrientCarbs    = nutrition.Carbs
	NutrientFats     = nutrition.Fats
	NutrientSugar    = nutrition.Sugar
	NutrientSodium   = nutrition.Sodium

	StateApproaching = nutrition.StateApproaching
	StateExceeded    = nutrition.StateExceeded

	ActionLogin             = audit.ActionLogin
	ActionLogout            = audit.ActionLogout
	ActionSignupVerified    = audit.ActionSignupVerified
	ActionPasswordReset     = audit.ActionPasswordReset
	ActionMealPlanGenerated = audit.ActionMealPlanGenerated
)

type (
	User = user.User

	MealType = catalog.MealType
	Meal     = catalog.Meal
	Recipe   = catalog.Recipe

	TrackingRecord = tracking.Record

	Nutrient       = nutrition.Nutrient
	NutrientTotals = nutrition.Totals
	NutrientLimits = nutrition.Limits
	NutrientState  = nutrition.State
	NutrientStatus = nutrition.Status

	Notification = notification.Notification

	MealPlan = planning.MealPlan

	SleepRecord = health.SleepRecord
	SleepStats  = health.SleepStats

	AuditLog    = audit.Log
	AuditAction = audit.Action
)

var (
	MealTypes        = catalog.MealTypes
	ParseMealType    = catalog.ParseMealType
	Nutrients        = nutrition.All
	NutrientPriority = nutrition.Priority
	NormalizeTags    = user.NormalizeTags
	PlanSlotColumn   = planning.SlotColumn
	DateOnly         = planning.DateOnly
)
