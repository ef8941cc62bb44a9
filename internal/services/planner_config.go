package services

import (
	"time"

	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
)

// PlannerConfig tunes limit evaluation, suggestions and plan generation. Zero
// fields fall back to DefaultPlannerConfig.
type PlannerConfig struct {
	ApproachRatio        float64                    `yaml:"approach_ratio"`
	SlotFractions        map[types.MealType]float64 `yaml:"slot_fractions"`
	RecipeCeilingRatio   float64                    `yaml:"recipe_ceiling_ratio"`
	CandidateLimit       int                        `yaml:"candidate_limit"`
	SugarThreshold       float64                    `yaml:"sugar_threshold"`
	SodiumThreshold      float64                    `yaml:"sodium_threshold"`
	AlternativeSample    int                        `yaml:"alternative_sample"`
	RecentMealCount      int                        `yaml:"recent_meal_count"`
	RecentMealLookback   time.Duration              `yaml:"recent_meal_lookback"`
	DefaultDailyCalories float64                    `yaml:"default_daily_calories"`
	NotificationPageSize int                        `yaml:"notification_page_size"`
}

func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		ApproachRatio: 0.8,
		SlotFractions: map[types.MealType]float64{
			types.Breakfast: 0.25,
			types.Lunch:     0.35,
			types.Dinner:    0.35,
			types.Snack:     0.05,
		},
		RecipeCeilingRatio:   0.4,
		CandidateLimit:       5,
		SugarThreshold:       5,
		SodiumThreshold:      500,
		AlternativeSample:    2,
		RecentMealCount:      3,
		RecentMealLookback:   7 * 24 * time.Hour,
		DefaultDailyCalories: 2000,
		NotificationPageSize: 10,
	}
}

func (c PlannerConfig) WithDefaults() PlannerConfig {
	d := DefaultPlannerConfig()
	if c.ApproachRatio <= 0 || c.ApproachRatio >= 1 {
		c.ApproachRatio = d.ApproachRatio
	}
	if len(c.SlotFractions) == 0 {
		c.SlotFractions = d.SlotFractions
	} else {
		merged := make(map[types.MealType]float64, len(d.SlotFractions))
		for slot, f := range d.SlotFractions {
			merged[slot] = f
		}
		for slot, f := range c.SlotFractions {
			if _, ok := merged[slot]; ok && f > 0 {
				merged[slot] = f
			}
		}
		c.SlotFractions = merged
	}
	if c.RecipeCeilingRatio <= 0 {
		c.RecipeCeilingRatio = d.RecipeCeilingRatio
	}
	if c.CandidateLimit <= 0 {
		c.CandidateLimit = d.CandidateLimit
	}
	if c.SugarThreshold <= 0 {
		c.SugarThreshold = d.SugarThreshold
	}
	if c.SodiumThreshold <= 0 {
		c.SodiumThreshold = d.SodiumThreshold
	}
	if c.AlternativeSample <= 0 {
		c.AlternativeSample = d.AlternativeSample
	}
	if c.RecentMealCount <= 0 {
		c.RecentMealCount = d.RecentMealCount
	}
	if c.RecentMealLookback <= 0 {
		c.RecentMealLookback = d.RecentMealLookback
	}
	if c.DefaultDailyCalories <= 0 {
		c.DefaultDailyCalories = d.DefaultDailyCalories
	}
	if c.NotificationPageSize <= 0 {
		c.NotificationPageSize = d.NotificationPageSize
	}
	return c
}
