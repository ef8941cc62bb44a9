package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/N0Xl0US/HMP-issue-fix/internal/domain/nutrition"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName      string    `gorm:"not null;column:full_name" json:"full_name"`
	Email         string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password      string    `gorm:"not null;column:password" json:"-"`
	EmailVerified bool      `gorm:"not null;default:false;column:email_verified" json:"email_verified"`

	// Chronic-condition tags, stored lowercase.
	Conditions datatypes.JSONSlice[string] `gorm:"column:conditions" json:"conditions"`

	CalorieLimit  float64 `gorm:"not null;default:0;column:calorie_limit" json:"calorie_limit"`
	SugarLimit    float64 `gorm:"not null;default:0;column:sugar_limit" json:"sugar_limit"`
	SodiumLimit   float64 `gorm:"not null;default:0;column:sodium_limit" json:"sodium_limit"`
	DailyCalories float64 `gorm:"not null;default:0;column:daily_calories" json:"daily_calories"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) Limits() nutrition.Limits {
	if u == nil {
		return nutrition.Limits{}
	}
	return nutrition.Limits{
		Calories: u.CalorieLimit,
		Sugar:    u.SugarLimit,
		Sodium:   u.SodiumLimit,
	}
}

// ConditionTags returns the trimmed, lowercased, de-duplicated condition tags.
func (u *User) ConditionTags() []string {
	if u == nil {
		return nil
	}
	return NormalizeTags(u.Conditions)
}

func NormalizeTags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
