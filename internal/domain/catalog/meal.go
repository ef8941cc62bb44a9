package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal is a catalog item users track against. Nutrient values are per unit;
// nil means the value is unknown and counts as zero.
type Meal struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `gorm:"not null;index;column:meal_name" json:"meal_name"`
	MealType MealType  `gorm:"not null;index;column:meal_type" json:"meal_type"`

	Calories *float64 `gorm:"column:calories" json:"calories"`
	Proteins *float64 `gorm:"column:proteins" json:"proteins"`
	Carbs    *float64 `gorm:"column:carbs" json:"carbs"`
	Fats     *float64 `gorm:"column:fats" json:"fats"`
	Sugar    *float64 `gorm:"column:sugar" json:"sugar"`
	Sodium   *float64 `gorm:"column:sodium" json:"sodium"`

	// Comma separated condition tags, lowercase.
	SuitableFor string `gorm:"column:suitable_for" json:"suitable_for"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Meal) TableName() string { return "meal" }

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
