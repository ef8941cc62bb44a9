package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null;column:recipe_name" json:"recipe_name"`
	MealType     MealType  `gorm:"not null;index;column:meal_type" json:"meal_type"`
	Calories     float64   `gorm:"not null;default:0;column:calories" json:"calories"`
	SuitableFor  string    `gorm:"column:suitable_for" json:"suitable_for"`
	Ingredients  string    `gorm:"type:text;column:ingredients" json:"ingredients,omitempty"`
	Instructions string    `gorm:"type:text;column:instructions" json:"instructions,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Recipe) TableName() string { return "recipe" }

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
