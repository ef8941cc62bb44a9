package nutrition

import "math"

type Nutrient string

const (
	Calories Nutrient = "calories"
	Proteins Nutrient = "proteins"
	Carbs    Nutrient = "carbs"
	Fats     Nutrient = "fats"
	Sugar    Nutrient = "sugar"
	Sodium   Nutrient = "sodium"
)

// All lists the aggregated nutrient keys.
var All = []Nutrient{Calories, Proteins, Carbs, Fats, Sugar, Sodium}

// Priority is the fixed evaluation and display order for limited nutrients.
var Priority = []Nutrient{Calories, Sugar, Sodium}

func (n Nutrient) Unit() string {
	switch n {
	case Calories:
		return "kcal"
	case Sodium:
		return "mg"
	default:
		return "g"
	}
}

// Totals is derived from tracking records and the meal catalog. It is never persisted.
type Totals struct {
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

func (t Totals) Get(n Nutrient) (float64, bool) {
	switch n {
	case Calories:
		return t.Calories, true
	case Proteins:
		return t.Proteins, true
	case Carbs:
		return t.Carbs, true
	case Fats:
		return t.Fats, true
	case Sugar:
		return t.Sugar, true
	case Sodium:
		return t.Sodium, true
	}
	return 0, false
}

func (t Totals) Rounded() Totals {
	r := func(v float64) float64 { return math.Round(v*100) / 100 }
	return Totals{
		Calories: r(t.Calories),
		Proteins: r(t.Proteins),
		Carbs:    r(t.Carbs),
		Fats:     r(t.Fats),
		Sugar:    r(t.Sugar),
		Sodium:   r(t.Sodium),
	}
}

// Limits holds per-user daily ceilings. Zero means unset.
type Limits struct {
	Calories float64 `json:"calories"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

func (l Limits) Get(n Nutrient) float64 {
	switch n {
	case Calories:
		return l.Calories
	case Sugar:
		return l.Sugar
	case Sodium:
		return l.Sodium
	}
	return 0
}

type State string

const (
	StateApproaching State = "approaching"
	StateExceeded    State = "exceeded"
)

type Status struct {
	Nutrient    Nutrient `json:"nutrient"`
	Total       float64  `json:"total"`
	Limit       float64  `json:"limit"`
	State       State    `json:"state"`
	Suggestions []string `json:"suggestions"`
}
