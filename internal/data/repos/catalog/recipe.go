package catalog

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

// RecipeFilter selects plan candidates. Tags match when the suitability field
// contains ANY of them; an empty tag list matches every recipe.
type RecipeFilter struct {
	MealType    types.MealType
	MaxCalories float64
	Tags        []string
	Limit       int
}

type RecipeRepo interface {
	Create(dbc dbctx.Context, recipes []*types.Recipe) ([]*types.Recipe, error)
	GetByIDs(dbc dbctx.Context, recipeIDs []uuid.UUID) ([]*types.Recipe, error)
	// Candidates returns recipes matching f in random order.
	Candidates(dbc dbctx.Context, f RecipeFilter) ([]*types.Recipe, error)
}

type recipeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return &recipeRepo{db: db, log: baseLog.With("repo", "RecipeRepo")}
}

func (r *recipeRepo) Create(dbc dbctx.Context, recipes []*types.Recipe) ([]*types.Recipe, error) {
	if len(recipes) == 0 {
		return []*types.Recipe{}, nil
	}
	if err := dbc.DB(r.db).Create(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepo) GetByIDs(dbc dbctx.Context, recipeIDs []uuid.UUID) ([]*types.Recipe, error) {
	var out []*types.Recipe
	if len(recipeIDs) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).Where("id IN ?", recipeIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recipeRepo) Candidates(dbc dbctx.Context, f RecipeFilter) ([]*types.Recipe, error) {
	var out []*types.Recipe
	q := dbc.DB(r.db).
		Where("meal_type = ?", f.MealType).
		Where("calories <= ?", f.MaxCalories)

	if len(f.Tags) > 0 {
		likes := make([]clause.Expression, 0, len(f.Tags))
		for _, tag := range f.Tags {
			likes = append(likes, clause.Expr{
				SQL:  "LOWER(suitable_for) LIKE ? ESCAPE '\\'",
				Vars: []interface{}{"%" + escapeLike(strings.ToLower(tag)) + "%"},
			})
		}
		q = q.Where(clause.Or(likes...))
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if err := q.Order("RANDOM()").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern using '\' as the
// escape character.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
