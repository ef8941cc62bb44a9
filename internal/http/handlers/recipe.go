package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/http/response"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/apierr"
	"github.com/N0Xl0US/HMP-issue-fix/internal/services"
)

type RecipeHandler struct {
	recipeService services.RecipeService
}

func NewRecipeHandler(recipeService services.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// GET /api/recipes?meal_type=&tags=a,b&budget=
func (rh *RecipeHandler) ListRecipes(c *gin.Context) {
	budget, err := strconv.ParseFloat(strings.TrimSpace(c.Query("budget")), 64)
	if err != nil {
		response.RespondError(c, apierr.Invalid("budget must be a number"))
		return
	}
	recipes, err := rh.recipeService.Select(dbcOf(c), types.MealType(strings.ToLower(strings.TrimSpace(c.Query("meal_type")))), splitTags(c.Query("tags")), budget)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"recipes": recipes})
}
