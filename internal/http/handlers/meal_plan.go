package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/http/response"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/apierr"
	"github.com/N0Xl0US/HMP-issue-fix/internal/services"
)

type MealPlanHandler struct {
	mealPlanService services.MealPlanService
}

func NewMealPlanHandler(mealPlanService services.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{mealPlanService: mealPlanService}
}

// POST /api/meal-plans {date}
func (mh *MealPlanHandler) Generate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		Date string `json:"date"`
	}
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
		if err != nil {
			response.RespondError(c, apierr.Invalid("date must be YYYY-MM-DD"))
			return
		}
		date = parsed
	}
	plan, err := mh.mealPlanService.GenerateDailyPlan(dbcOf(c), userID, date)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"meal_plan": plan})
}

// GET /api/meal-plans?date=
func (mh *MealPlanHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	date, ok := dateQuery(c, "date", time.Now().UTC())
	if !ok {
		return
	}
	plans, err := mh.mealPlanService.ListPlans(dbcOf(c), userID, date)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"meal_plans": plans})
}

// GET /api/meal-plans/:id
func (mh *MealPlanHandler) Get(c *gin.Context) {
	plan, ok := mh.ownedPlan(c)
	if !ok {
		return
	}
	response.RespondOK(c, gin.H{"meal_plan": plan})
}

// PATCH /api/meal-plans/:id {slots:{lunch:<recipe id>}}
func (mh *MealPlanHandler) Customize(c *gin.Context) {
	plan, ok := mh.ownedPlan(c)
	if !ok {
		return
	}
	var req struct {
		Slots map[string]uuid.UUID `json:"slots"`
	}
	if !bindJSON(c, &req) {
		return
	}
	updates := make(map[types.MealType]uuid.UUID, len(req.Slots))
	for slot, id := range req.Slots {
		updates[types.MealType(slot)] = id
	}
	updated, err := mh.mealPlanService.CustomizeMealPlan(dbcOf(c), plan.ID, updates)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"meal_plan": updated})
}

func (mh *MealPlanHandler) ownedPlan(c *gin.Context) (*types.MealPlan, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	planID, ok := uuidParam(c, "id")
	if !ok {
		return nil, false
	}
	plan, err := mh.mealPlanService.GetPlan(dbcOf(c), planID)
	if err != nil {
		response.RespondError(c, err)
		return nil, false
	}
	if plan.UserID != userID {
		response.RespondError(c, apierr.Forbidden("meal plan %s belongs to another user", planID))
		return nil, false
	}
	return plan, true
}
