package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/N0Xl0US/HMP-issue-fix/internal/http/response"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/apierr"
	"github.com/N0Xl0US/HMP-issue-fix/internal/services"
)

type MealHandler struct {
	trackingService  services.TrackingService
	nutritionService services.NutritionService
}

func NewMealHandler(trackingService services.TrackingService, nutritionService services.NutritionService) *MealHandler {
	return &MealHandler{trackingService: trackingService, nutritionService: nutritionService}
}

// GET /api/meals?type=
func (mh *MealHandler) ListMeals(c *gin.Context) {
	meals, err := mh.trackingService.ListMeals(dbcOf(c), c.Query("type"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"meals": meals})
}

// POST /api/meals/track
func (mh *MealHandler) TrackMeal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		MealID   uuid.UUID `json:"meal_id"`
		MealType string    `json:"meal_type"`
		Quantity float64   `json:"quantity"`
		Feedback string    `json:"feedback"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := mh.trackingService.TrackMeal(dbcOf(c), userID, services.TrackMealInput{
		MealID:   req.MealID,
		MealType: req.MealType,
		Quantity: req.Quantity,
		Feedback: req.Feedback,
	})
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, res)
}

// GET /api/stats/today
func (mh *MealHandler) TodayStats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	totals, err := mh.trackingService.Today(dbcOf(c), userID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"totals": totals.Rounded()})
}

// GET /api/stats?start=YYYY-MM-DD&end=YYYY-MM-DD
func (mh *MealHandler) RangeStats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	today := time.Now().UTC()
	start, ok := dateQuery(c, "start", today)
	if !ok {
		return
	}
	end, ok := dateQuery(c, "end", start)
	if !ok {
		return
	}
	if start.After(end) {
		response.RespondError(c, apierr.Invalid("start must not be after end"))
		return
	}
	totals, err := mh.nutritionService.AggregateDays(dbcOf(c), userID, start, end)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"start":  start.Format(dateLayout),
		"end":    end.Format(dateLayout),
		"totals": totals.Rounded(),
	})
}
