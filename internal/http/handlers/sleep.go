package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/N0Xl0US/HMP-issue-fix/internal/http/response"
	"github.com/N0Xl0US/HMP-issue-fix/internal/services"
)

type SleepHandler struct {
	healthService services.HealthService
}

func NewSleepHandler(healthService services.HealthService) *SleepHandler {
	return &SleepHandler{healthService: healthService}
}

// POST /api/sleep
func (sh *SleepHandler) RecordSleep(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		DurationHours float64 `json:"duration_hours"`
		Quality       int     `json:"quality"`
	}
	if !bindJSON(c, &req) {
		return
	}
	rec, err := sh.healthService.RecordSleep(dbcOf(c), userID, services.SleepInput{
		DurationHours: req.DurationHours,
		Quality:       req.Quality,
	})
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"sleep": rec})
}

// GET /api/health-stats?period=daily|weekly|monthly|yearly
func (sh *SleepHandler) HealthStats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	stats, err := sh.healthService.Stats(dbcOf(c), userID, c.DefaultQuery("period", "daily"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, stats)
}
