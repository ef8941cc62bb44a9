package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/N0Xl0US/HMP-issue-fix/internal/http/response"
	"github.com/N0Xl0US/HMP-issue-fix/internal/services"
)

type NotificationHandler struct {
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GET /api/notifications?limit=n
func (nh *NotificationHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit", 0)
	if !ok {
		return
	}
	rows, err := nh.notificationService.List(dbcOf(c), userID, limit)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"notifications": rows})
}

// GET /api/notifications/unread-count
func (nh *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	n, err := nh.notificationService.UnreadCount(dbcOf(c), userID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"unread": n})
}

// POST /api/notifications/:id/read
func (nh *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	row, err := nh.notificationService.MarkRead(dbcOf(c), userID, id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"notification": row})
}
