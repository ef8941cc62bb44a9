package services

import (
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos"
	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/apierr"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
	"github.com/N0Xl0US/HMP-issue-fix/internal/realtime"
)

type NotificationService interface {
	// Record persists one notification per status, in status order.
	Record(dbc dbctx.Context, userID uuid.UUID, statuses []types.NutrientStatus) ([]*types.Notification, error)
	// List returns the newest n notifications; n <= 0 uses the default page size.
	List(dbc dbctx.Context, userID uuid.UUID, n int) ([]*types.Notification, error)
	// MarkRead is idempotent for the owner and Forbidden for anyone else.
	MarkRead(dbc dbctx.Context, userID, notificationID uuid.UUID) (*types.Notification, error)
	UnreadCount(dbc dbctx.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	db       *gorm.DB
	log      *logger.Logger
	repo     repos.NotificationRepo
	emitter  realtime.Emitter
	pageSize int
}

func NewNotificationService(db *gorm.DB, baseLog *logger.Logger, repo repos.NotificationRepo, emitter realtime.Emitter, cfg PlannerConfig) NotificationService {
	if emitter == nil {
		emitter = realtime.NopEmitter{}
	}
	return &notificationService{
		db:       db,
		log:      baseLog.With("service", "NotificationService"),
		repo:     repo,
		emitter:  emitter,
		pageSize: cfg.WithDefaults().NotificationPageSize,
	}
}

func (s *notificationService) Record(dbc dbctx.Context, userID uuid.UUID, statuses []types.NutrientStatus) ([]*types.Notification, error) {
	if userID == uuid.Nil {
		return nil, apierr.Invalid("user id required")
	}
	if len(statuses) == 0 {
		return []*types.Notification{}, nil
	}
	rows := make([]*types.Notification, 0, len(statuses))
	for _, st := range statuses {
		suggestions := st.Suggestions
		if suggestions == nil {
			suggestions = []string{}
		}
		rows = append(rows, &types.Notification{
			ID:          uuid.New(),
			UserID:      userID,
			Nutrient:    st.Nutrient,
			Status:      st.State,
			Message:     StatusMessage(st),
			Suggestions: suggestions,
		})
	}
	created, err := s.repo.Create(dbc, rows)
	if err != nil {
		return nil, apierr.DataAccess("record notifications", err)
	}
	for _, n := range created {
		s.emitter.Emit(dbc.Ctx, userID, realtime.SSEEventNotificationCreated, n)
	}
	s.log.Debug("notifications recorded", "user_id", userID, "count", len(created))
	return created, nil
}

func (s *notificationService) List(dbc dbctx.Context, userID uuid.UUID, n int) ([]*types.Notification, error) {
	if userID == uuid.Nil {
		return nil, apierr.Invalid("user id required")
	}
	if n <= 0 {
		n = s.pageSize
	}
	rows, err := s.repo.ListByUser(dbc, userID, n)
	if err != nil {
		return nil, apierr.DataAccess("list notifications", err)
	}
	return rows, nil
}

func (s *notificationService) MarkRead(dbc dbctx.Context, userID, notificationID uuid.UUID) (*types.Notification, error) {
	row, err := s.repo.GetByID(dbc, notificationID)
	if err != nil {
		return nil, apierr.DataAccess("load notification", err)
	}
	if row == nil {
		return nil, apierr.NotFound("notification %s", notificationID)
	}
	if row.UserID != userID {
		s.log.Warn("cross-user mark-read rejected", "user_id", userID, "notification_id", notificationID)
		return nil, apierr.Forbidden("notification %s belongs to another user", notificationID)
	}
	if row.IsRead {
		return row, nil
	}
	ok, err := s.repo.MarkRead(dbc, userID, notificationID)
	if err != nil {
		return nil, apierr.DataAccess("mark notification read", err)
	}
	if !ok {
		return nil, apierr.NotFound("notification %s", notificationID)
	}
	row.IsRead = true
	s.emitter.Emit(dbc.Ctx, userID, realtime.SSEEventNotificationRead, map[string]any{"id": notificationID})
	return row, nil
}

func (s *notificationService) UnreadCount(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	n, err := s.repo.CountUnread(dbc, userID)
	if err != nil {
		return 0, apierr.DataAccess("count unread notifications", err)
	}
	return n, nil
}

// StatusMessage renders the display line stored with a notification.
func StatusMessage(st types.NutrientStatus) string {
	verb := "are approaching"
	if st.State == types.StateExceeded {
		verb = "have exceeded"
	}
	return fmt.Sprintf("You %s your daily %s limit (%s / %s %s)",
		verb, st.Nutrient, formatAmount(st.Total), formatAmount(st.Limit), st.Nutrient.Unit())
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
