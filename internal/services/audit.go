package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos"
	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

// AuditService writes best-effort audit entries. Failures are logged only.
type AuditService interface {
	Record(dbc dbctx.Context, userID uuid.UUID, action types.AuditAction, description string)
}

type auditService struct {
	log  *logger.Logger
	repo repos.AuditLogRepo
}

func NewAuditService(baseLog *logger.Logger, repo repos.AuditLogRepo) AuditService {
	return &auditService{log: baseLog.With("service", "AuditService"), repo: repo}
}

func (s *auditService) Record(dbc dbctx.Context, userID uuid.UUID, action types.AuditAction, description string) {
	if s == nil || s.repo == nil {
		return
	}
	entry := &types.AuditLog{
		ActionType:  action,
		Description: description,
		ActionDate:  time.Now().UTC(),
	}
	if userID != uuid.Nil {
		id := userID
		entry.UserID = &id
	}
	if err := s.repo.Create(dbc, entry); err != nil {
		s.log.Warn("audit write failed", "action", string(action), "user_id", userID, "error", err)
	}
}
