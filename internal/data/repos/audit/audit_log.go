package audit

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

type AuditLogRepo interface {
	Create(dbc dbctx.Context, entry *types.AuditLog) error
	ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.AuditLog, error)
}

type auditLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditLogRepo(db *gorm.DB, baseLog *logger.Logger) AuditLogRepo {
	return &auditLogRepo{db: db, log: baseLog.With("repo", "AuditLogRepo")}
}

func (r *auditLogRepo) Create(dbc dbctx.Context, entry *types.AuditLog) error {
	return dbc.DB(r.db).Create(entry).Error
}

func (r *auditLogRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.AuditLog, error) {
	var out []*types.AuditLog
	q := dbc.DB(r.db).Where("user_id = ?", userID).Order("action_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
