package health

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

type SleepRepo interface {
	Create(dbc dbctx.Context, rec *types.SleepRecord) (*types.SleepRecord, error)
	Latest(dbc dbctx.Context, userID uuid.UUID) (*types.SleepRecord, error)
	// Stats summarizes records whose sleep date falls in [from, to].
	Stats(dbc dbctx.Context, userID uuid.UUID, from, to time.Time) (types.SleepStats, error)
}

type sleepRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSleepRepo(db *gorm.DB, baseLog *logger.Logger) SleepRepo {
	return &sleepRepo{db: db, log: baseLog.With("repo", "SleepRepo")}
}

func (r *sleepRepo) Create(dbc dbctx.Context, rec *types.SleepRecord) (*types.SleepRecord, error) {
	rec.SleepDate = types.DateOnly(rec.SleepDate)
	if err := dbc.DB(r.db).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *sleepRepo) Latest(dbc dbctx.Context, userID uuid.UUID) (*types.SleepRecord, error) {
	var out []*types.SleepRecord
	if err := dbc.DB(r.db).
		Where("user_id = ?", userID).
		Order("sleep_date DESC").
		Order("created_at DESC").
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *sleepRepo) Stats(dbc dbctx.Context, userID uuid.UUID, from, to time.Time) (types.SleepStats, error) {
	var row struct {
		Total  float64
		Avg    float64
		Nights int64
	}
	err := dbc.DB(r.db).
		Model(&types.SleepRecord{}).
		Select("COALESCE(SUM(duration_hours), 0) AS total, COALESCE(AVG(sleep_quality), 0) AS avg, COUNT(*) AS nights").
		Where("user_id = ? AND sleep_date >= ? AND sleep_date <= ?", userID, types.DateOnly(from), types.DateOnly(to)).
		Scan(&row).Error
	if err != nil {
		return types.SleepStats{}, err
	}
	return types.SleepStats{TotalHours: row.Total, AverageQuality: row.Avg, Nights: row.Nights}, nil
}
