package tracking

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

type TrackingRepo interface {
	Create(dbc dbctx.Context, rec *types.TrackingRecord) (*types.TrackingRecord, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) ([]*types.TrackingRecord, error)
	// SumNutrients totals quantity x per-unit nutrient over [start, end].
	// Unknown catalog values and dangling meal references contribute zero.
	SumNutrients(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) (types.NutrientTotals, error)
	// RecentMealsByCalories returns distinct meals the user tracked at or after
	// since, lowest calories first. Meals with unknown calories are left out.
	RecentMealsByCalories(dbc dbctx.Context, userID uuid.UUID, since time.Time, limit int) ([]*types.Meal, error)
}

type trackingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrackingRepo(db *gorm.DB, baseLog *logger.Logger) TrackingRepo {
	return &trackingRepo{db: db, log: baseLog.With("repo", "TrackingRepo")}
}

func (r *trackingRepo) Create(dbc dbctx.Context, rec *types.TrackingRecord) (*types.TrackingRecord, error) {
	if rec.TrackedAt.IsZero() {
		rec.TrackedAt = time.Now().UTC()
	}
	rec.TrackedAt = rec.TrackedAt.UTC()
	if err := dbc.DB(r.db).Omit("Meal").Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *trackingRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) ([]*types.TrackingRecord, error) {
	var out []*types.TrackingRecord
	if err := dbc.DB(r.db).
		Preload("Meal").
		Where("user_id = ? AND tracked_at >= ? AND tracked_at <= ?", userID, start.UTC(), end.UTC()).
		Order("tracked_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type totalsRow struct {
	Calories float64
	Proteins float64
	Carbs    float64
	Fats     float64
	Sugar    float64
	Sodium   float64
}

func (r *trackingRepo) SumNutrients(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) (types.NutrientTotals, error) {
	var row totalsRow
	err := dbc.DB(r.db).
		Table("meal_tracking AS t").
		Select(`COALESCE(SUM(t.quantity * COALESCE(m.calories, 0)), 0) AS calories,
			COALESCE(SUM(t.quantity * COALESCE(m.proteins, 0)), 0) AS proteins,
			COALESCE(SUM(t.quantity * COALESCE(m.carbs, 0)), 0) AS carbs,
			COALESCE(SUM(t.quantity * COALESCE(m.fats, 0)), 0) AS fats,
			COALESCE(SUM(t.quantity * COALESCE(m.sugar, 0)), 0) AS sugar,
			COALESCE(SUM(t.quantity * COALESCE(m.sodium, 0)), 0) AS sodium`).
		Joins("LEFT JOIN meal AS m ON m.id = t.meal_id").
		Where("t.user_id = ? AND t.tracked_at >= ? AND t.tracked_at <= ?", userID, start.UTC(), end.UTC()).
		Scan(&row).Error
	if err != nil {
		return types.NutrientTotals{}, err
	}
	return types.NutrientTotals(row), nil
}

func (r *trackingRepo) RecentMealsByCalories(dbc dbctx.Context, userID uuid.UUID, since time.Time, limit int) ([]*types.Meal, error) {
	var out []*types.Meal
	if limit <= 0 {
		return out, nil
	}
	t := dbc.DB(r.db)
	tracked := t.Session(&gorm.Session{NewDB: true}).
		Model(&types.TrackingRecord{}).
		Select("meal_id").
		Where("user_id = ? AND tracked_at >= ?", userID, since.UTC())
	if err := t.
		Where("id IN (?)", tracked).
		Where("calories IS NOT NULL").
		Order("calories ASC").
		Order("meal_name ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
