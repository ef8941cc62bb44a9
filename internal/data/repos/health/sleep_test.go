package health

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/repos/testutil"
	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/dbctx"
)

func TestSleepRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewSleepRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	userID := uuid.New()
	day := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	for i, rec := range []struct {
		hours   float64
		quality int
	}{{7, 6}, {8, 8}, {6, 4}} {
		if _, err := repo.Create(dbc, &types.SleepRecord{
			UserID:        userID,
			DurationHours: rec.hours,
			Quality:       rec.quality,
			SleepDate:     day.AddDate(0, 0, -i),
		}); err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
	}

	stats, err := repo.Stats(dbc, userID, day.AddDate(0, 0, -1), day)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Nights != 2 || math.Abs(stats.TotalHours-15) > 1e-9 || math.Abs(stats.AverageQuality-7) > 1e-9 {
		t.Fatalf("Stats: unexpected: %+v", stats)
	}

	latest, err := repo.Latest(dbc, userID)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest == nil || latest.DurationHours != 7 {
		t.Fatalf("Latest: unexpected: %+v", latest)
	}

	none, err := repo.Stats(dbc, uuid.New(), day, day)
	if err != nil {
		t.Fatalf("Stats (empty): %v", err)
	}
	if none.Nights != 0 || none.TotalHours != 0 {
		t.Fatalf("Stats (empty): unexpected: %+v", none)
	}
}
