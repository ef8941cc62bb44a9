package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/N0Xl0US/HMP-issue-fix/internal/domain"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

func TestLoadPlannerConfig_OverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	body := `
approach_ratio: 0.9
slot_fractions:
  snack: 0.1
candidate_limit: 3
recent_meal_lookback: 72h
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	pc, err := LoadPlannerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.9, pc.ApproachRatio)
	assert.Equal(t, 3, pc.CandidateLimit)
	assert.Equal(t, 72*time.Hour, pc.RecentMealLookback)
	assert.Equal(t, 0.1, pc.SlotFractions[types.Snack])
	assert.Equal(t, 0.25, pc.SlotFractions[types.Breakfast])
	assert.Equal(t, 0.4, pc.RecipeCeilingRatio)
	assert.Equal(t, 2000.0, pc.DefaultDailyCalories)
}

func TestLoadPlannerConfig_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("approach_ratio: [nope"), 0o600))
	_, err := LoadPlannerConfig(path)
	assert.Error(t, err)

	_, err = LoadPlannerConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_RejectsUnknownEmailProvider(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "pigeon")
	t.Setenv("JWT_SECRET_KEY", "x")
	_, err := LoadConfig(testLogger(t))
	assert.Error(t, err)
}

func TestLoadConfig_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET_KEY", "")
	_, err := LoadConfig(testLogger(t))
	assert.Error(t, err)
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	require.NoError(t, err)
	return log
}
