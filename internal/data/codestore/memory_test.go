package codestore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

func TestMemoryStoreTTL(t *testing.T) {
	s := NewMemoryStore(logger.Nop())
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	ctx := context.Background()

	key := Key(PurposeSignup, " Someone@Example.com ")
	assert.Equal(t, "signup:someone@example.com", key)

	require.NoError(t, s.Put(ctx, key, []byte("123456"), 10*time.Minute))
	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "123456", string(got))

	clock = clock.Add(10 * time.Minute)
	_, err = s.Get(ctx, key)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 0, s.Len(), "expired entry is evicted on read")
}

func TestMemoryStoreSweep(t *testing.T) {
	s := NewMemoryStore(logger.Nop())
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "reset:a@example.com", []byte("1"), 5*time.Minute))
	require.NoError(t, s.Put(ctx, "signup:b@example.com", []byte("2"), 10*time.Minute))
	clock = clock.Add(6 * time.Minute)

	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Delete(ctx, "signup:b@example.com"))
	_, err := s.Get(ctx, "signup:b@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreRejectsNonPositiveTTL(t *testing.T) {
	s := NewMemoryStore(logger.Nop())
	assert.Error(t, s.Put(context.Background(), "k", []byte("v"), 0))
}

func TestMemoryStoreSweeperSchedule(t *testing.T) {
	s := NewMemoryStore(logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.StartSweeper(ctx, "@every 1m"))
	assert.Error(t, s.StartSweeper(ctx, "not a schedule"))
}
