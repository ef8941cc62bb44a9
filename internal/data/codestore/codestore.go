// Package codestore keeps short-lived verification codes (signup and password
// reset) keyed by purpose and email, each with its own expiry.
package codestore

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("code not found or expired")

type Store interface {
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns ErrNotFound for missing or expired keys.
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

const (
	PurposeSignup = "signup"
	PurposeReset  = "reset"
)

func Key(purpose, email string) string {
	return purpose + ":" + strings.ToLower(strings.TrimSpace(email))
}
