package bus

import (
	"context"
	"errors"
	"time"

	"github.com/N0Xl0US/HMP-issue-fix/internal/realtime"
)

var ErrClosed = errors.New("realtime bus closed")

// Bus carries per-user realtime messages between API instances. Every
// instance subscribes its local hub; publishers never write to a hub
// directly while a bus is attached.
type Bus interface {
	realtime.Publisher
	// Subscribe hands every message on the bus to deliver until ctx is done.
	Subscribe(ctx context.Context, deliver func(realtime.SSEMessage)) error
	Close() error
}

// envelope is the wire form of a message on a shared bus.
type envelope struct {
	Origin  string              `json:"origin"`
	SentAt  time.Time           `json:"sent_at"`
	Message realtime.SSEMessage `json:"message"`
}
