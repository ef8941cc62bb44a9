package realtime

import (
	"context"

	"github.com/google/uuid"

	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/ctxutil"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
)

// Publisher fans a message out to every instance. The Redis bus satisfies it.
type Publisher interface {
	Publish(ctx context.Context, msg SSEMessage) error
}

type Emitter interface {
	Emit(ctx context.Context, userID uuid.UUID, event SSEEvent, data any)
}

type emitter struct {
	hub *SSEHub
	pub Publisher
	log *logger.Logger
}

// NewEmitter delivers through pub when set (the bus forwarder feeds the local
// hub), otherwise straight to hub.
func NewEmitter(hub *SSEHub, pub Publisher, log *logger.Logger) Emitter {
	return &emitter{hub: hub, pub: pub, log: log.With("component", "SSEEmitter")}
}

func (e *emitter) Emit(ctx context.Context, userID uuid.UUID, event SSEEvent, data any) {
	if e == nil || userID == uuid.Nil {
		return
	}
	ctx = ctxutil.Default(ctx)
	msg := SSEMessage{Channel: UserChannel(userID), Event: event, Data: data}
	if e.pub != nil {
		err := e.pub.Publish(ctx, msg)
		if err == nil {
			return
		}
		e.log.Warn("bus publish failed; delivering locally", "event", string(event), "error", err)
	}
	if e.hub != nil {
		e.hub.Broadcast(msg)
	}
}

// NopEmitter drops every event.
type NopEmitter struct{}

func (NopEmitter) Emit(context.Context, uuid.UUID, SSEEvent, any) {}
