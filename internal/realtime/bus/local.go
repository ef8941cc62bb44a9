package bus

import (
	"context"
	"sync"

	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
	"github.com/N0Xl0US/HMP-issue-fix/internal/realtime"
)

type localBus struct {
	log *logger.Logger

	mu     sync.RWMutex
	subs   map[int]func(realtime.SSEMessage)
	nextID int
	closed bool
}

// NewLocalBus delivers in process. It serves single-instance deployments
// that run without Redis.
func NewLocalBus(log *logger.Logger) Bus {
	return &localBus{
		log:  log.With("service", "LocalSSEBus"),
		subs: map[int]func(realtime.SSEMessage){},
	}
}

func (b *localBus) Publish(_ context.Context, msg realtime.SSEMessage) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrClosed
	}
	for _, deliver := range b.subs {
		deliver(msg)
	}
	return nil
}

func (b *localBus) Subscribe(ctx context.Context, deliver func(realtime.SSEMessage)) error {
	if deliver == nil {
		return errNilDeliver
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = deliver
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}()
	return nil
}

func (b *localBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = map[int]func(realtime.SSEMessage){}
	return nil
}
