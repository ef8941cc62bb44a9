package bus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
	"github.com/N0Xl0US/HMP-issue-fix/internal/realtime"
)

const defaultChannel = "hmp:realtime"

var errNilDeliver = errors.New("deliver callback required")

type redisBus struct {
	log     *logger.Logger
	rdb     goredis.UniversalClient
	channel string
	origin  string
}

// NewRedisBus fans messages out over a Redis pub/sub channel. The caller owns
// rdb; Close does not close it.
func NewRedisBus(log *logger.Logger, rdb goredis.UniversalClient, channel string) (Bus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if rdb == nil {
		return nil, fmt.Errorf("redis client required")
	}
	channel = strings.TrimSpace(channel)
	if channel == "" {
		channel = defaultChannel
	}
	origin := uuid.NewString()
	return &redisBus{
		log:     log.With("service", "RedisSSEBus", "origin", origin),
		rdb:     rdb,
		channel: channel,
		origin:  origin,
	}, nil
}

func (b *redisBus) Publish(ctx context.Context, msg realtime.SSEMessage) error {
	raw, err := encode(b.origin, msg)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *redisBus) Subscribe(ctx context.Context, deliver func(realtime.SSEMessage)) error {
	if deliver == nil {
		return errNilDeliver
	}
	sub := b.rdb.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe %s: %w", b.channel, err)
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok {
					return
				}
				env, err := decode([]byte(m.Payload))
				if err != nil {
					b.log.Warn("dropping realtime payload", "error", err)
					continue
				}
				if env.Origin != b.origin {
					b.log.Debug("remote realtime message", "from", env.Origin, "event", string(env.Message.Event))
				}
				deliver(env.Message)
			}
		}
	}()
	return nil
}

func (b *redisBus) Close() error { return nil }

func encode(origin string, msg realtime.SSEMessage) ([]byte, error) {
	if strings.TrimSpace(msg.Channel) == "" {
		return nil, fmt.Errorf("message channel required")
	}
	return json.Marshal(envelope{Origin: origin, SentAt: time.Now().UTC(), Message: msg})
}

func decode(raw []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return envelope{}, err
	}
	if strings.TrimSpace(env.Message.Channel) == "" {
		return envelope{}, fmt.Errorf("message without channel")
	}
	return env, nil
}
