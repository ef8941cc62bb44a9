package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/codestore"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/redisx"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/sendgrid"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/ses"
	"github.com/N0Xl0US/HMP-issue-fix/internal/realtime/bus"
	"github.com/N0Xl0US/HMP-issue-fix/internal/services"
)

type Clients struct {
	Redis *goredis.Client
	// SSEBus is Redis pub/sub when Redis is configured, in-process otherwise.
	SSEBus bus.Bus
	Codes  codestore.Store
	// MemoryCodes is set when codes live in process and need sweeping.
	MemoryCodes *codestore.MemoryStore
	Mailer      services.Mailer
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	// Redis
	if cfg.Redis.Enabled() {
		rdb, err := redisx.Open(ctx, cfg.Redis)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis: %w", err)
		}
		b, err := bus.NewRedisBus(log, rdb, cfg.Redis.Channel)
		if err != nil {
			_ = rdb.Close()
			return Clients{}, fmt.Errorf("init redis SSE bus: %w", err)
		}
		out.Redis = rdb
		out.SSEBus = b
		out.Codes = codestore.NewRedisStore(rdb, log)
	} else {
		log.Warn("REDIS_ADDR not set; verification codes kept in process and realtime is single-instance")
		mem := codestore.NewMemoryStore(log)
		out.Codes = mem
		out.MemoryCodes = mem
		out.SSEBus = bus.NewLocalBus(log)
	}

	// Email
	switch cfg.EmailProvider {
	case EmailProviderSendGrid:
		sg, err := sendgrid.New(log, cfg.SendGrid)
		if err != nil {
			return Clients{}, fmt.Errorf("init sendgrid: %w", err)
		}
		out.Mailer = services.NewSendGridMailer(sg)
	case EmailProviderSES:
		sc, err := ses.New(ctx, log, cfg.SES)
		if err != nil {
			return Clients{}, fmt.Errorf("init ses: %w", err)
		}
		out.Mailer = services.NewSESMailer(sc)
	default:
		out.Mailer = services.NewLogMailer(log)
	}
	return out, nil
}

func (c Clients) Close() {
	if c.SSEBus != nil {
		_ = c.SSEBus.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
