package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/N0Xl0US/HMP-issue-fix/internal/data/db"
	"github.com/N0Xl0US/HMP-issue-fix/internal/observability"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/envutil"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/logger"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/redisx"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/sendgrid"
	"github.com/N0Xl0US/HMP-issue-fix/internal/platform/ses"
	"github.com/N0Xl0US/HMP-issue-fix/internal/services"
)

const (
	EmailProviderSendGrid = "sendgrid"
	EmailProviderSES      = "ses"
	EmailProviderLog      = "log"
)

type Config struct {
	Port        string
	Environment string

	JWTSecretKey   string
	AccessTokenTTL time.Duration

	CORSOrigins   []string
	EmailProvider string
	// CodeSweepSpec is the cron schedule for expiring in-process codes.
	CodeSweepSpec string

	DB       db.Config
	Redis    redisx.Config
	SendGrid sendgrid.Config
	SES      ses.Config
	Otel     observability.OtelConfig
	Planner  services.PlannerConfig
}

// LoadDotEnv loads .env when present. Real environment variables win.
func LoadDotEnv(log *logger.Logger) {
	path := envutil.String("ENV_FILE", ".env")
	if err := godotenv.Load(path); err != nil {
		if !os.IsNotExist(err) {
			log.Warn("failed to load env file", "path", path, "error", err)
		}
		return
	}
	log.Info("Loaded env file", "path", path)
}

func LoadConfig(log *logger.Logger) (Config, error) {
	env := envutil.String("APP_ENV", "development")
	cfg := Config{
		Port:           envutil.String("PORT", "8080"),
		Environment:    env,
		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", ""),
		AccessTokenTTL: envutil.Seconds("ACCESS_TOKEN_TTL", time.Hour),
		CORSOrigins:    envutil.List("CORS_ORIGINS", nil),
		EmailProvider:  strings.ToLower(envutil.String("EMAIL_PROVIDER", EmailProviderLog)),
		CodeSweepSpec:  envutil.String("CODE_SWEEP_SPEC", "@every 1m"),
		DB:             db.ConfigFromEnv(),
		Redis:          redisx.ConfigFromEnv(),
		SendGrid:       sendgrid.ConfigFromEnv(),
		SES:            ses.ConfigFromEnv(),
		Otel:           observability.OtelConfigFromEnv("meal-planner", env),
		Planner:        services.DefaultPlannerConfig(),
	}

	if cfg.JWTSecretKey == "" {
		if env == "production" {
			return Config{}, fmt.Errorf("JWT_SECRET_KEY is required in production")
		}
		log.Warn("JWT_SECRET_KEY not set; using an insecure development secret")
		cfg.JWTSecretKey = "dev-insecure-secret"
	}

	switch cfg.EmailProvider {
	case EmailProviderSendGrid, EmailProviderSES, EmailProviderLog:
	default:
		return Config{}, fmt.Errorf("unsupported EMAIL_PROVIDER %q", cfg.EmailProvider)
	}

	if path := envutil.String("PLANNER_CONFIG_FILE", ""); path != "" {
		planner, err := LoadPlannerConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg.Planner = planner
		log.Info("Loaded planner config", "path", path)
	}
	return cfg, nil
}

// LoadPlannerConfig reads a YAML tuning file. Omitted keys keep their defaults.
func LoadPlannerConfig(path string) (services.PlannerConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return services.PlannerConfig{}, fmt.Errorf("read planner config: %w", err)
	}
	var pc services.PlannerConfig
	if err := yaml.Unmarshal(raw, &pc); err != nil {
		return services.PlannerConfig{}, fmt.Errorf("parse planner config %s: %w", path, err)
	}
	return pc.WithDefaults(), nil
}
