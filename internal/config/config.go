package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type AppConfig struct {
	AppID        string
	DiscordToken string
	PublicKey    string

	Port int

	RedisURL    string
	DatabaseURL string

	// SessionTTLSec bounds how long an unresolved challenge survives.
	// 0 disables expiry (matching the original unbounded behavior).
	SessionTTLSec int

	MsgTemplateDir string
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:          3000,
		SessionTTLSec: 3600,
	}

	cfg.AppID = strings.TrimSpace(os.Getenv("APP_ID"))
	cfg.DiscordToken = strings.TrimSpace(os.Getenv("DISCORD_TOKEN"))
	cfg.PublicKey = strings.TrimSpace(os.Getenv("PUBLIC_KEY"))

	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.MsgTemplateDir = strings.TrimSpace(os.Getenv("MSG_TEMPLATE_DIR"))

	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Port = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("SESSION_TTL")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.SessionTTLSec = n
		}
	}

	if cfg.AppID == "" {
		return nil, errors.New("APP_ID is required")
	}
	if cfg.DiscordToken == "" {
		return nil, errors.New("DISCORD_TOKEN is required")
	}
	if cfg.PublicKey == "" {
		return nil, errors.New("PUBLIC_KEY is required")
	}

	return cfg, nil
}
