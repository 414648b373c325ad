package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the support board API.
type Config struct {
	AppName            string
	AppEnv             string
	AppPort            string
	DatabaseURL        string
	RedisURL           string
	JWTSecret          string
	ContentCacheTTL    time.Duration
	EscalationCooldown time.Duration
	ActivityLogLimit   int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("DESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Support Board API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("content.cache_ttl", "5m")
	v.SetDefault("escalation.cooldown", "60m")
	v.SetDefault("activity.log_limit", 500)

	ttl, err := time.ParseDuration(v.GetString("content.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid content cache ttl: %w", err)
	}

	cooldown, err := time.ParseDuration(v.GetString("escalation.cooldown"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid escalation cooldown: %w", err)
	}

	cfg := Config{
		AppName:            v.GetString("app.name"),
		AppEnv:             v.GetString("app.env"),
		AppPort:            v.GetString("app.port"),
		DatabaseURL:        v.GetString("database.url"),
		RedisURL:           v.GetString("redis.url"),
		JWTSecret:          v.GetString("jwt.secret"),
		ContentCacheTTL:    ttl,
		EscalationCooldown: cooldown,
		ActivityLogLimit:   v.GetInt("activity.log_limit"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.EscalationCooldown <= 0 {
		cfg.EscalationCooldown = time.Hour
	}

	if cfg.ActivityLogLimit <= 0 {
		cfg.ActivityLogLimit = 500
	}

	return cfg, nil
}
