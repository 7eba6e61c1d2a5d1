// README: Config loader with env defaults for HTTP, DB, Redis, and provider keys.
package config

import (
	"os"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		// DSN is optional; when empty the AI quota guard is disabled.
		DSN string
	}
	Redis struct {
		// Addr is optional; when empty the geo response cache is disabled.
		Addr string
	}
	AI struct {
		GeminiKey string
	}
	Geo struct {
		// GeoapifyKey is optional; when empty routing degrades to model estimates.
		GeoapifyKey string
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("YATRA_HTTP_ADDR", ":8080")
	cfg.DB.DSN = os.Getenv("YATRA_DB_DSN")
	cfg.Redis.Addr = os.Getenv("YATRA_REDIS_ADDR")
	cfg.AI.GeminiKey = envOrError("GEMINI_API_KEY")
	cfg.Geo.GeoapifyKey = os.Getenv("GEOAPIFY_API_KEY")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	panic("environment variable " + key + " is required")
}
