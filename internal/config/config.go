package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"video-comprehension-api"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres   Postgres
	Redis      Redis
	Gemini     Gemini
	Generation Generation
	RateLimit  RateLimit
	CORS       CORS
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// Redis holds rate limiter backend configuration.
type Redis struct {
	Addr     string `env:"REDIS_ADDR,notEmpty"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Gemini configures the generative model client.
type Gemini struct {
	APIKey         string        `env:"GEMINI_API_KEY,notEmpty"`
	Model          string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	RequestTimeout time.Duration `env:"GEMINI_REQUEST_TIMEOUT" envDefault:"90s"`
}

// Generation groups content generation boundaries.
type Generation struct {
	MinTranscriptChars int `env:"MIN_TRANSCRIPT_CHARS" envDefault:"100"`
	MaxTranscriptChars int `env:"MAX_TRANSCRIPT_CHARS" envDefault:"50000"`
	MaxTitleChars      int `env:"MAX_TITLE_CHARS" envDefault:"500"`
}

// RateLimit holds the two per-IP request budgets: one for the expensive
// generate endpoint, one for the remaining read/validate endpoints.
type RateLimit struct {
	Window        time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
	GenerateLimit int           `env:"RATE_LIMIT_GENERATE" envDefault:"20"`
	APILimit      int           `env:"RATE_LIMIT_API" envDefault:"100"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
