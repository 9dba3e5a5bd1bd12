package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, secrets)
// - default: Values common across all environments (timezone, timeout, etc.)
// Store settings are deliberately NOT required: an unconfigured store answers
// every coupon request with 503 instead of refusing to boot.
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	CORS    CORSConfig
	Log     LogConfig
	Session SessionConfig
	Cookie  CookieConfig
	Store   StoreConfig
	Webhook WebhookConfig
	Admin   AdminConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type SessionConfig struct {
	Secret   string `envconfig:"SESSION_SECRET" required:"true"`
	Duration string `envconfig:"SESSION_DURATION" default:"24h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

// StoreConfig points at the hosted document store holding users and coupons.
type StoreConfig struct {
	APIKey    string        `envconfig:"STORE_API_KEY" default:""`
	BaseURL   string        `envconfig:"STORE_BASE_URL" default:"https://api.notion.com"`
	Version   string        `envconfig:"STORE_VERSION" default:"2025-09-03"`
	CouponsDB string        `envconfig:"STORE_COUPONS_DB" default:""`
	UsersDB   string        `envconfig:"STORE_USERS_DB" default:""`
	Timeout   time.Duration `envconfig:"STORE_TIMEOUT" default:"15s"`
}

type WebhookConfig struct {
	URL       string        `envconfig:"WEBHOOK_URL" default:""`
	Timeout   time.Duration `envconfig:"WEBHOOK_TIMEOUT" default:"10s"`
	QueueSize int           `envconfig:"WEBHOOK_QUEUE" default:"64"`
	BotName   string        `envconfig:"WEBHOOK_BOT_NAME" default:"クーポン通知Bot"`
}

type AdminConfig struct {
	UserID string `envconfig:"ADMIN_USER_ID" default:""`
}

func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		Session: SessionConfig{
			Secret:   "test-session-secret",
			Duration: "1h",
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		Webhook: WebhookConfig{
			Timeout:   time.Second,
			QueueSize: 4,
			BotName:   "クーポン通知Bot",
		},
	}
}
