package config

import (
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port       string `env:"PORT" env-default:"8080"`
	DBURL      string `env:"DB_URL" env-required:"true"`
	JWTSecret  string `env:"JWT_SECRET" env-required:"true"`
	CORSOrigin string `env:"CORS_ORIGIN" env-default:"http://localhost:5173"`
	AppURL     string `env:"APP_URL" env-default:"http://localhost:5173"`

	StripeSecretKey     string `env:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
	Currency            string `env:"CURRENCY" env-default:"inr"`

	// money values are minor currency units
	CommissionBPS      int64 `env:"COMMISSION_BPS" env-default:"1000"`
	ExhibitionBaseFee  int64 `env:"EXHIBITION_BASE_FEE" env-default:"100000"`
	ExhibitionBaseDays int   `env:"EXHIBITION_BASE_DAYS" env-default:"3"`
	MembershipFee      int64 `env:"MEMBERSHIP_FEE" env-default:"49900"`
	ArtistAnnualFee    int64 `env:"ARTIST_ANNUAL_FEE" env-default:"99900"`

	CallTimeout       time.Duration `env:"CALL_TIMEOUT" env-default:"5s"`
	SchedulerInterval time.Duration `env:"SCHEDULER_INTERVAL" env-default:"1m"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" env-separator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" env-default:"marketplace.lifecycle"`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"json"`

	AdminEmail    string `env:"ADMIN_EMAIL" env-default:"admin@chitrakalakar.com"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// Load reads the process environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	if cfg.CommissionBPS < 0 || cfg.CommissionBPS > 10000 {
		return nil, fmt.Errorf("COMMISSION_BPS must be within 0..10000, got %d", cfg.CommissionBPS)
	}
	if cfg.ExhibitionBaseDays < 1 {
		return nil, fmt.Errorf("EXHIBITION_BASE_DAYS must be positive, got %d", cfg.ExhibitionBaseDays)
	}
	return &cfg, nil
}

// LoadEnv loads .env when present, then the environment. Missing required
// keys stop the process.
func LoadEnv() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}
