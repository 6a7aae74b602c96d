package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	FrontendTerminal = "terminal"
	FrontendTelegram = "telegram"
	FrontendHTTP     = "http"

	StoreFile     = "file"
	StoreHistory  = "history"
	StorePostgres = "postgres"
	StoreRedis    = "redis"

	CatalogBuiltin  = "builtin"
	CatalogPostgres = "postgres"
)

type Config struct {
	Env         string
	Frontend    string
	Catalog     string
	AutoMigrate bool
	DB          DBConfig
	Telegram    TelegramConfig
	HTTP        HTTPConfig
	Store       StoreConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// URL is the pgx connection string.
func (c DBConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		c.User, c.Password, c.Host, c.Port, c.Database,
	)
}

type TelegramConfig struct {
	Token     string
	CashierID int64 // only this user drives the session; 0 allows anyone
}

type HTTPConfig struct {
	Addr string
}

type StoreConfig struct {
	Backend     string
	ReceiptPath string
	HistoryDir  string
	RedisURL    string
	RedisKey    string
}

// NeedsDB reports whether the configuration reads or writes Postgres.
func (c *Config) NeedsDB() bool {
	return c.Store.Backend == StorePostgres || c.Catalog == CatalogPostgres
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("DB_PORT: %w", err)
	}
	cashier, err := strconv.ParseInt(getEnv("CASHIER_ID", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("CASHIER_ID: %w", err)
	}
	autoMigrate := strings.TrimSpace(os.Getenv("AUTO_MIGRATE"))

	cfg := &Config{
		Env:         getEnv("APP_ENV", "development"),
		Frontend:    strings.ToLower(getEnv("FRONTEND", FrontendTerminal)),
		Catalog:     strings.ToLower(getEnv("CATALOG", CatalogBuiltin)),
		AutoMigrate: autoMigrate == "1" || strings.EqualFold(autoMigrate, "true"),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "drinkshop"),
		},
		Telegram: TelegramConfig{
			Token:     getEnv("TOKEN", ""),
			CashierID: cashier,
		},
		HTTP: HTTPConfig{
			Addr: getEnv("HTTP_ADDR", ":8080"),
		},
		Store: StoreConfig{
			Backend:     strings.ToLower(getEnv("STORE", StoreFile)),
			ReceiptPath: getEnv("RECEIPT_PATH", "data/receipt.json"),
			HistoryDir:  getEnv("HISTORY_DIR", "data/orders"),
			RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),
			RedisKey:    getEnv("REDIS_KEY", "drinkshop:orders"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Frontend {
	case FrontendTerminal, FrontendHTTP:
	case FrontendTelegram:
		if c.Telegram.Token == "" {
			return fmt.Errorf("FRONTEND=telegram requires TOKEN")
		}
	default:
		return fmt.Errorf("unknown FRONTEND %q", c.Frontend)
	}
	switch c.Store.Backend {
	case StoreFile, StoreHistory, StorePostgres, StoreRedis:
	default:
		return fmt.Errorf("unknown STORE %q", c.Store.Backend)
	}
	switch c.Catalog {
	case CatalogBuiltin, CatalogPostgres:
	default:
		return fmt.Errorf("unknown CATALOG %q", c.Catalog)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
