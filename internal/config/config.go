package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported store backends
const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMySQL    = "mysql"
	StoreBadger   = "badger"
	StoreBlob     = "blob"
)

// Config holds application configuration
type Config struct {
	ServerPort string

	// Store selects the dataset backend (file, memory, sqlite, postgres, mysql, badger, blob)
	Store         string
	DataFile      string
	DatabasePath  string
	DatabaseURL   string
	BadgerDir     string
	BlobURL       string
	BlobAPIKey    string
	BlobKeyHeader string

	LockTTL           time.Duration
	MaxSessionMinutes float64
	ChildNameMax      int
	NicknameMax       int

	// Per-client write requests allowed per RateWindow; 0 disables limiting
	RateLimit  int
	RateWindow time.Duration

	AlertInterval time.Duration
	LiveInterval  time.Duration
	AWSRegion     string
	SESFromEmail  string
	AlertToEmail  string
}

// Load reads configuration from .env files and environment variables with sensible defaults
func Load() *Config {
	return LoadViper(viper.New())
}

// LoadViper is Load on a caller-supplied viper instance, so command line
// flags bound to it take precedence over the environment
func LoadViper(v *viper.Viper) *Config {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("STORE", StoreFile)
	v.SetDefault("DATA_FILE", "./data.json")
	v.SetDefault("DB_PATH", "./playtracker.db")
	v.SetDefault("BADGER_DIR", "./badger")
	v.SetDefault("BLOB_KEY_HEADER", "X-Master-Key")
	v.SetDefault("LOCK_TTL", "30s")
	v.SetDefault("MAX_SESSION_MINUTES", 0)
	v.SetDefault("CHILD_NAME_MAX", 30)
	v.SetDefault("NICKNAME_MAX", 30)
	v.SetDefault("RATE_LIMIT", 120)
	v.SetDefault("RATE_WINDOW", "1m")
	v.SetDefault("ALERT_INTERVAL", "1m")
	v.SetDefault("LIVE_INTERVAL", "5s")
	v.SetDefault("AWS_REGION", "us-east-1")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		ServerPort:        v.GetString("PORT"),
		Store:             strings.ToLower(v.GetString("STORE")),
		DataFile:          v.GetString("DATA_FILE"),
		DatabasePath:      v.GetString("DB_PATH"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		BadgerDir:         v.GetString("BADGER_DIR"),
		BlobURL:           v.GetString("BLOB_URL"),
		BlobAPIKey:        v.GetString("BLOB_API_KEY"),
		BlobKeyHeader:     v.GetString("BLOB_KEY_HEADER"),
		LockTTL:           v.GetDuration("LOCK_TTL"),
		MaxSessionMinutes: v.GetFloat64("MAX_SESSION_MINUTES"),
		ChildNameMax:      v.GetInt("CHILD_NAME_MAX"),
		NicknameMax:       v.GetInt("NICKNAME_MAX"),
		RateLimit:         v.GetInt("RATE_LIMIT"),
		RateWindow:        v.GetDuration("RATE_WINDOW"),
		AlertInterval:     v.GetDuration("ALERT_INTERVAL"),
		LiveInterval:      v.GetDuration("LIVE_INTERVAL"),
		AWSRegion:         v.GetString("AWS_REGION"),
		SESFromEmail:      v.GetString("SES_FROM_EMAIL"),
		AlertToEmail:      v.GetString("ALERT_TO_EMAIL"),
	}
}

// Validate checks that the selected backend has what it needs and that
// the numeric settings are usable
func (c *Config) Validate() error {
	switch c.Store {
	case StoreFile:
		if c.DataFile == "" {
			return fmt.Errorf("DATA_FILE is required for the file store")
		}
	case StoreMemory:
	case StoreSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite store")
		}
	case StorePostgres, StoreMySQL:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s store", c.Store)
		}
	case StoreBadger:
		if c.BadgerDir == "" {
			return fmt.Errorf("BADGER_DIR is required for the badger store")
		}
	case StoreBlob:
		if c.BlobURL == "" {
			return fmt.Errorf("BLOB_URL is required for the blob store")
		}
	default:
		return fmt.Errorf("unsupported store: %q", c.Store)
	}

	if c.LockTTL <= 0 {
		return fmt.Errorf("LOCK_TTL must be positive")
	}
	if c.MaxSessionMinutes < 0 {
		return fmt.Errorf("MAX_SESSION_MINUTES cannot be negative")
	}
	if c.ChildNameMax < 2 {
		return fmt.Errorf("CHILD_NAME_MAX must be at least 2")
	}
	if c.NicknameMax < 1 {
		return fmt.Errorf("NICKNAME_MAX must be at least 1")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("RATE_LIMIT cannot be negative")
	}
	if c.RateLimit > 0 && c.RateWindow <= 0 {
		return fmt.Errorf("RATE_WINDOW must be positive when RATE_LIMIT is set")
	}
	if c.AlertInterval <= 0 || c.LiveInterval <= 0 {
		return fmt.Errorf("ALERT_INTERVAL and LIVE_INTERVAL must be positive")
	}
	return nil
}
