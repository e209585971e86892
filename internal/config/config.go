package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported store drivers.
const (
	DriverMongoDB = "mongodb"
	DriverMemory  = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Store   StoreConfig
	MongoDB MongoDBConfig
	Sheets  SheetsConfig
	Import  ImportConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port       string
	CORSOrigin string
	// Timezone is used to interpret date-only filter bounds.
	Timezone string
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string
}

// StoreConfig selects the sales store backend.
type StoreConfig struct {
	Driver string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI        string
	DBName     string
	Collection string
}

// SheetsConfig contains configuration required to read sales from Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// ImportConfig holds bulk-ingestion settings.
type ImportConfig struct {
	CSVPath      string
	SheetRange   string
	BatchSize    int
	CronSchedule string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	batchSize, err := getenvInt("IMPORT_BATCH_SIZE", 2000)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:       getenvWithDefault("PORT", "4000"),
			CORSOrigin: getenvWithDefault("CORS_ORIGIN", "*"),
			Timezone:   getenvWithDefault("TIMEZONE", "Local"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getenvWithDefault("STORE_DRIVER", DriverMongoDB)),
		},
		MongoDB: MongoDBConfig{
			URI:        os.Getenv("MONGO_URI"),
			DBName:     getenvWithDefault("MONGODB_DB_NAME", "salesboard"),
			Collection: getenvWithDefault("MONGODB_COLLECTION", "sales"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Import: ImportConfig{
			CSVPath:      os.Getenv("IMPORT_CSV_PATH"),
			SheetRange:   os.Getenv("IMPORT_SHEET_RANGE"),
			BatchSize:    batchSize,
			CronSchedule: os.Getenv("IMPORT_CRON_SCHEDULE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("PORT must be provided")
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("TIMEZONE is invalid: %w", err)
	}

	switch c.Store.Driver {
	case DriverMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGO_URI must be provided")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
		if c.MongoDB.Collection == "" {
			return errors.New("MONGODB_COLLECTION must not be empty")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Import.BatchSize <= 0 {
		return errors.New("IMPORT_BATCH_SIZE must be positive")
	}

	if c.Import.SheetRange != "" {
		if c.Sheets.CredentialsPath == "" {
			return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when IMPORT_SHEET_RANGE is set")
		}
		if c.Sheets.SpreadsheetID == "" {
			return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided when IMPORT_SHEET_RANGE is set")
		}
	}

	if c.Import.CronSchedule != "" && !c.HasImportSource() {
		return errors.New("IMPORT_CRON_SCHEDULE requires IMPORT_CSV_PATH or IMPORT_SHEET_RANGE")
	}

	return nil
}

// Location resolves the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Server.Timezone)
}

// HasImportSource reports whether a CSV file or a sheet range is configured.
func (c *Config) HasImportSource() bool {
	return c.Import.CSVPath != "" || c.Import.SheetRange != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
