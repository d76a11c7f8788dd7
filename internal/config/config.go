package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Reporting ReportingConfig
	Sheets    SheetsConfig
	Routing   RoutingConfig
	Engine    EngineConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// SheetsConfig configures the Google Sheets report backup. Exporting is
// disabled when SpreadsheetID is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// RoutingConfig configures the OSRM-style travel-time estimation API.
// Estimation is disabled when BaseURL is empty. BaseLat/BaseLng are the
// coordinates of the depot every trip starts from.
type RoutingConfig struct {
	BaseURL string
	BaseLat float64
	BaseLng float64
}

// EngineConfig surfaces the cost engine's fallback constants. The defaults
// mirror the values the bookkeeping has always used; change them only with
// operator sign-off since they silently shape historical comparisons.
type EngineConfig struct {
	TrafficFallbackRate     float64 // currency per travel-minute when a period has no travel data
	DefaultCitricUnitCost   float64 // unit cost when no stock logs exist for citric acid
	DefaultChemicalUnitCost float64 // unit cost when no stock logs exist for chemical
	AuditLogCap             int     // FIFO ceiling on retained audit entries
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

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "proerp"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 2 1 * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Taipei"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
		},
		Routing: RoutingConfig{
			BaseURL: os.Getenv("ROUTING_BASE_URL"),
			BaseLat: getenvFloat("ROUTING_BASE_LAT", 0),
			BaseLng: getenvFloat("ROUTING_BASE_LNG", 0),
		},
		Engine: EngineConfig{
			TrafficFallbackRate:     getenvFloat("TRAFFIC_FALLBACK_RATE", 5),
			DefaultCitricUnitCost:   getenvFloat("DEFAULT_CITRIC_UNIT_COST", 60),
			DefaultChemicalUnitCost: getenvFloat("DEFAULT_CHEMICAL_UNIT_COST", 100),
			AuditLogCap:             getenvInt("AUDIT_LOG_CAP", 2000),
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
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_EXPORT_ID is set")
	}

	switch {
	case c.Engine.TrafficFallbackRate <= 0:
		return errors.New("TRAFFIC_FALLBACK_RATE must be positive")
	case c.Engine.DefaultCitricUnitCost <= 0:
		return errors.New("DEFAULT_CITRIC_UNIT_COST must be positive")
	case c.Engine.DefaultChemicalUnitCost <= 0:
		return errors.New("DEFAULT_CHEMICAL_UNIT_COST must be positive")
	case c.Engine.AuditLogCap <= 0:
		return errors.New("AUDIT_LOG_CAP must be positive")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
