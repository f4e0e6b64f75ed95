package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	AirtableAPIKey  string
	AirtableBaseID  string
	AirtableTableID string

	SearchURL  string
	TargetCity string

	CacheDir    string
	CacheExpiry time.Duration
	WaitTimeout time.Duration

	CSVOutputPath string

	ArchiveEnabled   bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	ChromeBin string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		AirtableAPIKey:  getEnv("AIRTABLE_API_KEY", ""),
		AirtableBaseID:  getEnv("AIRTABLE_BASE_ID", "appBbpDBlH7vjRYF3"),
		AirtableTableID: getEnv("AIRTABLE_TABLE_ID", "tblhFcS1EPGZNi5di"),

		SearchURL:  getEnv("SEARCH_URL", "https://salesweb.civilview.com/Sales/SalesSearch?countyId=10"),
		TargetCity: getEnv("TARGET_CITY", "JERSEY CITY"),

		CacheDir:    getEnv("CACHE_DIR", "property_details_cache"),
		CacheExpiry: time.Duration(getEnvInt("CACHE_EXPIRY_HOURS", 24)) * time.Hour,
		WaitTimeout: time.Duration(getEnvInt("WAIT_TIMEOUT_SECONDS", 10)) * time.Second,

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/parsed_properties.csv"),

		ArchiveEnabled:   getEnvBool("ARCHIVE_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "foreclosure_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		ChromeBin: getEnv("CHROME_BIN", ""),
	}
}

// DSN returns the PostgreSQL connection string for the optional archive.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
