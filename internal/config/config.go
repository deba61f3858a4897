package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"tally/internal/models"
)

// Config holds application configuration
type Config struct {
	// Environment
	Env string

	// Settings database (the persistence collaborator)
	DBPath string

	// Import defaults
	CurrencyFormat models.CurrencyFormat

	// Ledger behavior
	HistoryLimit     int
	AmountFilterMode models.AmountFilterMode
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:    getEnv("ENV", "development"),
		DBPath: getEnv("TALLY_DB", "file::memory:?cache=shared"),
	}

	format := models.CurrencyFormat(getEnv("CURRENCY_FORMAT", string(models.FormatPTBR)))
	if format != models.FormatPTBR && format != models.FormatENUS {
		log.Printf("Warning: invalid CURRENCY_FORMAT value '%s', falling back to %s\n", format, models.FormatPTBR)
		format = models.FormatPTBR
	}
	config.CurrencyFormat = format

	limitStr := getEnv("HISTORY_LIMIT", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		log.Printf("Warning: invalid HISTORY_LIMIT value '%s', falling back to 50\n", limitStr)
		limit = 50
	}
	config.HistoryLimit = limit

	mode := models.AmountFilterMode(getEnv("AMOUNT_FILTER_MODE", string(models.AmountFilterSigned)))
	if mode != models.AmountFilterSigned && mode != models.AmountFilterAbsolute {
		log.Printf("Warning: invalid AMOUNT_FILTER_MODE value '%s', falling back to %s\n", mode, models.AmountFilterSigned)
		mode = models.AmountFilterSigned
	}
	config.AmountFilterMode = mode

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
