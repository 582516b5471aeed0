package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/javajack/xlreport"
)

// Config holds process-level settings for the xlreport command.
type Config struct {
	OutputDir      string
	OutputName     string
	LogLevel       string
	LogFormat      string
	LogFile        string
	MinColumnWidth float64
}

// Load reads the given .env files (".env" when none are given) and then the
// environment. Missing .env files are not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return &Config{
		OutputDir:      getEnvString("XLREPORT_OUTPUT_DIR", "."),
		OutputName:     getEnvString("XLREPORT_OUTPUT_NAME", "report.xlsx"),
		LogLevel:       getEnvString("XLREPORT_LOG_LEVEL", "info"),
		LogFormat:      getEnvString("XLREPORT_LOG_FORMAT", "console"),
		LogFile:        getEnvString("XLREPORT_LOG_FILE", ""),
		MinColumnWidth: getEnvFloat("XLREPORT_MIN_COLUMN_WIDTH", xlreport.DefaultMinColumnWidth),
	}, nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}
