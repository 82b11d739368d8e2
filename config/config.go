package config

import (
	"fmt"
	"log"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as the data source, rendering, the HTTP server and the optional Postgres mirror.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	DATA_SOURCE=csv
//	DATA_FILE=./data/import_export.csv
//	SAMPLE_SIZE=3001
//	SAMPLE_SEED=55058
//	POSTGRES_HOST=localhost
//	POSTGRES_DB=tradepulse
type Config struct {
	Server    ServerConfig    // HTTP server configuration
	Data      DataConfig      // Where the trade transaction table comes from
	Render    RenderConfig    // Chart rendering settings
	RateLimit RateLimitConfig // Per-client request limits
	Postgres  PostgresConfig  // PostgreSQL connection settings
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// DataConfig describes the input table.
//
// Fields:
//   - Source: "csv" reads File directly, "postgres" reads the ingested mirror.
//   - File: path of the delimited transactions file.
//   - Delimiter: single field separator (default ',').
//   - SampleSize: number of rows drawn for the sample view.
//   - SampleSeed: seed of the sample generator; a fixed seed keeps the sample stable.
type DataConfig struct {
	Source     string
	File       string
	Delimiter  rune
	SampleSize int
	SampleSeed uint64
}

// RenderConfig controls how many charts are rendered concurrently during a build.
type RenderConfig struct {
	Parallel int
}

// RateLimitConfig bounds requests per client IP.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() terminates the app
//     with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("DATA_SOURCE", SourceCSV)
	viper.SetDefault("DATA_FILE", "./data/import_export.csv")
	viper.SetDefault("CSV_DELIMITER", ",")
	viper.SetDefault("SAMPLE_SIZE", 3001)
	viper.SetDefault("SAMPLE_SEED", 55058)

	viper.SetDefault("RENDER_PARALLEL", 0)
	viper.SetDefault("RATE_LIMIT_RPS", 5.0)
	viper.SetDefault("RATE_LIMIT_BURST", 60)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "tradepulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Data: DataConfig{
			Source:     strings.ToLower(strings.TrimSpace(viper.GetString("DATA_SOURCE"))),
			File:       viper.GetString("DATA_FILE"),
			Delimiter:  parseDelimiter(viper.GetString("CSV_DELIMITER")),
			SampleSize: viper.GetInt("SAMPLE_SIZE"),
			SampleSeed: viper.GetUint64("SAMPLE_SEED"),
		},
		Render: RenderConfig{
			Parallel: clampParallel(viper.GetInt("RENDER_PARALLEL")),
		},
		RateLimit: RateLimitConfig{
			RPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst: viper.GetInt("RATE_LIMIT_BURST"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}

	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// DSN builds the database/sql connection string for lib/pq.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// parseDelimiter accepts a single character or the names "tab" and "semicolon".
func parseDelimiter(s string) rune {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", ",", "comma":
		return ','
	case "tab", `\t`:
		return '\t'
	case "semicolon":
		return ';'
	}
	return []rune(s)[0]
}

// clampParallel maps 0 to NumCPU and keeps the result within 1..13 (one worker per chart at most).
func clampParallel(n int) int {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > 13 {
		n = 13
	}
	if n < 1 {
		n = 1
	}
	return n
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// Behavior:
//   - Checks each critical field of AppConfig.
//   - Collects missing ones in a slice.
//   - If any are missing, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	switch AppConfig.Data.Source {
	case SourceCSV:
		if AppConfig.Data.File == "" {
			missing = append(missing, "DATA_FILE")
		}
	case SourcePostgres:
		if AppConfig.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if AppConfig.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if AppConfig.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if AppConfig.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	default:
		missing = append(missing, "DATA_SOURCE (csv|postgres)")
	}
	if AppConfig.Data.SampleSize <= 0 {
		missing = append(missing, "SAMPLE_SIZE")
	}

	if len(missing) > 0 {
		log.Fatalf("missing or invalid configuration: %v\n", missing)
	}
}
