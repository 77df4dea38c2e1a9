package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Seed sources understood by SEED_SOURCE.
const (
	SeedEmbedded  = "embedded"
	SeedFile      = "file"
	SeedPostgres  = "postgres"
	SeedElastic   = "elastic"
	SeedDatastore = "datastore"
)

var DefaultEnvConfig *EnvConfig

type EnvConfig struct {
	// app config
	APP_PORT          string
	DEFAULT_VIEW_MODE string
	CURRENCY          string
	// seed config
	SEED_SOURCE string
	SEED_FILE   string
	// database config
	DB_HOST              string
	DB_PORT              int
	DB_USER              string
	DB_PASSWORD          string
	DB_NAME              string
	DB_SSL_MODE          string
	DB_TABLE             string
	DB_CONN_MAX_LIFETIME time.Duration
	DB_MAX_IDLE_CONNS    int
	DB_MAX_OPEN_CONNS    int
	// elasticsearch config
	ELASTIC_URL   string
	ELASTIC_INDEX string
	// datastore config
	DATASTORE_PROJECT string
	DATASTORE_KIND    string
	// logger config
	LOG_FILE_PATH string
	LOG_LEVEL     string
}

// LoadEnvConfig reads an optional .env file and fills DefaultEnvConfig from
// the environment.
func LoadEnvConfig(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	DefaultEnvConfig = FromEnv()
	return nil
}

// FromEnv builds a config from the current environment without touching
// any .env file.
func FromEnv() *EnvConfig {
	return &EnvConfig{
		APP_PORT:             getEnvString("APP_PORT", "8080"),
		DEFAULT_VIEW_MODE:    getEnvString("DEFAULT_VIEW_MODE", "cards"),
		CURRENCY:             strings.ToUpper(getEnvString("CURRENCY", "USD")),
		SEED_SOURCE:          strings.ToLower(getEnvString("SEED_SOURCE", SeedEmbedded)),
		SEED_FILE:            getEnvString("SEED_FILE", ""),
		DB_HOST:              getEnvString("DB_HOST", "localhost"),
		DB_PORT:              getEnvInt("DB_PORT", 5432),
		DB_USER:              getEnvString("DB_USER", "postgres"),
		DB_PASSWORD:          getEnvString("DB_PASSWORD", "postgres"),
		DB_NAME:              getEnvString("DB_NAME", "postgres"),
		DB_SSL_MODE:          getEnvString("DB_SSL_MODE", "disable"),
		DB_TABLE:             getEnvString("DB_TABLE", "employees"),
		DB_CONN_MAX_LIFETIME: getEnvDuration("DB_CONN_MAX_LIFETIME", 20*time.Minute),
		DB_MAX_IDLE_CONNS:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
		DB_MAX_OPEN_CONNS:    getEnvInt("DB_MAX_OPEN_CONNS", 100),
		ELASTIC_URL:          getEnvString("ELASTIC_URL", "http://localhost:9200"),
		ELASTIC_INDEX:        getEnvString("ELASTIC_INDEX", "employees"),
		DATASTORE_PROJECT:    getEnvString("DATASTORE_PROJECT", ""),
		DATASTORE_KIND:       getEnvString("DATASTORE_KIND", "Employee"),
		LOG_FILE_PATH:        getEnvString("LOG_FILE_PATH", ""),
		LOG_LEVEL:            getEnvString("LOG_LEVEL", "info"),
	}
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
