// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables and an optional .env file. It provides a centralized Config
// struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"footprints/internal/i18n"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host     string
	Port     string
	Env      string // "development", "production", "testing"
	BasePath string // URL prefix when served below the site root

	// Initial language for sessions without a usable Accept-Language.
	DefaultLang i18n.Language

	// Location data sources, tried in this order.
	LocationsURL          string
	LocationsFile         string
	LocationsS3Key        string
	LocationsDB           bool
	LocationsFetchTimeout time.Duration

	// PostgreSQL connection (only used when LocationsDB is set)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible session store and cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// S3-compatible object storage
	S3Endpoint     string
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	S3BucketPublic string

	// Map tiles per style variant
	TilesLight     string
	TilesDark      string
	MapAttribution string

	// Creator export requests allowed per IP per minute.
	RateLimitCreator int
}

// Load reads configuration from the environment, applying defaults for
// development where appropriate. A .env file in the working directory is
// loaded first if present; real environment variables win over it.
// Returns an error if critical values are missing in production mode.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Host:     envOrDefault("APP_HOST", "0.0.0.0"),
		Port:     envOrDefault("APP_PORT", "8080"),
		Env:      envOrDefault("APP_ENV", "development"),
		BasePath: strings.TrimSuffix(os.Getenv("APP_BASE_PATH"), "/"),

		LocationsURL:   os.Getenv("LOCATIONS_URL"),
		LocationsFile:  envOrDefault("LOCATIONS_FILE", "locations.json"),
		LocationsS3Key: os.Getenv("LOCATIONS_S3_KEY"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "footprints"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "footprints"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3Region:       envOrDefault("S3_REGION", "fsn1"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		S3BucketPublic: envOrDefault("S3_BUCKET_PUBLIC", "footprints-public"),

		TilesLight:     envOrDefault("MAP_TILES_LIGHT", "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png"),
		TilesDark:      envOrDefault("MAP_TILES_DARK", "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png"),
		MapAttribution: envOrDefault("MAP_ATTRIBUTION", "&copy; OpenStreetMap contributors &copy; CARTO"),
	}

	lang, ok := i18n.ParseLanguage(envOrDefault("DEFAULT_LANG", string(i18n.DefaultLanguage)))
	if !ok {
		return nil, fmt.Errorf("DEFAULT_LANG must be one of zh, en")
	}
	cfg.DefaultLang = lang

	var err error
	if cfg.LocationsDB, err = strconv.ParseBool(envOrDefault("LOCATIONS_DB", "false")); err != nil {
		return nil, fmt.Errorf("LOCATIONS_DB: %w", err)
	}
	if cfg.LocationsFetchTimeout, err = time.ParseDuration(envOrDefault("LOCATIONS_FETCH_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("LOCATIONS_FETCH_TIMEOUT: %w", err)
	}
	if cfg.RateLimitCreator, err = strconv.Atoi(envOrDefault("RATE_LIMIT_CREATOR", "30")); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_CREATOR: %w", err)
	}

	if cfg.Env == "production" {
		if cfg.LocationsDB && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.LocationsS3Key != "" && (cfg.S3AccessKey == "" || cfg.S3SecretKey == "") {
			return nil, fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY must be set when LOCATIONS_S3_KEY is used")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// S3Enabled reports whether object storage credentials are configured.
func (c *Config) S3Enabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
