// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The a11-b10-restaurant-management-server Authors

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration of the restaurant server.
// It is populated by merging environment variables, command-line flags and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters and runtime environment settings.
	App App `envPrefix:"APP_"`

	// Server holds the HTTP listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Storage holds the backing store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Cache holds the optional Redis cache settings.
	Cache Cache `envPrefix:"CACHE_"`

	// Workers holds background worker settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// TokenSignKey is the process-wide secret used to sign and verify
	// identity tokens. Required.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in, and required from, every token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of an issued token.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Environment selects cookie attributes: "production" issues Secure,
	// SameSite=None cookies, anything else Strict, non-secure cookies.
	// Env: APP_ENVIRONMENT
	Environment string `env:"ENVIRONMENT"`

	// LogLevel is the zerolog level name.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// IsProduction reports whether the server runs in the production environment.
func (a App) IsProduction() bool {
	return a.Environment == EnvironmentProduction
}

// Server holds the inbound HTTP settings.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form; host may be empty.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling time of a single request.
	// Zero disables the timeout.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// AllowedOrigins lists the frontend origins allowed by CORS.
	// Env: SERVER_ALLOWED_ORIGINS (comma separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// Storage groups the backing store settings.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the backing store.
type DB struct {
	// DSN selects and configures the backend by its scheme:
	//   - postgres://, postgresql://  PostgreSQL
	//   - sqlite://<path>             SQLite file
	//   - mongodb://, mongodb+srv://  MongoDB
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// MongoDatabase is the MongoDB database name.
	// Env: STORAGE_DB_MONGO_DATABASE
	MongoDatabase string `env:"MONGO_DATABASE"`

	// MongoTransactions enables multi-document transactions for the purchase
	// workflow. Requires a replica set deployment.
	// Env: STORAGE_DB_MONGO_TRANSACTIONS
	MongoTransactions bool `env:"MONGO_TRANSACTIONS"`
}

// Cache holds the Redis cache settings. The cache is disabled when
// RedisAddress is empty.
type Cache struct {
	// Env: CACHE_REDIS_ADDRESS
	RedisAddress string `env:"REDIS_ADDRESS"`

	// Env: CACHE_REDIS_PASSWORD
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Env: CACHE_REDIS_DB
	RedisDB int `env:"REDIS_DB"`

	// TTL bounds how long a cached ranking is served.
	// Env: CACHE_TTL
	TTL time.Duration `env:"TTL"`
}

// Workers holds background worker settings.
type Workers struct {
	// RetryAttempts is how many times a failed purchase counter increment
	// is retried before it is dropped.
	// Env: WORKERS_RETRY_ATTEMPTS
	RetryAttempts int `env:"RETRY_ATTEMPTS"`

	// RetryInterval is the base delay between retries; it doubles per attempt.
	// Env: WORKERS_RETRY_INTERVAL
	RetryInterval time.Duration `env:"RETRY_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// environment variables, command-line flags and the JSON file, in that
// priority order: the first source that sets a field wins.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
