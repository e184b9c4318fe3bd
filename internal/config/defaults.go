package config

import "time"

const (
	// EnvironmentProduction is the App.Environment value of production deployments.
	EnvironmentProduction = "production"
	// EnvironmentDevelopment is the default App.Environment value.
	EnvironmentDevelopment = "development"
)

const (
	defaultTokenIssuer   = "restaurant-server"
	defaultTokenDuration = 365 * 24 * time.Hour
	defaultHTTPAddress   = ":9000"
	defaultMongoDatabase = "resManage-db"
	defaultCacheTTL      = 30 * time.Second
	defaultRetryAttempts = 5
	defaultRetryInterval = time.Second
)

var defaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:5174"}

// applyDefaults fills every zero field that has a default value.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = EnvironmentDevelopment
	}

	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = append([]string(nil), defaultAllowedOrigins...)
	}

	if cfg.Storage.DB.MongoDatabase == "" {
		cfg.Storage.DB.MongoDatabase = defaultMongoDatabase
	}

	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = defaultCacheTTL
	}

	if cfg.Workers.RetryAttempts == 0 {
		cfg.Workers.RetryAttempts = defaultRetryAttempts
	}
	if cfg.Workers.RetryInterval == 0 {
		cfg.Workers.RetryInterval = defaultRetryInterval
	}
}
