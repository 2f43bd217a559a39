package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix is prepended to every environment variable the service reads
const EnvPrefix = "PL"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./.env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
	"../../configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	// Load environment variables from .env file first
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")

	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Set environment variables to override config
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	if tokens := os.Getenv("PL_ADMIN_TOKENS"); tokens != "" {
		config.Admin.Users = ParseAdminTokens(tokens)
	}

	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return nil
			} else {
				lastError = err
			}
		}
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}

	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.path", "payment-ledger.db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.callerInfo", true)

	v.SetDefault("gateway.timeout", 10) // seconds

	v.SetDefault("webhook.signatureHeader", "verif-hash")
	v.SetDefault("webhook.verifySignature", true)
	v.SetDefault("webhook.eventLogSize", 500)
	v.SetDefault("webhook.maxBodyBytes", 1<<20)

	v.SetDefault("reconciliation.enabled", true)
	v.SetDefault("reconciliation.staleAfter", 300)  // seconds
	v.SetDefault("reconciliation.interval", 60)     // seconds
	v.SetDefault("reconciliation.queryTimeout", 10) // seconds
	v.SetDefault("reconciliation.batchSize", 100)
	v.SetDefault("reconciliation.concurrency", 4)

	v.SetDefault("ledger.defaultListLimit", 50)
	v.SetDefault("ledger.maxListLimit", 200)
	v.SetDefault("ledger.maxRetries", 5)
}

// getEnvironment determines the environment to use based on PL_ENV environment variable
func getEnvironment() string {
	env := os.Getenv("PL_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures environment variables override config values.
// Secrets are expected to come from here rather than from the YAML files.
func processEnvOverrides(v *viper.Viper) {
	stringOverrides := map[string]string{
		"PL_DB_DRIVER":          "database.driver",
		"PL_DB_PATH":            "database.path",
		"PL_DB_HOST":            "database.host",
		"PL_DB_PORT":            "database.port",
		"PL_DB_USERNAME":        "database.username",
		"PL_DB_PASSWORD":        "database.password",
		"PL_DB_NAME":            "database.database",
		"PL_DB_SSL_MODE":        "database.sslMode",
		"PL_SERVER_HOST":        "server.host",
		"PL_SERVER_PORT":        "server.port",
		"PL_LOGGER_LEVEL":       "logger.level",
		"PL_GATEWAY_BASE_URL":   "gateway.baseUrl",
		"PL_GATEWAY_SECRET_KEY": "gateway.secretKey",
		"PL_WEBHOOK_SECRET":     "webhook.secret",
	}
	for env, key := range stringOverrides {
		if val := os.Getenv(env); val != "" {
			v.Set(key, val)
		}
	}

	intOverrides := map[string]string{
		"PL_DB_MAX_OPEN_CONNS":                  "database.maxOpenConns",
		"PL_DB_MAX_IDLE_CONNS":                  "database.maxIdleConns",
		"PL_DB_QUERY_TIMEOUT_SECONDS":           "database.queryTimeout",
		"PL_RECONCILIATION_STALE_AFTER_SECONDS": "reconciliation.staleAfter",
		"PL_RECONCILIATION_INTERVAL_SECONDS":    "reconciliation.interval",
	}
	for env, key := range intOverrides {
		if val := getEnvInt(env, 0); val > 0 {
			v.Set(key, val)
		}
	}

	if verify := os.Getenv("PL_WEBHOOK_VERIFY_SIGNATURE"); verify != "" {
		if b, err := strconv.ParseBool(verify); err == nil {
			v.Set("webhook.verifySignature", b)
		}
	}
}

// ParseAdminTokens parses "name:token" pairs separated by commas
func ParseAdminTokens(raw string) []AdminUser {
	var users []AdminUser
	for _, pair := range strings.Split(raw, ",") {
		name, token, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || name == "" || token == "" {
			continue
		}
		users = append(users, AdminUser{ID: name, Name: name, Token: token})
	}
	return users
}

// Helper function to get environment variable as int
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	// Convert seconds to time.Duration
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	// Convert minutes to time.Duration
	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute

	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second

	config.Gateway.Timeout = time.Duration(config.Gateway.Timeout) * time.Second

	config.Reconciliation.StaleAfter = time.Duration(config.Reconciliation.StaleAfter) * time.Second
	config.Reconciliation.Interval = time.Duration(config.Reconciliation.Interval) * time.Second
	config.Reconciliation.QueryTimeout = time.Duration(config.Reconciliation.QueryTimeout) * time.Second
}
