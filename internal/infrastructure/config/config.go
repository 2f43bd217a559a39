package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment    string               `mapstructure:"environment"`
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Logger         LoggerConfig         `mapstructure:"logger"`
	Gateway        GatewayConfig        `mapstructure:"gateway"`
	Webhook        WebhookConfig        `mapstructure:"webhook"`
	Reconciliation ReconciliationConfig `mapstructure:"reconciliation"`
	Ledger         LedgerConfig         `mapstructure:"ledger"`
	Admin          AdminConfig          `mapstructure:"admin"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres or sqlite
	Path            string        `mapstructure:"path"`   // sqlite file
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	TimeFormat string `mapstructure:"timeFormat"`
	CallerInfo bool   `mapstructure:"callerInfo"`
}

// GatewayConfig points at the payment gateway's status API
type GatewayConfig struct {
	BaseURL   string        `mapstructure:"baseUrl"`
	SecretKey string        `mapstructure:"secretKey"`
	Timeout   time.Duration `mapstructure:"timeout"` // seconds
}

// WebhookConfig controls inbound gateway notifications
type WebhookConfig struct {
	Secret          string `mapstructure:"secret"`
	SignatureHeader string `mapstructure:"signatureHeader"`
	VerifySignature bool   `mapstructure:"verifySignature"`
	EventLogSize    int    `mapstructure:"eventLogSize"`
	MaxBodyBytes    int64  `mapstructure:"maxBodyBytes"`
}

// ReconciliationConfig controls the stale pending transaction poller
type ReconciliationConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	StaleAfter   time.Duration `mapstructure:"staleAfter"`   // seconds
	Interval     time.Duration `mapstructure:"interval"`     // seconds
	QueryTimeout time.Duration `mapstructure:"queryTimeout"` // seconds
	BatchSize    int           `mapstructure:"batchSize"`
	Concurrency  int           `mapstructure:"concurrency"`
}

// LedgerConfig contains ledger read and retry settings
type LedgerConfig struct {
	DefaultListLimit int `mapstructure:"defaultListLimit"`
	MaxListLimit     int `mapstructure:"maxListLimit"`
	MaxRetries       int `mapstructure:"maxRetries"`
}

// AdminConfig lists the administrators allowed to call privileged endpoints
type AdminConfig struct {
	Users []AdminUser `mapstructure:"users"`
}

// AdminUser binds a bearer token to an administrator name
type AdminUser struct {
	ID    string `mapstructure:"id"`
	Name  string `mapstructure:"name"`
	Token string `mapstructure:"token"`
}
