package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validPostgres() *Config {
	return &Config{
		Driver:       DriverPostgres,
		Host:         "db",
		Port:         5432,
		Username:     "ledger",
		Password:     "secret",
		Database:     "ledger",
		SSLMode:      "require",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		QueryTimeout: 5 * time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid postgres", mutate: func(c *Config) {}},
		{name: "valid sqlite", mutate: func(c *Config) { c.Driver = DriverSQLite; c.Path = ":memory:" }},
		{name: "sqlite without path", mutate: func(c *Config) { c.Driver = DriverSQLite }, wantErr: "sqlite database path"},
		{name: "missing host", mutate: func(c *Config) { c.Host = "" }, wantErr: "host is required"},
		{name: "bad port", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "invalid port"},
		{name: "bad ssl mode", mutate: func(c *Config) { c.SSLMode = "sometimes" }, wantErr: "invalid SSL mode"},
		{name: "unknown driver", mutate: func(c *Config) { c.Driver = "oracle" }, wantErr: "unsupported database driver"},
		{name: "no pool", mutate: func(c *Config) { c.MaxOpenConns = 0 }, wantErr: "max open connections"},
		{name: "no timeout", mutate: func(c *Config) { c.QueryTimeout = 0 }, wantErr: "query timeout"},
		{name: "negative retries", mutate: func(c *Config) { c.RetryAttempts = -1 }, wantErr: "retry attempts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validPostgres()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	assert.Equal(t,
		"host=db port=5432 user=ledger password=secret dbname=ledger sslmode=require",
		validPostgres().DSN())

	sqlite := &Config{Driver: DriverSQLite, Path: "ledger.db"}
	assert.Equal(t, "ledger.db?_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate&_foreign_keys=on", sqlite.DSN())

	sqlite.Path = "file:ledger.db?cache=shared"
	assert.Equal(t, "file:ledger.db?cache=shared&_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate&_foreign_keys=on", sqlite.DSN())
}

func TestParsePort(t *testing.T) {
	assert.Equal(t, 5432, ParsePort(" 5432 "))
	assert.Equal(t, 0, ParsePort("postgres"))
	assert.Equal(t, 0, ParsePort("0"))
	assert.Equal(t, 0, ParsePort("65536"))
}
