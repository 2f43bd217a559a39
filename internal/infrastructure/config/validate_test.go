package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Environment: Development,
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:       "sqlite",
			Path:         "ledger.db",
			QueryTimeout: 5 * time.Second,
		},
		Logger:  LoggerConfig{Level: "info"},
		Gateway: GatewayConfig{BaseURL: "https://gateway.example", SecretKey: "sk"},
		Webhook: WebhookConfig{Secret: "whsec", SignatureHeader: "verif-hash", VerifySignature: true},
		Reconciliation: ReconciliationConfig{
			Enabled:    true,
			StaleAfter: 5 * time.Minute,
			Interval:   time.Minute,
		},
		Admin: AdminConfig{Users: []AdminUser{{ID: "ops", Name: "ops", Token: "t"}}},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     error
		wantErrText string
		wantWarning string
	}{
		{name: "valid development", mutate: func(c *Config) {}},
		{
			name:   "verification may be disabled outside production",
			mutate: func(c *Config) { c.Webhook.VerifySignature = false; c.Webhook.Secret = "" },
		},
		{
			name:    "verification cannot be disabled in production",
			mutate:  func(c *Config) { c.Environment = Production; c.Webhook.VerifySignature = false },
			wantErr: ErrUnverifiedWebhooksInProduction,
		},
		{
			name:        "secret required when verifying",
			mutate:      func(c *Config) { c.Webhook.Secret = "" },
			wantErrText: "webhook.secret",
		},
		{
			name:        "unknown environment",
			mutate:      func(c *Config) { c.Environment = "staging" },
			wantErrText: "invalid environment",
		},
		{
			name:        "unknown driver",
			mutate:      func(c *Config) { c.Database.Driver = "mysql" },
			wantErrText: "unsupported database driver",
		},
		{
			name:        "postgres needs a host",
			mutate:      func(c *Config) { c.Database.Driver = "postgres" },
			wantErrText: "database.host",
		},
		{
			name:        "reconciliation needs a gateway",
			mutate:      func(c *Config) { c.Gateway.BaseURL = "" },
			wantErrText: "gateway.baseUrl",
		},
		{
			name:   "gateway optional without reconciliation",
			mutate: func(c *Config) { c.Reconciliation.Enabled = false; c.Gateway.BaseURL = "" },
		},
		{
			name:        "production warns about sqlite",
			mutate:      func(c *Config) { c.Environment = Production },
			wantWarning: "sqlite",
		},
		{
			name:        "production warns without administrators",
			mutate:      func(c *Config) { c.Environment = Production; c.Admin.Users = nil },
			wantWarning: "no administrators",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			warnings, err := cfg.Validate()

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrText)
			default:
				require.NoError(t, err)
			}

			if tt.wantWarning != "" {
				assert.Contains(t, strings.Join(warnings, "\n"), tt.wantWarning)
			}
		})
	}
}

func TestParseAdminTokens(t *testing.T) {
	users := ParseAdminTokens(" alice:tok-a , bob:tok-b,broken,:nameless,empty: ")

	require.Len(t, users, 2)
	assert.Equal(t, AdminUser{ID: "alice", Name: "alice", Token: "tok-a"}, users[0])
	assert.Equal(t, AdminUser{ID: "bob", Name: "bob", Token: "tok-b"}, users[1])
}
