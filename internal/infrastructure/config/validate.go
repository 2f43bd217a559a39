package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnverifiedWebhooksInProduction is returned when signature checks are disabled in production
var ErrUnverifiedWebhooksInProduction = errors.New("webhook.verifySignature cannot be disabled in production")

// Validate ensures all required configuration values are present and consistent.
// Warnings are returned separately and do not fail validation.
func (c *Config) Validate() (warnings []string, err error) {
	var missingConfigs []string

	if c.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if c.Environment != Development && c.Environment != Production && c.Environment != Test {
		return nil, fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			c.Environment, Development, Production, Test)
	}

	if c.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if c.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if c.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if c.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			missingConfigs = append(missingConfigs, "database.path (or PL_DB_PATH environment variable)")
		}
	case "postgres":
		if c.Database.Host == "" {
			missingConfigs = append(missingConfigs, "database.host (or PL_DB_HOST environment variable)")
		}
		if c.Database.Username == "" {
			missingConfigs = append(missingConfigs, "database.username (or PL_DB_USERNAME environment variable)")
		}
		if c.Database.Database == "" {
			missingConfigs = append(missingConfigs, "database.database (or PL_DB_NAME environment variable)")
		}
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}
	if c.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	if c.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if c.Webhook.VerifySignature && c.Webhook.Secret == "" {
		missingConfigs = append(missingConfigs, "webhook.secret (or PL_WEBHOOK_SECRET environment variable)")
	}
	if c.Webhook.SignatureHeader == "" {
		missingConfigs = append(missingConfigs, "webhook.signatureHeader")
	}

	if c.Reconciliation.Enabled {
		if c.Gateway.BaseURL == "" {
			missingConfigs = append(missingConfigs, "gateway.baseUrl (or PL_GATEWAY_BASE_URL environment variable)")
		}
		if c.Reconciliation.Interval <= 0 {
			missingConfigs = append(missingConfigs, "reconciliation.interval")
		}
		if c.Reconciliation.StaleAfter <= 0 {
			missingConfigs = append(missingConfigs, "reconciliation.staleAfter")
		}
	}

	if len(missingConfigs) > 0 {
		return nil, fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	if c.Environment == Production {
		if !c.Webhook.VerifySignature {
			return nil, ErrUnverifiedWebhooksInProduction
		}

		if c.Database.Driver == "postgres" {
			mode := strings.ToLower(c.Database.SSLMode)
			if mode != "require" && mode != "verify-ca" && mode != "verify-full" {
				warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
			}
		}
		if c.Database.Driver == "sqlite" {
			warnings = append(warnings, "database.driver sqlite is intended for development and tests")
		}
		if c.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}
		if c.Server.WriteTimeout < 5*time.Second {
			warnings = append(warnings, "server.writeTimeout is too low for production")
		}
		if c.Reconciliation.Enabled && c.Gateway.SecretKey == "" {
			warnings = append(warnings, "gateway.secretKey is empty; status queries will be unauthenticated")
		}
		if len(c.Admin.Users) == 0 {
			warnings = append(warnings, "no administrators configured; override and scan endpoints are unreachable")
		}
	}

	return warnings, nil
}
