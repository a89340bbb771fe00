package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must always be set
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"API_KEY",
}

// PostgresEnvVars are additionally required when STORE_BACKEND=postgres
var PostgresEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// backendEnvVars lists what each account store needs beyond RequiredEnvVars.
// The embedded backends fall back to paths under data/.
var backendEnvVars = map[string][]string{
	StoreBackendPostgres: PostgresEnvVars,
	StoreBackendSQLite:   nil,
	StoreBackendFlatFile: nil,
}

// relaySchemes are the URL schemes the NATS client dials
var relaySchemes = []string{"nats://", "tls://", "ws://", "wss://"}

// Example values shipped in .env.example
const (
	exampleDBPassword = "change_this_secure_password"
	exampleAPIKey     = "generate_with_openssl_rand_hex_32"
	defaultNodeName   = "brandish-events"
)

// ValidateEnv checks that the env schema version matches and that every
// variable the chosen store backend needs is set.
func ValidateEnv() error {
	switch version := os.Getenv("ENV_SCHEMA_VERSION"); version {
	case ExpectedEnvSchemaVersion:
	case "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	default:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, version)
	}

	required := append([]string{}, RequiredEnvVars...)
	required = append(required, backendEnvVars[os.Getenv("STORE_BACKEND")]...)

	var missing []string
	for _, name := range required {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and then reports settings that
// start the service but probably not the way the operator meant.
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	if os.Getenv("STORE_BACKEND") == StoreBackendPostgres && os.Getenv("DB_PASSWORD") == exampleDBPassword {
		warn("DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if os.Getenv("API_KEY") == exampleAPIKey {
		warn("API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}
	if (os.Getenv("DISCORD_TOKEN") == "") != (os.Getenv("DISCORD_CHANNEL_ID") == "") {
		warn("DISCORD_TOKEN and DISCORD_CHANNEL_ID must both be set to enable Discord notifications")
	}

	if url := os.Getenv("NATS_URL"); url != "" {
		if !hasAnyPrefix(url, relaySchemes) {
			warn("NATS_URL %q has no nats:// or tls:// scheme - the relay may not connect", url)
		}
		if node := os.Getenv("NODE_NAME"); node == "" || node == defaultNodeName {
			warn("NODE_NAME is not set while relaying - every node will publish as %q", defaultNodeName)
		}
	}

	return warnings, nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
