// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	"github.com/allisson/safestorage/internal/errors"
)

// ErrInvalidConfig indicates an environment value outside its allowed set.
var ErrInvalidConfig = errors.Wrap(errors.ErrInvalidInput, "invalid configuration")

// Config holds all application configuration.
type Config struct {
	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string
	// LogFormat selects the log handler: "text" or "json".
	LogFormat string

	// AppName is the desktop application whose safe storage is read (e.g., "Signal").
	AppName string
	// SafeStorageService is the keychain service holding the password.
	SafeStorageService string
	// SafeStorageAccount is the keychain account tried first.
	SafeStorageAccount string
	// SafeStorageFallbackAccount is the keychain account tried when the first lookup fails.
	SafeStorageFallbackAccount string
	// ConfigPath overrides the default application config.json location.
	ConfigPath string

	// SecretStore selects the password backend: "keyring" or "kms".
	SecretStore string
	// KMSKeyURI is the gocloud secrets URI of the key wrapping KMS secrets.
	KMSKeyURI string
	// KMSSecrets lists KMS-wrapped passwords as "account:base64ciphertext,...".
	KMSSecrets string

	// CipherFraming is the envelope layout read by the codec: "fixed" or "random".
	CipherFraming string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsTextfile is where metrics are written at exit; empty disables the flush.
	MetricsTextfile string
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Logging
		LogLevel:  env.GetString("LOG_LEVEL", "info"),
		LogFormat: env.GetString("LOG_FORMAT", "text"),

		// Safe storage coordinates
		AppName:                    env.GetString("APP_NAME", "Signal"),
		SafeStorageService:         env.GetString("SAFE_STORAGE_SERVICE", "Signal Safe Storage"),
		SafeStorageAccount:         env.GetString("SAFE_STORAGE_ACCOUNT", "Signal Key"),
		SafeStorageFallbackAccount: env.GetString("SAFE_STORAGE_FALLBACK_ACCOUNT", "Signal"),
		ConfigPath:                 env.GetString("CONFIG_PATH", ""),

		// Secret store
		SecretStore: env.GetString("SECRET_STORE", "keyring"),
		KMSKeyURI:   env.GetString("KMS_KEY_URI", ""),
		KMSSecrets:  env.GetString("KMS_SECRETS", ""),

		// Cipher
		CipherFraming: env.GetString("CIPHER_FRAMING", "fixed"),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", false),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "safestorage"),
		MetricsTextfile:  env.GetString("METRICS_TEXTFILE", ""),
	}
}

// Validate checks enumerated values and the settings the KMS backend needs.
func (c *Config) Validate() error {
	usesKMS := strings.EqualFold(c.SecretStore, "kms")

	err := validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.LogFormat, validation.In("text", "json")),
		validation.Field(&c.SecretStore,
			validation.By(func(value interface{}) error {
				return validation.Validate(strings.ToLower(value.(string)), validation.In("keyring", "kms"))
			}),
		),
		validation.Field(&c.KMSKeyURI, validation.When(usesKMS, validation.Required)),
		validation.Field(&c.CipherFraming, validation.In("fixed", "random")),
		validation.Field(&c.MetricsNamespace, validation.When(c.MetricsEnabled, validation.Required)),
	)
	if err != nil {
		return errors.Wrapf(ErrInvalidConfig, "%v", err)
	}
	return nil
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
