// Package repository reads safe storage envelopes from application configuration files.
package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	ssDomain "github.com/allisson/safestorage/internal/safestorage/domain"
)

// EncryptedKeyField is the top-level JSON field holding the envelope.
const EncryptedKeyField = "encryptedKey"

// JSONConfigRepository reads the encryptedKey field of a JSON config file.
type JSONConfigRepository struct {
	homeDir func() (string, error)
}

// NewJSONConfigRepository creates a JSONConfigRepository using the current
// user's home directory for default paths.
func NewJSONConfigRepository() *JSONConfigRepository {
	return &JSONConfigRepository{homeDir: os.UserHomeDir}
}

// DefaultPath returns <home>/Library/Application Support/<appName>/config.json.
func (r *JSONConfigRepository) DefaultPath(appName string) (string, error) {
	home, err := r.homeDir()
	if err != nil {
		return "", fmt.Errorf("%w: cannot determine home directory: %v", ssDomain.ErrConfigRead, err)
	}
	return filepath.Join(home, "Library", "Application Support", appName, "config.json"), nil
}

// LoadEncryptedKey returns the encryptedKey string stored in the JSON file at path.
//
// A missing or unreadable file, or content that is not JSON, is ErrConfigRead.
// A document that is not an object, or whose field is missing, null or not a
// string, is ErrConfigFieldMissing.
func (r *JSONConfigRepository) LoadEncryptedKey(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the operator
	if err != nil {
		return "", fmt.Errorf("%w: %v", ssDomain.ErrConfigRead, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ssDomain.ErrConfigRead, path, err)
	}

	fields, ok := doc.(map[string]any)
	if !ok {
		return "", fmt.Errorf("%w: %s: document is not an object", ssDomain.ErrConfigFieldMissing, path)
	}

	raw, ok := fields[EncryptedKeyField]
	if !ok {
		return "", fmt.Errorf("%w: %s", ssDomain.ErrConfigFieldMissing, path)
	}

	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s: field is not a string", ssDomain.ErrConfigFieldMissing, path)
	}

	return value, nil
}
