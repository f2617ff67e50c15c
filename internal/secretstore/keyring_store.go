package secretstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/allisson/safestorage/internal/errors"
)

// deniedMarkers are fragments of credential store messages reporting that
// the user or policy refused access, as opposed to a missing item.
var deniedMarkers = []string{
	"user canceled",
	"user interaction is not allowed",
	"denied",
	"authorization",
	"not permitted",
}

// KeyringStore reads and writes generic passwords in the OS credential store
// (macOS Keychain, Secret Service, Windows Credential Manager).
type KeyringStore struct{}

// NewKeyringStore creates a KeyringStore.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

// GetSecret returns the password stored for service and account.
func (s *KeyringStore) GetSecret(ctx context.Context, service, account string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPlatform, err)
	}

	secret, err := keyring.Get(service, account)
	if err != nil {
		return "", classifyKeyringError(err, service, account)
	}
	return secret, nil
}

// SetSecret stores secret for service and account, replacing any existing value.
func (s *KeyringStore) SetSecret(ctx context.Context, service, account, secret string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPlatform, err)
	}

	if err := keyring.Set(service, account, secret); err != nil {
		return classifyKeyringError(err, service, account)
	}
	return nil
}

func classifyKeyringError(err error, service, account string) error {
	if errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%w: service %q account %q", ErrSecretNotFound, service, account)
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range deniedMarkers {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%w: service %q account %q: %v", ErrAccessDenied, service, account, err)
		}
	}
	return fmt.Errorf("%w: service %q account %q: %v", ErrPlatform, service, account, err)
}
