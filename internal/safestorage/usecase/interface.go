// Package usecase orchestrates safe storage resolution: it fetches the
// keychain password, loads the encrypted key and runs it through key
// derivation and the cipher codec.
package usecase

import (
	"context"

	ssDomain "github.com/allisson/safestorage/internal/safestorage/domain"
)

// SecretStore is the platform secure storage capability.
// Implementations live in internal/secretstore.
type SecretStore interface {
	// GetSecret returns the secret for service and account, or an error
	// when it is missing, access is refused or the store fails.
	GetSecret(ctx context.Context, service, account string) (string, error)
}

// ConfigRepository reads the encrypted key from application configuration.
type ConfigRepository interface {
	// LoadEncryptedKey returns the encryptedKey field of the JSON file at path.
	LoadEncryptedKey(path string) (string, error)
}

// Resolver recovers the plaintext master key of an application.
type Resolver interface {
	Resolve(ctx context.Context, req ResolveRequest) (*ssDomain.Resolution, error)
}

// Encrypter produces new envelopes under the application's keychain password.
type Encrypter interface {
	Encrypt(ctx context.Context, req EncryptRequest) (string, error)
}
