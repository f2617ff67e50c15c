// Package secretstore provides access to the safe storage password kept by
// the platform: the OS credential store, or KMS-wrapped values on hosts
// without one.
package secretstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/allisson/safestorage/internal/errors"
)

// Lookup errors. Every Store wraps one of these so callers can tell a
// missing entry from a refused or broken secret store.
var (
	// ErrSecretNotFound indicates no secret exists for the service and account.
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "secret not found")

	// ErrAccessDenied indicates the platform refused to release the secret.
	ErrAccessDenied = errors.Wrap(errors.ErrForbidden, "secret access denied")

	// ErrPlatform indicates the secret store itself failed.
	ErrPlatform = errors.Wrap(errors.ErrUnavailable, "secret store error")

	// ErrUnsupportedBackend indicates an unknown SECRET_STORE value.
	ErrUnsupportedBackend = errors.Wrap(errors.ErrInvalidInput, "unsupported secret store backend")

	// ErrKMSKeyURIRequired indicates the kms store was selected without KMS_KEY_URI.
	ErrKMSKeyURIRequired = errors.Wrap(errors.ErrInvalidInput, "KMS_KEY_URI is required for the kms secret store")
)

// Store reads secrets by service and account name.
type Store interface {
	GetSecret(ctx context.Context, service, account string) (string, error)
}

// Writer stores secrets by service and account name.
type Writer interface {
	SetSecret(ctx context.Context, service, account, secret string) error
}

// Backend names a Store implementation.
type Backend string

const (
	// BackendKeyring reads from the OS credential store.
	BackendKeyring Backend = "keyring"
	// BackendKMS unwraps KMS-encrypted passwords supplied through configuration.
	BackendKMS Backend = "kms"
)

// Options selects and configures a Store.
type Options struct {
	Backend    Backend
	Service    string // safe storage service name the KMS entries belong to
	KMSKeyURI  string
	KMSSecrets string // "account:base64ciphertext,..."
}

// New builds the Store selected by opts.Backend.
func New(ctx context.Context, opts Options, kmsService KMSService) (Store, error) {
	switch Backend(strings.ToLower(string(opts.Backend))) {
	case "", BackendKeyring:
		return NewKeyringStore(), nil
	case BackendKMS:
		return NewKMSStore(ctx, kmsService, opts.KMSKeyURI, opts.Service, opts.KMSSecrets)
	default:
		return nil, fmt.Errorf("%w: %q (valid options: keyring, kms)", ErrUnsupportedBackend, opts.Backend)
	}
}
