package secretstore

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/allisson/safestorage/internal/errors"
)

// ErrInvalidKMSSecrets indicates KMS_SECRETS could not be parsed.
var ErrInvalidKMSSecrets = errors.Wrap(errors.ErrInvalidInput, "invalid KMS_SECRETS format")

// KMSStore serves safe storage passwords that were wrapped with a KMS key,
// for hosts without an interactive credential store (CI, servers).
//
// Entries are configured as "account:base64ciphertext,..." and all belong to
// one safe storage service. Ciphertexts are unwrapped on each lookup; the
// plaintext is not cached.
type KMSStore struct {
	keeper  KMSKeeper
	service string
	entries map[string][]byte
}

// NewKMSStore opens a keeper for keyURI and parses entries.
func NewKMSStore(
	ctx context.Context,
	kmsService KMSService,
	keyURI, service, entries string,
) (*KMSStore, error) {
	if keyURI == "" {
		return nil, ErrKMSKeyURIRequired
	}

	parsed, err := ParseKMSSecrets(entries)
	if err != nil {
		return nil, err
	}

	keeper, err := kmsService.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlatform, err)
	}

	return &KMSStore{keeper: keeper, service: service, entries: parsed}, nil
}

// ParseKMSSecrets parses "account:base64ciphertext" pairs separated by commas.
// Account names may contain spaces; surrounding whitespace is trimmed.
func ParseKMSSecrets(raw string) (map[string][]byte, error) {
	entries := make(map[string][]byte)
	if strings.TrimSpace(raw) == "" {
		return entries, nil
	}

	for part := range strings.SplitSeq(raw, ",") {
		p := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(p) != 2 || strings.TrimSpace(p[0]) == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKMSSecrets, part)
		}
		account := strings.TrimSpace(p[0])
		ciphertext, err := base64.StdEncoding.DecodeString(strings.TrimSpace(p[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: account %s: %v", ErrInvalidKMSSecrets, account, err)
		}
		entries[account] = ciphertext
	}

	return entries, nil
}

// GetSecret unwraps the password configured for account.
func (s *KMSStore) GetSecret(ctx context.Context, service, account string) (string, error) {
	if service != s.service {
		return "", fmt.Errorf("%w: service %q is not served by the kms store", ErrSecretNotFound, service)
	}

	ciphertext, ok := s.entries[account]
	if !ok {
		return "", fmt.Errorf("%w: service %q account %q", ErrSecretNotFound, service, account)
	}

	plaintext, err := s.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: unwrap account %q: %v", ErrPlatform, account, err)
	}
	defer clear(plaintext)

	return string(plaintext), nil
}

// Seal wraps secret with the store's KMS key and returns a KMS_SECRETS entry
// for account.
func (s *KMSStore) Seal(ctx context.Context, account, secret string) (string, error) {
	ciphertext, err := s.keeper.Encrypt(ctx, []byte(secret))
	if err != nil {
		return "", fmt.Errorf("%w: wrap account %q: %v", ErrPlatform, account, err)
	}
	return account + ":" + base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Close releases the KMS keeper.
func (s *KMSStore) Close() error {
	return s.keeper.Close()
}
