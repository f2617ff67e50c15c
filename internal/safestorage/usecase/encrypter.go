package usecase

import (
	"context"
	"log/slog"

	ssService "github.com/allisson/safestorage/internal/safestorage/service"
)

// encrypter implements Encrypter.
type encrypter struct {
	store   SecretStore
	deriver ssService.KeyDeriver
	codec   ssService.Codec
	logger  *slog.Logger
}

// NewEncrypter creates an Encrypter.
func NewEncrypter(
	store SecretStore,
	deriver ssService.KeyDeriver,
	codec ssService.Codec,
	logger *slog.Logger,
) Encrypter {
	return &encrypter{
		store:   store,
		deriver: deriver,
		codec:   codec,
		logger:  logger,
	}
}

// Encrypt seals req.Plaintext under the keychain password and returns the
// hex envelope. With the fixed policy the result is readable by the upstream
// application; the random policy needs a random-framing codec to read back.
func (e *encrypter) Encrypt(ctx context.Context, req EncryptRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	lookup, err := lookupPassword(ctx, e.store, e.logger, req.Accounts)
	if err != nil {
		return "", err
	}

	key := e.deriver.DeriveKey(lookup.password)
	defer key.Zero()

	blob, err := e.codec.Encrypt([]byte(req.Plaintext), key, req.Policy)
	if err != nil {
		return "", err
	}

	e.logger.Debug("encrypted key created",
		slog.String("account", lookup.account),
		slog.String("iv_policy", req.Policy.String()),
	)

	return blob, nil
}
