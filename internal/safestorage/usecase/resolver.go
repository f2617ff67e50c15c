package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	ssDomain "github.com/allisson/safestorage/internal/safestorage/domain"
	ssService "github.com/allisson/safestorage/internal/safestorage/service"
)

// resolver implements Resolver.
//
// One Resolve call is one sequential run: password lookup (with a single
// fallback), envelope loading, key derivation and decryption. Nothing is
// shared between calls, and the derived key is cleared before returning.
type resolver struct {
	store      SecretStore
	configRepo ConfigRepository
	deriver    ssService.KeyDeriver
	codec      ssService.Codec
	logger     *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(
	store SecretStore,
	configRepo ConfigRepository,
	deriver ssService.KeyDeriver,
	codec ssService.Codec,
	logger *slog.Logger,
) Resolver {
	return &resolver{
		store:      store,
		configRepo: configRepo,
		deriver:    deriver,
		codec:      codec,
		logger:     logger,
	}
}

// Resolve decrypts the envelope named by req.Source with the keychain password.
//
// Errors wrap one of ssDomain.ErrInvalidRequest, ErrSecretUnavailable,
// ErrConfigRead, ErrConfigFieldMissing, ErrMalformed, ErrUnsupportedVersion,
// ErrCipherFailure or ErrInvalidUTF8.
func (r *resolver) Resolve(ctx context.Context, req ResolveRequest) (*ssDomain.Resolution, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate resolution id: %w", err)
	}
	logger := r.logger.With(slog.String("resolution_id", id.String()))

	lookup, err := lookupPassword(ctx, r.store, logger, req.Accounts)
	if err != nil {
		return nil, err
	}

	blob, err := r.loadBlob(logger, req.Source)
	if err != nil {
		return nil, err
	}

	key := r.deriver.DeriveKey(lookup.password)
	defer key.Zero()

	plaintext, err := r.codec.Decrypt(blob, key)
	if err != nil {
		return nil, err
	}
	defer ssDomain.Zero(plaintext)

	resolution := &ssDomain.Resolution{
		ID:           id,
		Account:      lookup.account,
		UsedFallback: lookup.usedFallback,
		Source:       req.Source,
		EncryptedKey: blob,
		Plaintext:    string(plaintext),
	}
	if req.RevealPassword {
		resolution.Password = lookup.password
	}

	logger.Debug("encrypted key resolved",
		slog.String("account", lookup.account),
		slog.String("framing", string(r.codec.Framing())),
	)

	return resolution, nil
}

func (r *resolver) loadBlob(logger *slog.Logger, source ssDomain.BlobSource) (string, error) {
	if source.Kind == ssDomain.BlobSourceLiteral {
		logger.Info("using directly provided encrypted key")
		return source.Value, nil
	}

	logger.Info("using config path", slog.String("path", source.Value))
	return r.configRepo.LoadEncryptedKey(source.Value)
}
