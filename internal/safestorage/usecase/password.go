package usecase

import (
	"context"
	"fmt"
	"log/slog"

	ssDomain "github.com/allisson/safestorage/internal/safestorage/domain"
)

// passwordLookup is the keychain password together with the account that held it.
type passwordLookup struct {
	password     string
	account      string
	usedFallback bool
}

// lookupPassword reads the safe storage password for the primary account and,
// on any failure, retries once with the fallback account. It calls the store
// at most twice.
func lookupPassword(
	ctx context.Context,
	store SecretStore,
	logger *slog.Logger,
	accounts Accounts,
) (passwordLookup, error) {
	password, primaryErr := store.GetSecret(ctx, accounts.Service, accounts.PrimaryAccount)
	if primaryErr == nil {
		return passwordLookup{password: password, account: accounts.PrimaryAccount}, nil
	}

	logger.Info("primary keychain account unavailable, trying fallback",
		slog.String("service", accounts.Service),
		slog.String("account", accounts.PrimaryAccount),
		slog.String("fallback_account", accounts.FallbackAccount),
		slog.Any("error", primaryErr),
	)

	password, fallbackErr := store.GetSecret(ctx, accounts.Service, accounts.FallbackAccount)
	if fallbackErr == nil {
		return passwordLookup{password: password, account: accounts.FallbackAccount, usedFallback: true}, nil
	}

	return passwordLookup{}, fmt.Errorf(
		"%w: service %q: account %q: %w; account %q: %w",
		ssDomain.ErrSecretUnavailable,
		accounts.Service,
		accounts.PrimaryAccount,
		primaryErr,
		accounts.FallbackAccount,
		fallbackErr,
	)
}

// LookupPassword validates accounts and reads the safe storage password with
// the same fallback order Resolve uses. It returns the password and the
// account that held it.
func LookupPassword(
	ctx context.Context,
	store SecretStore,
	logger *slog.Logger,
	accounts Accounts,
) (password, account string, err error) {
	if err := accounts.Validate(); err != nil {
		return "", "", wrapInvalidRequest(err)
	}

	lookup, err := lookupPassword(ctx, store, logger, accounts)
	if err != nil {
		return "", "", err
	}
	return lookup.password, lookup.account, nil
}
