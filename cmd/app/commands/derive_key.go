package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	ssService "github.com/allisson/safestorage/internal/safestorage/service"
	ssUsecase "github.com/allisson/safestorage/internal/safestorage/usecase"
)

// RunDeriveKey prints the AES key derived from the keychain password.
// Intended for debugging interoperability with other implementations.
func RunDeriveKey(
	ctx context.Context,
	store ssUsecase.SecretStore,
	deriver ssService.KeyDeriver,
	logger *slog.Logger,
	writer io.Writer,
	accounts ssUsecase.Accounts,
) error {
	password, account, err := ssUsecase.LookupPassword(ctx, store, logger, accounts)
	if err != nil {
		return fmt.Errorf("failed to read safe storage password: %w", err)
	}

	key := deriver.DeriveKey(password)
	defer key.Zero()

	logger.Info("key derived", slog.String("account", account))

	_, err = fmt.Fprintf(writer, "Derived key: %s\n", key.Hex())
	return err
}
