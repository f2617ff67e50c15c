package commands

import (
	"context"
	"fmt"
	"log/slog"
)

// PasswordSealer wraps a password with a KMS key.
type PasswordSealer interface {
	Seal(ctx context.Context, account, secret string) (string, error)
}

// RunSealPassword wraps a safe storage password with the KMS key from
// KMS_KEY_URI and prints a KMS_SECRETS entry for the kms secret store.
// The password is read from the reader when empty.
//
// Output format:
//   - KMS_SECRETS="<account>:<base64-encoded-kms-ciphertext>"
func RunSealPassword(
	ctx context.Context,
	sealer PasswordSealer,
	logger *slog.Logger,
	streams IOTuple,
	account, password string,
) error {
	if account == "" {
		return fmt.Errorf("%w: account is required", ErrUsage)
	}

	password, err := readSecret(streams.Reader, password)
	if err != nil {
		return err
	}

	entry, err := sealer.Seal(ctx, account, password)
	if err != nil {
		return fmt.Errorf("failed to seal password: %w", err)
	}

	logger.Info("password sealed", slog.String("account", account))

	_, err = fmt.Fprintf(streams.Writer, "KMS_SECRETS=%q\n", entry)
	return err
}
