package commands

import (
	"context"
	"fmt"
	"log/slog"

	ssDomain "github.com/allisson/safestorage/internal/safestorage/domain"
	ssUsecase "github.com/allisson/safestorage/internal/safestorage/usecase"
)

// RunEncrypt seals plaintext under the keychain password and prints the hex envelope.
// The plaintext is read from the reader when empty.
//
// With randomIV the envelope carries its own IV and can only be read back with
// the random framing (--framing random or CIPHER_FRAMING=random); the encrypter
// must be built with that framing as well.
func RunEncrypt(
	ctx context.Context,
	encrypter ssUsecase.Encrypter,
	logger *slog.Logger,
	streams IOTuple,
	accounts ssUsecase.Accounts,
	plaintext string,
	randomIV bool,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	plaintext, err := readSecret(streams.Reader, plaintext)
	if err != nil {
		return err
	}

	policy := ssDomain.IVFixed
	if randomIV {
		policy = ssDomain.IVRandom
	}

	blob, err := encrypter.Encrypt(ctx, ssUsecase.EncryptRequest{
		Accounts:  accounts,
		Plaintext: plaintext,
		Policy:    policy,
	})
	if err != nil {
		return fmt.Errorf("failed to encrypt value: %w", err)
	}

	logger.Info("value encrypted", slog.String("iv_policy", policy.String()))

	if format == "json" {
		return writeJSON(streams.Writer, map[string]interface{}{
			"encrypted_key": blob,
			"framing":       string(policy.Framing()),
		})
	}

	_, err = fmt.Fprintf(streams.Writer, "Encrypted key: %s\n", blob)
	return err
}
