package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	ssDomain "github.com/allisson/safestorage/internal/safestorage/domain"
	ssUsecase "github.com/allisson/safestorage/internal/safestorage/usecase"
)

// DecryptInput collects the decrypt command options.
type DecryptInput struct {
	Accounts ssUsecase.Accounts

	// EncryptedKey is a hex envelope given on the command line. When set,
	// ConfigPath is ignored.
	EncryptedKey string
	ConfigPath   string

	// PrintKey also prints the keychain password.
	PrintKey bool
	Format   string
}

// RunDecrypt resolves the application's master key and prints it.
//
// Text output:
//
//	Using config path: <path>            (or "Using directly provided encrypted key.")
//	Encrypted key: <hex>
//	Decrypted key: <plaintext>
//
// With PrintKey the keychain password is printed first. Treat the output as secret.
func RunDecrypt(
	ctx context.Context,
	resolver ssUsecase.Resolver,
	logger *slog.Logger,
	writer io.Writer,
	input DecryptInput,
) error {
	if err := validateFormat(input.Format); err != nil {
		return err
	}

	source := ssDomain.ConfigFile(input.ConfigPath)
	if input.EncryptedKey != "" {
		source = ssDomain.Literal(input.EncryptedKey)
	}

	resolution, err := resolver.Resolve(ctx, ssUsecase.ResolveRequest{
		Accounts:       input.Accounts,
		Source:         source,
		RevealPassword: input.PrintKey,
	})
	if err != nil {
		return fmt.Errorf("failed to decrypt encrypted key: %w", err)
	}

	logger.Debug("decrypt completed",
		slog.String("resolution_id", resolution.ID.String()),
		slog.Bool("used_fallback", resolution.UsedFallback),
	)

	if input.Format == "json" {
		return outputDecryptJSON(writer, resolution, input.PrintKey)
	}
	return outputDecryptText(writer, resolution, input.PrintKey)
}

// outputDecryptText outputs the result in human-readable text format.
func outputDecryptText(w io.Writer, resolution *ssDomain.Resolution, printKey bool) error {
	if printKey {
		if _, err := fmt.Fprintf(w, "Secure password retrieved: %s\n", resolution.Password); err != nil {
			return err
		}
	}

	var err error
	if resolution.Source.Kind == ssDomain.BlobSourceLiteral {
		_, err = fmt.Fprintln(w, "Using directly provided encrypted key.")
	} else {
		_, err = fmt.Fprintf(w, "Using config path: %s\n", resolution.Source.Value)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "Encrypted key: %s\nDecrypted key: %s\n", resolution.EncryptedKey, resolution.Plaintext)
	return err
}

// outputDecryptJSON outputs the result in JSON format for machine consumption.
func outputDecryptJSON(w io.Writer, resolution *ssDomain.Resolution, printKey bool) error {
	result := map[string]interface{}{
		"id":            resolution.ID.String(),
		"account":       resolution.Account,
		"used_fallback": resolution.UsedFallback,
		"source":        string(resolution.Source.Kind),
		"encrypted_key": resolution.EncryptedKey,
		"decrypted_key": resolution.Plaintext,
	}
	if resolution.Source.Kind == ssDomain.BlobSourceConfigFile {
		result["config_path"] = resolution.Source.Value
	}
	if printKey {
		result["password"] = resolution.Password
	}
	return writeJSON(w, result)
}
