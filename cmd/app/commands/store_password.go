package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/allisson/safestorage/internal/secretstore"
)

// RunStorePassword writes a safe storage password into the OS credential store.
// The password is read from the reader when empty.
func RunStorePassword(
	ctx context.Context,
	writer secretstore.Writer,
	logger *slog.Logger,
	streams IOTuple,
	service, account, password string,
) error {
	if service == "" || account == "" {
		return fmt.Errorf("%w: service and account are required", ErrUsage)
	}

	password, err := readSecret(streams.Reader, password)
	if err != nil {
		return err
	}

	if err := writer.SetSecret(ctx, service, account, password); err != nil {
		return fmt.Errorf("failed to store password: %w", err)
	}

	logger.Info("password stored",
		slog.String("service", service),
		slog.String("account", account),
	)

	_, err = fmt.Fprintf(streams.Writer, "Stored password for service %q, account %q\n", service, account)
	return err
}
