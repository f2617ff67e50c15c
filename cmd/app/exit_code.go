package main

import (
	"github.com/allisson/safestorage/cmd/app/commands"
	"github.com/allisson/safestorage/internal/config"
	"github.com/allisson/safestorage/internal/errors"
	ssDomain "github.com/allisson/safestorage/internal/safestorage/domain"
	"github.com/allisson/safestorage/internal/secretstore"
)

// Process exit codes.
const (
	exitGeneric           = 1
	exitUsage             = 2
	exitSecretUnavailable = 3
	exitConfiguration     = 4
	exitDecryption        = 5
)

// exitCode maps an error to the process exit status. Secret lookup failures
// are checked first because they wrap the store's own not-found causes.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ssDomain.ErrSecretUnavailable):
		return exitSecretUnavailable
	case errors.Is(err, ssDomain.ErrConfigRead),
		errors.Is(err, ssDomain.ErrConfigFieldMissing),
		errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, secretstore.ErrUnsupportedBackend),
		errors.Is(err, secretstore.ErrKMSKeyURIRequired):
		return exitConfiguration
	case errors.Is(err, ssDomain.ErrMalformed),
		errors.Is(err, ssDomain.ErrUnsupportedVersion),
		errors.Is(err, ssDomain.ErrCipherFailure),
		errors.Is(err, ssDomain.ErrInvalidUTF8):
		return exitDecryption
	case errors.Is(err, commands.ErrUsage),
		errors.Is(err, ssDomain.ErrInvalidRequest),
		errors.Is(err, ssDomain.ErrUnsupportedFraming),
		errors.Is(err, ssDomain.ErrFramingMismatch):
		return exitUsage
	default:
		return exitGeneric
	}
}
