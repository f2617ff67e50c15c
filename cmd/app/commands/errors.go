package commands

import (
	"github.com/allisson/safestorage/internal/errors"
)

// ErrUsage marks errors caused by the command line itself.
var ErrUsage = errors.Wrap(errors.ErrInvalidInput, "usage error")
