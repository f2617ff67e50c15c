package domain

import (
	"github.com/allisson/safestorage/internal/errors"
)

// Envelope and cipher errors. All of them mean the stored value cannot be
// turned back into plaintext with the key at hand.
var (
	// ErrMalformed indicates the envelope is not valid hex (bad character or odd length).
	ErrMalformed = errors.Wrap(errors.ErrInvalidInput, "malformed encrypted blob")

	// ErrUnsupportedVersion indicates the envelope does not start with VersionTag.
	ErrUnsupportedVersion = errors.Wrap(errors.ErrInvalidInput, "unsupported encryption version")

	// ErrCipherFailure indicates CBC decryption failed: misaligned ciphertext,
	// invalid padding, or a wrong key or password.
	ErrCipherFailure = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrInvalidUTF8 indicates the decrypted bytes are not valid UTF-8 text.
	ErrInvalidUTF8 = errors.Wrap(errors.ErrInvalidInput, "decrypted value is not valid utf-8")

	// ErrInvalidKeySize indicates key material is not KeyLength bytes long.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidKeyDerivationParams indicates a PBKDF2 parameter set that cannot yield a DerivedKey.
	ErrInvalidKeyDerivationParams = errors.Wrap(errors.ErrInvalidInput, "invalid key derivation parameters")

	// ErrUnsupportedFraming indicates an unknown framing name.
	ErrUnsupportedFraming = errors.Wrap(errors.ErrInvalidInput, "unsupported framing")

	// ErrFramingMismatch indicates an IV policy that the codec framing cannot read back.
	ErrFramingMismatch = errors.Wrap(errors.ErrInvalidInput, "iv policy does not match codec framing")
)

// Resolution errors.
var (
	// ErrSecretUnavailable indicates both secure storage lookups failed.
	ErrSecretUnavailable = errors.Wrap(errors.ErrUnavailable, "safe storage password unavailable")

	// ErrConfigRead indicates the configuration file is missing, unreadable or not JSON.
	ErrConfigRead = errors.Wrap(errors.ErrNotFound, "cannot read configuration file")

	// ErrConfigFieldMissing indicates the configuration lacks a string encryptedKey field.
	ErrConfigFieldMissing = errors.Wrap(errors.ErrInvalidInput, "configuration field encryptedKey missing")

	// ErrInvalidRequest indicates a resolve or encrypt request failed validation.
	ErrInvalidRequest = errors.Wrap(errors.ErrInvalidInput, "invalid request")
)
