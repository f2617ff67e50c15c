// Package domain defines the safe storage envelope, key material and errors.
//
// The scheme reproduces the desktop-browser "safe storage" design used on
// macOS: a password kept in the platform keychain is stretched with
// PBKDF2-HMAC-SHA1 into an AES-128 key, and values are stored as
// "v10" || AES-128-CBC(PKCS#7) ciphertext, hex-encoded.
package domain

const (
	// VersionTag prefixes every envelope produced by this scheme generation.
	VersionTag = "v10"

	// BlockSize is the AES block size in bytes.
	BlockSize = 16

	// KeyLength is the AES-128 key size in bytes.
	KeyLength = 16

	// IVLength is the CBC initialization vector size in bytes.
	IVLength = BlockSize
)

// KeyDerivationParams groups the PBKDF2 inputs of the scheme.
type KeyDerivationParams struct {
	Salt       string
	Iterations int
	KeyLength  int
}

// DefaultKeyDerivationParams is the only parameter set compatible with
// ciphertexts written by the upstream application.
var DefaultKeyDerivationParams = KeyDerivationParams{
	Salt:       "saltysalt",
	Iterations: 1003,
	KeyLength:  KeyLength,
}

// Framing selects how the bytes after the version tag are laid out.
type Framing string

const (
	// FramingFixedIV treats everything after the tag as ciphertext and uses
	// an IV of 16 ASCII spaces. This is the upstream layout and the default.
	FramingFixedIV Framing = "fixed"

	// FramingRandomIV stores a random 16-byte IV right after the tag. Only
	// envelopes written by this tool use it.
	FramingRandomIV Framing = "random"
)

// ParseFraming converts a configuration string into a Framing.
// An empty string selects FramingFixedIV.
func ParseFraming(s string) (Framing, error) {
	switch Framing(s) {
	case "", FramingFixedIV:
		return FramingFixedIV, nil
	case FramingRandomIV:
		return FramingRandomIV, nil
	default:
		return "", ErrUnsupportedFraming
	}
}

// IVPolicy selects the IV used when encrypting.
type IVPolicy int

const (
	// IVFixed uses the all-spaces IV and does not store it.
	IVFixed IVPolicy = iota
	// IVRandom draws a fresh IV from crypto/rand and stores it inline.
	IVRandom
)

// Framing returns the envelope layout written under the policy.
func (p IVPolicy) Framing() Framing {
	if p == IVRandom {
		return FramingRandomIV
	}
	return FramingFixedIV
}

// String implements fmt.Stringer.
func (p IVPolicy) String() string {
	switch p {
	case IVFixed:
		return "fixed"
	case IVRandom:
		return "random"
	default:
		return "unknown"
	}
}

// FixedIV returns the upstream IV: 16 ASCII space characters.
func FixedIV() []byte {
	iv := make([]byte, IVLength)
	for i := range iv {
		iv[i] = ' '
	}
	return iv
}
