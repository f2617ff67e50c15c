package service

import (
	"crypto/sha1" //nolint:gosec // PBKDF2-HMAC-SHA1 is fixed by the upstream scheme

	"golang.org/x/crypto/pbkdf2"

	ssDomain "github.com/allisson/safestorage/internal/safestorage/domain"
)

// PBKDF2KeyDeriver derives keys with PBKDF2-HMAC-SHA1.
type PBKDF2KeyDeriver struct {
	salt       []byte
	iterations int
}

// NewKeyDeriver creates a PBKDF2KeyDeriver for params.
// The key length must be ssDomain.KeyLength and the iteration count positive.
func NewKeyDeriver(params ssDomain.KeyDerivationParams) (*PBKDF2KeyDeriver, error) {
	if params.KeyLength != ssDomain.KeyLength || params.Iterations < 1 {
		return nil, ssDomain.ErrInvalidKeyDerivationParams
	}
	return &PBKDF2KeyDeriver{
		salt:       []byte(params.Salt),
		iterations: params.Iterations,
	}, nil
}

// NewDefaultKeyDeriver creates a deriver with ssDomain.DefaultKeyDerivationParams.
func NewDefaultKeyDeriver() *PBKDF2KeyDeriver {
	return &PBKDF2KeyDeriver{
		salt:       []byte(ssDomain.DefaultKeyDerivationParams.Salt),
		iterations: ssDomain.DefaultKeyDerivationParams.Iterations,
	}
}

// DeriveKey stretches password into a 16-byte key.
func (d *PBKDF2KeyDeriver) DeriveKey(password string) ssDomain.DerivedKey {
	raw := pbkdf2.Key([]byte(password), d.salt, d.iterations, ssDomain.KeyLength, sha1.New)
	defer ssDomain.Zero(raw)

	var key ssDomain.DerivedKey
	copy(key[:], raw)
	return key
}

// DeriveKey derives a key from password with the default parameters.
func DeriveKey(password string) ssDomain.DerivedKey {
	return NewDefaultKeyDeriver().DeriveKey(password)
}
