package domain

import (
	"encoding/hex"
)

// DerivedKey is the AES-128 key stretched from the safe storage password.
// Its size is fixed by the type, independent of the password length.
type DerivedKey [KeyLength]byte

// NewDerivedKey copies b into a DerivedKey. It fails unless b is exactly
// KeyLength bytes.
func NewDerivedKey(b []byte) (DerivedKey, error) {
	var k DerivedKey
	if len(b) != KeyLength {
		return k, ErrInvalidKeySize
	}
	copy(k[:], b)
	return k, nil
}

// Bytes returns the key material. The slice aliases k.
func (k *DerivedKey) Bytes() []byte {
	return k[:]
}

// Hex returns the key material hex-encoded.
func (k *DerivedKey) Hex() string {
	return hex.EncodeToString(k[:])
}

// Zero clears the key material.
func (k *DerivedKey) Zero() {
	Zero(k[:])
}

// IsZero reports whether the key is all zero bytes.
func (k *DerivedKey) IsZero() bool {
	var empty DerivedKey
	return *k == empty
}
