// Package service implements the safe storage key derivation and cipher codec.
package service

import (
	ssDomain "github.com/allisson/safestorage/internal/safestorage/domain"
)

// KeyDeriver turns a safe storage password into an AES-128 key.
type KeyDeriver interface {
	// DeriveKey is deterministic; an empty password is a valid input.
	DeriveKey(password string) ssDomain.DerivedKey
}

// Codec encodes and decodes hex safe storage envelopes.
type Codec interface {
	// Encrypt pads, encrypts and frames plaintext, returning the hex envelope.
	Encrypt(plaintext []byte, key ssDomain.DerivedKey, policy ssDomain.IVPolicy) (string, error)

	// Decrypt parses the hex envelope and returns the UTF-8 plaintext bytes.
	Decrypt(blob string, key ssDomain.DerivedKey) ([]byte, error)

	// Framing reports the envelope layout the codec reads.
	Framing() ssDomain.Framing
}
