package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"unicode/utf8"

	ssDomain "github.com/allisson/safestorage/internal/safestorage/domain"
)

// CBCCodec implements Codec with AES-128-CBC and PKCS#7 padding.
//
// Decryption never guesses the framing: a codec built for fixed framing
// treats every byte after the tag as ciphertext, and a codec built for
// random framing always consumes an inline IV first.
type CBCCodec struct {
	framing ssDomain.Framing
}

// NewCBCCodec creates a codec for the given framing.
func NewCBCCodec(framing ssDomain.Framing) (*CBCCodec, error) {
	if _, err := ssDomain.ParseFraming(string(framing)); err != nil {
		return nil, err
	}
	if framing == "" {
		framing = ssDomain.FramingFixedIV
	}
	return &CBCCodec{framing: framing}, nil
}

// NewDefaultCBCCodec creates a codec for the upstream fixed-IV framing.
func NewDefaultCBCCodec() *CBCCodec {
	return &CBCCodec{framing: ssDomain.FramingFixedIV}
}

// Framing reports the envelope layout the codec reads.
func (c *CBCCodec) Framing() ssDomain.Framing {
	return c.framing
}

// Encrypt pads plaintext, encrypts it under key and returns the hex envelope.
// The policy must produce the framing the codec reads, so that every
// envelope a codec emits can be decrypted by the same codec.
func (c *CBCCodec) Encrypt(
	plaintext []byte,
	key ssDomain.DerivedKey,
	policy ssDomain.IVPolicy,
) (string, error) {
	if policy.Framing() != c.framing {
		return "", fmt.Errorf("%w: policy %s, framing %s", ssDomain.ErrFramingMismatch, policy, c.framing)
	}

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return "", fmt.Errorf("failed to create AES cipher: %w", err)
	}

	var iv []byte
	switch policy {
	case ssDomain.IVRandom:
		iv = make([]byte, ssDomain.IVLength)
		if _, err := rand.Read(iv); err != nil {
			return "", fmt.Errorf("failed to generate iv: %w", err)
		}
	default:
		iv = ssDomain.FixedIV()
	}

	padded := pkcs7Pad(append([]byte(nil), plaintext...), ssDomain.BlockSize)
	defer ssDomain.Zero(padded)

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	blob := ssDomain.EncryptedBlob{Framing: c.framing, Ciphertext: ciphertext}
	if c.framing == ssDomain.FramingRandomIV {
		blob.IV = iv
	}
	return blob.String(), nil
}

// Decrypt parses the hex envelope and decrypts it under key.
//
// Errors:
//   - ErrMalformed: not hex
//   - ErrUnsupportedVersion: no "v10" prefix; no cipher work is done
//   - ErrCipherFailure: misaligned or empty ciphertext, bad padding, wrong key
//   - ErrInvalidUTF8: plaintext is not text
func (c *CBCCodec) Decrypt(blob string, key ssDomain.DerivedKey) ([]byte, error) {
	envelope, err := ssDomain.ParseEncryptedBlob(blob, c.framing)
	if err != nil {
		return nil, err
	}

	ct := envelope.Ciphertext
	if len(ct) == 0 || len(ct)%ssDomain.BlockSize != 0 {
		return nil, fmt.Errorf(
			"%w: ciphertext length %d is not a positive multiple of %d",
			ssDomain.ErrCipherFailure,
			len(ct),
			ssDomain.BlockSize,
		)
	}

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	decrypted := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, envelope.EffectiveIV()).CryptBlocks(decrypted, ct)

	plaintext, err := pkcs7Unpad(decrypted, ssDomain.BlockSize)
	if err != nil {
		ssDomain.Zero(decrypted)
		return nil, fmt.Errorf("%w: %v", ssDomain.ErrCipherFailure, err)
	}

	if !utf8.Valid(plaintext) {
		ssDomain.Zero(decrypted)
		return nil, ssDomain.ErrInvalidUTF8
	}

	return plaintext, nil
}

// DecryptString is Decrypt returning a string.
func (c *CBCCodec) DecryptString(blob string, key ssDomain.DerivedKey) (string, error) {
	plaintext, err := c.Decrypt(blob, key)
	if err != nil {
		return "", err
	}
	defer ssDomain.Zero(plaintext)
	return string(plaintext), nil
}
