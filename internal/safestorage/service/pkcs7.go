package service

import (
	"bytes"
	"crypto/subtle"

	"github.com/allisson/safestorage/internal/errors"
)

var (
	errPaddingSize    = errors.New("invalid padding size")
	errPaddingContent = errors.New("invalid padding content")
	errNotAligned     = errors.New("data is not a multiple of the block size")
)

// pkcs7Pad appends 1..blockSize bytes, each holding the pad length.
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

// pkcs7Unpad verifies and strips PKCS#7 padding. Every padding byte is
// checked, not only the last one.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errNotAligned
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, errPaddingSize
	}

	pad := data[len(data)-n:]
	want := bytes.Repeat([]byte{byte(n)}, n)
	if subtle.ConstantTimeCompare(pad, want) != 1 {
		return nil, errPaddingContent
	}

	return data[:len(data)-n], nil
}
