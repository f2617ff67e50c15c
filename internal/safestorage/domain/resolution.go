package domain

import (
	"github.com/google/uuid"
)

// BlobSourceKind tells where an encrypted key comes from.
type BlobSourceKind string

const (
	// BlobSourceLiteral means the hex envelope was supplied directly.
	BlobSourceLiteral BlobSourceKind = "literal"
	// BlobSourceConfigFile means the envelope is read from a JSON configuration file.
	BlobSourceConfigFile BlobSourceKind = "config_file"
)

// BlobSource is either a literal envelope or a configuration file path.
type BlobSource struct {
	Kind  BlobSourceKind
	Value string // hex envelope or file path, depending on Kind
}

// Literal returns a BlobSource holding the envelope itself.
func Literal(blob string) BlobSource {
	return BlobSource{Kind: BlobSourceLiteral, Value: blob}
}

// ConfigFile returns a BlobSource reading encryptedKey from path.
func ConfigFile(path string) BlobSource {
	return BlobSource{Kind: BlobSourceConfigFile, Value: path}
}

// Resolution is the outcome of a successful resolve.
type Resolution struct {
	ID           uuid.UUID // UUIDv7, correlates log lines of one run
	Account      string    // keychain account whose password decrypted the blob
	UsedFallback bool
	Source       BlobSource
	EncryptedKey string // hex envelope as read
	Plaintext    string
	Password     string // only set when the request asked to reveal it
}
