package domain

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// EncryptedBlob is a decoded safe storage envelope.
//
// Wire format (hex-encoded as a whole):
//
//	fixed framing:  "v10" || ciphertext
//	random framing: "v10" || iv (16 bytes) || ciphertext
//
// IV is nil for fixed framing; the all-spaces IV is implied.
type EncryptedBlob struct {
	Framing    Framing
	IV         []byte
	Ciphertext []byte
}

// ParseEncryptedBlob hex-decodes content and splits it according to framing.
//
// The ciphertext is not checked for block alignment here; that belongs to
// the cipher. A random-framed blob too short to hold an IV is reported as
// ErrCipherFailure since no ciphertext can be recovered from it.
func ParseEncryptedBlob(content string, framing Framing) (EncryptedBlob, error) {
	raw, err := hex.DecodeString(content)
	if err != nil {
		return EncryptedBlob{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if !bytes.HasPrefix(raw, []byte(VersionTag)) {
		return EncryptedBlob{}, fmt.Errorf("%w: expected prefix %q", ErrUnsupportedVersion, VersionTag)
	}
	body := raw[len(VersionTag):]

	switch framing {
	case FramingFixedIV:
		return EncryptedBlob{Framing: framing, Ciphertext: body}, nil
	case FramingRandomIV:
		if len(body) < IVLength {
			return EncryptedBlob{}, fmt.Errorf(
				"%w: envelope holds %d bytes after the tag, need at least %d for the iv",
				ErrCipherFailure,
				len(body),
				IVLength,
			)
		}
		return EncryptedBlob{
			Framing:    framing,
			IV:         body[:IVLength],
			Ciphertext: body[IVLength:],
		}, nil
	default:
		return EncryptedBlob{}, ErrUnsupportedFraming
	}
}

// EffectiveIV returns the IV used for CBC chaining.
func (eb EncryptedBlob) EffectiveIV() []byte {
	if eb.Framing == FramingRandomIV {
		return eb.IV
	}
	return FixedIV()
}

// Bytes returns the raw envelope: tag, inline IV (random framing only), ciphertext.
func (eb EncryptedBlob) Bytes() []byte {
	out := make([]byte, 0, len(VersionTag)+len(eb.IV)+len(eb.Ciphertext))
	out = append(out, VersionTag...)
	if eb.Framing == FramingRandomIV {
		out = append(out, eb.IV...)
	}
	return append(out, eb.Ciphertext...)
}

// String returns the hex-encoded envelope.
func (eb EncryptedBlob) String() string {
	return hex.EncodeToString(eb.Bytes())
}
