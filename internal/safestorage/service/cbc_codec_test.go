package service

import (
	"crypto/rand"
	"errors"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ssDomain "github.com/allisson/safestorage/internal/safestorage/domain"
)

const (
	// "hello world" under DeriveKey("test") with the all-spaces IV.
	helloWorldBlob = "763130c49ae67852c5e0a252ecf407528a460d"

	// 64 hex chars, the shape of a real application master key.
	masterKeyPlaintext = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	masterKeyBlob      = "7631302a1e4965de850dcf0b824cb38ae28854ba0b60718626c67fa261928d5df3" +
		"97c5ed1b9c6f2f4d7d17ad78a02c3b7731e6993019041155e195d8503d36e720964600864671389909" +
		"dc3e16afd219d8bf0c"
)

func randomKey(t *testing.T) ssDomain.DerivedKey {
	t.Helper()
	var key ssDomain.DerivedKey
	_, err := rand.Read(key[:])
	require.NoError(t, err)
	return key
}

func TestNewCBCCodec(t *testing.T) {
	t.Run("default is fixed framing", func(t *testing.T) {
		assert.Equal(t, ssDomain.FramingFixedIV, NewDefaultCBCCodec().Framing())

		codec, err := NewCBCCodec("")
		require.NoError(t, err)
		assert.Equal(t, ssDomain.FramingFixedIV, codec.Framing())
	})

	t.Run("random framing", func(t *testing.T) {
		codec, err := NewCBCCodec(ssDomain.FramingRandomIV)
		require.NoError(t, err)
		assert.Equal(t, ssDomain.FramingRandomIV, codec.Framing())
	})

	t.Run("unknown framing", func(t *testing.T) {
		_, err := NewCBCCodec(ssDomain.Framing("auto"))
		assert.ErrorIs(t, err, ssDomain.ErrUnsupportedFraming)
	})
}

func TestCBCCodec_KnownVector(t *testing.T) {
	codec := NewDefaultCBCCodec()
	key := DeriveKey("test")

	t.Run("encrypt matches upstream bytes", func(t *testing.T) {
		blob, err := codec.Encrypt([]byte("hello world"), key, ssDomain.IVFixed)
		require.NoError(t, err)
		assert.Equal(t, helloWorldBlob, blob)
	})

	t.Run("decrypt hello world", func(t *testing.T) {
		plaintext, err := codec.DecryptString(helloWorldBlob, key)
		require.NoError(t, err)
		assert.Equal(t, "hello world", plaintext)
	})

	t.Run("decrypt master key", func(t *testing.T) {
		plaintext, err := codec.DecryptString(masterKeyBlob, key)
		require.NoError(t, err)
		assert.Equal(t, masterKeyPlaintext, plaintext)
	})

	t.Run("decrypt accepts uppercase hex", func(t *testing.T) {
		plaintext, err := codec.DecryptString(strings.ToUpper(helloWorldBlob), key)
		require.NoError(t, err)
		assert.Equal(t, "hello world", plaintext)
	})
}

func TestCBCCodec_FixedIVIsDeterministic(t *testing.T) {
	codec := NewDefaultCBCCodec()
	key := randomKey(t)

	first, err := codec.Encrypt([]byte("same input"), key, ssDomain.IVFixed)
	require.NoError(t, err)
	second, err := codec.Encrypt([]byte("same input"), key, ssDomain.IVFixed)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, hex.EncodeToString([]byte(ssDomain.VersionTag))))
}

func TestCBCCodec_RandomIVRoundTrip(t *testing.T) {
	codec, err := NewCBCCodec(ssDomain.FramingRandomIV)
	require.NoError(t, err)

	plaintexts := []string{
		"",
		"a",
		"hello world",
		"exactly16bytes!!",
		masterKeyPlaintext,
		"héllo wörld ✓ 鍵",
		strings.Repeat("long plaintext ", 100),
	}

	for _, plaintext := range plaintexts {
		key := randomKey(t)

		blob, err := codec.Encrypt([]byte(plaintext), key, ssDomain.IVRandom)
		require.NoError(t, err)

		raw, err := hex.DecodeString(blob)
		require.NoError(t, err)
		wantLen := len(ssDomain.VersionTag) + ssDomain.IVLength + (len(plaintext)/16+1)*16
		assert.Len(t, raw, wantLen)

		decrypted, err := codec.Decrypt(blob, key)
		require.NoError(t, err)
		assert.Equal(t, plaintext, string(decrypted))
	}
}

func TestCBCCodec_RandomIVDiffersPerEncryption(t *testing.T) {
	codec, err := NewCBCCodec(ssDomain.FramingRandomIV)
	require.NoError(t, err)
	key := randomKey(t)

	first, err := codec.Encrypt([]byte("same input"), key, ssDomain.IVRandom)
	require.NoError(t, err)
	second, err := codec.Encrypt([]byte("same input"), key, ssDomain.IVRandom)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCBCCodec_FramingMismatch(t *testing.T) {
	key := randomKey(t)

	_, err := NewDefaultCBCCodec().Encrypt([]byte("x"), key, ssDomain.IVRandom)
	assert.ErrorIs(t, err, ssDomain.ErrFramingMismatch)

	randomCodec, err := NewCBCCodec(ssDomain.FramingRandomIV)
	require.NoError(t, err)
	_, err = randomCodec.Encrypt([]byte("x"), key, ssDomain.IVFixed)
	assert.ErrorIs(t, err, ssDomain.ErrFramingMismatch)
}

func TestCBCCodec_NoFramingAutoDetection(t *testing.T) {
	// A fixed-IV blob holds exactly one block after the tag. Read with random
	// framing, that block becomes the IV and no ciphertext is left.
	randomCodec, err := NewCBCCodec(ssDomain.FramingRandomIV)
	require.NoError(t, err)

	_, err = randomCodec.Decrypt(helloWorldBlob, DeriveKey("test"))
	assert.ErrorIs(t, err, ssDomain.ErrCipherFailure)
}

func TestCBCCodec_DecryptErrors(t *testing.T) {
	codec := NewDefaultCBCCodec()
	key := DeriveKey("test")
	tag := hex.EncodeToString([]byte(ssDomain.VersionTag))

	tests := []struct {
		name    string
		blob    string
		key     ssDomain.DerivedKey
		wantErr error
	}{
		{name: "non-hex", blob: "v10notreallyhex", key: key, wantErr: ssDomain.ErrMalformed},
		{name: "odd length", blob: helloWorldBlob[:len(helloWorldBlob)-1], key: key, wantErr: ssDomain.ErrMalformed},
		{
			name:    "wrong tag",
			blob:    hex.EncodeToString([]byte("v11")) + helloWorldBlob[6:],
			key:     key,
			wantErr: ssDomain.ErrUnsupportedVersion,
		},
		{
			// Misaligned body: the tag check must fire before any cipher work.
			name:    "wrong tag with misaligned body",
			blob:    hex.EncodeToString([]byte("v20")) + "abcdef",
			key:     key,
			wantErr: ssDomain.ErrUnsupportedVersion,
		},
		{name: "tag only", blob: tag, key: key, wantErr: ssDomain.ErrCipherFailure},
		{name: "misaligned ciphertext", blob: helloWorldBlob[:len(helloWorldBlob)-2], key: key, wantErr: ssDomain.ErrCipherFailure},
		{name: "wrong password", blob: helloWorldBlob, key: DeriveKey("wrong"), wantErr: ssDomain.ErrCipherFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plaintext, err := codec.Decrypt(tt.blob, tt.key)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, plaintext)
		})
	}
}

func TestCBCCodec_WrongKeyNeverSucceedsSilently(t *testing.T) {
	codec := NewDefaultCBCCodec()
	blob, err := codec.Encrypt([]byte(masterKeyPlaintext), DeriveKey("right"), ssDomain.IVFixed)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		plaintext, err := codec.Decrypt(blob, randomKey(t))
		if err == nil {
			// Padding and UTF-8 can both validate by chance; the value still
			// must not be the original.
			assert.NotEqual(t, masterKeyPlaintext, string(plaintext))
			continue
		}
		assert.True(t,
			errors.Is(err, ssDomain.ErrCipherFailure) || errors.Is(err, ssDomain.ErrInvalidUTF8),
			"unexpected error: %v", err,
		)
	}
}

func TestCBCCodec_InvalidUTF8(t *testing.T) {
	codec := NewDefaultCBCCodec()
	key := randomKey(t)

	blob, err := codec.Encrypt([]byte{0xff, 0xfe, 0xfd}, key, ssDomain.IVFixed)
	require.NoError(t, err)

	_, err = codec.Decrypt(blob, key)
	assert.ErrorIs(t, err, ssDomain.ErrInvalidUTF8)
}
