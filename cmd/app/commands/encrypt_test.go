package commands

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	ssDomain "github.com/allisson/safestorage/internal/safestorage/domain"
	ssUsecase "github.com/allisson/safestorage/internal/safestorage/usecase"
	ssMocks "github.com/allisson/safestorage/internal/safestorage/usecase/mocks"
)

func TestRunEncrypt(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("fixed-iv-text-output", func(t *testing.T) {
		mockEncrypter := &ssMocks.MockEncrypter{}
		mockEncrypter.On("Encrypt", ctx, ssUsecase.EncryptRequest{
			Accounts:  testAccounts,
			Plaintext: "hello world",
			Policy:    ssDomain.IVFixed,
		}).Return(helloBlob, nil)

		var out bytes.Buffer
		err := RunEncrypt(ctx, mockEncrypter, logger, IOTuple{Writer: &out}, testAccounts, "hello world", false, "text")

		require.NoError(t, err)
		require.Equal(t, "Encrypted key: "+helloBlob+"\n", out.String())
		mockEncrypter.AssertExpectations(t)
	})

	t.Run("random-iv-from-reader-json-output", func(t *testing.T) {
		mockEncrypter := &ssMocks.MockEncrypter{}
		mockEncrypter.On("Encrypt", ctx, ssUsecase.EncryptRequest{
			Accounts:  testAccounts,
			Plaintext: "from stdin",
			Policy:    ssDomain.IVRandom,
		}).Return("763130aabb", nil)

		var out bytes.Buffer
		streams := IOTuple{Reader: strings.NewReader("from stdin\n"), Writer: &out}
		err := RunEncrypt(ctx, mockEncrypter, logger, streams, testAccounts, "", true, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"encrypted_key": "763130aabb"`)
		require.Contains(t, out.String(), `"framing": "random"`)
		mockEncrypter.AssertExpectations(t)
	})

	t.Run("empty-input", func(t *testing.T) {
		mockEncrypter := &ssMocks.MockEncrypter{}
		streams := IOTuple{Reader: strings.NewReader(""), Writer: &bytes.Buffer{}}

		err := RunEncrypt(ctx, mockEncrypter, logger, streams, testAccounts, "", false, "text")

		require.ErrorIs(t, err, ErrUsage)
		mockEncrypter.AssertNotCalled(t, "Encrypt")
	})

	t.Run("encrypter-error", func(t *testing.T) {
		mockEncrypter := &ssMocks.MockEncrypter{}
		mockEncrypter.On("Encrypt", ctx, ssUsecase.EncryptRequest{
			Accounts:  testAccounts,
			Plaintext: "hello world",
			Policy:    ssDomain.IVRandom,
		}).Return("", ssDomain.ErrFramingMismatch)

		err := RunEncrypt(ctx, mockEncrypter, logger, IOTuple{Writer: &bytes.Buffer{}}, testAccounts, "hello world", true, "text")

		require.ErrorIs(t, err, ssDomain.ErrFramingMismatch)
	})
}
