package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	ssDomain "github.com/allisson/safestorage/internal/safestorage/domain"
	ssUsecase "github.com/allisson/safestorage/internal/safestorage/usecase"
	ssMocks "github.com/allisson/safestorage/internal/safestorage/usecase/mocks"
)

const helloBlob = "763130c49ae67852c5e0a252ecf407528a460d"

var testAccounts = ssUsecase.Accounts{
	Service:         "Signal Safe Storage",
	PrimaryAccount:  "Signal Key",
	FallbackAccount: "Signal",
}

func TestRunDecrypt(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("literal-text-output", func(t *testing.T) {
		mockResolver := &ssMocks.MockResolver{}
		mockResolver.On("Resolve", ctx, ssUsecase.ResolveRequest{
			Accounts: testAccounts,
			Source:   ssDomain.Literal(helloBlob),
		}).Return(&ssDomain.Resolution{
			ID:           uuid.Must(uuid.NewV7()),
			Account:      "Signal Key",
			Source:       ssDomain.Literal(helloBlob),
			EncryptedKey: helloBlob,
			Plaintext:    "hello world",
		}, nil)

		var out bytes.Buffer
		err := RunDecrypt(ctx, mockResolver, logger, &out, DecryptInput{
			Accounts:     testAccounts,
			EncryptedKey: helloBlob,
			ConfigPath:   "/ignored/config.json",
		})

		require.NoError(t, err)
		require.Equal(t,
			"Using directly provided encrypted key.\n"+
				"Encrypted key: "+helloBlob+"\n"+
				"Decrypted key: hello world\n",
			out.String(),
		)
		mockResolver.AssertExpectations(t)
	})

	t.Run("config-path-with-password", func(t *testing.T) {
		mockResolver := &ssMocks.MockResolver{}
		mockResolver.On("Resolve", ctx, ssUsecase.ResolveRequest{
			Accounts:       testAccounts,
			Source:         ssDomain.ConfigFile("/tmp/config.json"),
			RevealPassword: true,
		}).Return(&ssDomain.Resolution{
			ID:           uuid.Must(uuid.NewV7()),
			Account:      "Signal",
			UsedFallback: true,
			Source:       ssDomain.ConfigFile("/tmp/config.json"),
			EncryptedKey: helloBlob,
			Plaintext:    "hello world",
			Password:     "test",
		}, nil)

		var out bytes.Buffer
		err := RunDecrypt(ctx, mockResolver, logger, &out, DecryptInput{
			Accounts:   testAccounts,
			ConfigPath: "/tmp/config.json",
			PrintKey:   true,
			Format:     "text",
		})

		require.NoError(t, err)
		require.Contains(t, out.String(), "Secure password retrieved: test\n")
		require.Contains(t, out.String(), "Using config path: /tmp/config.json\n")
		require.Contains(t, out.String(), "Decrypted key: hello world\n")
		mockResolver.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockResolver := &ssMocks.MockResolver{}
		mockResolver.On("Resolve", ctx, ssUsecase.ResolveRequest{
			Accounts: testAccounts,
			Source:   ssDomain.ConfigFile("/tmp/config.json"),
		}).Return(&ssDomain.Resolution{
			ID:           uuid.Must(uuid.NewV7()),
			Account:      "Signal Key",
			Source:       ssDomain.ConfigFile("/tmp/config.json"),
			EncryptedKey: helloBlob,
			Plaintext:    "hello world",
		}, nil)

		var out bytes.Buffer
		err := RunDecrypt(ctx, mockResolver, logger, &out, DecryptInput{
			Accounts:   testAccounts,
			ConfigPath: "/tmp/config.json",
			Format:     "json",
		})

		require.NoError(t, err)
		require.Contains(t, out.String(), `"decrypted_key": "hello world"`)
		require.Contains(t, out.String(), `"config_path": "/tmp/config.json"`)
		require.Contains(t, out.String(), `"source": "config_file"`)
		require.NotContains(t, out.String(), `"password"`)
		mockResolver.AssertExpectations(t)
	})

	t.Run("resolve-error", func(t *testing.T) {
		mockResolver := &ssMocks.MockResolver{}
		mockResolver.On("Resolve", ctx, ssUsecase.ResolveRequest{
			Accounts: testAccounts,
			Source:   ssDomain.Literal(helloBlob),
		}).Return(nil, ssDomain.ErrCipherFailure)

		var out bytes.Buffer
		err := RunDecrypt(ctx, mockResolver, logger, &out, DecryptInput{
			Accounts:     testAccounts,
			EncryptedKey: helloBlob,
		})

		require.ErrorIs(t, err, ssDomain.ErrCipherFailure)
		require.Empty(t, out.String())
	})

	t.Run("invalid-format", func(t *testing.T) {
		mockResolver := &ssMocks.MockResolver{}

		err := RunDecrypt(ctx, mockResolver, logger, &bytes.Buffer{}, DecryptInput{
			Accounts:     testAccounts,
			EncryptedKey: helloBlob,
			Format:       "yaml",
		})

		require.ErrorIs(t, err, ErrUsage)
		mockResolver.AssertNotCalled(t, "Resolve")
	})
}
