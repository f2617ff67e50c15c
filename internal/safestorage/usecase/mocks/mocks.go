// Package mocks provides mock implementations for testing safe storage use cases.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	ssDomain "github.com/allisson/safestorage/internal/safestorage/domain"
	ssUsecase "github.com/allisson/safestorage/internal/safestorage/usecase"
)

// MockSecretStore is a mock implementation of SecretStore for testing.
type MockSecretStore struct {
	mock.Mock
}

// GetSecret mocks the GetSecret method of SecretStore.
func (m *MockSecretStore) GetSecret(ctx context.Context, service, account string) (string, error) {
	args := m.Called(ctx, service, account)
	return args.String(0), args.Error(1)
}

// MockConfigRepository is a mock implementation of ConfigRepository for testing.
type MockConfigRepository struct {
	mock.Mock
}

// LoadEncryptedKey mocks the LoadEncryptedKey method of ConfigRepository.
func (m *MockConfigRepository) LoadEncryptedKey(path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}

// MockResolver is a mock implementation of Resolver for testing.
type MockResolver struct {
	mock.Mock
}

// Resolve mocks the Resolve method of Resolver.
func (m *MockResolver) Resolve(
	ctx context.Context,
	req ssUsecase.ResolveRequest,
) (*ssDomain.Resolution, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ssDomain.Resolution), args.Error(1)
}

// MockEncrypter is a mock implementation of Encrypter for testing.
type MockEncrypter struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of Encrypter.
func (m *MockEncrypter) Encrypt(ctx context.Context, req ssUsecase.EncryptRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
