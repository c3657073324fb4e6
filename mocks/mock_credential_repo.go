package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"entregas/internal/domain"
)

// MockCredentialRepo is a mock implementation of port.CredentialRepository.
type MockCredentialRepo struct {
	mock.Mock
}

func (m *MockCredentialRepo) GetByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}
