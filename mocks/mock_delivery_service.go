package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"entregas/internal/domain"
	"entregas/internal/service"
)

// MockDeliveryService is a mock implementation of service.DeliveryService.
type MockDeliveryService struct {
	mock.Mock
}

func (m *MockDeliveryService) Create(ctx context.Context, input service.CreateDeliveryInput) (*domain.Delivery, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Delivery), args.Error(1)
}

func (m *MockDeliveryService) GetByID(ctx context.Context, tenant string, id int64) (*domain.Delivery, error) {
	args := m.Called(ctx, tenant, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Delivery), args.Error(1)
}

func (m *MockDeliveryService) ListByTenant(ctx context.Context, tenant string) ([]domain.Delivery, error) {
	args := m.Called(ctx, tenant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Delivery), args.Error(1)
}

func (m *MockDeliveryService) Update(ctx context.Context, tenant string, id int64, input service.DeliveryInput) (*domain.Delivery, error) {
	args := m.Called(ctx, tenant, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Delivery), args.Error(1)
}

func (m *MockDeliveryService) Delete(ctx context.Context, tenant string, id int64) error {
	args := m.Called(ctx, tenant, id)
	return args.Error(0)
}
