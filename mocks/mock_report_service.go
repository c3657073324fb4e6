package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"entregas/internal/domain"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Ledger(ctx context.Context, filter domain.ReportFilter) ([]domain.Delivery, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Delivery), args.Error(1)
}

func (m *MockReportService) Dashboard(ctx context.Context, tenant string, ref *time.Time) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, tenant, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}
