package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"entregas/internal/config"
	"entregas/internal/domain"
	"entregas/internal/port"
	"entregas/internal/query"
)

// ReportService provides the ledger ("caderno") and dashboard views.
type ReportService interface {
	Ledger(ctx context.Context, filter domain.ReportFilter) ([]domain.Delivery, error)
	Dashboard(ctx context.Context, tenant string, ref *time.Time) (*domain.DashboardSummary, error)
}

// ReportOption customizes a ReportService.
type ReportOption func(*reportService)

// WithClock replaces the wall clock used to pick "today".
func WithClock(now func() time.Time) ReportOption {
	return func(s *reportService) {
		s.now = now
	}
}

type reportService struct {
	store         port.DeliveryRepository
	aggregator    *Aggregator
	defaultTenant string
	loc           *time.Location
	now           func() time.Time
}

// NewReportService creates a new ReportService implementation.
func NewReportService(store port.DeliveryRepository, cfg config.ReportConfig, opts ...ReportOption) ReportService {
	s := &reportService{
		store:         store,
		aggregator:    NewAggregator(store),
		defaultTenant: cfg.DefaultTenant,
		loc:           cfg.Location(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *reportService) Ledger(ctx context.Context, filter domain.ReportFilter) ([]domain.Delivery, error) {
	ledger, err := query.BuildLedger(filter)
	if err != nil {
		return nil, err
	}

	deliveries, err := s.store.Query(ctx, ledger)
	if err != nil {
		return nil, fmt.Errorf("reportService.Ledger: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return deliveries, nil
}

// Dashboard falls back to the configured default tenant when tenant is blank,
// and to today in the report timezone when ref is nil.
func (s *reportService) Dashboard(ctx context.Context, tenant string, ref *time.Time) (*domain.DashboardSummary, error) {
	tenant = strings.TrimSpace(tenant)
	if tenant == "" {
		tenant = s.defaultTenant
	}

	day := s.now().In(s.loc)
	if ref != nil {
		day = *ref
	}

	return s.aggregator.Summarize(ctx, tenant, day)
}
