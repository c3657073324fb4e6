package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"entregas/internal/domain"
	"entregas/internal/port"
)

// DeliveryInput carries the editable fields of a delivery.
type DeliveryInput struct {
	Name     string
	Address  string
	Phone    string
	Product  string
	Amount   decimal.Decimal
	Date     time.Time
	OnCredit bool
}

// CreateDeliveryInput is the DTO for registering a delivery.
type CreateDeliveryInput struct {
	DeliveryInput
	Tenant string
}

// DeliveryService manages single deliveries.
//
// Methods taking a tenant scope the lookup to it; an empty tenant means the
// caller did not identify itself and the lookup is by id alone.
type DeliveryService interface {
	Create(ctx context.Context, input CreateDeliveryInput) (*domain.Delivery, error)
	GetByID(ctx context.Context, tenant string, id int64) (*domain.Delivery, error)
	ListByTenant(ctx context.Context, tenant string) ([]domain.Delivery, error)
	Update(ctx context.Context, tenant string, id int64, input DeliveryInput) (*domain.Delivery, error)
	Delete(ctx context.Context, tenant string, id int64) error
}

type deliveryService struct {
	repo port.DeliveryRepository
}

// NewDeliveryService creates a new DeliveryService implementation.
func NewDeliveryService(repo port.DeliveryRepository) DeliveryService {
	return &deliveryService{repo: repo}
}

func (in *DeliveryInput) validate() error {
	required := []struct {
		field string
		value string
	}{
		{"nome", in.Name},
		{"endereco", in.Address},
		{"telefone", in.Phone},
		{"produto", in.Product},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrInvalidDelivery, r.field)
		}
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: data is required", domain.ErrInvalidDelivery)
	}
	if in.Amount.IsNegative() {
		return fmt.Errorf("%w: valor must not be negative", domain.ErrInvalidDelivery)
	}
	return nil
}

func (in *DeliveryInput) applyTo(d *domain.Delivery) {
	d.Name = strings.TrimSpace(in.Name)
	d.Address = strings.TrimSpace(in.Address)
	d.Phone = strings.TrimSpace(in.Phone)
	d.Product = strings.TrimSpace(in.Product)
	d.Amount = in.Amount
	d.Date = time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, time.UTC)
	d.OnCredit = in.OnCredit
}

func (s *deliveryService) Create(ctx context.Context, input CreateDeliveryInput) (*domain.Delivery, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	tenant := strings.TrimSpace(input.Tenant)
	if tenant == "" {
		return nil, fmt.Errorf("%w: empresa is required", domain.ErrInvalidDelivery)
	}

	d := &domain.Delivery{Tenant: tenant}
	input.applyTo(d)
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("deliveryService.Create: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return d, nil
}

func (s *deliveryService) GetByID(ctx context.Context, tenant string, id int64) (*domain.Delivery, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("deliveryService.GetByID: %w: %w", domain.ErrStoreUnavailable, err)
	}
	// Another tenant's delivery is reported as missing, not forbidden.
	if tenant != "" && d.Tenant != tenant {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (s *deliveryService) ListByTenant(ctx context.Context, tenant string) ([]domain.Delivery, error) {
	if strings.TrimSpace(tenant) == "" {
		return nil, domain.ErrInvalidTenant
	}
	deliveries, err := s.repo.ListByTenant(ctx, tenant)
	if err != nil {
		return nil, fmt.Errorf("deliveryService.ListByTenant: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return deliveries, nil
}

func (s *deliveryService) Update(ctx context.Context, tenant string, id int64, input DeliveryInput) (*domain.Delivery, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	d, err := s.GetByID(ctx, tenant, id)
	if err != nil {
		return nil, err
	}

	input.applyTo(d)
	if err := s.repo.Update(ctx, d); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("deliveryService.Update: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return d, nil
}

func (s *deliveryService) Delete(ctx context.Context, tenant string, id int64) error {
	if tenant != "" {
		if _, err := s.GetByID(ctx, tenant, id); err != nil {
			return err
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("deliveryService.Delete: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}
