package port

import (
	"context"

	"entregas/internal/domain"
	"entregas/internal/query"
)

// DeliveryRepository is the record store for deliveries.
// Query and Aggregate serve the reporting paths and never mutate data.
type DeliveryRepository interface {
	Create(ctx context.Context, d *domain.Delivery) error
	GetByID(ctx context.Context, id int64) (*domain.Delivery, error)
	Update(ctx context.Context, d *domain.Delivery) error
	Delete(ctx context.Context, id int64) error
	ListByTenant(ctx context.Context, tenant string) ([]domain.Delivery, error)
	Query(ctx context.Context, ledger *query.Ledger) ([]domain.Delivery, error)
	Aggregate(ctx context.Context, spec domain.AggregateSpec) ([]domain.AggregateBucket, error)
}
