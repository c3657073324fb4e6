package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"entregas/internal/domain"
	"entregas/internal/port"
	"entregas/internal/query"
)

type deliveryRepo struct {
	db *sqlx.DB
}

// NewDeliveryRepo creates a new PostgreSQL-backed DeliveryRepository.
func NewDeliveryRepo(db *sqlx.DB) port.DeliveryRepository {
	return &deliveryRepo{db: db}
}

const deliveryColumns = "id, nome, endereco, telefone, produto, valor, data, empresa, fiado"

func (r *deliveryRepo) Create(ctx context.Context, d *domain.Delivery) error {
	stmt := `INSERT INTO entrega (nome, endereco, telefone, produto, valor, data, empresa, fiado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := r.db.QueryRowxContext(ctx, stmt,
		d.Name, d.Address, d.Phone, d.Product, d.Amount, d.Date, d.Tenant, d.OnCredit,
	).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("deliveryRepo.Create: %w", err)
	}
	return nil
}

func (r *deliveryRepo) GetByID(ctx context.Context, id int64) (*domain.Delivery, error) {
	var d domain.Delivery
	err := r.db.GetContext(ctx, &d,
		"SELECT "+deliveryColumns+" FROM entrega WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("deliveryRepo.GetByID: %w", err)
	}
	return &d, nil
}

func (r *deliveryRepo) Update(ctx context.Context, d *domain.Delivery) error {
	stmt := `UPDATE entrega
		SET nome = $1, endereco = $2, telefone = $3, produto = $4, valor = $5, data = $6, fiado = $7
		WHERE id = $8`
	result, err := r.db.ExecContext(ctx, stmt,
		d.Name, d.Address, d.Phone, d.Product, d.Amount, d.Date, d.OnCredit, d.ID)
	if err != nil {
		return fmt.Errorf("deliveryRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *deliveryRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM entrega WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deliveryRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *deliveryRepo) ListByTenant(ctx context.Context, tenant string) ([]domain.Delivery, error) {
	ledger, err := query.BuildListByTenant(tenant)
	if err != nil {
		return nil, err
	}
	return r.Query(ctx, ledger)
}

func (r *deliveryRepo) Query(ctx context.Context, ledger *query.Ledger) ([]domain.Delivery, error) {
	where, args, err := ledger.Where.SQL(1)
	if err != nil {
		return nil, fmt.Errorf("deliveryRepo.Query: %w", err)
	}
	order, err := ledger.OrderSQL()
	if err != nil {
		return nil, fmt.Errorf("deliveryRepo.Query: %w", err)
	}

	stmt := "SELECT " + deliveryColumns + " FROM entrega WHERE " + where
	if order != "" {
		stmt += " ORDER BY " + order
	}

	deliveries := []domain.Delivery{}
	if err := r.db.SelectContext(ctx, &deliveries, stmt, args...); err != nil {
		return nil, fmt.Errorf("deliveryRepo.Query: %w", err)
	}
	return deliveries, nil
}

// groupKeyExpr returns the bucket key expression for a grouping.
func groupKeyExpr(key domain.GroupingKey) (string, error) {
	switch key {
	case domain.GroupByDay:
		return "EXTRACT(DAY FROM data)::int", nil
	case domain.GroupByMonth:
		return "EXTRACT(MONTH FROM data)::int", nil
	case domain.GroupByNone, "":
		return "", nil
	default:
		return "", fmt.Errorf("unknown grouping key %q", key)
	}
}

func (r *deliveryRepo) Aggregate(ctx context.Context, spec domain.AggregateSpec) ([]domain.AggregateBucket, error) {
	predicate, err := query.BuildAggregate(spec)
	if err != nil {
		return nil, err
	}
	where, args, err := predicate.SQL(1)
	if err != nil {
		return nil, fmt.Errorf("deliveryRepo.Aggregate: %w", err)
	}
	keyExpr, err := groupKeyExpr(spec.GroupBy)
	if err != nil {
		return nil, fmt.Errorf("deliveryRepo.Aggregate: %w", err)
	}

	var stmt string
	if keyExpr == "" {
		// Ungrouped aggregates always yield exactly one row, zeroed when nothing matches.
		stmt = fmt.Sprintf(`SELECT
		0 AS chave,
		COALESCE(SUM(valor), 0) AS total,
		COUNT(*) AS quantidade
	FROM entrega
	WHERE %s`, where)
	} else {
		stmt = fmt.Sprintf(`SELECT
		%s AS chave,
		COALESCE(SUM(valor), 0) AS total,
		COUNT(*) AS quantidade
	FROM entrega
	WHERE %s
	GROUP BY chave
	ORDER BY chave`, keyExpr, where)
	}

	buckets := []domain.AggregateBucket{}
	if err := r.db.SelectContext(ctx, &buckets, stmt, args...); err != nil {
		return nil, fmt.Errorf("deliveryRepo.Aggregate %s: %w", spec.GroupBy, err)
	}
	return buckets, nil
}
