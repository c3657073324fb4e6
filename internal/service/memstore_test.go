package service_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"entregas/internal/domain"
	"entregas/internal/query"
)

// memStore is an in-memory record store that evaluates the same predicates
// the PostgreSQL repository renders to SQL.
type memStore struct {
	mu        sync.Mutex
	rows      []domain.Delivery
	nextID    int64
	calls     int
	failGroup domain.GroupingKey
}

func newMemStore(rows ...domain.Delivery) *memStore {
	s := &memStore{}
	for i := range rows {
		d := rows[i]
		s.nextID++
		d.ID = s.nextID
		s.rows = append(s.rows, d)
	}
	return s
}

func (s *memStore) Create(_ context.Context, d *domain.Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	d.ID = s.nextID
	s.rows = append(s.rows, *d)
	return nil
}

func (s *memStore) GetByID(_ context.Context, id int64) (*domain.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			d := s.rows[i]
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memStore) Update(_ context.Context, d *domain.Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == d.ID {
			d.Tenant = s.rows[i].Tenant
			s.rows[i] = *d
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *memStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *memStore) ListByTenant(ctx context.Context, tenant string) ([]domain.Delivery, error) {
	ledger, err := query.BuildListByTenant(tenant)
	if err != nil {
		return nil, err
	}
	return s.Query(ctx, ledger)
}

func (s *memStore) Query(_ context.Context, ledger *query.Ledger) ([]domain.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	out := []domain.Delivery{}
	for _, d := range s.rows {
		if matches(d, ledger.Where.Conditions()) {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		for _, o := range ledger.OrderBy {
			c := compare(out[i], out[j], o.Column)
			if c == 0 {
				continue
			}
			if o.Direction == query.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return out, nil
}

func (s *memStore) Aggregate(_ context.Context, spec domain.AggregateSpec) ([]domain.AggregateBucket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if spec.GroupBy == s.failGroup {
		return nil, fmt.Errorf("simulated failure for %s", spec.GroupBy)
	}

	where, err := query.BuildAggregate(spec)
	if err != nil {
		return nil, err
	}

	groups := map[int]*domain.AggregateBucket{}
	if spec.GroupBy == domain.GroupByNone {
		groups[0] = &domain.AggregateBucket{Total: decimal.Zero}
	}
	for _, d := range s.rows {
		if !matches(d, where.Conditions()) {
			continue
		}
		key := 0
		switch spec.GroupBy {
		case domain.GroupByDay:
			key = d.Date.Day()
		case domain.GroupByMonth:
			key = int(d.Date.Month())
		}
		b, ok := groups[key]
		if !ok {
			b = &domain.AggregateBucket{Key: key, Total: decimal.Zero}
			groups[key] = b
		}
		b.Total = b.Total.Add(d.Amount)
		b.Count++
	}

	out := make([]domain.AggregateBucket, 0, len(groups))
	for _, b := range groups {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *memStore) queries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func matches(d domain.Delivery, conds []query.Condition) bool {
	for _, c := range conds {
		var cmp int
		switch c.Column {
		case query.ColumnTenant:
			if d.Tenant != c.Value.(string) {
				return false
			}
			continue
		case query.ColumnOnCredit:
			if d.OnCredit != c.Value.(bool) {
				return false
			}
			continue
		case query.ColumnDate:
			cmp = d.Date.Compare(c.Value.(time.Time))
		case query.ColumnID:
			v := c.Value.(int64)
			switch {
			case d.ID < v:
				cmp = -1
			case d.ID > v:
				cmp = 1
			}
		}
		switch c.Op {
		case query.OpEq:
			if cmp != 0 {
				return false
			}
		case query.OpGte:
			if cmp < 0 {
				return false
			}
		case query.OpLt:
			if cmp >= 0 {
				return false
			}
		}
	}
	return true
}

func compare(a, b domain.Delivery, col query.Column) int {
	switch col {
	case query.ColumnDate:
		return a.Date.Compare(b.Date)
	case query.ColumnID:
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
	}
	return 0
}
