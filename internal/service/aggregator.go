package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"entregas/internal/domain"
	"entregas/internal/port"
)

// Aggregator computes the time-bucketed dashboard summary of a tenant.
//
// The three aggregations (days of the reference month, months across the
// whole history, and the reference day) run concurrently and are combined
// only when all of them succeed.
type Aggregator struct {
	store port.DeliveryRepository
}

// NewAggregator creates an Aggregator reading from store.
func NewAggregator(store port.DeliveryRepository) *Aggregator {
	return &Aggregator{store: store}
}

// Summarize returns the dashboard of tenant as seen on the calendar day of ref.
func (a *Aggregator) Summarize(ctx context.Context, tenant string, ref time.Time) (*domain.DashboardSummary, error) {
	if strings.TrimSpace(tenant) == "" {
		return nil, domain.ErrInvalidTenant
	}

	var byDay, byMonth, today []domain.AggregateBucket

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := a.aggregate(gctx, domain.AggregateSpec{
			Tenant: tenant, Range: domain.MonthRange(ref), GroupBy: domain.GroupByDay,
		})
		byDay = b
		return err
	})
	g.Go(func() error {
		b, err := a.aggregate(gctx, domain.AggregateSpec{
			Tenant: tenant, GroupBy: domain.GroupByMonth,
		})
		byMonth = b
		return err
	})
	g.Go(func() error {
		b, err := a.aggregate(gctx, domain.AggregateSpec{
			Tenant: tenant, Range: domain.DayRange(ref), GroupBy: domain.GroupByNone,
		})
		today = b
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	todayTotal, todayCount := rollup(today)
	return &domain.DashboardSummary{
		ByDay:      daySummaries(byDay),
		ByMonth:    monthSummaries(byMonth),
		TodayTotal: todayTotal,
		TodayCount: todayCount,
	}, nil
}

func (a *Aggregator) aggregate(ctx context.Context, spec domain.AggregateSpec) ([]domain.AggregateBucket, error) {
	buckets, err := a.store.Aggregate(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("aggregator.Summarize %s: %w: %w", spec.GroupBy, domain.ErrStoreUnavailable, err)
	}
	return buckets, nil
}

// mergeBuckets folds buckets sharing a key within [minKey, maxKey], drops empty
// ones and returns them ordered by key.
func mergeBuckets(buckets []domain.AggregateBucket, minKey, maxKey int) []domain.AggregateBucket {
	byKey := make(map[int]*domain.AggregateBucket, len(buckets))
	for i := range buckets {
		b := buckets[i]
		if b.Count <= 0 || b.Key < minKey || b.Key > maxKey {
			continue
		}
		if acc, ok := byKey[b.Key]; ok {
			acc.Count += b.Count
			acc.Total = acc.Total.Add(b.Total)
			continue
		}
		byKey[b.Key] = &b
	}

	merged := make([]domain.AggregateBucket, 0, len(byKey))
	for _, b := range byKey {
		merged = append(merged, *b)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Key < merged[j].Key })
	return merged
}

func daySummaries(buckets []domain.AggregateBucket) []domain.DaySummary {
	merged := mergeBuckets(buckets, 1, 31)
	out := make([]domain.DaySummary, 0, len(merged))
	for _, b := range merged {
		out = append(out, domain.DaySummary{Day: b.Key, Total: b.Total, Count: b.Count})
	}
	return out
}

// monthSummaries labels months the way the dashboard always has: the
// three-letter English abbreviation, with every year folded into one bucket.
func monthSummaries(buckets []domain.AggregateBucket) []domain.MonthSummary {
	merged := mergeBuckets(buckets, 1, 12)
	out := make([]domain.MonthSummary, 0, len(merged))
	for _, b := range merged {
		out = append(out, domain.MonthSummary{
			Month: b.Key,
			Label: time.Month(b.Key).String()[:3],
			Count: b.Count,
		})
	}
	return out
}

func rollup(buckets []domain.AggregateBucket) (decimal.Decimal, int) {
	total := decimal.Zero
	count := 0
	for _, b := range buckets {
		total = total.Add(b.Total)
		count += b.Count
	}
	return total, count
}
