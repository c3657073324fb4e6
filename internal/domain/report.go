package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportFilter selects deliveries for the ledger ("caderno") view.
// OnCreditOnly takes precedence over Date: when set, Date is ignored.
type ReportFilter struct {
	Tenant       string
	Date         *time.Time
	OnCreditOnly bool
}

// GroupingKey selects how an aggregation buckets records.
type GroupingKey string

const (
	GroupByNone  GroupingKey = "none"
	GroupByDay   GroupingKey = "day"
	GroupByMonth GroupingKey = "month"
)

// DateRange is a half-open [From, To) range of calendar dates.
// A zero bound leaves that side open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// DayRange returns the range covering exactly the calendar day of t.
func DayRange(t time.Time) DateRange {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return DateRange{From: day, To: day.AddDate(0, 0, 1)}
}

// MonthRange returns the range covering the calendar month of t.
func MonthRange(t time.Time) DateRange {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return DateRange{From: start, To: start.AddDate(0, 1, 0)}
}

// AggregateSpec describes one aggregation request against the record store.
type AggregateSpec struct {
	Tenant  string
	Range   DateRange
	GroupBy GroupingKey
}

// AggregateBucket is one group returned by the record store. Key is the day of
// month or month number depending on the grouping, and 0 for GroupByNone.
type AggregateBucket struct {
	Key   int             `db:"chave"`
	Total decimal.Decimal `db:"total"`
	Count int             `db:"quantidade"`
}

// DaySummary aggregates one day of the reference month.
type DaySummary struct {
	Day   int             `json:"dia"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"quantidade"`
}

// MonthSummary aggregates one calendar month across every year on record.
type MonthSummary struct {
	Month int    `json:"-"`
	Label string `json:"mes"`
	Count int    `json:"quantidade"`
}

// DashboardSummary is the dashboard view for one tenant.
type DashboardSummary struct {
	ByDay      []DaySummary    `json:"porDia"`
	ByMonth    []MonthSummary  `json:"porMes"`
	TodayTotal decimal.Decimal `json:"totalHoje"`
	TodayCount int             `json:"quantidadeHoje"`
}
