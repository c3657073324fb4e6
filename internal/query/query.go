// Package query builds tenant-scoped, parameterized predicates over the
// delivery table. Column names and operators come from closed sets; every
// value is carried as a bound argument and never reaches the SQL text.
package query

import (
	"fmt"
	"strings"
	"time"

	"entregas/internal/domain"
)

// Column is a whitelisted column or column expression of the entrega table.
type Column string

const (
	ColumnID       Column = "id"
	ColumnTenant   Column = "empresa"
	ColumnDate     Column = "data"
	ColumnOnCredit Column = "fiado"
)

// Op is a comparison operator.
type Op string

const (
	OpEq  Op = "="
	OpGte Op = ">="
	OpLt  Op = "<"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

var knownColumns = map[Column]bool{
	ColumnID:       true,
	ColumnTenant:   true,
	ColumnDate:     true,
	ColumnOnCredit: true,
}

var knownOps = map[Op]bool{
	OpEq:  true,
	OpGte: true,
	OpLt:  true,
}

// Condition is a single "column op value" term.
type Condition struct {
	Column Column
	Op     Op
	Value  interface{}
}

// Order is one ORDER BY term.
type Order struct {
	Column    Column
	Direction Direction
}

// Predicate is a conjunction of conditions. The first condition is always the
// tenant equality, so a Predicate can only be obtained through ForTenant.
type Predicate struct {
	conds []Condition
}

// ForTenant starts a predicate scoped to tenant.
func ForTenant(tenant string) (*Predicate, error) {
	if strings.TrimSpace(tenant) == "" {
		return nil, domain.ErrInvalidTenant
	}
	return &Predicate{conds: []Condition{{Column: ColumnTenant, Op: OpEq, Value: tenant}}}, nil
}

// And appends a condition and returns the predicate for chaining.
func (p *Predicate) And(col Column, op Op, value interface{}) *Predicate {
	p.conds = append(p.conds, Condition{Column: col, Op: op, Value: value})
	return p
}

// InRange appends the bounds of r on the date column. Zero bounds are skipped.
func (p *Predicate) InRange(r domain.DateRange) *Predicate {
	if !r.From.IsZero() {
		p.And(ColumnDate, OpGte, r.From)
	}
	if !r.To.IsZero() {
		p.And(ColumnDate, OpLt, r.To)
	}
	return p
}

// Conditions returns a copy of the predicate's terms.
func (p *Predicate) Conditions() []Condition {
	out := make([]Condition, len(p.conds))
	copy(out, p.conds)
	return out
}

// Has reports whether any condition targets col.
func (p *Predicate) Has(col Column) bool {
	for _, c := range p.conds {
		if c.Column == col {
			return true
		}
	}
	return false
}

// SQL renders the predicate (without the WHERE keyword) using PostgreSQL
// positional placeholders starting at $argStart.
func (p *Predicate) SQL(argStart int) (clause string, args []interface{}, err error) {
	parts := make([]string, 0, len(p.conds))
	args = make([]interface{}, 0, len(p.conds))
	argN := argStart
	for _, c := range p.conds {
		if !knownColumns[c.Column] {
			return "", nil, fmt.Errorf("query: unknown column %q", c.Column)
		}
		if !knownOps[c.Op] {
			return "", nil, fmt.Errorf("query: unknown operator %q", c.Op)
		}
		parts = append(parts, fmt.Sprintf("%s %s $%d", c.Column, c.Op, argN))
		args = append(args, c.Value)
		argN++
	}
	return strings.Join(parts, " AND "), args, nil
}

// Ledger is a complete ledger query: predicate plus ordering.
type Ledger struct {
	Where   *Predicate
	OrderBy []Order
}

// OrderSQL renders the ORDER BY list (without the keywords).
func (l *Ledger) OrderSQL() (string, error) {
	parts := make([]string, 0, len(l.OrderBy))
	for _, o := range l.OrderBy {
		if !knownColumns[o.Column] {
			return "", fmt.Errorf("query: unknown order column %q", o.Column)
		}
		if o.Direction != Asc && o.Direction != Desc {
			return "", fmt.Errorf("query: unknown direction %q", o.Direction)
		}
		parts = append(parts, fmt.Sprintf("%s %s", o.Column, o.Direction))
	}
	return strings.Join(parts, ", "), nil
}

// ledgerOrder sorts newest first; id breaks ties between deliveries of the same day.
var ledgerOrder = []Order{
	{Column: ColumnDate, Direction: Desc},
	{Column: ColumnID, Direction: Desc},
}

// BuildLedger translates a report filter into a ledger query.
//
// The credit flag wins over the date: with OnCreditOnly set, every on-credit
// delivery of the tenant is selected whatever Date says.
func BuildLedger(f domain.ReportFilter) (*Ledger, error) {
	where, err := ForTenant(f.Tenant)
	if err != nil {
		return nil, domain.ErrInvalidFilter
	}

	switch {
	case f.OnCreditOnly:
		where.And(ColumnOnCredit, OpEq, true)
	case f.Date != nil:
		where.And(ColumnDate, OpEq, dateOnly(*f.Date))
	}

	order := make([]Order, len(ledgerOrder))
	copy(order, ledgerOrder)
	return &Ledger{Where: where, OrderBy: order}, nil
}

// BuildListByTenant returns the unfiltered ledger of a tenant.
func BuildListByTenant(tenant string) (*Ledger, error) {
	return BuildLedger(domain.ReportFilter{Tenant: tenant})
}

// BuildAggregate returns the predicate selecting the records an aggregation covers.
func BuildAggregate(spec domain.AggregateSpec) (*Predicate, error) {
	where, err := ForTenant(spec.Tenant)
	if err != nil {
		return nil, err
	}
	return where.InRange(spec.Range), nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
