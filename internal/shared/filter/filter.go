// Package filter compiles a typed set of optional criteria into gorm
// predicates. Column names come from code constants only; every value is
// a bound parameter.
package filter

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Criterion is one optional predicate. A nil Criterion is the identity
// filter.
type Criterion interface {
	apply(db *gorm.DB) *gorm.DB
}

type predicate struct {
	query string
	args  []any
}

func (p predicate) apply(db *gorm.DB) *gorm.DB {
	return db.Where(p.query, p.args...)
}

// Eq constrains column to *v when v is present.
func Eq[T any](column string, v *T) Criterion {
	if v == nil {
		return nil
	}
	return predicate{query: column + " = ?", args: []any{*v}}
}

// Expr binds *v to a one-placeholder predicate when v is present. query is
// a code constant such as "EXTRACT(YEAR FROM holiday_date) = ?".
func Expr[T any](query string, v *T) Criterion {
	if v == nil {
		return nil
	}
	return predicate{query: query, args: []any{*v}}
}

// From constrains column >= *v when present.
func From(column string, v *time.Time) Criterion {
	if v == nil {
		return nil
	}
	return predicate{query: column + " >= ?", args: []any{*v}}
}

// Until constrains column <= *v when present.
func Until(column string, v *time.Time) Criterion {
	if v == nil {
		return nil
	}
	return predicate{query: column + " <= ?", args: []any{*v}}
}

// DateRange is an inclusive range on a single column; either bound may be
// absent.
func DateRange(column string, from, to *time.Time) Criterion {
	return all{From(column, from), Until(column, to)}
}

// In constrains column to the given members. An empty list imposes no
// constraint.
func In[T any](column string, values []T) Criterion {
	if len(values) == 0 {
		return nil
	}
	return predicate{query: column + " IN ?", args: []any{values}}
}

type all []Criterion

func (a all) apply(db *gorm.DB) *gorm.DB {
	for _, c := range a {
		if c != nil {
			db = c.apply(db)
		}
	}
	return db
}

// Order is one ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

// Spec is the full read request: criteria plus a deterministic order.
type Spec struct {
	Criteria []Criterion
	OrderBy  []Order
}

func New(criteria ...Criterion) Spec {
	return Spec{Criteria: criteria}
}

func (s Spec) Sort(orders ...Order) Spec {
	s.OrderBy = append(append([]Order(nil), s.OrderBy...), orders...)
	return s
}

// Apply compiles spec onto db.
func Apply(db *gorm.DB, spec Spec) *gorm.DB {
	db = all(spec.Criteria).apply(db)
	if len(spec.OrderBy) > 0 {
		terms := make([]string, len(spec.OrderBy))
		for i, o := range spec.OrderBy {
			if o.Desc {
				terms[i] = o.Column + " DESC"
			} else {
				terms[i] = o.Column + " ASC"
			}
		}
		db = db.Order(strings.Join(terms, ", "))
	}
	return db
}

// Scope adapts spec for gorm's Scopes.
func Scope(spec Spec) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return Apply(db, spec)
	}
}

// Empty reports whether no criterion constrains the result.
func (s Spec) Empty() bool {
	for _, c := range s.Criteria {
		if c == nil {
			continue
		}
		if a, ok := c.(all); ok && all(a).empty() {
			continue
		}
		return false
	}
	return true
}

func (a all) empty() bool {
	for _, c := range a {
		if c != nil {
			return false
		}
	}
	return true
}
