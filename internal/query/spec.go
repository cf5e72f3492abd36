// Package query defines the declarative description of a filtered, sorted,
// paginated read and its translation onto a GORM query.
package query

import (
	"crypto/sha1"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PageSize is the fixed number of rows per page. The pagination UI computes
// page counts from the same constant, so it must not vary per request.
const PageSize = 10

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection normalizes a direction string, defaulting to ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

// Filter is a single equality predicate on one column.
type Filter struct {
	Field string
	Value string
}

// Sort orders the result by one column.
type Sort struct {
	Field     string
	Direction Direction
}

// Spec describes one read. All parts are optional; the zero Spec means
// "all rows, backend-default order". Field names are forwarded as given
// and surface as backend errors when they do not exist.
type Spec struct {
	Filter *Filter
	Sort   *Sort
	Page   int // 0 means unpaginated
}

// Validate rejects specs the backend would accept but the pagination math
// cannot represent.
func (s Spec) Validate() error {
	if s.Page < 0 {
		return fmt.Errorf("page must be >= 1, got %d", s.Page)
	}
	if s.Sort != nil && s.Sort.Direction != Asc && s.Sort.Direction != Desc {
		return fmt.Errorf("invalid sort direction: %s", s.Sort.Direction)
	}
	return nil
}

// Paginated reports whether the spec requests a page. Only paginated reads
// carry a meaningful total count.
func (s Spec) Paginated() bool { return s.Page > 0 }

// Range returns the zero-based row offset and row count for the requested
// page. ok is false when the spec is unpaginated.
func (s Spec) Range() (offset, limit int, ok bool) {
	if !s.Paginated() {
		return 0, 0, false
	}
	return (s.Page - 1) * PageSize, PageSize, true
}

// FilterScope applies only the filter predicate. Counting the filtered set
// must not be affected by sort or range.
func (s Spec) FilterScope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if s.Filter != nil {
			db = db.Where(clause.Eq{
				Column: clause.Column{Name: s.Filter.Field},
				Value:  s.Filter.Value,
			})
		}
		return db
	}
}

// Scope applies filter, sort and range to a GORM query. Column names go
// through clause.Column so they are quoted as identifiers, never inlined.
func (s Spec) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = s.FilterScope()(db)
		if s.Sort != nil {
			db = db.Order(clause.OrderByColumn{
				Column: clause.Column{Name: s.Sort.Field},
				Desc:   s.Sort.Direction == Desc,
			})
		}
		if offset, limit, ok := s.Range(); ok {
			db = db.Offset(offset).Limit(limit)
		}
		return db
	}
}

// Key returns a stable cache key component for the spec. Equal specs hash
// equal; the resource prefix is added by the cache layer.
func (s Spec) Key() string {
	var b strings.Builder
	if s.Filter != nil {
		fmt.Fprintf(&b, "f=%s:%s;", s.Filter.Field, s.Filter.Value)
	}
	if s.Sort != nil {
		fmt.Fprintf(&b, "s=%s:%s;", s.Sort.Field, s.Sort.Direction)
	}
	if s.Paginated() {
		fmt.Fprintf(&b, "p=%d;", s.Page)
	}
	sum := sha1.Sum([]byte(b.String()))
	return fmt.Sprintf("%x", sum[:8])
}
