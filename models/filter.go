package models

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// EventFilter is a set of optional predicates for listing events. A
// nil field means the predicate is absent. Constructed fresh per
// listing, never stored.
type EventFilter struct {
	MinPrice *float64
	MaxPrice *float64
	MinDate  *time.Time
	MaxDate  *time.Time
	Category *string
	Keywords []string
}

// IsZero reports whether no predicate is set.
func (f EventFilter) IsZero() bool {
	return f.MinPrice == nil && f.MaxPrice == nil &&
		f.MinDate == nil && f.MaxDate == nil &&
		f.Category == nil && len(f.Keywords) == 0
}

// Query translates the filter into the backend's query parameters.
func (f EventFilter) Query() url.Values {
	q := url.Values{}

	if f.MinPrice != nil {
		q.Set("precioPesosMin", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		q.Set("precioPesosMax", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.MinDate != nil {
		q.Set("fechaInicioMin", f.MinDate.Format("2006-01-02"))
	}
	if f.MaxDate != nil {
		q.Set("fechaInicioMax", f.MaxDate.Format("2006-01-02"))
	}
	if f.Category != nil {
		q.Set("categoria", *f.Category)
	}
	if len(f.Keywords) > 0 {
		q.Set("palabrasClave", strings.Join(f.Keywords, "+"))
	}

	return q
}
