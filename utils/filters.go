// Package utils holds input parsing and validation helpers for the
// dialogue handlers.
package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/eventos-bot/models"
)

var (
	minPriceRe = regexp.MustCompile(`\bmin_price=(\d+(\.\d+)?)\b`)
	maxPriceRe = regexp.MustCompile(`\bmax_price=(\d+(\.\d+)?)\b`)
	minDateRe  = regexp.MustCompile(`\bmin_date=(\d{1,2}-\d{1,2}-\d{4})\b`)
	maxDateRe  = regexp.MustCompile(`\bmax_date=(\d{1,2}-\d{1,2}-\d{4})\b`)
	categoryRe = regexp.MustCompile(`\bcategory=(\w+)\b`)
	keywordsRe = regexp.MustCompile(`\bkeywords=(\w+(,\w+)*)\b`)
)

// filterDateLayout accepts one- or two-digit day and month.
const filterDateLayout = "2-1-2006"

// ParseEventFilter extracts event filters from a command's argument
// string, e.g. "min_price=12 max_price=23 category=Musica". Absent
// keys leave their predicate unset; unparseable fragments are ignored
// so a typo never blocks the listing.
func ParseEventFilter(input string) models.EventFilter {
	var filter models.EventFilter

	if m := minPriceRe.FindStringSubmatch(input); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if m := maxPriceRe.FindStringSubmatch(input); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			filter.MaxPrice = &v
		}
	}
	if m := minDateRe.FindStringSubmatch(input); m != nil {
		if d, err := time.Parse(filterDateLayout, m[1]); err == nil {
			filter.MinDate = &d
		}
	}
	if m := maxDateRe.FindStringSubmatch(input); m != nil {
		if d, err := time.Parse(filterDateLayout, m[1]); err == nil {
			filter.MaxDate = &d
		}
	}
	if m := categoryRe.FindStringSubmatch(input); m != nil {
		category := m[1]
		filter.Category = &category
	}
	if m := keywordsRe.FindStringSubmatch(input); m != nil {
		filter.Keywords = strings.Split(m[1], ",")
	}

	return filter
}
