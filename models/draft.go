package models

import (
	"fmt"
	"time"
)

// EventDraft accumulates the fields of an event under creation, one
// per dialogue step. It is invalid until every required field is set;
// Build finalizes it into an Event.
type EventDraft struct {
	Title           string
	Description     string
	StartDateTime   time.Time
	DurationMinutes int
	Location        string
	MaxCapacity     int
	Price           float64
	PriceSet        bool
	Category        string
}

// Build finalizes the draft into an immutable Event. It fails if any
// required field is missing; handlers treat that as a broken dialogue
// invariant, not as user error.
func (d EventDraft) Build() (Event, error) {
	switch {
	case d.Title == "":
		return Event{}, fmt.Errorf("draft is missing a title")
	case d.Description == "":
		return Event{}, fmt.Errorf("draft is missing a description")
	case d.StartDateTime.IsZero():
		return Event{}, fmt.Errorf("draft is missing a start date")
	case d.DurationMinutes <= 0:
		return Event{}, fmt.Errorf("draft is missing a duration")
	case d.Location == "":
		return Event{}, fmt.Errorf("draft is missing a location")
	case d.MaxCapacity <= 0:
		return Event{}, fmt.Errorf("draft is missing a capacity")
	case !d.PriceSet:
		return Event{}, fmt.Errorf("draft is missing a price")
	case d.Category == "":
		return Event{}, fmt.Errorf("draft is missing a category")
	}

	return Event{
		Title:           d.Title,
		Description:     d.Description,
		StartDateTime:   NewAPITime(d.StartDateTime),
		DurationMinutes: d.DurationMinutes,
		Location:        d.Location,
		MaxCapacity:     d.MaxCapacity,
		Price:           d.Price,
		Category:        d.Category,
	}, nil
}
