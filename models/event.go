package models

import (
	"fmt"
	"strings"
)

// Event is an event as exchanged with the backend. Field names on the
// wire are the backend's Spanish ones.
type Event struct {
	ID              string     `json:"id,omitempty"`
	Title           string     `json:"titulo"`
	Description     string     `json:"descripcion"`
	StartDateTime   APITime    `json:"fechaHoraInicio"`
	DurationMinutes int        `json:"duracionMinutos"`
	Location        string     `json:"ubicacion"`
	MaxCapacity     int        `json:"cupoMaximo"`
	Price           float64    `json:"precio"`
	Category        string     `json:"categoria"`
	Organizer       *Organizer `json:"organizador,omitempty"`
}

// Organizer identifies the user that created an event.
type Organizer struct {
	Email string `json:"email"`
}

// Format renders an event as an HTML chat message.
func (e *Event) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>%s</b>\n\n", e.Title)
	if e.Organizer != nil {
		fmt.Fprintf(&b, "👤 Organizado por: %s\n\n", e.Organizer.Email)
	}
	fmt.Fprintf(&b, "📝 <b>Descripción</b>\n%s\n\n", e.Description)
	fmt.Fprintf(&b, "📅 <b>Fecha y Hora</b>: %s\n\n", e.StartDateTime.Format("02-01-2006 15:04"))
	fmt.Fprintf(&b, "⏱ <b>Duración</b>: %d minutos\n\n", e.DurationMinutes)
	fmt.Fprintf(&b, "📍 <b>Ubicación</b>: %s\n\n", e.Location)
	fmt.Fprintf(&b, "👥 <b>Capacidad</b>: %d\n\n", e.MaxCapacity)
	fmt.Fprintf(&b, "💰 <b>Precio</b>: $%g\n\n", e.Price)
	fmt.Fprintf(&b, "🏷 <b>Categoría</b>: %s", e.Category)

	return b.String()
}

// OrganizerEvent is the organizer's view of one of their events: the
// event itself plus its id and whether inscriptions are open.
type OrganizerEvent struct {
	Event
	Open bool `json:"abierto"`
}

// Format renders the organizer view as an HTML chat message.
func (e *OrganizerEvent) Format() string {
	open := "no"
	if e.Open {
		open = "si"
	}
	return fmt.Sprintf("🏷️ Id de evento: <i>%s</i>\n📋 Inscripciones abiertas: %s\n\n%s",
		e.ID, open, e.Event.Format())
}

// Categories are the event categories the backend accepts.
var Categories = []string{
	"Deporte",
	"Moda",
	"Educacion",
	"Tecnologia",
	"Musica",
	"Gastronomia",
	"Arte",
	"Negocios",
	"Salud",
	"Entretenimiento",
}

// ValidCategory reports whether s names a known event category.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if strings.EqualFold(c, s) {
			return true
		}
	}
	return false
}

// CanonicalCategory returns the backend spelling for a category,
// ignoring case. Falls back to the input when unknown.
func CanonicalCategory(s string) string {
	for _, c := range Categories {
		if strings.EqualFold(c, s) {
			return c
		}
	}
	return s
}
