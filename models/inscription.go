package models

import (
	"fmt"
	"strings"
)

// InscriptionState is the backend's state of a registration.
type InscriptionState string

const (
	InscriptionConfirmed InscriptionState = "CONFIRMADA"
	InscriptionRejected  InscriptionState = "CANCELADA"
	InscriptionPending   InscriptionState = "PENDIENTE"
)

// Format renders the state for chat display.
func (s InscriptionState) Format() string {
	switch s {
	case InscriptionConfirmed:
		return "✅ Confirmada"
	case InscriptionRejected:
		return "❌ Rechazada"
	case InscriptionPending:
		return "⏳ Pendiente"
	default:
		return string(s)
	}
}

// Inscription is a user's registration record for an event.
type Inscription struct {
	ID      string           `json:"id"`
	State   InscriptionState `json:"estado"`
	Email   string           `json:"email"`
	Date    APITime          `json:"fechaInscripcion"`
	EventID string           `json:"eventoId"`
}

// Format renders an inscription as an HTML chat message.
func (i *Inscription) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>Inscripción #%s</b>\n\n", i.ID)
	fmt.Fprintf(&b, "📧 <b>Email</b>: %s\n\n", i.Email)
	fmt.Fprintf(&b, "📊 <b>Estado</b>: %s\n\n", i.State.Format())
	fmt.Fprintf(&b, "📅 <b>Fecha de Inscripción</b>: %s\n\n", i.Date.Format("02-01-2006 15:04"))
	fmt.Fprintf(&b, "🎫 <b>ID del Evento</b>: %s", i.EventID)

	return b.String()
}

// WaitlistEntry is a registration queued while an event is at capacity.
type WaitlistEntry struct {
	ID        string       `json:"id"`
	User      WaitlistUser `json:"usuario"`
	EntryDate APITime      `json:"fechaIngreso"`
}

// WaitlistUser identifies the queued user.
type WaitlistUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AsInscription presents a waitlist entry as a pending inscription so
// both lists can be displayed uniformly.
func (w *WaitlistEntry) AsInscription(eventID string) Inscription {
	return Inscription{
		ID:      w.ID,
		State:   InscriptionPending,
		Email:   w.User.Email,
		Date:    w.EntryDate,
		EventID: eventID,
	}
}
