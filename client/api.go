package client

import (
	"context"
	"fmt"

	"github.com/yourusername/eventos-bot/models"
)

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.Token, error) {
	raw, err := c.send(ctx, "auth/login", post(creds), "")
	if err != nil {
		return models.Token{}, err
	}
	return decode[models.Token](raw)
}

// Register creates an account and returns its first token.
func (c *Client) Register(ctx context.Context, creds models.Credentials) (models.Token, error) {
	raw, err := c.send(ctx, "auth/register", post(creds), "")
	if err != nil {
		return models.Token{}, err
	}
	return decode[models.Token](raw)
}

// Logout invalidates the token on the backend.
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.send(ctx, "auth/logout", post(nil), token)
	return err
}

// Me returns the identity of the token's owner.
func (c *Client) Me(ctx context.Context, token string) (models.User, error) {
	raw, err := c.send(ctx, "usuario/me", get(nil), token)
	if err != nil {
		return models.User{}, err
	}
	return decode[models.User](raw)
}

// Events lists open events matching the filter.
func (c *Client) Events(ctx context.Context, filter models.EventFilter, token string) ([]models.Event, error) {
	raw, err := c.send(ctx, "evento", get(filter.Query()), token)
	if err != nil {
		return nil, err
	}
	return decode[[]models.Event](raw)
}

// Event fetches a single event.
func (c *Client) Event(ctx context.Context, eventID, token string) (models.Event, error) {
	raw, err := c.send(ctx, "evento/"+eventID, get(nil), token)
	if err != nil {
		return models.Event{}, err
	}
	return decode[models.Event](raw)
}

// CreateEvent submits a new event organized by the token's owner.
func (c *Client) CreateEvent(ctx context.Context, event models.Event, token string) error {
	_, err := c.send(ctx, "evento", post(event), token)
	return err
}

// MyEvents lists the events organized by the token's owner.
func (c *Client) MyEvents(ctx context.Context, token string) ([]models.OrganizerEvent, error) {
	raw, err := c.send(ctx, "usuario/mis-eventos", get(nil), token)
	if err != nil {
		return nil, err
	}
	return decode[[]models.OrganizerEvent](raw)
}

// SetEventOpen opens or closes an event's inscriptions.
func (c *Client) SetEventOpen(ctx context.Context, eventID string, open bool, token string) error {
	body := map[string]bool{"abierto": open}
	_, err := c.send(ctx, "evento/"+eventID, patch(body), token)
	return err
}

// MyInscriptions lists the active inscriptions of the token's owner.
func (c *Client) MyInscriptions(ctx context.Context, token string) ([]models.Inscription, error) {
	raw, err := c.send(ctx, "usuario/mis-inscripciones", get(nil), token)
	if err != nil {
		return nil, err
	}
	return decode[[]models.Inscription](raw)
}

// Enrol registers a user in an event.
func (c *Client) Enrol(ctx context.Context, eventID, userID, token string) error {
	_, err := c.send(ctx, inscriptionPath(eventID, userID), post(nil), token)
	return err
}

// CancelInscription removes a user's registration from an event.
func (c *Client) CancelInscription(ctx context.Context, eventID, userID, token string) error {
	_, err := c.send(ctx, inscriptionPath(eventID, userID), del(), token)
	return err
}

// Inscription fetches a user's registration in an event.
func (c *Client) Inscription(ctx context.Context, eventID, userID, token string) (models.Inscription, error) {
	raw, err := c.send(ctx, inscriptionPath(eventID, userID), get(nil), token)
	if err != nil {
		return models.Inscription{}, err
	}
	return decode[models.Inscription](raw)
}

// EventInscriptions lists the confirmed inscriptions of an event.
func (c *Client) EventInscriptions(ctx context.Context, eventID, token string) ([]models.Inscription, error) {
	raw, err := c.send(ctx, "evento/"+eventID+"/inscripcion", get(nil), token)
	if err != nil {
		return nil, err
	}
	return decode[[]models.Inscription](raw)
}

// EventWaitlist lists the waitlisted registrations of an event.
func (c *Client) EventWaitlist(ctx context.Context, eventID, token string) ([]models.WaitlistEntry, error) {
	raw, err := c.send(ctx, "evento/"+eventID+"/waitlist", get(nil), token)
	if err != nil {
		return nil, err
	}
	return decode[[]models.WaitlistEntry](raw)
}

// PendingInscriptionCount returns how many inscriptions await
// confirmation for an event.
func (c *Client) PendingInscriptionCount(ctx context.Context, eventID, token string) (int64, error) {
	raw, err := c.send(ctx, "evento/"+eventID+"/cantidadInscripcionesPendientes", get(nil), token)
	if err != nil {
		return 0, err
	}
	return decode[int64](raw)
}

// ConfirmedInscriptionCount returns how many confirmed inscriptions an
// event has.
func (c *Client) ConfirmedInscriptionCount(ctx context.Context, eventID, token string) (int64, error) {
	raw, err := c.send(ctx, "evento/"+eventID+"/cantidadInscripcionesConfirmadas", get(nil), token)
	if err != nil {
		return 0, err
	}
	return decode[int64](raw)
}

func inscriptionPath(eventID, userID string) string {
	return fmt.Sprintf("evento/%s/inscripcion/%s", eventID, userID)
}
