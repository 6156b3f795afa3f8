package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/eventos-bot/models"
)

// Callback data prefixes. The remainder of the payload is the event id.
const (
	openEventPrefix   = "event::open::"
	closeEventPrefix  = "event::close::"
	enrolPrefix       = "inscription::enrol::"
	cancelPrefix      = "inscription::cancel::"
	manageEventPrefix = "inscription::manage::"
)

// handleCallback dispatches an inline-button press. Every callback is
// answered, even unparseable ones, so the button never spins forever.
func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	b.answerCallback(cb.ID, "")

	if cb.Message == nil {
		b.log.Debug("callback without originating message", "callback_id", cb.ID)
		return
	}
	chatID := cb.Message.Chat.ID

	switch {
	case strings.HasPrefix(cb.Data, enrolPrefix):
		b.handleEnrol(ctx, chatID, strings.TrimPrefix(cb.Data, enrolPrefix))
	case strings.HasPrefix(cb.Data, cancelPrefix):
		b.handleCancelInscription(ctx, chatID, strings.TrimPrefix(cb.Data, cancelPrefix))
	case strings.HasPrefix(cb.Data, openEventPrefix):
		b.handleToggleEvent(ctx, chatID, strings.TrimPrefix(cb.Data, openEventPrefix), true)
	case strings.HasPrefix(cb.Data, closeEventPrefix):
		b.handleToggleEvent(ctx, chatID, strings.TrimPrefix(cb.Data, closeEventPrefix), false)
	case strings.HasPrefix(cb.Data, manageEventPrefix):
		b.handleSeeInscriptions(ctx, chatID, strings.TrimPrefix(cb.Data, manageEventPrefix))
	default:
		b.log.Warn("unrecognized callback payload", "chat_id", chatID, "data", cb.Data)
	}
}

// handleEnrol registers the chat's user in the event and reports the
// resulting inscription state, since the backend may confirm, queue or
// reject the registration.
func (b *Bot) handleEnrol(ctx context.Context, chatID int64, eventID string) {
	session, err := b.sessions.Get(chatID)
	if err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	if err := b.backend.Enrol(ctx, eventID, session.UserID, session.Token.Token); err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	inscription, err := b.backend.Inscription(ctx, eventID, session.UserID, session.Token.Token)
	if err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	switch inscription.State {
	case models.InscriptionConfirmed:
		b.sendMessage(chatID, textEnrolConfirmed)
		b.sendWithKeyboard(chatID, inscription.Format(), cancelKeyboard(eventID))
	case models.InscriptionPending:
		b.sendMessage(chatID, textEnrolPending)
	case models.InscriptionRejected:
		b.sendError(chatID, textEnrolRejected)
	default:
		b.log.Warn("unexpected inscription state", "chat_id", chatID, "state", string(inscription.State))
		b.sendMessage(chatID, inscription.Format())
	}
}

func (b *Bot) handleCancelInscription(ctx context.Context, chatID int64, eventID string) {
	session, err := b.sessions.Get(chatID)
	if err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	if err := b.backend.CancelInscription(ctx, eventID, session.UserID, session.Token.Token); err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	b.sendMessage(chatID, textInscriptionCancelled)
}

func (b *Bot) handleToggleEvent(ctx context.Context, chatID int64, eventID string, open bool) {
	token, err := b.sessions.Token(chatID)
	if err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	if err := b.backend.SetEventOpen(ctx, eventID, open, token); err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	if open {
		b.sendMessage(chatID, textEventOpened)
	} else {
		b.sendMessage(chatID, textEventClosed)
	}
}

// handleSeeInscriptions shows the organizer every registration of the
// event, merging the confirmed list with the waitlist so queued users
// are visible too.
func (b *Bot) handleSeeInscriptions(ctx context.Context, chatID int64, eventID string) {
	token, err := b.sessions.Token(chatID)
	if err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	inscriptions, err := b.backend.EventInscriptions(ctx, eventID, token)
	if err != nil {
		b.sendRequestError(chatID, err)
		return
	}
	waitlist, err := b.backend.EventWaitlist(ctx, eventID, token)
	if err != nil {
		b.sendRequestError(chatID, err)
		return
	}
	for i := range waitlist {
		inscriptions = append(inscriptions, waitlist[i].AsInscription(eventID))
	}

	if len(inscriptions) == 0 {
		b.sendMessage(chatID, textNoEventInscriptions)
		return
	}

	for i := range inscriptions {
		b.sendMessage(chatID, inscriptions[i].Format())
	}
}
