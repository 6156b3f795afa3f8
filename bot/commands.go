package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/eventos-bot/dialogue"
	"github.com/yourusername/eventos-bot/models"
	"github.com/yourusername/eventos-bot/utils"
)

func botCommands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "help", Description: "Mostrar mensaje de ayuda"},
		{Command: "reset", Description: "Resetear dialogo"},
		{Command: "listevents", Description: "Listar los eventos disponibles"},
		{Command: "myinscriptions", Description: "Listar inscripciones activas"},
		{Command: "myevents", Description: "Listar los eventos que organizás"},
		{Command: "createevent", Description: "Crear un nuevo evento"},
		{Command: "logout", Description: "Cerrar sesión"},
	}
}

// handleCommand runs an explicit command from the idle state. Every
// command except /help touches the backend, so the session is checked
// and renewed up front.
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.Command() == "help" {
		b.sendMessage(chatID, textCommandList)
		return
	}

	if err := b.sessions.CheckAndRenew(ctx, chatID); err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	switch msg.Command() {
	case "listevents":
		b.handleListEvents(ctx, msg)
	case "myinscriptions":
		b.handleMyInscriptions(ctx, msg)
	case "myevents":
		b.handleMyEvents(ctx, msg)
	case "createevent":
		b.handleCreateEvent(msg)
	case "logout":
		b.handleLogout(ctx, msg)
	default:
		b.sendMessage(chatID, textUnknownCommand)
	}
}

// handleReset abandons whatever flow the chat was in. An authenticated
// chat goes straight back to the idle state; everyone else starts over.
func (b *Bot) handleReset(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if b.sessions.IsValid(chatID) {
		b.states.Set(chatID, dialogue.EnterCommand{})
		b.sendMessage(chatID, textWelcomeBack(senderName(msg)))
		return
	}

	b.states.Set(chatID, dialogue.CheckAuthChoice{})
	b.sendMessage(chatID, textGreeting(senderName(msg)))
}

func (b *Bot) handleListEvents(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	filter := utils.ParseEventFilter(msg.CommandArguments())

	token, err := b.sessions.Token(chatID)
	if err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	events, err := b.backend.Events(ctx, filter, token)
	if err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	if len(events) == 0 {
		b.sendMessage(chatID, textNoEvents)
		return
	}

	b.sendMessage(chatID, textEventsHeader)
	for i := range events {
		event := &events[i]
		b.sendWithKeyboard(chatID, event.Format(), enrolKeyboard(event.ID))
	}
}

func (b *Bot) handleMyInscriptions(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	token, err := b.sessions.Token(chatID)
	if err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	inscriptions, err := b.backend.MyInscriptions(ctx, token)
	if err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	if len(inscriptions) == 0 {
		b.sendMessage(chatID, textNoInscriptions)
		return
	}

	for i := range inscriptions {
		inscription := &inscriptions[i]
		// Only a confirmed inscription can be cancelled.
		if inscription.State == models.InscriptionConfirmed {
			b.sendWithKeyboard(chatID, inscription.Format(), cancelKeyboard(inscription.EventID))
			continue
		}
		b.sendMessage(chatID, inscription.Format())
	}
}

// handleMyEvents lists the chat's organized events with their pending
// and confirmed inscription counts and the organizer actions.
func (b *Bot) handleMyEvents(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	token, err := b.sessions.Token(chatID)
	if err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	events, err := b.backend.MyEvents(ctx, token)
	if err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	if len(events) == 0 {
		b.sendMessage(chatID, textNoMyEvents)
		return
	}

	for i := range events {
		event := &events[i]

		text := event.Format()
		pending, err := b.backend.PendingInscriptionCount(ctx, event.ID, token)
		if err != nil {
			b.log.Warn("could not fetch pending count", "event_id", event.ID, "error", err)
		} else {
			confirmed, err := b.backend.ConfirmedInscriptionCount(ctx, event.ID, token)
			if err != nil {
				b.log.Warn("could not fetch confirmed count", "event_id", event.ID, "error", err)
			} else {
				text += fmt.Sprintf("\n\n⏳ Inscripciones pendientes: %d\n✅ Inscripciones confirmadas: %d",
					pending, confirmed)
			}
		}

		b.sendWithKeyboard(chatID, text, organizerKeyboard(event.ID, event.Open))
	}
}

func (b *Bot) handleCreateEvent(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	b.states.Set(chatID, dialogue.EventCreation{Step: dialogue.EnterTitle})
	b.sendMessage(chatID, textAskTitle)
}

// handleLogout closes the backend session and restarts the auth flow.
// The session record is deactivated even if the backend call fails, so
// the chat never keeps using a token the user asked to discard.
func (b *Bot) handleLogout(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	token, err := b.sessions.Token(chatID)
	if err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	if err := b.backend.Logout(ctx, token); err != nil {
		b.log.Warn("backend logout failed", "chat_id", chatID, "error", err)
	}
	if err := b.sessions.Deactivate(chatID); err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	b.states.Set(chatID, dialogue.CheckAuthChoice{})
	b.sendMessage(chatID, textLoggedOut)
}

func enrolKeyboard(eventID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎟️ Inscribirme", enrolPrefix+eventID),
		),
	)
}

func cancelKeyboard(eventID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Cancelar inscripción", cancelPrefix+eventID),
		),
	)
}

func organizerKeyboard(eventID string, open bool) tgbotapi.InlineKeyboardMarkup {
	toggle := tgbotapi.NewInlineKeyboardButtonData("🔓 Abrir inscripciones", openEventPrefix+eventID)
	if open {
		toggle = tgbotapi.NewInlineKeyboardButtonData("🔒 Cerrar inscripciones", closeEventPrefix+eventID)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(toggle),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Ver inscripciones", manageEventPrefix+eventID),
		),
	)
}
