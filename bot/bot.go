// Package bot runs the Telegram front-end: it receives updates,
// routes them through the per-chat dialogue state machine, and
// executes commands against the events backend.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/eventos-bot/client"
	"github.com/yourusername/eventos-bot/dialogue"
	"github.com/yourusername/eventos-bot/metrics"
	"github.com/yourusername/eventos-bot/models"
	"github.com/yourusername/eventos-bot/session"
)

// Sender is the slice of the Telegram API the handlers use to reply.
// *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Backend is the slice of the events API the handlers call.
type Backend interface {
	Login(ctx context.Context, creds models.Credentials) (models.Token, error)
	Register(ctx context.Context, creds models.Credentials) (models.Token, error)
	Logout(ctx context.Context, token string) error
	Events(ctx context.Context, filter models.EventFilter, token string) ([]models.Event, error)
	CreateEvent(ctx context.Context, event models.Event, token string) error
	MyEvents(ctx context.Context, token string) ([]models.OrganizerEvent, error)
	SetEventOpen(ctx context.Context, eventID string, open bool, token string) error
	MyInscriptions(ctx context.Context, token string) ([]models.Inscription, error)
	Enrol(ctx context.Context, eventID, userID, token string) error
	CancelInscription(ctx context.Context, eventID, userID, token string) error
	Inscription(ctx context.Context, eventID, userID, token string) (models.Inscription, error)
	EventInscriptions(ctx context.Context, eventID, token string) ([]models.Inscription, error)
	EventWaitlist(ctx context.Context, eventID, token string) ([]models.WaitlistEntry, error)
	PendingInscriptionCount(ctx context.Context, eventID, token string) (int64, error)
	ConfirmedInscriptionCount(ctx context.Context, eventID, token string) (int64, error)
}

// Bot ties the Telegram transport to the dialogue machine, the
// session store and the backend client.
type Bot struct {
	api      *tgbotapi.BotAPI
	sender   Sender
	backend  Backend
	sessions *session.Store
	states   *dialogue.Store
	log      *slog.Logger

	workersMu sync.Mutex
	workers   map[int64]chan tgbotapi.Update
}

// New creates a bot authenticated against Telegram.
func New(token string, backend Backend, sessions *session.Store) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram client: %w", err)
	}

	return &Bot{
		api:      api,
		sender:   api,
		backend:  backend,
		sessions: sessions,
		states:   dialogue.NewStore(),
		log:      slog.Default(),
		workers:  make(map[int64]chan tgbotapi.Update),
	}, nil
}

// Start runs the update loop until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	b.log.Info("authorized on telegram", "username", b.api.Self.UserName)

	if _, err := b.api.Request(tgbotapi.NewSetMyCommands(botCommands()...)); err != nil {
		b.log.Warn("could not publish command list", "error", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		chatID, ok := updateChatID(update)
		if !ok {
			b.discardUpdate(update)
			continue
		}
		b.dispatch(ctx, chatID, update)
	}

	return ctx.Err()
}

// dispatch hands the update to the chat's worker, creating it on first
// contact. Each chat's updates are handled sequentially so a chat
// never races against itself on the session or dialogue entry;
// different chats proceed concurrently.
func (b *Bot) dispatch(ctx context.Context, chatID int64, update tgbotapi.Update) {
	b.workersMu.Lock()
	ch, ok := b.workers[chatID]
	if !ok {
		ch = make(chan tgbotapi.Update, 16)
		b.workers[chatID] = ch
		go b.chatWorker(ctx, ch)
	}
	b.workersMu.Unlock()

	select {
	case ch <- update:
	default:
		b.log.Warn("chat queue full, dropping update", "chat_id", chatID)
	}
}

func (b *Bot) chatWorker(ctx context.Context, ch chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-ch:
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		metrics.UpdatesHandled.WithLabelValues("message").Inc()
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		metrics.UpdatesHandled.WithLabelValues("callback").Inc()
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

// handleMessage routes one inbound message: explicit commands from the
// authenticated idle state (plus /reset from anywhere), otherwise the
// current dialogue step. Input that matches neither is logged and
// dropped so the dispatcher never crashes or strands the chat.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	state := b.states.Get(chatID)

	if msg.IsCommand() {
		if msg.Command() == "reset" {
			b.handleReset(msg)
			return
		}
		if _, idle := state.(dialogue.EnterCommand); idle {
			b.handleCommand(ctx, msg)
			return
		}
		// A command typed mid-flow is just input for the current step.
	}

	switch st := state.(type) {
	case dialogue.Start:
		b.handleGreeting(msg)
	case dialogue.CheckAuthChoice:
		b.handleAuthChoice(msg)
	case dialogue.RegisterEmail:
		b.handleRegisterEmail(msg)
	case dialogue.RegisterPassword:
		b.handleRegisterPassword(msg, st)
	case dialogue.ConfirmPassword:
		b.handleConfirmPassword(ctx, msg, st)
	case dialogue.LoginEmail:
		b.handleLoginEmail(msg)
	case dialogue.LoginPassword:
		b.handleLoginPassword(ctx, msg, st)
	case dialogue.EnterCommand:
		b.log.Debug("dropping free text in idle state", "chat_id", chatID)
	case dialogue.EventCreation:
		b.handleCreationStep(ctx, msg, st)
	default:
		// Structurally impossible; reset to a safe state instead of
		// leaving the chat stuck.
		b.log.Error("unknown dialogue state", "chat_id", chatID)
		b.states.Reset(chatID)
		b.sendError(chatID, textGenericError)
	}
}

// discardUpdate drops an update that cannot be routed to a chat. A
// callback query is still answered first, so the button stops spinning
// even when its originating message is no longer available.
func (b *Bot) discardUpdate(update tgbotapi.Update) {
	if cb := update.CallbackQuery; cb != nil {
		b.answerCallback(cb.ID, "")
	}
	b.log.Debug("ignoring update without a chat", "update_id", update.UpdateID)
}

func updateChatID(update tgbotapi.Update) (int64, bool) {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return update.CallbackQuery.Message.Chat.ID, true
	default:
		return 0, false
	}
}

func senderName(msg *tgbotapi.Message) string {
	if msg.From == nil {
		return ""
	}
	return msg.From.FirstName
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := b.sender.Send(msg); err != nil {
		b.log.Error("sending message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) sendError(chatID int64, text string) {
	b.sendMessage(chatID, "❌ "+text)
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = keyboard

	if _, err := b.sender.Send(msg); err != nil {
		b.log.Error("sending message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) answerCallback(callbackID, text string) {
	if _, err := b.sender.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.log.Error("answering callback", "error", err)
	}
}

// sendRequestError reports a failed backend call to the user. HTTP 403
// and a missing session both mean "log in first"; everything else gets
// the generic retry message.
func (b *Bot) sendRequestError(chatID int64, err error) {
	b.log.Error("backend request failed", "chat_id", chatID, "error", err)

	if client.IsForbidden(err) || errors.Is(err, session.ErrSessionNotFound) {
		b.sendError(chatID, textNeedLogin)
		return
	}
	b.sendError(chatID, textGenericError)
}
