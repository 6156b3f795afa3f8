package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/eventos-bot/dialogue"
	"github.com/yourusername/eventos-bot/models"
	"github.com/yourusername/eventos-bot/utils"
)

// Registration and login dialogue. Validation failures re-prompt the
// same step preserving accumulated data; they are never fatal.

func (b *Bot) handleGreeting(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	b.states.Set(chatID, dialogue.CheckAuthChoice{})
	b.sendMessage(chatID, textGreeting(senderName(msg)))
}

func (b *Bot) handleAuthChoice(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch strings.ToLower(strings.TrimSpace(msg.Text)) {
	case "a":
		b.states.Set(chatID, dialogue.RegisterEmail{})
		b.sendMessage(chatID, textChoseRegister)
	case "b":
		b.states.Set(chatID, dialogue.LoginEmail{})
		b.sendMessage(chatID, textChoseLogin)
	default:
		b.sendMessage(chatID, textInvalidChoice)
	}
}

func (b *Bot) handleRegisterEmail(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	email := strings.TrimSpace(msg.Text)

	if !utils.ValidEmail(email) {
		b.sendError(chatID, textInvalidEmail)
		return
	}

	b.states.Set(chatID, dialogue.RegisterPassword{Email: email})
	b.sendMessage(chatID, textAskPassword)
}

func (b *Bot) handleRegisterPassword(msg *tgbotapi.Message, st dialogue.RegisterPassword) {
	chatID := msg.Chat.ID

	if !utils.ValidPassword(msg.Text) {
		b.sendError(chatID, textInvalidPassword)
		return
	}

	b.states.Set(chatID, dialogue.ConfirmPassword{Email: st.Email, Password: msg.Text})
	b.sendMessage(chatID, textAskConfirmPassword)
}

func (b *Bot) handleConfirmPassword(ctx context.Context, msg *tgbotapi.Message, st dialogue.ConfirmPassword) {
	chatID := msg.Chat.ID

	if msg.Text != st.Password {
		b.sendError(chatID, textPasswordMismatch)
		return
	}

	token, err := b.backend.Register(ctx, models.Credentials{
		Email:    st.Email,
		Password: st.Password,
		UserType: models.UserTypeRegular,
	})
	if err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	if err := b.sessions.Create(ctx, chatID, st.Password, token); err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	b.states.Set(chatID, dialogue.EnterCommand{})
	b.sendMessage(chatID, textRegistered)
}

func (b *Bot) handleLoginEmail(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	email := strings.TrimSpace(msg.Text)

	if !utils.ValidEmail(email) {
		b.sendError(chatID, textInvalidEmail)
		return
	}

	b.states.Set(chatID, dialogue.LoginPassword{Email: email})
	b.sendMessage(chatID, textAskPassword)
}

// handleLoginPassword treats any input as a password attempt. On
// failure the state stays at LoginPassword with the email preserved,
// so the user only retypes the password.
func (b *Bot) handleLoginPassword(ctx context.Context, msg *tgbotapi.Message, st dialogue.LoginPassword) {
	chatID := msg.Chat.ID
	password := msg.Text

	token, err := b.backend.Login(ctx, models.Credentials{
		Email:    st.Email,
		Password: password,
	})
	if err != nil {
		b.log.Warn("login failed", "chat_id", chatID, "error", err)
		b.sendError(chatID, textLoginFailed)
		return
	}

	if err := b.sessions.Create(ctx, chatID, password, token); err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	b.states.Set(chatID, dialogue.EnterCommand{})
	b.sendMessage(chatID, textLoggedIn)
}
