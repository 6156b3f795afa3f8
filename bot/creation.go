package bot

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/eventos-bot/dialogue"
	"github.com/yourusername/eventos-bot/models"
	"github.com/yourusername/eventos-bot/utils"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 500
	maxDurationMins   = 1440
)

// handleCreationStep consumes one answer of the guided event creation
// flow. Invalid input re-asks the same step with the draft intact.
func (b *Bot) handleCreationStep(ctx context.Context, msg *tgbotapi.Message, st dialogue.EventCreation) {
	chatID := msg.Chat.ID
	input := strings.TrimSpace(msg.Text)
	draft := st.Draft

	switch st.Step {
	case dialogue.EnterTitle:
		if input == "" || utf8.RuneCountInString(input) > maxTitleLen {
			b.sendError(chatID, textInvalidTitle)
			return
		}
		draft.Title = input
		b.advanceCreation(chatID, dialogue.EnterDescription, draft, textAskDescription)

	case dialogue.EnterDescription:
		if input == "" || utf8.RuneCountInString(input) > maxDescriptionLen {
			b.sendError(chatID, textInvalidDescription)
			return
		}
		draft.Description = input
		b.advanceCreation(chatID, dialogue.EnterDate, draft, textAskDate)

	case dialogue.EnterDate:
		t, err := utils.ParseFutureDate(input)
		if err != nil {
			b.sendError(chatID, err.Error())
			return
		}
		draft.StartDateTime = t
		b.advanceCreation(chatID, dialogue.EnterDuration, draft, textAskDuration)

	case dialogue.EnterDuration:
		minutes, err := strconv.Atoi(input)
		if err != nil || minutes < 1 || minutes > maxDurationMins {
			b.sendError(chatID, textInvalidDuration)
			return
		}
		draft.DurationMinutes = minutes
		b.advanceCreation(chatID, dialogue.EnterLocation, draft, textAskLocation)

	case dialogue.EnterLocation:
		if input == "" {
			b.sendError(chatID, textInvalidLocation)
			return
		}
		draft.Location = input
		b.advanceCreation(chatID, dialogue.EnterMaxCapacity, draft, textAskCapacity)

	case dialogue.EnterMaxCapacity:
		capacity, err := strconv.Atoi(input)
		if err != nil || capacity < 1 {
			b.sendError(chatID, textInvalidCapacity)
			return
		}
		draft.MaxCapacity = capacity
		b.advanceCreation(chatID, dialogue.EnterPrice, draft, textAskPrice)

	case dialogue.EnterPrice:
		price, err := strconv.ParseFloat(input, 64)
		if err != nil || price < 0 {
			b.sendError(chatID, textInvalidPrice)
			return
		}
		draft.Price = price
		draft.PriceSet = true
		b.advanceCreation(chatID, dialogue.EnterCategory, draft, textAskCategory())

	case dialogue.EnterCategory:
		if !models.ValidCategory(input) {
			b.sendError(chatID, textInvalidCategory())
			return
		}
		draft.Category = models.CanonicalCategory(input)
		b.submitDraft(ctx, chatID, draft)

	default:
		b.log.Error("unknown creation step", "chat_id", chatID, "step", st.Step.String())
		b.states.Set(chatID, dialogue.EnterCommand{})
		b.sendError(chatID, textGenericError)
	}
}

func (b *Bot) advanceCreation(chatID int64, step dialogue.CreationStep, draft models.EventDraft, prompt string) {
	b.states.Set(chatID, dialogue.EventCreation{Step: step, Draft: draft})
	b.sendMessage(chatID, prompt)
}

// submitDraft finalizes the draft and creates the event. The state
// only moves to idle once the backend accepts the event; a failed call
// leaves the chat on the last step so nothing typed is lost.
func (b *Bot) submitDraft(ctx context.Context, chatID int64, draft models.EventDraft) {
	event, err := draft.Build()
	if err != nil {
		// Incomplete draft at the last step means the flow itself is
		// broken; bail out to idle rather than loop forever.
		b.log.Error("finalizing event draft", "chat_id", chatID, "error", err)
		b.states.Set(chatID, dialogue.EnterCommand{})
		b.sendError(chatID, textGenericError)
		return
	}

	token, err := b.sessions.Token(chatID)
	if err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	if err := b.backend.CreateEvent(ctx, event, token); err != nil {
		b.sendRequestError(chatID, err)
		return
	}

	b.states.Set(chatID, dialogue.EnterCommand{})
	b.sendMessage(chatID, textEventCreated+"\n\n"+event.Format())
}
