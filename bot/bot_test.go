package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/eventos-bot/dialogue"
	"github.com/yourusername/eventos-bot/models"
	"github.com/yourusername/eventos-bot/session"
)

// fakeSender records everything the bot tries to send to Telegram.
type fakeSender struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.sent)
	msg, ok := f.sent[len(f.sent)-1].(tgbotapi.MessageConfig)
	require.True(t, ok)
	return msg.Text
}

// fakeBackend scripts the events API and records every call.
type fakeBackend struct {
	token       models.Token
	user        models.User
	loginErr    error
	registerErr error

	loginCreds    []models.Credentials
	registerCreds []models.Credentials
	loggedOut     []string

	events     []models.Event
	lastFilter models.EventFilter

	created   []models.Event
	createErr error

	myEvents       []models.OrganizerEvent
	setOpen        map[string]bool
	myInscriptions []models.Inscription

	enrolled          [][2]string
	cancelled         [][2]string
	inscription       models.Inscription
	eventInscriptions []models.Inscription
	waitlist          []models.WaitlistEntry
	pending           int64
	confirmed         int64
}

func (f *fakeBackend) Login(ctx context.Context, creds models.Credentials) (models.Token, error) {
	f.loginCreds = append(f.loginCreds, creds)
	if f.loginErr != nil {
		return models.Token{}, f.loginErr
	}
	return f.token, nil
}

func (f *fakeBackend) Register(ctx context.Context, creds models.Credentials) (models.Token, error) {
	f.registerCreds = append(f.registerCreds, creds)
	if f.registerErr != nil {
		return models.Token{}, f.registerErr
	}
	return f.token, nil
}

func (f *fakeBackend) Logout(ctx context.Context, token string) error {
	f.loggedOut = append(f.loggedOut, token)
	return nil
}

func (f *fakeBackend) Me(ctx context.Context, token string) (models.User, error) {
	return f.user, nil
}

func (f *fakeBackend) Events(ctx context.Context, filter models.EventFilter, token string) ([]models.Event, error) {
	f.lastFilter = filter
	return f.events, nil
}

func (f *fakeBackend) CreateEvent(ctx context.Context, event models.Event, token string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, event)
	return nil
}

func (f *fakeBackend) MyEvents(ctx context.Context, token string) ([]models.OrganizerEvent, error) {
	return f.myEvents, nil
}

func (f *fakeBackend) SetEventOpen(ctx context.Context, eventID string, open bool, token string) error {
	if f.setOpen == nil {
		f.setOpen = make(map[string]bool)
	}
	f.setOpen[eventID] = open
	return nil
}

func (f *fakeBackend) MyInscriptions(ctx context.Context, token string) ([]models.Inscription, error) {
	return f.myInscriptions, nil
}

func (f *fakeBackend) Enrol(ctx context.Context, eventID, userID, token string) error {
	f.enrolled = append(f.enrolled, [2]string{eventID, userID})
	return nil
}

func (f *fakeBackend) CancelInscription(ctx context.Context, eventID, userID, token string) error {
	f.cancelled = append(f.cancelled, [2]string{eventID, userID})
	return nil
}

func (f *fakeBackend) Inscription(ctx context.Context, eventID, userID, token string) (models.Inscription, error) {
	return f.inscription, nil
}

func (f *fakeBackend) EventInscriptions(ctx context.Context, eventID, token string) ([]models.Inscription, error) {
	return f.eventInscriptions, nil
}

func (f *fakeBackend) EventWaitlist(ctx context.Context, eventID, token string) ([]models.WaitlistEntry, error) {
	return f.waitlist, nil
}

func (f *fakeBackend) PendingInscriptionCount(ctx context.Context, eventID, token string) (int64, error) {
	return f.pending, nil
}

func (f *fakeBackend) ConfirmedInscriptionCount(ctx context.Context, eventID, token string) (int64, error) {
	return f.confirmed, nil
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		token: models.Token{Token: "tok-1", ExpiresAt: time.Now().UTC().Add(time.Hour)},
		user:  models.User{ID: "u1", Email: "user@example.com"},
	}
}

func newTestBot(backend *fakeBackend) (*Bot, *fakeSender) {
	sender := &fakeSender{}
	return &Bot{
		sender:   sender,
		backend:  backend,
		sessions: session.NewStore(backend),
		states:   dialogue.NewStore(),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		workers:  make(map[int64]chan tgbotapi.Update),
	}, sender
}

const testChat int64 = 42

func textMessage(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: testChat},
		From: &tgbotapi.User{FirstName: "Ana"},
		Text: text,
	}
}

func commandMessage(command, args string) *tgbotapi.Message {
	text := "/" + command
	if args != "" {
		text += " " + args
	}
	msg := textMessage(text)
	msg.Entities = []tgbotapi.MessageEntity{
		{Type: "bot_command", Offset: 0, Length: len(command) + 1},
	}
	return msg
}

// authenticate puts the chat in the idle authenticated state.
func authenticate(t *testing.T, b *Bot, backend *fakeBackend) {
	t.Helper()
	require.NoError(t, b.sessions.Create(context.Background(), testChat, "secret12", backend.token))
	b.states.Set(testChat, dialogue.EnterCommand{})
}

func TestFirstContactGreets(t *testing.T) {
	b, sender := newTestBot(newFakeBackend())

	b.handleMessage(context.Background(), textMessage("hola"))

	assert.IsType(t, dialogue.CheckAuthChoice{}, b.states.Get(testChat))
	assert.Contains(t, sender.lastText(t), "Ana")
}

func TestAuthChoice(t *testing.T) {
	b, _ := newTestBot(newFakeBackend())

	b.states.Set(testChat, dialogue.CheckAuthChoice{})
	b.handleMessage(context.Background(), textMessage("A"))
	assert.IsType(t, dialogue.RegisterEmail{}, b.states.Get(testChat))

	b.states.Set(testChat, dialogue.CheckAuthChoice{})
	b.handleMessage(context.Background(), textMessage("b"))
	assert.IsType(t, dialogue.LoginEmail{}, b.states.Get(testChat))

	b.states.Set(testChat, dialogue.CheckAuthChoice{})
	b.handleMessage(context.Background(), textMessage("maybe"))
	assert.IsType(t, dialogue.CheckAuthChoice{}, b.states.Get(testChat))
}

func TestRegisterEmailValidation(t *testing.T) {
	b, sender := newTestBot(newFakeBackend())
	b.states.Set(testChat, dialogue.RegisterEmail{})

	b.handleMessage(context.Background(), textMessage("not-an-email"))
	assert.IsType(t, dialogue.RegisterEmail{}, b.states.Get(testChat))
	assert.Contains(t, sender.lastText(t), "❌")

	b.handleMessage(context.Background(), textMessage("user@example.com"))
	st, ok := b.states.Get(testChat).(dialogue.RegisterPassword)
	require.True(t, ok)
	assert.Equal(t, "user@example.com", st.Email)
}

func TestRegisterPasswordValidation(t *testing.T) {
	b, _ := newTestBot(newFakeBackend())
	b.states.Set(testChat, dialogue.RegisterPassword{Email: "user@example.com"})

	b.handleMessage(context.Background(), textMessage("weak"))
	assert.IsType(t, dialogue.RegisterPassword{}, b.states.Get(testChat))

	b.handleMessage(context.Background(), textMessage("secret12"))
	st, ok := b.states.Get(testChat).(dialogue.ConfirmPassword)
	require.True(t, ok)
	assert.Equal(t, "user@example.com", st.Email)
	assert.Equal(t, "secret12", st.Password)
}

func TestConfirmPasswordMismatch(t *testing.T) {
	backend := newFakeBackend()
	b, _ := newTestBot(backend)
	b.states.Set(testChat, dialogue.ConfirmPassword{Email: "user@example.com", Password: "secret12"})

	b.handleMessage(context.Background(), textMessage("different12"))

	assert.IsType(t, dialogue.ConfirmPassword{}, b.states.Get(testChat))
	assert.Empty(t, backend.registerCreds)
}

func TestConfirmPasswordRegisters(t *testing.T) {
	backend := newFakeBackend()
	b, sender := newTestBot(backend)
	b.states.Set(testChat, dialogue.ConfirmPassword{Email: "user@example.com", Password: "secret12"})

	b.handleMessage(context.Background(), textMessage("secret12"))

	require.Len(t, backend.registerCreds, 1)
	assert.Equal(t, models.Credentials{
		Email:    "user@example.com",
		Password: "secret12",
		UserType: models.UserTypeRegular,
	}, backend.registerCreds[0])
	assert.IsType(t, dialogue.EnterCommand{}, b.states.Get(testChat))
	assert.True(t, b.sessions.IsValid(testChat))
	assert.Contains(t, sender.lastText(t), "cuenta fue creada")
}

func TestLoginFailureKeepsEmail(t *testing.T) {
	backend := newFakeBackend()
	backend.loginErr = errors.New("invalid credentials")
	b, sender := newTestBot(backend)
	b.states.Set(testChat, dialogue.LoginPassword{Email: "user@example.com"})

	b.handleMessage(context.Background(), textMessage("wrong-pass1"))

	st, ok := b.states.Get(testChat).(dialogue.LoginPassword)
	require.True(t, ok, "failure re-prompts the password, not the email")
	assert.Equal(t, "user@example.com", st.Email)
	assert.Contains(t, sender.lastText(t), "inicio de sesión")
	assert.False(t, b.sessions.IsValid(testChat))
}

func TestLoginSuccess(t *testing.T) {
	backend := newFakeBackend()
	b, _ := newTestBot(backend)
	b.states.Set(testChat, dialogue.LoginPassword{Email: "user@example.com"})

	b.handleMessage(context.Background(), textMessage("secret12"))

	require.Len(t, backend.loginCreds, 1)
	assert.Equal(t, "user@example.com", backend.loginCreds[0].Email)
	assert.Empty(t, backend.loginCreds[0].UserType)
	assert.IsType(t, dialogue.EnterCommand{}, b.states.Get(testChat))
	assert.True(t, b.sessions.IsValid(testChat))

	session, err := b.sessions.Get(testChat)
	require.NoError(t, err)
	assert.Equal(t, "secret12", session.Password, "retained for silent renewal")
}

func TestResetMidFlow(t *testing.T) {
	backend := newFakeBackend()
	b, _ := newTestBot(backend)

	// Unauthenticated: back to the auth choice.
	b.states.Set(testChat, dialogue.RegisterPassword{Email: "user@example.com"})
	b.handleMessage(context.Background(), commandMessage("reset", ""))
	assert.IsType(t, dialogue.CheckAuthChoice{}, b.states.Get(testChat))

	// Authenticated: straight back to idle.
	authenticate(t, b, backend)
	b.states.Set(testChat, dialogue.EventCreation{Step: dialogue.EnterDate})
	b.handleMessage(context.Background(), commandMessage("reset", ""))
	assert.IsType(t, dialogue.EnterCommand{}, b.states.Get(testChat))
}

func TestCommandRequiresSession(t *testing.T) {
	b, sender := newTestBot(newFakeBackend())
	b.states.Set(testChat, dialogue.EnterCommand{})

	b.handleMessage(context.Background(), commandMessage("listevents", ""))

	assert.Contains(t, sender.lastText(t), "logueado")
}

func TestListEventsWithFilters(t *testing.T) {
	backend := newFakeBackend()
	backend.events = []models.Event{
		{ID: "e1", Title: "Recital", Category: "Musica"},
	}
	b, sender := newTestBot(backend)
	authenticate(t, b, backend)

	b.handleMessage(context.Background(), commandMessage("listevents", "min_price=12 category=Musica"))

	require.NotNil(t, backend.lastFilter.MinPrice)
	assert.Equal(t, 12.0, *backend.lastFilter.MinPrice)
	require.NotNil(t, backend.lastFilter.Category)
	assert.Equal(t, "Musica", *backend.lastFilter.Category)

	// Header plus one message per event, the latter with an enrol button.
	require.GreaterOrEqual(t, len(sender.sent), 2)
	last, ok := sender.sent[len(sender.sent)-1].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Contains(t, last.Text, "Recital")
	assert.NotNil(t, last.ReplyMarkup)
}

func TestListEventsEmpty(t *testing.T) {
	backend := newFakeBackend()
	b, sender := newTestBot(backend)
	authenticate(t, b, backend)

	b.handleMessage(context.Background(), commandMessage("listevents", ""))

	assert.True(t, backend.lastFilter.IsZero())
	assert.Contains(t, sender.lastText(t), "No hay eventos")
}

func TestMyInscriptionsCancelButton(t *testing.T) {
	backend := newFakeBackend()
	backend.myInscriptions = []models.Inscription{
		{ID: "i1", State: models.InscriptionConfirmed, EventID: "e1"},
		{ID: "i2", State: models.InscriptionPending, EventID: "e2"},
	}
	b, sender := newTestBot(backend)
	authenticate(t, b, backend)

	b.handleMessage(context.Background(), commandMessage("myinscriptions", ""))

	require.Len(t, sender.sent, 2)
	confirmed := sender.sent[0].(tgbotapi.MessageConfig)
	pending := sender.sent[1].(tgbotapi.MessageConfig)
	assert.NotNil(t, confirmed.ReplyMarkup, "confirmed inscriptions can be cancelled")
	assert.Nil(t, pending.ReplyMarkup)
}

func TestMyEventsShowsCounts(t *testing.T) {
	backend := newFakeBackend()
	backend.myEvents = []models.OrganizerEvent{
		{Event: models.Event{ID: "e1", Title: "Taller"}, Open: true},
	}
	backend.pending = 3
	backend.confirmed = 7
	b, sender := newTestBot(backend)
	authenticate(t, b, backend)

	b.handleMessage(context.Background(), commandMessage("myevents", ""))

	text := sender.lastText(t)
	assert.Contains(t, text, "Taller")
	assert.Contains(t, text, "pendientes: 3")
	assert.Contains(t, text, "confirmadas: 7")
}

func TestLogout(t *testing.T) {
	backend := newFakeBackend()
	b, _ := newTestBot(backend)
	authenticate(t, b, backend)

	b.handleMessage(context.Background(), commandMessage("logout", ""))

	assert.Equal(t, []string{"tok-1"}, backend.loggedOut)
	assert.False(t, b.sessions.IsValid(testChat))
	assert.IsType(t, dialogue.CheckAuthChoice{}, b.states.Get(testChat))
}

func TestUnknownCommand(t *testing.T) {
	backend := newFakeBackend()
	b, sender := newTestBot(backend)
	authenticate(t, b, backend)

	b.handleMessage(context.Background(), commandMessage("frobnicate", ""))

	assert.Contains(t, sender.lastText(t), "Comando desconocido")
}

func TestFreeTextInIdleIsDropped(t *testing.T) {
	backend := newFakeBackend()
	b, sender := newTestBot(backend)
	authenticate(t, b, backend)

	b.handleMessage(context.Background(), textMessage("hola de nuevo"))

	assert.Empty(t, sender.sent)
}
