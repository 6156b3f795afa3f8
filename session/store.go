// Package session keeps the in-memory mapping from chat to
// authenticated backend session. Sessions live for the process
// lifetime only.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/yourusername/eventos-bot/metrics"
	"github.com/yourusername/eventos-bot/models"
)

// ErrSessionNotFound is returned when a chat has no session.
var ErrSessionNotFound = errors.New("session not found")

// AuthClient is the slice of the backend the store needs to create and
// renew sessions.
type AuthClient interface {
	Login(ctx context.Context, creds models.Credentials) (models.Token, error)
	Me(ctx context.Context, token string) (models.User, error)
}

// Session binds a chat to an authenticated identity. The password is
// retained so an expired token can be renewed without re-prompting the
// user.
type Session struct {
	UserID   string
	Email    string
	Password string
	Token    models.Token
	IsActive bool
}

// Valid reports whether the session can authenticate calls right now.
func (s Session) Valid() bool {
	return s.IsActive && s.Token.ExpiresAt.After(time.Now().UTC())
}

// Store is the chat → session map. One reader/writer lock guards the
// whole map; renewal is rare next to message volume, so the coarse
// lock is acceptable.
type Store struct {
	mu       sync.RWMutex
	client   AuthClient
	sessions map[int64]Session
	log      *slog.Logger
}

// NewStore builds an empty session store backed by client.
func NewStore(client AuthClient) *Store {
	return &Store{
		client:   client,
		sessions: make(map[int64]Session),
		log:      slog.Default(),
	}
}

// Token returns the chat's bearer token for outbound calls.
func (s *Store) Token(chatID int64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[chatID]
	if !ok {
		return "", fmt.Errorf("chat %d: %w", chatID, ErrSessionNotFound)
	}
	return session.Token.Token, nil
}

// Get returns a copy of the chat's session.
func (s *Store) Get(chatID int64) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[chatID]
	if !ok {
		return Session{}, fmt.Errorf("chat %d: %w", chatID, ErrSessionNotFound)
	}
	return session, nil
}

// IsValid reports whether the chat has a session that is active and
// unexpired. A chat with no session is simply not valid.
func (s *Store) IsValid(chatID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[chatID]
	return ok && session.Valid()
}

// Create stores a new active session for the chat, fetching the
// authenticated identity with the given token. Any prior session for
// the chat is overwritten unconditionally.
func (s *Store) Create(ctx context.Context, chatID int64, password string, token models.Token) error {
	s.log.Info("creating session", "chat_id", chatID)

	user, err := s.client.Me(ctx, token.Token)
	if err != nil {
		return fmt.Errorf("fetching identity for new session: %w", err)
	}

	s.mu.Lock()
	s.sessions[chatID] = Session{
		UserID:   user.ID,
		Email:    user.Email,
		Password: password,
		Token:    token,
		IsActive: true,
	}
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(s.Count()))
	return nil
}

// Renew logs in again with the stored credentials and replaces the
// session's token. A successful renewal also reactivates the session:
// the backend just accepted the credentials, so a deactivation from an
// earlier failed sweep no longer applies. Identity and credentials are
// left untouched.
func (s *Store) Renew(ctx context.Context, chatID int64) error {
	s.log.Info("renewing session token", "chat_id", chatID)

	s.mu.RLock()
	session, ok := s.sessions[chatID]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("chat %d: %w", chatID, ErrSessionNotFound)
	}

	token, err := s.client.Login(ctx, models.Credentials{
		Email:    session.Email,
		Password: session.Password,
	})
	if err != nil {
		return fmt.Errorf("renewing session: %w", err)
	}

	s.mu.Lock()
	current, ok := s.sessions[chatID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("chat %d: %w", chatID, ErrSessionNotFound)
	}
	current.Token = token
	current.IsActive = true
	s.sessions[chatID] = current
	s.mu.Unlock()

	metrics.ActiveSessions.Set(float64(s.Count()))
	return nil
}

// CheckAndRenew ensures the chat's session is usable before an
// authenticated command: if it is no longer valid, the token is
// renewed in place. Fails with ErrSessionNotFound when the chat was
// never authenticated.
func (s *Store) CheckAndRenew(ctx context.Context, chatID int64) error {
	if s.IsValid(chatID) {
		return nil
	}

	if err := s.Renew(ctx, chatID); err != nil {
		return err
	}
	metrics.SessionRenewals.WithLabelValues("command").Inc()
	return nil
}

// Deactivate marks the chat's session inactive, keeping the record so
// a later login can overwrite it.
func (s *Store) Deactivate(chatID int64) error {
	s.mu.Lock()
	session, ok := s.sessions[chatID]
	if ok {
		session.IsActive = false
		s.sessions[chatID] = session
	}
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("chat %d: %w", chatID, ErrSessionNotFound)
	}
	metrics.ActiveSessions.Set(float64(s.Count()))
	return nil
}

// Count returns the number of active sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, session := range s.sessions {
		if session.IsActive {
			n++
		}
	}
	return n
}

// Sweep renews every active session whose token has expired, and
// deactivates the ones that can no longer log in. Run periodically so
// users rarely hit an expired token mid-command.
func (s *Store) Sweep(ctx context.Context) {
	s.mu.RLock()
	expired := make([]int64, 0)
	for chatID, session := range s.sessions {
		if session.IsActive && session.Token.Expired() {
			expired = append(expired, chatID)
		}
	}
	s.mu.RUnlock()

	for _, chatID := range expired {
		if err := s.Renew(ctx, chatID); err != nil {
			s.log.Warn("sweep could not renew session, deactivating",
				"chat_id", chatID, "error", err)
			_ = s.Deactivate(chatID)
			continue
		}
		metrics.SessionRenewals.WithLabelValues("sweep").Inc()
	}

	metrics.ActiveSessions.Set(float64(s.Count()))
}
