package dialogue

import "sync"

// Store maps each chat to its dialogue state. In-memory only; a chat's
// entry is created on first contact and lives for the process
// lifetime.
type Store struct {
	mu     sync.RWMutex
	states map[int64]State
}

// NewStore builds an empty dialogue store.
func NewStore() *Store {
	return &Store{states: make(map[int64]State)}
}

// Get returns the chat's current state, defaulting to Start for a
// chat the bot has never seen.
func (s *Store) Get(chatID int64) State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[chatID]
	if !ok {
		return Start{}
	}
	return state
}

// Set records the chat's new state.
func (s *Store) Set(chatID int64, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[chatID] = state
}

// Reset puts the chat back at the beginning of the conversation.
func (s *Store) Reset(chatID int64) {
	s.Set(chatID, Start{})
}
