package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"

	"github.com/perio-stage-predictor/internal/domain"
)

// Store keeps session states in memory. A session ends when it has been idle
// for the configured TTL, when it is evicted to make room, or when deleted.
type Store struct {
	cache   *expirable.LRU[string, *State]
	contact domain.ClinicContact
	logger  *logrus.Logger
}

// NewStore creates a session store
func NewStore(cfg domain.SessionConfig, contact domain.ClinicContact, logger *logrus.Logger) *Store {
	s := &Store{
		contact: contact,
		logger:  logger,
	}
	s.cache = expirable.NewLRU[string, *State](cfg.MaxSessions, s.onEvict, cfg.TTL)
	return s
}

func (s *Store) onEvict(id string, state *State) {
	s.logger.WithFields(logrus.Fields{
		"session_id": id,
		"duration":   time.Since(state.CreatedAt()).String(),
	}).Debug("Session ended")
}

// Create starts a new session with a fresh identifier.
func (s *Store) Create() *State {
	state := NewState(uuid.New().String(), s.contact)
	s.cache.Add(state.ID(), state)

	s.logger.WithField("session_id", state.ID()).Debug("Session started")
	return state
}

// Get returns a live session and extends its idle deadline.
func (s *Store) Get(id string) (*State, bool) {
	if id == "" {
		return nil, false
	}
	state, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	// Re-adding an existing key refreshes its expiry.
	s.cache.Add(id, state)
	return state, true
}

// GetOrCreate returns the session for id, starting a new one if id is
// unknown or expired. created reports whether a new session was started.
func (s *Store) GetOrCreate(id string) (state *State, created bool) {
	if state, ok := s.Get(id); ok {
		return state, false
	}
	return s.Create(), true
}

// Delete ends a session.
func (s *Store) Delete(id string) {
	s.cache.Remove(id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.cache.Len()
}
