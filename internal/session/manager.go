package session

import (
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/san-kum/eigenmap/internal/logging"
)

var ErrNotFound = errors.New("session: not found")

// Manager maps session ids to sessions. It is the only structure shared
// between users.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	log      *slog.Logger
}

func NewManager(log *slog.Logger) *Manager {
	if log == nil {
		log = logging.Discard()
	}
	return &Manager{sessions: make(map[string]*Session), log: log}
}

// Create starts a new session under a fresh random id.
func (m *Manager) Create(p Params) *Session {
	id := uuid.NewString()
	s := New(p, m.log.With("session", id))
	s.id = id

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.log.Info("session created", "session", id, "variant", p.Variant)
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete ends a session. Deleting an unknown id is a no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		m.log.Info("session closed", "session", id)
	}
}

// List returns the live session ids in sorted order.
func (m *Manager) List() []string {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
