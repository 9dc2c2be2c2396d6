// Package session holds the per-identity ephemeral interaction state. The
// store lives in process memory only; losing it on restart degrades every
// conversation to a fresh contact, which the relay tolerates.
package session

import (
	"sync"

	"supportbot/internal/models"
)

// Session is the fixed-shape state record for one identity. A zero Session
// means "composing nothing". For an admin at most one of AdminTargetID /
// BroadcastMode is set at a time.
type Session struct {
	ConversationKind models.ChatType
	ActiveChatID     int64
	AwaitingAdmin    bool
	AdminTargetID    int64
	BroadcastMode    bool
}

type Field int

const (
	FieldConversationKind Field = iota
	FieldActiveChat
	FieldAwaitingAdmin
	FieldAdminTarget
	FieldBroadcastMode
)

type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
	}
}

// Get returns a snapshot of the identity's session, creating an empty record
// on first access. The copy stays consistent while the caller handles one
// event, regardless of concurrent mutations.
func (s *Store) Get(id int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	return *s.session(id)
}

// Mutate applies fn to the identity's session under the store lock.
func (s *Store) Mutate(id int64, fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.session(id))
}

// Clear resets the named fields of the identity's session.
func (s *Store) Clear(id int64, fields ...Field) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(id)

	for _, field := range fields {
		switch field {
		case FieldConversationKind:
			sess.ConversationKind = ""
		case FieldActiveChat:
			sess.ActiveChatID = 0
		case FieldAwaitingAdmin:
			sess.AwaitingAdmin = false
		case FieldAdminTarget:
			sess.AdminTargetID = 0
		case FieldBroadcastMode:
			sess.BroadcastMode = false
		}
	}
}

func (s *Store) session(id int64) *Session {
	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{}
		s.sessions[id] = sess
	}

	return sess
}
