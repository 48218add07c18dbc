// Package store persists per-session conversation transcripts in a durable
// key-value store. Each session maps to a single entry holding the
// serialized, ordered message slice. Persisted blobs are treated as
// untrusted input: anything unparseable is discarded, never a crash.
package store

import (
	"context"
	"sync"

	"github.com/resilientapp/graphq-tutor/apimodels"
)

// Store is the conversation transcript collaborator. The analyzer never
// depends on it; the handler layer drives it after each analysis.
type Store interface {
	Append(ctx context.Context, sessionID string, msg apimodels.ConversationMessage) error
	Load(ctx context.Context, sessionID string) ([]apimodels.ConversationMessage, error)
	Clear(ctx context.Context, sessionID string) error
}

// MemoryStore keeps transcripts in process memory. Used when no Redis
// address is configured, and in tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string][]apimodels.ConversationMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]apimodels.ConversationMessage),
	}
}

func (s *MemoryStore) Append(_ context.Context, sessionID string, msg apimodels.ConversationMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], msg)
	return nil
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) ([]apimodels.ConversationMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	messages := s.sessions[sessionID]
	out := make([]apimodels.ConversationMessage, len(messages))
	copy(out, messages)
	return out, nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
