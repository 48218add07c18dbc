package apimodels

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Message roles in a conversation transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationMessage is one entry in a session transcript. A user message
// carries the query and no analysis; an assistant message carries the
// analysis and no query.
type ConversationMessage struct {
	ID        string          `json:"id"`
	Role      string          `json:"role"`
	Query     string          `json:"query,omitempty"`
	Analysis  *AnalysisResult `json:"analysis,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewUserMessage builds a transcript entry for a submitted query.
func NewUserMessage(query string) ConversationMessage {
	return ConversationMessage{
		ID:        newMessageID(),
		Role:      RoleUser,
		Query:     query,
		Timestamp: time.Now().UTC(),
	}
}

// NewAssistantMessage builds a transcript entry for an analysis result.
func NewAssistantMessage(analysis AnalysisResult) ConversationMessage {
	return ConversationMessage{
		ID:        newMessageID(),
		Role:      RoleAssistant,
		Analysis:  &analysis,
		Timestamp: time.Now().UTC(),
	}
}

// newMessageID returns an ID that sorts by creation time; the UUID suffix
// keeps IDs unique when two messages land on the same nanosecond.
func newMessageID() string {
	return fmt.Sprintf("%d-%s", time.Now().UTC().UnixNano(), uuid.NewString()[:8])
}
