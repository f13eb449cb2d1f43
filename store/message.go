package store

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one conversation turn. Embedding is nil when embedding was
// disabled or the provider failed; only embedded messages are retrieval
// candidates. Timestamp is milliseconds since epoch, assigned at creation
// and never mutated after the message is appended.
type Message struct {
	Id        string    `json:"id,omitempty"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"embedding,omitempty"`
	Timestamp int64     `json:"timestamp"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

func (m Message) Embedded() bool {
	return len(m.Embedding) > 0
}
