package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/w-h-a/recall/store"
)

type memoryStore struct {
	options  store.Options
	messages []store.Message
	lastTs   int64
	mtx      sync.RWMutex
}

func (s *memoryStore) Append(ctx context.Context, msg store.Message) (string, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().UnixMilli()
	}

	// timestamps order turns within the conversation
	if msg.Timestamp <= s.lastTs {
		msg.Timestamp = s.lastTs + 1
	}
	s.lastTs = msg.Timestamp

	msg.Id = uuid.New().String()
	msg.CreatedAt = time.Now().UTC()

	cpy := make([]float32, len(msg.Embedding))
	copy(cpy, msg.Embedding)
	if len(cpy) == 0 {
		msg.Embedding = nil
	} else {
		msg.Embedding = cpy
	}

	s.messages = append(s.messages, msg)

	return msg.Id, nil
}

func (s *memoryStore) RecentEmbedded(ctx context.Context, limit int) ([]store.Message, error) {
	return s.recent(limit, true)
}

func (s *memoryStore) Recent(ctx context.Context, limit int) ([]store.Message, error) {
	return s.recent(limit, false)
}

func (s *memoryStore) recent(limit int, embeddedOnly bool) ([]store.Message, error) {
	if limit < 1 {
		return nil, nil
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	out := make([]store.Message, 0, limit)

	for i := len(s.messages) - 1; i >= 0 && len(out) < limit; i-- {
		msg := s.messages[i]
		if embeddedOnly && !msg.Embedded() {
			continue
		}
		out = append(out, msg)
	}

	return out, nil
}

func (s *memoryStore) Clear(ctx context.Context) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.messages = nil
	s.lastTs = 0

	return nil
}

func NewStore(opts ...store.Option) store.Store {
	options := store.NewOptions(opts...)

	s := &memoryStore{
		options: options,
		mtx:     sync.RWMutex{},
	}

	return s
}
