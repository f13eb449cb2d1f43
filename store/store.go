package store

import "context"

// Store is an append-only log of messages scoped to one conversation.
// Recent and RecentEmbedded return messages most-recent-first.
type Store interface {
	Append(ctx context.Context, msg Message) (string, error)
	RecentEmbedded(ctx context.Context, limit int) ([]Message, error)
	Recent(ctx context.Context, limit int) ([]Message, error)
	Clear(ctx context.Context) error
}
