package recall

import (
	"context"
	"errors"
	"io"

	"github.com/w-h-a/recall/embedder"
	"github.com/w-h-a/recall/generator"
	"github.com/w-h-a/recall/pipeline"
	"github.com/w-h-a/recall/store"
)

// Client is the chat client facade. All retrieval and persistence decisions
// live in the pipeline; the client only forwards.
type Client struct {
	pipeline  *pipeline.Pipeline
	embedder  embedder.Embedder
	generator generator.Generator
	store     store.Store
}

func New(
	embedder embedder.Embedder,
	generator generator.Generator,
	store store.Store,
	opts ...pipeline.Option,
) *Client {
	if generator == nil {
		panic("generator is required")
	}

	if store == nil {
		panic("store is required")
	}

	opts = append(opts,
		pipeline.WithEmbedder(embedder),
		pipeline.WithGenerator(generator),
		pipeline.WithStore(store),
	)

	return &Client{
		pipeline:  pipeline.New(opts...),
		embedder:  embedder,
		generator: generator,
		store:     store,
	}
}

// Send submits one user message and blocks until the turn completes.
func (c *Client) Send(ctx context.Context, input string) (*pipeline.Turn, error) {
	return c.pipeline.Submit(ctx, input)
}

// History returns up to limit recent messages, oldest first.
func (c *Client) History(ctx context.Context, limit int) ([]store.Message, error) {
	recent, err := c.store.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	history := make([]store.Message, len(recent))
	for i, msg := range recent {
		history[len(recent)-1-i] = msg
	}

	return history, nil
}

// Reset clears the conversation history.
func (c *Client) Reset(ctx context.Context) error {
	return c.store.Clear(ctx)
}

func (c *Client) State() pipeline.State {
	return c.pipeline.State()
}

// Close releases any closable collaborators, such as the postgres
// connection pool or the google genai client.
func (c *Client) Close() error {
	var errs []error

	for _, collaborator := range []any{c.embedder, c.generator, c.store} {
		if closer, ok := collaborator.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}
