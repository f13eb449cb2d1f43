package recall

import (
	"context"
	"errors"
	"testing"

	"github.com/w-h-a/recall/generator"
	"github.com/w-h-a/recall/pipeline"
	"github.com/w-h-a/recall/store"
	memorystore "github.com/w-h-a/recall/store/memory"
)

type staticGenerator struct {
	reply string
}

func (g *staticGenerator) Generate(ctx context.Context, history []generator.Message, input string) (string, error) {
	return g.reply, nil
}

type closableEmbedder struct {
	closed bool
}

func (e *closableEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (e *closableEmbedder) Close() error {
	e.closed = true
	return nil
}

type closableStore struct {
	store.Store
	closed   bool
	closeErr error
}

func (s *closableStore) Close() error {
	s.closed = true
	return s.closeErr
}

func TestCloseReleasesClosableCollaborators(t *testing.T) {
	emb := &closableEmbedder{}
	st := &closableStore{Store: memorystore.NewStore()}

	client := New(emb, &staticGenerator{reply: "ok"}, st)

	if err := client.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if !emb.closed {
		t.Fatal("embedder was not closed")
	}
	if !st.closed {
		t.Fatal("store was not closed")
	}
}

func TestCloseSurfacesCollaboratorErrors(t *testing.T) {
	closeErr := errors.New("pool teardown failed")
	st := &closableStore{Store: memorystore.NewStore(), closeErr: closeErr}

	client := New(nil, &staticGenerator{reply: "ok"}, st, pipeline.WithEmbeddings(false))

	if err := client.Close(); !errors.Is(err, closeErr) {
		t.Fatalf("expected the store close error, got %v", err)
	}
}

func TestCloseWithoutClosableCollaborators(t *testing.T) {
	client := New(
		nil,
		&staticGenerator{reply: "ok"},
		memorystore.NewStore(),
		pipeline.WithEmbeddings(false),
	)

	if err := client.Close(); err != nil {
		t.Fatalf("expected nil for non-closable collaborators, got %v", err)
	}
}
