package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/w-h-a/recall/generator"
	"github.com/w-h-a/recall/store"
)

var (
	ErrEmptyInput   = errors.New("user input is required")
	ErrTurnInFlight = errors.New("a turn is already in flight")
)

type State int32

const (
	StateIdle State = iota
	StateEmbeddingQuery
	StateRetrieving
	StateGenerating
	StatePersistUser
	StatePersistAssistant
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEmbeddingQuery:
		return "embedding_query"
	case StateRetrieving:
		return "retrieving"
	case StateGenerating:
		return "generating"
	case StatePersistUser:
		return "persist_user"
	case StatePersistAssistant:
		return "persist_assistant"
	default:
		return "unknown"
	}
}

// Turn is the outcome of one completed pipeline pass. A failed generation
// still produces a Turn; the failure text is the visible reply.
type Turn struct {
	Reply            string          `json:"reply"`
	Context          []store.Message `json:"context,omitempty"`
	GenerationFailed bool            `json:"generation_failed,omitempty"`
}

// Pipeline runs the per-turn sequence: embed query, retrieve a bounded
// candidate pool, generate, then persist, in that order. The just-submitted
// user message is held in memory until after generation so it can never be
// retrieved as a match for its own query.
type Pipeline struct {
	options Options
	state   atomic.Int32
	mtx     sync.Mutex
}

func New(opts ...Option) *Pipeline {
	options := NewOptions(opts...)

	if options.Generator == nil {
		panic("generator is required")
	}

	if options.Store == nil {
		panic("store is required")
	}

	if options.EmbeddingsEnabled && options.Embedder == nil {
		panic("embedder is required when embeddings are enabled")
	}

	return &Pipeline{
		options: options,
		mtx:     sync.Mutex{},
	}
}

func (p *Pipeline) State() State {
	return State(p.state.Load())
}

// Submit runs one turn. Only one turn may occupy the pipeline at a time;
// a submission while another turn is in flight returns ErrTurnInFlight.
func (p *Pipeline) Submit(ctx context.Context, input string) (*Turn, error) {
	if len(strings.TrimSpace(input)) == 0 {
		return nil, ErrEmptyInput
	}

	if !p.mtx.TryLock() {
		return nil, ErrTurnInFlight
	}
	defer p.mtx.Unlock()
	defer p.state.Store(int32(StateIdle))

	now := time.Now().UTC()

	p.state.Store(int32(StateEmbeddingQuery))

	var queryVec []float32
	if p.options.EmbeddingsEnabled {
		vec, err := p.options.Embedder.Embed(ctx, input)
		if err != nil {
			slog.WarnContext(ctx, "query embedding failed; continuing without a vector", "error", err)
		} else {
			queryVec = vec
		}
	}

	p.state.Store(int32(StateRetrieving))

	selected := p.retrieve(ctx, queryVec, now)

	p.state.Store(int32(StateGenerating))

	history := make([]generator.Message, 0, len(selected))
	for _, msg := range selected {
		history = append(history, generator.Message{Role: msg.Role, Text: msg.Text})
	}

	reply, genErr := p.options.Generator.Generate(ctx, history, input)

	// a turn that reached generation always completes persistence, even when
	// the caller has gone away; the user's input is never lost
	pctx := context.WithoutCancel(ctx)

	p.state.Store(int32(StatePersistUser))

	p.append(pctx, store.Message{
		Role:      store.RoleUser,
		Text:      input,
		Embedding: queryVec,
		Timestamp: now.UnixMilli(),
	})

	p.state.Store(int32(StatePersistAssistant))

	turn := &Turn{Context: selected}

	assistant := store.Message{
		Role:      store.RoleAssistant,
		Timestamp: time.Now().UnixMilli(),
	}

	if genErr != nil {
		turn.GenerationFailed = true
		turn.Reply = fmt.Sprintf("generation failed: %v", genErr)
		assistant.Text = turn.Reply
	} else {
		turn.Reply = reply
		assistant.Text = reply
		if p.options.EmbeddingsEnabled && ShouldEmbed(reply) {
			vec, err := p.options.Embedder.Embed(pctx, reply)
			if err != nil {
				slog.WarnContext(ctx, "response embedding failed; persisting without a vector", "error", err)
			} else {
				assistant.Embedding = vec
			}
		}
	}

	p.append(pctx, assistant)

	return turn, nil
}

func (p *Pipeline) retrieve(ctx context.Context, queryVec []float32, now time.Time) []store.Message {
	if p.options.SemanticMode && len(queryVec) > 0 {
		candidates, err := p.options.Store.RecentEmbedded(ctx, p.options.CandidatePoolCap)
		if err != nil {
			slog.WarnContext(ctx, "candidate query failed; continuing without context", "error", err)
			return nil
		}
		return Select(queryVec, candidates, now, p.options)
	}

	recent, err := p.options.Store.Recent(ctx, p.options.FallbackWindow)
	if err != nil {
		slog.WarnContext(ctx, "fallback query failed; continuing without context", "error", err)
		return nil
	}

	// the store returns most-recent-first; the model reads oldest-first
	window := make([]store.Message, len(recent))
	for i, msg := range recent {
		window[len(recent)-1-i] = msg
	}

	return window
}

// append is best-effort: a store failure costs persistence of this turn,
// not the user-visible flow.
func (p *Pipeline) append(ctx context.Context, msg store.Message) {
	if _, err := p.options.Store.Append(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "store append failed; this turn is in-memory only", "role", msg.Role, "error", err)
	}
}
