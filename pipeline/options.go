package pipeline

import (
	"context"
	"time"

	"github.com/w-h-a/recall/embedder"
	"github.com/w-h-a/recall/generator"
	"github.com/w-h-a/recall/store"
)

type Option func(*Options)

type Options struct {
	Embedder  embedder.Embedder
	Generator generator.Generator
	Store     store.Store

	SemanticMode      bool
	EmbeddingsEnabled bool

	TopK             int
	Threshold        float64
	HalfLife         time.Duration
	RoleWeights      RoleWeights
	CandidatePoolCap int
	FallbackWindow   int

	Context context.Context
}

type RoleWeights struct {
	User      float64
	Assistant float64
}

func WithEmbedder(embedder embedder.Embedder) Option {
	return func(o *Options) {
		o.Embedder = embedder
	}
}

func WithGenerator(generator generator.Generator) Option {
	return func(o *Options) {
		o.Generator = generator
	}
}

func WithStore(store store.Store) Option {
	return func(o *Options) {
		o.Store = store
	}
}

func WithSemanticMode(enabled bool) Option {
	return func(o *Options) {
		o.SemanticMode = enabled
	}
}

func WithEmbeddings(enabled bool) Option {
	return func(o *Options) {
		o.EmbeddingsEnabled = enabled
	}
}

func WithTopK(topK int) Option {
	return func(o *Options) {
		if topK > 0 {
			o.TopK = topK
		}
	}
}

func WithThreshold(threshold float64) Option {
	return func(o *Options) {
		if threshold >= 0 && threshold <= 1 {
			o.Threshold = threshold
		}
	}
}

func WithHalfLife(halfLife time.Duration) Option {
	return func(o *Options) {
		if halfLife > 0 {
			o.HalfLife = halfLife
		}
	}
}

func WithRoleWeights(weights RoleWeights) Option {
	return func(o *Options) {
		if weights.User > 0 && weights.Assistant > 0 {
			o.RoleWeights = weights
		}
	}
}

func WithCandidatePoolCap(limit int) Option {
	return func(o *Options) {
		if limit > 0 {
			o.CandidatePoolCap = limit
		}
	}
}

func WithFallbackWindow(window int) Option {
	return func(o *Options) {
		if window > 0 {
			o.FallbackWindow = window
		}
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		SemanticMode:      true,
		EmbeddingsEnabled: true,
		TopK:              6,
		Threshold:         0.75,
		HalfLife:          72 * time.Hour, // 3 days
		RoleWeights: RoleWeights{
			User:      1.0, // the user's original intent anchors retrieval
			Assistant: 0.6, // assistant turns echo the model's own phrasing
		},
		CandidatePoolCap: 200,
		FallbackWindow:   10,
		Context:          context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
