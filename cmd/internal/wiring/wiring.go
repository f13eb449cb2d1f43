// Package wiring builds a chat client from CLI configuration. Both the REPL
// and the HTTP server share it.
package wiring

import (
	"fmt"
	"time"

	"github.com/w-h-a/recall"
	"github.com/w-h-a/recall/embedder"
	googleembedder "github.com/w-h-a/recall/embedder/google"
	openaiembedder "github.com/w-h-a/recall/embedder/openai"
	"github.com/w-h-a/recall/generator"
	anthropicgenerator "github.com/w-h-a/recall/generator/anthropic"
	openaigenerator "github.com/w-h-a/recall/generator/openai"
	"github.com/w-h-a/recall/pipeline"
	"github.com/w-h-a/recall/store"
	memorystore "github.com/w-h-a/recall/store/memory"
	postgresstore "github.com/w-h-a/recall/store/postgres"
)

type Config struct {
	// Embedder config
	SemanticMode  bool   `help:"Retrieve prior turns by semantic similarity" default:"true" negatable:""`
	Embeddings    bool   `help:"Embed turns for retrieval" default:"true" negatable:""`
	EmbedderKind  string `help:"Embedding provider (openai or google)" default:"openai"`
	EmbedderKey   string `help:"API key for the embedder" env:"EMBEDDER_API_KEY" default:""`
	EmbedderModel string `help:"Model identifier for the embedder" default:"text-embedding-3-small"`

	// Generator config
	GeneratorKind  string `help:"Generation provider (openai or anthropic)" default:"openai"`
	GeneratorKey   string `help:"API key for the generator" env:"GENERATOR_API_KEY" default:""`
	GeneratorModel string `help:"Model identifier for the generator" default:"gpt-4o-mini"`
	SystemPrompt   string `help:"System prompt for the generator" default:"You are a helpful assistant."`

	// Retrieval config
	TopK             int     `help:"Maximum retrieved turns per request" default:"6"`
	Threshold        float64 `help:"Minimum composite score for a retrieved turn" default:"0.75"`
	HalfLifeHours    int     `help:"Recency decay half-life in hours" default:"72"`
	CandidatePoolCap int     `help:"Most-recent embedded turns eligible for scoring" default:"200"`
	FallbackWindow   int     `help:"Raw recent turns used when semantic retrieval is off" default:"10"`

	// Store config
	PostgresDSN  string `help:"Postgres DSN; in-memory store when empty" env:"POSTGRES_DSN" default:""`
	Conversation string `help:"Conversation identifier for the store" default:"default"`
}

func NewClient(cfg Config) (*recall.Client, error) {
	var emb embedder.Embedder
	if cfg.Embeddings {
		switch cfg.EmbedderKind {
		case "openai":
			emb = openaiembedder.NewEmbedder(
				embedder.WithApiKey(cfg.EmbedderKey),
				embedder.WithModel(cfg.EmbedderModel),
			)
		case "google":
			emb = googleembedder.NewEmbedder(
				embedder.WithApiKey(cfg.EmbedderKey),
				embedder.WithModel(cfg.EmbedderModel),
			)
		default:
			return nil, fmt.Errorf("unknown embedder: %s", cfg.EmbedderKind)
		}
	}

	var gen generator.Generator
	switch cfg.GeneratorKind {
	case "openai":
		gen = openaigenerator.NewGenerator(
			generator.WithApiKey(cfg.GeneratorKey),
			generator.WithModel(cfg.GeneratorModel),
			generator.WithSystemPrompt(cfg.SystemPrompt),
		)
	case "anthropic":
		gen = anthropicgenerator.NewGenerator(
			generator.WithApiKey(cfg.GeneratorKey),
			generator.WithModel(cfg.GeneratorModel),
			generator.WithSystemPrompt(cfg.SystemPrompt),
		)
	default:
		return nil, fmt.Errorf("unknown generator: %s", cfg.GeneratorKind)
	}

	var st store.Store
	if len(cfg.PostgresDSN) > 0 {
		st = postgresstore.NewStore(
			store.WithLocation(cfg.PostgresDSN),
			store.WithConversation(cfg.Conversation),
		)
	} else {
		st = memorystore.NewStore(
			store.WithConversation(cfg.Conversation),
		)
	}

	client := recall.New(
		emb,
		gen,
		st,
		pipeline.WithSemanticMode(cfg.SemanticMode),
		pipeline.WithEmbeddings(cfg.Embeddings),
		pipeline.WithTopK(cfg.TopK),
		pipeline.WithThreshold(cfg.Threshold),
		pipeline.WithHalfLife(time.Duration(cfg.HalfLifeHours)*time.Hour),
		pipeline.WithCandidatePoolCap(cfg.CandidatePoolCap),
		pipeline.WithFallbackWindow(cfg.FallbackWindow),
	)

	return client, nil
}
