package pipeline

import (
	"math"
	"time"

	"github.com/w-h-a/recall/store"
)

// ScoredMessage is a transient ranking view of a message. It is never
// persisted; RawSimilarity is kept for diagnostics.
type ScoredMessage struct {
	Message       store.Message
	RawSimilarity float64
	Score         float64
}

// CosineSimilarity returns 0 on nil vectors, length mismatch, or zero norms
// so it can be called unconditionally on noisy data.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Score weighs similarity by an exponential recency decay and a role weight.
// The recency weight halves every half-life of age with no floor, so the
// threshold filter naturally excludes arbitrarily old messages.
func Score(msg store.Message, queryVec []float32, now time.Time, opts Options) ScoredMessage {
	scored := ScoredMessage{Message: msg}

	if !msg.Embedded() {
		return scored
	}

	scored.RawSimilarity = CosineSimilarity(queryVec, msg.Embedding)

	age := now.UnixMilli() - msg.Timestamp
	if age < 0 {
		age = 0
	}

	recency := math.Pow(0.5, float64(age)/float64(opts.HalfLife.Milliseconds()))

	role := opts.RoleWeights.User
	if msg.Role == store.RoleAssistant {
		role = opts.RoleWeights.Assistant
	}

	scored.Score = scored.RawSimilarity * recency * role

	return scored
}
