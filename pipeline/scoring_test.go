package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/w-h-a/recall/store"
)

func TestCosineSimilarityIdenticalVectors(t *testing.T) {
	vecs := [][]float32{
		{1, 0, 0},
		{0.3, -0.7, 2.1},
		{5, 5, 5, 5},
	}

	for _, v := range vecs {
		if sim := CosineSimilarity(v, v); math.Abs(sim-1) > 1e-6 {
			t.Fatalf("expected ~1 for identical vectors, got %f", sim)
		}
	}
}

func TestCosineSimilarityDegenerateInputs(t *testing.T) {
	cases := []struct {
		name string
		a    []float32
		b    []float32
	}{
		{"both nil", nil, nil},
		{"one nil", []float32{1, 2}, nil},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}},
		{"zero norm", []float32{0, 0}, []float32{1, 2}},
		{"both zero", []float32{0, 0}, []float32{0, 0}},
	}

	for _, tc := range cases {
		if sim := CosineSimilarity(tc.a, tc.b); sim != 0 {
			t.Fatalf("%s: expected 0, got %f", tc.name, sim)
		}
	}
}

func TestCosineSimilarityOppositeVectors(t *testing.T) {
	sim := CosineSimilarity([]float32{1, 0}, []float32{-1, 0})
	if math.Abs(sim+1) > 1e-6 {
		t.Fatalf("expected ~-1, got %f", sim)
	}
}

func TestScoreStrictlyDecreasesWithAge(t *testing.T) {
	opts := NewOptions()
	now := time.Now().UTC()
	query := []float32{1, 0}

	prev := math.Inf(1)
	for _, age := range []time.Duration{0, time.Hour, 24 * time.Hour, 72 * time.Hour, 30 * 24 * time.Hour} {
		msg := store.Message{
			Role:      store.RoleUser,
			Embedding: []float32{1, 0},
			Timestamp: now.Add(-age).UnixMilli(),
		}
		scored := Score(msg, query, now, opts)
		if scored.Score >= prev {
			t.Fatalf("score did not decrease at age %s: %f >= %f", age, scored.Score, prev)
		}
		if scored.Score <= 0 {
			t.Fatalf("score should stay above zero, got %f at age %s", scored.Score, age)
		}
		prev = scored.Score
	}
}

func TestScoreAssistantAtOneHalfLife(t *testing.T) {
	opts := NewOptions()
	now := time.Now().UTC()

	// similarity 0.9 against a unit query
	msg := store.Message{
		Role:      store.RoleAssistant,
		Embedding: []float32{0.9, float32(math.Sqrt(1 - 0.81))},
		Timestamp: now.Add(-72 * time.Hour).UnixMilli(),
	}

	scored := Score(msg, []float32{1, 0}, now, opts)

	// 0.9 * 0.5 * 0.6
	if math.Abs(scored.Score-0.27) > 1e-6 {
		t.Fatalf("expected ~0.27, got %f", scored.Score)
	}
	if math.Abs(scored.RawSimilarity-0.9) > 1e-6 {
		t.Fatalf("expected raw similarity ~0.9, got %f", scored.RawSimilarity)
	}
}

func TestScoreWithoutEmbeddingIsZero(t *testing.T) {
	opts := NewOptions()
	now := time.Now().UTC()

	msg := store.Message{
		Role:      store.RoleUser,
		Text:      "no vector",
		Timestamp: now.UnixMilli(),
	}

	scored := Score(msg, []float32{1, 0}, now, opts)
	if scored.Score != 0 || scored.RawSimilarity != 0 {
		t.Fatalf("expected zero score for unembedded message, got %+v", scored)
	}
}

func TestScoreFutureTimestampClampsToZeroAge(t *testing.T) {
	opts := NewOptions()
	now := time.Now().UTC()

	future := store.Message{
		Role:      store.RoleUser,
		Embedding: []float32{1, 0},
		Timestamp: now.Add(time.Hour).UnixMilli(),
	}
	current := future
	current.Timestamp = now.UnixMilli()

	a := Score(future, []float32{1, 0}, now, opts)
	b := Score(current, []float32{1, 0}, now, opts)

	if a.Score != b.Score {
		t.Fatalf("future timestamp should score as age zero: %f vs %f", a.Score, b.Score)
	}
}
