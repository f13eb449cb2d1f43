package memory

import (
	"context"
	"testing"

	"github.com/w-h-a/recall/store"
)

func TestAppendAssignsIdAndTimestamp(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	id, err := s.Append(ctx, store.Message{Role: store.RoleUser, Text: "hi"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(id) == 0 {
		t.Fatal("expected an assigned id")
	}

	recent, err := s.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 1 || recent[0].Timestamp == 0 {
		t.Fatalf("expected an assigned timestamp, got %+v", recent)
	}
}

func TestTimestampsStrictlyIncrease(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		if _, err := s.Append(ctx, store.Message{Role: store.RoleUser, Text: "turn"}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	recent, err := s.Recent(ctx, 50)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}

	// most-recent-first
	for i := 1; i < len(recent); i++ {
		if recent[i].Timestamp >= recent[i-1].Timestamp {
			t.Fatalf("timestamps not strictly ordered: %d then %d", recent[i-1].Timestamp, recent[i].Timestamp)
		}
	}
}

func TestRecentEmbeddedFiltersAndLimits(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		msg := store.Message{Role: store.RoleUser, Text: "turn"}
		if i%2 == 0 {
			msg.Embedding = []float32{1, 0}
		}
		if _, err := s.Append(ctx, msg); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	embedded, err := s.RecentEmbedded(ctx, 2)
	if err != nil {
		t.Fatalf("recent embedded: %v", err)
	}
	if len(embedded) != 2 {
		t.Fatalf("expected 2 embedded messages, got %d", len(embedded))
	}
	for _, msg := range embedded {
		if !msg.Embedded() {
			t.Fatalf("unembedded message in embedded query: %+v", msg)
		}
	}

	all, err := s.RecentEmbedded(ctx, 10)
	if err != nil {
		t.Fatalf("recent embedded: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 embedded messages, got %d", len(all))
	}
}

func TestRecentZeroLimit(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if _, err := s.Append(ctx, store.Message{Role: store.RoleUser, Text: "turn"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	recent, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("expected empty result for limit 0, got %d", len(recent))
	}
}

func TestClear(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.Append(ctx, store.Message{Role: store.RoleUser, Text: "turn"}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	recent, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("expected empty history after clear, got %d", len(recent))
	}
}

func TestAppendCopiesEmbedding(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	vec := []float32{1, 2, 3}
	if _, err := s.Append(ctx, store.Message{Role: store.RoleUser, Text: "turn", Embedding: vec}); err != nil {
		t.Fatalf("append: %v", err)
	}

	vec[0] = 99

	recent, err := s.RecentEmbedded(ctx, 1)
	if err != nil {
		t.Fatalf("recent embedded: %v", err)
	}
	if recent[0].Embedding[0] != 1 {
		t.Fatal("stored embedding aliases the caller's slice")
	}
}
