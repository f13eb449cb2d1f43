package pipeline

import (
	"sort"
	"time"

	"github.com/w-h-a/recall/store"
)

// Select scores every candidate, keeps those at or above the threshold,
// ranks them, truncates to topK, and re-orders the survivors by timestamp
// so the model reads a chronological conversation rather than
// relevance-ranked noise. An empty result is valid.
func Select(queryVec []float32, candidates []store.Message, now time.Time, opts Options) []store.Message {
	kept := make([]ScoredMessage, 0, len(candidates))

	for _, msg := range candidates {
		scored := Score(msg, queryVec, now, opts)
		if scored.Score >= opts.Threshold {
			kept = append(kept, scored)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Score != kept[j].Score {
			return kept[i].Score > kept[j].Score
		}
		return kept[i].Message.Timestamp > kept[j].Message.Timestamp
	})

	if len(kept) > opts.TopK {
		kept = kept[:opts.TopK]
	}

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Message.Timestamp < kept[j].Message.Timestamp
	})

	selected := make([]store.Message, 0, len(kept))
	for _, scored := range kept {
		selected = append(selected, scored.Message)
	}

	return selected
}
