// Package embedder turns text into the fixed-dimension vectors the
// retrieval pipeline scores against.
package embedder

import "context"

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
