package semindex

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"cvtoaster-backend/internal/llm"
)

// ErrNoChunks is reported when an index is built from an empty chunk
// sequence. This is the primary locally-detected error in the generation
// path and is never retried.
var ErrNoChunks = errors.New("the text chunks are empty, cannot create a vector index")

// DefaultTopK matches the retrieval depth of the reference pipeline.
const DefaultTopK = 4

// Index is a request-scoped nearest-neighbor index over text chunks.
// It lives for a single generation request; nothing is persisted.
type Index struct {
	embedder llm.Embedder
	chunks   []string
	vectors  [][]float32
}

// Build embeds the chunks and returns an in-memory index over them.
func Build(ctx context.Context, embedder llm.Embedder, chunks []string) (*Index, error) {
	if len(chunks) == 0 {
		return nil, ErrNoChunks
	}
	if embedder == nil {
		return nil, errors.New("embedder is required")
	}
	vectors, err := embedder.EmbedTexts(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}
	return &Index{
		embedder: embedder,
		chunks:   chunks,
		vectors:  vectors,
	}, nil
}

// Search returns the k chunks most similar to the query, best first.
// k <= 0 falls back to DefaultTopK.
func (ix *Index) Search(ctx context.Context, query string, k int) ([]string, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	queryVec, err := ix.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, len(ix.vectors))
	for i, vec := range ix.vectors {
		scores[i] = scored{idx: i, score: cosineSimilarity(queryVec, vec)}
	}
	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].score > scores[b].score
	})

	if k > len(scores) {
		k = len(scores)
	}
	out := make([]string, 0, k)
	for _, s := range scores[:k] {
		out = append(out, ix.chunks[s.idx])
	}
	return out, nil
}

// Len reports the number of indexed chunks.
func (ix *Index) Len() int {
	return len(ix.chunks)
}

func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
