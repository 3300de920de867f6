package textproc

// DefaultChunkSize and DefaultChunkOverlap bound how much text is handed to
// the retrieval step at once while preserving local context across
// boundaries.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 100
)

// Chunk splits text into overlapping segments of at most size bytes, each
// sharing overlap bytes with its predecessor. Input is expected to be
// normalized ASCII (see Preprocess). Empty input yields a nil slice, which
// callers treat as a terminal nothing-to-process condition.
func Chunk(text string, size, overlap int) []string {
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
		if overlap >= size {
			overlap = size / 10
		}
	}

	if len(text) <= size {
		return []string{text}
	}

	step := size - overlap
	var chunks []string
	for start := 0; start < len(text); start += step {
		end := start + size
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}
		chunks = append(chunks, text[start:end])
	}
	return chunks
}
