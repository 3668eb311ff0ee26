// Package mock provides test double implementations of the ai.Embedder
// interface.
//
// The mocks allow tests to run without an external embedding service and
// enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	embedder := mock.NewMockEmbedder()
//	vector, err := embedder.EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{0.1, 0.2, 0.3}, nil
//	}
//
//	// Check call counts
//	count := embedder.CallCount()
//
// # Default Behavior
//
// MockEmbedder returns deterministic 384-dimension vectors derived from an
// FNV hash of the input text, so identical texts always produce identical
// embeddings.
package mock
