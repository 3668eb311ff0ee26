// Package reembed provides functionality for reembedding the stored
// candidate descriptions with a new or updated embedding model.
//
// This package supports batch processing of candidate records, progress
// tracking, retry logic with exponential backoff, and vector normalization
// to keep stored embeddings compatible with cosine similarity scoring.
package reembed
