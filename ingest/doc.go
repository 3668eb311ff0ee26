// Package ingest provides pipeline orchestration for loading candidate
// company profiles into the store.
//
// The Pipeline type manages the ingestion workflow for candidates, including:
//   - Validating and writing profile records to storage
//   - Generating description embeddings asynchronously
//
// Embedding is performed concurrently on a worker pool. Errors during async
// embedding are logged but do not fail the ingestion operation; candidates
// without an embedding are simply skipped by the matcher until a later
// ingest or reembed run fills the vector in.
package ingest
