// Copyright 2025 Theralab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package storage defines the persistence contracts for startmatch.
//
// Four repositories cover the system's state:
//
//   - CandidateRepository: startup company records with precomputed
//     embeddings, refreshed by ingestion, read-only to scoring
//   - OutcomeRepository: append-only history of presented matches and
//     engagement signals, mined by the training pipeline
//   - ModelRepository: immutable versioned model artifacts plus the
//     deployed pointer selecting the active version
//   - ReportRepository: append-only evaluation report history
//
// Candidate and outcome records are serialized with mus-go; model artifacts
// and evaluation reports use JSON, the wire format shared with external
// tooling.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines. The deployed-pointer update in
// ModelRepository.Promote is atomic so serving requests never observe a
// partially written artifact.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and
// timeout support.
package storage
