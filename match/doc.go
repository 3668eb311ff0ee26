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


// Package match scores startup candidates against free-text challenges.
//
// The Service type implements a hybrid scoring algorithm that combines:
//   - Semantic similarity between challenge and candidate embeddings
//   - Rule-based features from ordered keyword taxonomies
//   - A learned logistic model loaded from the model store
//
// Candidates are scored concurrently, ranked by final score, and the top
// results returned with a human-readable reason per match.
package match
