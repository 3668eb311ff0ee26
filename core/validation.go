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


package core

import (
	"fmt"
	"time"
)

// ValidateCandidate validates a Candidate according to domain rules.
//
// Validation rules:
//   - CompanyKey must not be empty
//   - Name must not be empty
//   - UpdatedAt must not be in the future
//
// NOT validated (populated by processors):
//   - Embedding (can be empty until the ingest pipeline embeds the description;
//     scoring skips candidates without one)
//   - Numeric profile attributes (0 is a valid, common value)
func ValidateCandidate(candidate *Candidate) error {
	if candidate == nil {
		return fmt.Errorf("%w: candidate is nil", ErrInvalidCandidate)
	}

	if candidate.CompanyKey == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, ErrEmptyCompanyKey)
	}

	if candidate.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, ErrEmptyCompanyName)
	}

	if !candidate.UpdatedAt.IsZero() && !IsValidTimestamp(candidate.UpdatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateChallenge validates a Challenge according to domain rules.
//
// Validation rules:
//   - Text must not be empty (filters are optional)
func ValidateChallenge(challenge *Challenge) error {
	if challenge == nil {
		return ErrEmptyChallengeText
	}
	if challenge.Text == "" {
		return ErrEmptyChallengeText
	}
	return nil
}

// ValidateArtifact validates a ModelArtifact according to domain rules.
//
// Validation rules:
//   - FeatureOrder must not be empty
//   - len(Coefficients) must equal len(FeatureOrder); a mismatch would
//     silently corrupt scores at serve time
func ValidateArtifact(artifact *ModelArtifact) error {
	if artifact == nil {
		return fmt.Errorf("%w: artifact is nil", ErrInvalidArtifact)
	}

	if len(artifact.FeatureOrder) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidArtifact, ErrEmptyFeatureOrder)
	}

	if len(artifact.Coefficients) != len(artifact.FeatureOrder) {
		return fmt.Errorf("%w: %w: %d coefficients for %d features",
			ErrInvalidArtifact, ErrSchemaMismatch,
			len(artifact.Coefficients), len(artifact.FeatureOrder))
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
