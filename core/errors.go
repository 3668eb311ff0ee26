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

import "errors"

// Domain validation errors
var (
	// ErrInvalidCandidate indicates a Candidate failed validation.
	ErrInvalidCandidate = errors.New("invalid candidate")

	// ErrInvalidArtifact indicates a ModelArtifact failed validation.
	ErrInvalidArtifact = errors.New("invalid model artifact")

	// ErrEmptyCompanyKey indicates the CompanyKey field is empty.
	ErrEmptyCompanyKey = errors.New("company key cannot be empty")

	// ErrEmptyCompanyName indicates the Name field is empty.
	ErrEmptyCompanyName = errors.New("company name cannot be empty")

	// ErrEmptyChallengeText indicates the challenge Text field is empty.
	ErrEmptyChallengeText = errors.New("challenge text cannot be empty")

	// ErrSchemaMismatch indicates coefficient and feature-order lengths differ.
	ErrSchemaMismatch = errors.New("coefficients do not match feature order")

	// ErrEmptyFeatureOrder indicates the artifact has no feature schema.
	ErrEmptyFeatureOrder = errors.New("feature order cannot be empty")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
