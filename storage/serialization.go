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


package storage

import (
	"encoding/json"
	"fmt"

	"github.com/theralab/startmatch/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalCandidate serializes a Candidate to bytes.
func MarshalCandidate(candidate *core.Candidate) []byte {
	buf := make([]byte, core.CandidateMUS.Size(*candidate))
	core.CandidateMUS.Marshal(*candidate, buf)
	return buf
}

// UnmarshalCandidate deserializes a Candidate from bytes.
func UnmarshalCandidate(data []byte) (*core.Candidate, error) {
	candidate, _, err := core.CandidateMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

// MarshalOutcome serializes an Outcome to bytes.
func MarshalOutcome(outcome *core.Outcome) []byte {
	buf := make([]byte, core.OutcomeMUS.Size(*outcome))
	core.OutcomeMUS.Marshal(*outcome, buf)
	return buf
}

// UnmarshalOutcome deserializes an Outcome from bytes.
func UnmarshalOutcome(data []byte) (*core.Outcome, error) {
	outcome, _, err := core.OutcomeMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

// MarshalArtifact serializes a ModelArtifact to JSON.
// JSON is the artifact wire format: human-inspectable and shared with the
// surrounding tooling that consumes deployed models.
func MarshalArtifact(artifact *core.ModelArtifact) ([]byte, error) {
	if err := core.ValidateArtifact(artifact); err != nil {
		return nil, err
	}
	data, err := json.Marshal(artifact)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalArtifact deserializes a ModelArtifact from JSON and validates its
// schema invariant (coefficients must match the feature order).
func UnmarshalArtifact(data []byte) (*core.ModelArtifact, error) {
	var artifact core.ModelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if err := core.ValidateArtifact(&artifact); err != nil {
		return nil, err
	}
	return &artifact, nil
}

// MarshalReport serializes an EvaluationReport to JSON.
func MarshalReport(report *core.EvaluationReport) ([]byte, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalReport deserializes an EvaluationReport from JSON.
func UnmarshalReport(data []byte) (*core.EvaluationReport, error) {
	var report core.EvaluationReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &report, nil
}
