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


package training

import "errors"

var (
	// ErrOutcomeRepositoryRequired is returned when an outcome repository is not provided.
	ErrOutcomeRepositoryRequired = errors.New("outcome repository required")

	// ErrCandidateRepositoryRequired is returned when a candidate repository is not provided.
	ErrCandidateRepositoryRequired = errors.New("candidate repository required")

	// ErrModelRepositoryRequired is returned when a model repository is not provided.
	ErrModelRepositoryRequired = errors.New("model repository required")

	// ErrReportRepositoryRequired is returned when a report repository is not provided.
	ErrReportRepositoryRequired = errors.New("report repository required")

	// ErrDegenerateTrainingSet is returned when the mined examples all carry
	// one label, leaving nothing to fit.
	ErrDegenerateTrainingSet = errors.New("training set contains a single class")
)
