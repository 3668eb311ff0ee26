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


// Package training refits the scoring model from historical match outcomes.
//
// The Pipeline type mines outcomes over a lookback window, joins them with
// candidate profiles, derives weakly-supervised labels, fits a
// class-balanced logistic regression on a stratified split, evaluates the
// result, and decides whether to promote the new artifact over the
// currently deployed one.
//
// The one-hot vocabulary observed during a run is persisted verbatim into
// the artifact's FeatureOrder, which is the schema serving reconstructs.
package training
