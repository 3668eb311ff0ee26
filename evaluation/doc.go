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


// Package evaluation computes classification metrics for trained scoring
// models: accuracy, weighted precision/recall/F1, ROC and precision-recall
// curves with their AUCs, k-fold cross-validation, confusion matrices, and
// coefficient-based feature importances.
//
// Degenerate inputs (a held-out set containing a single class) produce
// empty curves and zero AUCs rather than errors, so evaluation of a skewed
// window never aborts a training run.
package evaluation
