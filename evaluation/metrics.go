package evaluation

import (
	"math"
	"math/rand"
	"sort"

	"github.com/theralab/startmatch/core"
)

// Accuracy is the fraction of predictions matching their labels.
func Accuracy(labels, predictions []int) float64 {
	if len(labels) == 0 {
		return 0.0
	}
	correct := 0
	for i := range labels {
		if labels[i] == predictions[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(labels))
}

// classCounts tallies per-class true positives, predicted and actual counts.
type classCounts struct {
	truePositive int
	predicted    int
	actual       int
}

// WeightedPRF1 computes precision, recall, and F1 averaged over both
// classes, weighted by class support.
func WeightedPRF1(labels, predictions []int) (precision, recall, f1 float64) {
	if len(labels) == 0 {
		return 0, 0, 0
	}

	counts := map[int]*classCounts{0: {}, 1: {}}
	for i := range labels {
		counts[labels[i]].actual++
		counts[predictions[i]].predicted++
		if labels[i] == predictions[i] {
			counts[labels[i]].truePositive++
		}
	}

	total := float64(len(labels))
	for class := range counts {
		c := counts[class]
		if c.actual == 0 {
			continue
		}

		var p, r float64
		if c.predicted > 0 {
			p = float64(c.truePositive) / float64(c.predicted)
		}
		r = float64(c.truePositive) / float64(c.actual)

		var f float64
		if p+r > 0 {
			f = 2 * p * r / (p + r)
		}

		weight := float64(c.actual) / total
		precision += weight * p
		recall += weight * r
		f1 += weight * f
	}
	return precision, recall, f1
}

// ConfusionMatrix returns the 2x2 matrix [[TN, FP], [FN, TP]].
func ConfusionMatrix(labels, predictions []int) [][]int {
	matrix := [][]int{{0, 0}, {0, 0}}
	for i := range labels {
		matrix[labels[i]][predictions[i]]++
	}
	return matrix
}

// ROCAUC computes the area under the ROC curve by rank statistics, with
// tie-aware average ranks. A single-class label set yields 0.0.
func ROCAUC(labels []int, scores []float64) float64 {
	positives, negatives := countClasses(labels)
	if positives == 0 || negatives == 0 {
		return 0.0
	}

	type scored struct {
		score float64
		label int
	}
	rows := make([]scored, len(labels))
	for i := range labels {
		rows[i] = scored{scores[i], labels[i]}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].score < rows[j].score })

	// Sum average ranks of positives (1-based, ties share the mean rank)
	var rankSum float64
	i := 0
	for i < len(rows) {
		j := i
		for j < len(rows) && rows[j].score == rows[i].score {
			j++
		}
		avgRank := float64(i+j+1) / 2.0 // mean of ranks i+1 .. j
		for k := i; k < j; k++ {
			if rows[k].label == 1 {
				rankSum += avgRank
			}
		}
		i = j
	}

	p := float64(positives)
	n := float64(negatives)
	return (rankSum - p*(p+1)/2.0) / (p * n)
}

// ROCCurve computes false-positive and true-positive rates over all score
// thresholds. A single-class label set yields an empty curve.
func ROCCurve(labels []int, scores []float64) core.CurvePoints {
	positives, negatives := countClasses(labels)
	if positives == 0 || negatives == 0 {
		return core.CurvePoints{}
	}

	order := descendingOrder(scores)

	curve := core.CurvePoints{X: []float64{0}, Y: []float64{0}}
	tp, fp := 0, 0
	for idx := 0; idx < len(order); {
		// Consume all rows sharing a score before emitting a point
		threshold := scores[order[idx]]
		for idx < len(order) && scores[order[idx]] == threshold {
			if labels[order[idx]] == 1 {
				tp++
			} else {
				fp++
			}
			idx++
		}
		curve.X = append(curve.X, float64(fp)/float64(negatives))
		curve.Y = append(curve.Y, float64(tp)/float64(positives))
	}
	return curve
}

// PRCurve computes the precision-recall curve, returned with recall in X
// and precision in Y. A label set without positives yields an empty curve.
func PRCurve(labels []int, scores []float64) core.CurvePoints {
	positives, _ := countClasses(labels)
	if positives == 0 || positives == len(labels) {
		return core.CurvePoints{}
	}

	order := descendingOrder(scores)

	// Anchor at recall 0, precision 1 so the curve spans the full recall axis
	curve := core.CurvePoints{X: []float64{0}, Y: []float64{1}}
	tp, predicted := 0, 0
	for idx := 0; idx < len(order); {
		threshold := scores[order[idx]]
		for idx < len(order) && scores[order[idx]] == threshold {
			if labels[order[idx]] == 1 {
				tp++
			}
			predicted++
			idx++
		}
		curve.X = append(curve.X, float64(tp)/float64(positives))
		curve.Y = append(curve.Y, float64(tp)/float64(predicted))
	}
	return curve
}

// PRAUC integrates the precision-recall curve over recall by the
// trapezoidal rule. An empty curve yields 0.0.
func PRAUC(curve core.CurvePoints) float64 {
	if len(curve.X) < 2 {
		return 0.0
	}
	var area float64
	for i := 1; i < len(curve.X); i++ {
		width := curve.X[i] - curve.X[i-1]
		area += width * (curve.Y[i] + curve.Y[i-1]) / 2.0
	}
	return math.Abs(area)
}

// TopKImportance returns the k features with the largest absolute
// coefficients, keyed by name with their signed coefficient values.
func TopKImportance(featureNames []string, coefficients []float64, k int) map[string]float64 {
	type pair struct {
		name string
		coef float64
	}
	pairs := make([]pair, 0, len(featureNames))
	for i, name := range featureNames {
		pairs = append(pairs, pair{name, coefficients[i]})
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return math.Abs(pairs[i].coef) > math.Abs(pairs[j].coef)
	})

	if k > 0 && k < len(pairs) {
		pairs = pairs[:k]
	}

	importance := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		importance[p.name] = p.coef
	}
	return importance
}

// FitFunc trains a classifier on a feature matrix and returns a function
// scoring one row with a probability in [0, 1].
type FitFunc func(X [][]float64, y []int) (func(row []float64) float64, error)

// CrossValidate runs stratified k-fold cross-validation, refitting with fit
// on each training split and scoring accuracy on the held-out fold.
// Returns the mean and standard deviation of the fold accuracies.
//
// A single-class label set cannot be refit, so it yields (0, 0) rather
// than an error, and folds whose training split collapses to one class
// are skipped.
func CrossValidate(X [][]float64, y []int, folds int, seed int64, fit FitFunc) (mean, std float64, err error) {
	if folds < 2 || len(y) < folds || singleClass(y) {
		return 0, 0, nil
	}

	assignments := stratifiedFolds(y, folds, seed)

	scores := make([]float64, 0, folds)
	for fold := 0; fold < folds; fold++ {
		var trainX, testX [][]float64
		var trainY, testY []int
		for i := range y {
			if assignments[i] == fold {
				testX = append(testX, X[i])
				testY = append(testY, y[i])
			} else {
				trainX = append(trainX, X[i])
				trainY = append(trainY, y[i])
			}
		}
		if len(testY) == 0 || len(trainY) == 0 || singleClass(trainY) {
			continue
		}

		predict, fitErr := fit(trainX, trainY)
		if fitErr != nil {
			return 0, 0, fitErr
		}

		predictions := make([]int, len(testY))
		for i, row := range testX {
			if predict(row) >= 0.5 {
				predictions[i] = 1
			}
		}
		scores = append(scores, Accuracy(testY, predictions))
	}

	if len(scores) == 0 {
		return 0, 0, nil
	}

	for _, s := range scores {
		mean += s
	}
	mean /= float64(len(scores))
	for _, s := range scores {
		std += (s - mean) * (s - mean)
	}
	std = math.Sqrt(std / float64(len(scores)))
	return mean, std, nil
}

// stratifiedFolds assigns each row a fold, distributing the classes evenly.
func stratifiedFolds(y []int, folds int, seed int64) []int {
	assignments := make([]int, len(y))
	for _, class := range []int{0, 1} {
		var indices []int
		for i, label := range y {
			if label == class {
				indices = append(indices, i)
			}
		}
		shuffle(indices, seed+int64(class))
		for pos, idx := range indices {
			assignments[idx] = pos % folds
		}
	}
	return assignments
}

func shuffle(indices []int, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})
}

func singleClass(labels []int) bool {
	positives, negatives := countClasses(labels)
	return positives == 0 || negatives == 0
}

func countClasses(labels []int) (positives, negatives int) {
	for _, label := range labels {
		if label == 1 {
			positives++
		} else {
			negatives++
		}
	}
	return positives, negatives
}

func descendingOrder(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return scores[order[i]] > scores[order[j]] })
	return order
}
