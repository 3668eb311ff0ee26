package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theralab/startmatch/core"
)

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 0.75, Accuracy([]int{1, 0, 1, 1}, []int{1, 0, 0, 1}))
	assert.Equal(t, 1.0, Accuracy([]int{0, 1}, []int{0, 1}))
	assert.Equal(t, 0.0, Accuracy(nil, nil))
}

func TestWeightedPRF1(t *testing.T) {
	// 3 of class 1, 1 of class 0; one positive mispredicted as negative
	labels := []int{1, 1, 1, 0}
	predictions := []int{1, 1, 0, 0}

	precision, recall, f1 := WeightedPRF1(labels, predictions)

	// class 1: p=1.0, r=2/3, f1=0.8, weight 0.75
	// class 0: p=0.5, r=1.0, f1=2/3, weight 0.25
	assert.InDelta(t, 0.75*1.0+0.25*0.5, precision, 1e-12)
	assert.InDelta(t, 0.75*(2.0/3.0)+0.25*1.0, recall, 1e-12)
	assert.InDelta(t, 0.75*0.8+0.25*(2.0/3.0), f1, 1e-12)
}

func TestConfusionMatrix(t *testing.T) {
	labels := []int{0, 0, 1, 1, 1}
	predictions := []int{0, 1, 1, 1, 0}

	matrix := ConfusionMatrix(labels, predictions)
	assert.Equal(t, [][]int{{1, 1}, {1, 2}}, matrix)
}

func TestROCAUC(t *testing.T) {
	// Perfect separation
	labels := []int{0, 0, 1, 1}
	scores := []float64{0.1, 0.2, 0.8, 0.9}
	assert.InDelta(t, 1.0, ROCAUC(labels, scores), 1e-12)

	// Perfectly inverted
	assert.InDelta(t, 0.0, ROCAUC(labels, []float64{0.9, 0.8, 0.2, 0.1}), 1e-12)

	// All scores tied: chance level
	assert.InDelta(t, 0.5, ROCAUC(labels, []float64{0.5, 0.5, 0.5, 0.5}), 1e-12)

	// One misranked pair out of four: 0.75
	assert.InDelta(t, 0.75, ROCAUC(labels, []float64{0.1, 0.85, 0.8, 0.9}), 1e-12)
}

func TestROCAUC_SingleClass(t *testing.T) {
	assert.Equal(t, 0.0, ROCAUC([]int{1, 1, 1}, []float64{0.1, 0.5, 0.9}))
	assert.Equal(t, 0.0, ROCAUC([]int{0, 0}, []float64{0.1, 0.5}))
}

func TestROCCurve(t *testing.T) {
	labels := []int{0, 0, 1, 1}
	scores := []float64{0.1, 0.2, 0.8, 0.9}

	curve := ROCCurve(labels, scores)
	require.NotEmpty(t, curve.X)

	// Starts at (0,0) and ends at (1,1)
	assert.Equal(t, 0.0, curve.X[0])
	assert.Equal(t, 0.0, curve.Y[0])
	assert.Equal(t, 1.0, curve.X[len(curve.X)-1])
	assert.Equal(t, 1.0, curve.Y[len(curve.Y)-1])

	// Perfect separation: TPR hits 1.0 while FPR is still 0.0
	assert.Equal(t, 0.0, curve.X[2])
	assert.Equal(t, 1.0, curve.Y[2])
}

func TestROCCurve_SingleClass(t *testing.T) {
	curve := ROCCurve([]int{1, 1}, []float64{0.4, 0.6})
	assert.Empty(t, curve.X)
	assert.Empty(t, curve.Y)
}

func TestPRCurveAndAUC(t *testing.T) {
	labels := []int{0, 0, 1, 1}
	scores := []float64{0.1, 0.2, 0.8, 0.9}

	curve := PRCurve(labels, scores)
	require.NotEmpty(t, curve.X)

	// Anchored at recall 0 / precision 1; recall reaches 1.0
	assert.Equal(t, 0.0, curve.X[0])
	assert.Equal(t, 1.0, curve.Y[0])
	assert.Equal(t, 1.0, curve.X[len(curve.X)-1])

	// Perfect ranking integrates to area 1
	auc := PRAUC(curve)
	assert.InDelta(t, 1.0, auc, 1e-12)

	assert.Equal(t, 0.0, PRAUC(core.CurvePoints{}))
}

func TestPRCurve_SingleClass(t *testing.T) {
	curve := PRCurve([]int{0, 0}, []float64{0.4, 0.6})
	assert.Empty(t, curve.X)
	curve = PRCurve([]int{1, 1}, []float64{0.4, 0.6})
	assert.Empty(t, curve.X)
}

func TestTopKImportance(t *testing.T) {
	names := []string{"a", "b", "c", "d"}
	coefficients := []float64{0.1, -2.0, 0.5, 1.5}

	top := TopKImportance(names, coefficients, 2)
	require.Len(t, top, 2)
	assert.Equal(t, -2.0, top["b"])
	assert.Equal(t, 1.5, top["d"])
}

func TestCrossValidate(t *testing.T) {
	// Separable one-feature data
	var X [][]float64
	var y []int
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			X = append(X, []float64{1.0})
			y = append(y, 1)
		} else {
			X = append(X, []float64{-1.0})
			y = append(y, 0)
		}
	}

	// Threshold-at-zero classifier, no actual fitting needed
	fit := func(trainX [][]float64, trainY []int) (func([]float64) float64, error) {
		return func(row []float64) float64 {
			if row[0] > 0 {
				return 1.0
			}
			return 0.0
		}, nil
	}

	mean, std, err := CrossValidate(X, y, 5, 42, fit)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, mean, 1e-12)
	assert.InDelta(t, 0.0, std, 1e-12)
}

func TestCrossValidate_TooFewSamples(t *testing.T) {
	mean, std, err := CrossValidate([][]float64{{1}}, []int{1}, 5, 42, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, 0.0, std)
}

func TestCrossValidate_SingleClass(t *testing.T) {
	X := make([][]float64, 20)
	y := make([]int, 20)
	for i := range X {
		X[i] = []float64{float64(i)}
	}

	// fit must never be called: an all-negative label set cannot be refit
	fit := func([][]float64, []int) (func([]float64) float64, error) {
		t.Fatal("fit called on a single-class label set")
		return nil, nil
	}

	mean, std, err := CrossValidate(X, y, 5, 42, fit)
	require.NoError(t, err)
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, 0.0, std)
}

func TestCrossValidate_SkipsSingleClassFolds(t *testing.T) {
	// One positive among 20 rows: the fold holding the positive out leaves
	// an all-negative training split and must be skipped, the rest score
	X := make([][]float64, 20)
	y := make([]int, 20)
	for i := range X {
		X[i] = []float64{-1.0}
	}
	X[0] = []float64{1.0}
	y[0] = 1

	fitCalls := 0
	fit := func(trainX [][]float64, trainY []int) (func([]float64) float64, error) {
		fitCalls++
		positives := 0
		for _, label := range trainY {
			positives += label
		}
		require.NotZero(t, positives, "fold with single-class training split was not skipped")
		return func(row []float64) float64 {
			if row[0] > 0 {
				return 1.0
			}
			return 0.0
		}, nil
	}

	mean, std, err := CrossValidate(X, y, 5, 42, fit)
	require.NoError(t, err)
	assert.Equal(t, 4, fitCalls)
	assert.InDelta(t, 1.0, mean, 1e-12)
	assert.InDelta(t, 0.0, std, 1e-12)
}
