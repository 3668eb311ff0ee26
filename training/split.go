package training

import "math/rand"

// StratifiedSplit partitions row indices into train and test sets, holding
// out testFraction of each class. The split is deterministic for a given
// seed.
func StratifiedSplit(y []int, testFraction float64, seed int64) (trainIdx, testIdx []int) {
	rng := rand.New(rand.NewSource(seed))

	for _, class := range []int{0, 1} {
		var indices []int
		for i, label := range y {
			if label == class {
				indices = append(indices, i)
			}
		}
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})

		testCount := int(float64(len(indices)) * testFraction)
		// Keep at least one row of a non-empty class on each side
		if testCount == 0 && len(indices) > 1 {
			testCount = 1
		}

		testIdx = append(testIdx, indices[:testCount]...)
		trainIdx = append(trainIdx, indices[testCount:]...)
	}
	return trainIdx, testIdx
}

// selectRows gathers the rows and labels at the given indices.
func selectRows(X [][]float64, y []int, indices []int) ([][]float64, []int) {
	subX := make([][]float64, len(indices))
	subY := make([]int, len(indices))
	for i, idx := range indices {
		subX[i] = X[idx]
		subY[i] = y[idx]
	}
	return subX, subY
}
