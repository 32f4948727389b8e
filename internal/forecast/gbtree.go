// backend-go/internal/forecast/gbtree.go
package forecast

import (
	"sort"

	"github.com/pharmatrack/backend-go/pkg/stats"
)

// Boosting hyperparameters. Fixed on purpose: per-product series are
// short, and a slow learning rate over shallow trees generalizes better
// than anything tuned per product.
const (
	boostRounds  = 100
	learningRate = 0.05
	maxTreeDepth = 5
	minLeafSize  = 1
)

// GBTRegressor is a gradient-boosted ensemble of shallow regression
// trees with a squared-error objective. Fitting is fully deterministic:
// splits are found by exact greedy search in fixed feature order, so
// identical training data always produces identical forecasts. A model
// is scoped to a single predict call and is never persisted.
type GBTRegressor struct {
	base  float64
	trees []*treeNode
}

type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

// Fit trains the ensemble on rows of feature vectors against targets.
// Each round fits one tree to the current residuals and adds it with the
// learning rate applied.
func (m *GBTRegressor) Fit(features [][]float64, targets []float64) {
	m.base = stats.Mean(targets)
	m.trees = m.trees[:0]

	preds := make([]float64, len(targets))
	for i := range preds {
		preds[i] = m.base
	}

	residuals := make([]float64, len(targets))
	indices := make([]int, len(targets))

	for round := 0; round < boostRounds; round++ {
		for i := range targets {
			residuals[i] = targets[i] - preds[i]
			indices[i] = i
		}

		tree := buildTree(features, residuals, indices, 0)
		m.trees = append(m.trees, tree)

		for i, row := range features {
			preds[i] += learningRate * tree.predict(row)
		}
	}
}

// Predict returns the ensemble output for a single feature vector.
func (m *GBTRegressor) Predict(row []float64) float64 {
	out := m.base
	for _, tree := range m.trees {
		out += learningRate * tree.predict(row)
	}
	return out
}

func (n *treeNode) predict(row []float64) float64 {
	for !n.leaf {
		if row[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

// buildTree grows one regression tree greedily on the residuals of the
// rows referenced by indices.
func buildTree(features [][]float64, residuals []float64, indices []int, depth int) *treeNode {
	if depth >= maxTreeDepth || len(indices) < 2*minLeafSize || isConstant(residuals, indices) {
		return &treeNode{leaf: true, value: meanAt(residuals, indices)}
	}

	feature, threshold, ok := bestSplit(features, residuals, indices)
	if !ok {
		return &treeNode{leaf: true, value: meanAt(residuals, indices)}
	}

	var left, right []int
	for _, idx := range indices {
		if features[idx][feature] <= threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      buildTree(features, residuals, left, depth+1),
		right:     buildTree(features, residuals, right, depth+1),
	}
}

// bestSplit scans every feature for the threshold that minimizes the
// summed squared error of the two children. Candidate thresholds are
// midpoints between distinct adjacent values in sorted order; features
// are scanned in fixed order so ties resolve deterministically.
func bestSplit(features [][]float64, residuals []float64, indices []int) (int, float64, bool) {
	var (
		bestFeature   = -1
		bestThreshold float64
		bestSSE       float64
		found         bool
	)

	sorted := make([]int, len(indices))
	nFeatures := len(features[indices[0]])

	for f := 0; f < nFeatures; f++ {
		copy(sorted, indices)
		sort.SliceStable(sorted, func(a, b int) bool {
			return features[sorted[a]][f] < features[sorted[b]][f]
		})

		// Prefix sums over the sorted order let each candidate split be
		// evaluated in constant time.
		var totalSum, totalSq float64
		for _, idx := range sorted {
			totalSum += residuals[idx]
			totalSq += residuals[idx] * residuals[idx]
		}

		var leftSum, leftSq float64
		for pos := 0; pos < len(sorted)-1; pos++ {
			idx := sorted[pos]
			leftSum += residuals[idx]
			leftSq += residuals[idx] * residuals[idx]

			cur := features[idx][f]
			next := features[sorted[pos+1]][f]
			if cur == next {
				continue
			}

			nLeft := float64(pos + 1)
			nRight := float64(len(sorted) - pos - 1)
			if int(nLeft) < minLeafSize || int(nRight) < minLeafSize {
				continue
			}

			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/nLeft) + (rightSq - rightSum*rightSum/nRight)

			if !found || sse < bestSSE {
				found = true
				bestSSE = sse
				bestFeature = f
				bestThreshold = (cur + next) / 2
			}
		}
	}

	return bestFeature, bestThreshold, found
}

func meanAt(values []float64, indices []int) float64 {
	if len(indices) == 0 {
		return 0
	}
	var sum float64
	for _, idx := range indices {
		sum += values[idx]
	}
	return sum / float64(len(indices))
}

func isConstant(values []float64, indices []int) bool {
	for _, idx := range indices[1:] {
		if values[idx] != values[indices[0]] {
			return false
		}
	}
	return true
}
