package overlap

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

type labelPair struct {
	groundTruth uint32
	test        uint32
}

// ContingencyRandIndex computes the Rand Index and the adjusted Rand Index of
// two label images, each of which assigns exactly one label per pixel, over
// the valid pixels. The background label takes part as an ordinary cluster.
//
// Given the set S of valid pixels and the two partitions X and Y:
//
//	A = pairs together in X and together in Y
//	B = pairs apart in X and apart in Y
//	C = pairs together in X and apart in Y
//	D = pairs apart in X and together in Y
//
// RandIndex = (A+B) / (A+B+C+D). The adjustment for chance follows Santos and
// Embrechts, "On the Use of the Adjusted Rand Index as a Metric for Evaluating
// Supervised Classification", LNCS 5769, 2009, eqn 6.
//
// With no valid pixels both indices are NaN.
func ContingencyRandIndex(groundTruth, test LabelImage, valid Mask) (RandIndices, error) {
	w, h := test.Width, test.Height
	if len(test.Pix) != w*h {
		return RandIndices{}, shapeError("test", test.Width, test.Height, len(test.Pix), w, h)
	}
	if groundTruth.Width != w || groundTruth.Height != h || len(groundTruth.Pix) != w*h {
		return RandIndices{}, shapeError("ground truth", groundTruth.Width, groundTruth.Height, len(groundTruth.Pix), w, h)
	}
	if err := valid.checkValid(w, h); err != nil {
		return RandIndices{}, err
	}

	gt := make([]uint32, 0, len(test.Pix))
	ts := make([]uint32, 0, len(test.Pix))
	for idx := range test.Pix {
		if !valid.validAt(idx) {
			continue
		}
		gt = append(gt, groundTruth.Pix[idx])
		ts = append(ts, test.Pix[idx])
	}

	return contingencyRand(gt, ts), nil
}

// contingencyRand expects two equal-length label sequences.
func contingencyRand(groundTruth, test []uint32) RandIndices {
	if len(test) == 0 {
		return RandIndices{RandIndex: math.NaN(), AdjustedRandIndex: math.NaN()}
	}

	// N(i,j): number of pixels labeled i in the ground truth and j in the test.
	// Only observed pairs get an entry.
	nij := make(map[labelPair]float64)
	ni := make(map[uint32]float64)
	nj := make(map[uint32]float64)
	for k := range test {
		nij[labelPair{groundTruth[k], test[k]}]++
		ni[groundTruth[k]]++
		nj[test[k]]++
	}

	// A: each cell's pixels are pairwise together in both partitions. C and D
	// count, for every cell, its pixels paired with same-row (or same-column)
	// pixels from other cells; each such pair is seen twice.
	a := make([]float64, 0, len(nij))
	c := make([]float64, 0, len(nij))
	d := make([]float64, 0, len(nij))
	for pair, n := range nij {
		a = append(a, choose2(n))
		c = append(c, (ni[pair.groundTruth]-n)*n)
		d = append(d, (nj[pair.test]-n)*n)
	}
	A := floats.Sum(a)
	C := floats.Sum(c) / 2
	D := floats.Sum(d) / 2

	total := choose2(float64(len(test)))
	B := total - A - C - D

	randIndex := (A + B) / total

	sumI := sumChoose2(ni)
	sumJ := sumChoose2(nj)
	expectedIndex := sumI * sumJ
	maxIndex := (sumI + sumJ) * total / 2

	return RandIndices{
		RandIndex:         randIndex,
		AdjustedRandIndex: (A*total - expectedIndex) / (maxIndex - expectedIndex),
	}
}

// choose2 is the number of unordered pairs among x things.
func choose2(x float64) float64 {
	return x * (x - 1) / 2
}

func sumChoose2(marginal map[uint32]float64) float64 {
	pairs := make([]float64, 0, len(marginal))
	for _, n := range marginal {
		pairs = append(pairs, choose2(n))
	}

	return floats.Sum(pairs)
}
