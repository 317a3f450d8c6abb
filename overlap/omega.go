package overlap

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// omegaClass is a set of coordinates that carry exactly the same test labels
// and exactly the same ground truth labels.
type omegaClass struct {
	size        float64
	test        []uint32
	groundTruth []uint32
}

var backgroundTuple = []uint32{0}

// SparseRandIndex computes the Rand Index and adjusted Rand Index of two
// labelings whose objects may overlap, following the Omega index of Collins
// and Dent, "Omega: A General Formulation of the Rand Index of Cluster
// Recovery Suitable for Non-disjoint Solutions", Multivariate Behavioral
// Research, 1988, 23, 231-242.
//
// A pair of coordinates agrees when the number of objects they share is the
// same in both labelings. Valid coordinates that a labeling does not mention
// belong to that labeling's background (label 0). Entries outside of the valid
// region are ignored. With fewer than two valid coordinates both indices are
// NaN.
func SparseRandIndex(groundTruth, test Labeling, valid Mask) (RandIndices, error) {
	if err := groundTruth.sameDomain(test); err != nil {
		return RandIndices{}, err
	}
	if err := groundTruth.Validate(); err != nil {
		return RandIndices{}, err
	}
	if err := test.Validate(); err != nil {
		return RandIndices{}, err
	}
	if err := valid.checkValid(test.Width, test.Height); err != nil {
		return RandIndices{}, err
	}

	classes := omegaClasses(groundTruth, test, valid)

	return omegaIndex(classes), nil
}

// omegaClasses partitions the valid coordinates into equivalence classes keyed
// by their (test labels, ground truth labels) content. Classes are returned in
// raster order of their first coordinate.
func omegaClasses(groundTruth, test Labeling, valid Mask) []omegaClass {
	gtAt := groundTruth.labelsByCoordinate()
	testAt := test.labelsByCoordinate()

	classIndex := make(map[string]int)
	classes := make([]omegaClass, 0)

	key := make([]byte, 0, 64)
	for idx := 0; idx < test.Width*test.Height; idx++ {
		if !valid.validAt(idx) {
			continue
		}

		t := testAt[idx]
		if len(t) == 0 {
			t = backgroundTuple
		}
		g := gtAt[idx]
		if len(g) == 0 {
			g = backgroundTuple
		}

		key = appendTuple(appendTuple(key[:0], t), g)
		i, exists := classIndex[string(key)]
		if !exists {
			i = len(classes)
			classIndex[string(key)] = i
			classes = append(classes, omegaClass{test: t, groundTruth: g})
		}
		classes[i].size++
	}

	return classes
}

// omegaIndex builds the pair table from Table 4 of the Collins paper, where
// tbl[m][n] is the number of coordinate pairs that share m test objects and n
// ground truth objects, and reduces it to the two indices.
func omegaIndex(classes []omegaClass) RandIndices {
	maxTestLabels, maxGTLabels := 0, 0
	for _, c := range classes {
		if len(c.test) > maxTestLabels {
			maxTestLabels = len(c.test)
		}
		if len(c.groundTruth) > maxGTLabels {
			maxGTLabels = len(c.groundTruth)
		}
	}

	tbl := mat.NewDense(maxTestLabels+1, maxGTLabels+1, nil)

	// Self-pairs are visited even for single-coordinate classes so that the
	// largest hit counts reflect the widest tuples present.
	maxHitsTest, maxHitsGT := 0, 0
	for i, c1 := range classes {
		for j := i; j < len(classes); j++ {
			c2 := classes[j]

			hitsTest := intersectionSize(c1.test, c2.test)
			hitsGT := intersectionSize(c1.groundTruth, c2.groundTruth)

			var n float64
			if i == j {
				n = choose2(c1.size)
			} else {
				n = c1.size * c2.size
			}

			tbl.Set(hitsTest, hitsGT, tbl.At(hitsTest, hitsGT)+n)

			if hitsTest > maxHitsTest {
				maxHitsTest = hitsTest
			}
			if hitsGT > maxHitsGT {
				maxHitsGT = hitsGT
			}
		}
	}

	nTotal := mat.Sum(tbl)
	if nTotal == 0 {
		return RandIndices{RandIndex: math.NaN(), AdjustedRandIndex: math.NaN()}
	}

	minJK := maxHitsTest
	if maxHitsGT < minJK {
		minJK = maxHitsGT
	}
	minJK++

	block := tbl.Slice(0, minJK, 0, minJK)

	// Equation 13: agreement on the diagonal
	randIndex := mat.Trace(block) / nTotal

	// Equation 15: the expected index
	products := make([]float64, minJK)
	for i := range products {
		products[i] = floats.Sum(mat.Row(nil, i, block)) * floats.Sum(mat.Col(nil, i, block))
	}
	expected := floats.Sum(products) / (nTotal * nTotal)

	// Equation 16: the adjusted index
	return RandIndices{
		RandIndex:         randIndex,
		AdjustedRandIndex: (randIndex - expected) / (1 - expected),
	}
}

// intersectionSize counts the values shared by two sorted, duplicate-free
// slices.
func intersectionSize(a, b []uint32) int {
	n := 0
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] == b[j]:
			n++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}

	return n
}

// appendTuple writes a length-prefixed little-endian encoding of labels.
func appendTuple(dst []byte, labels []uint32) []byte {
	dst = appendUint32(dst, uint32(len(labels)))
	for _, v := range labels {
		dst = appendUint32(dst, v)
	}

	return dst
}

func appendUint32(dst []byte, v uint32) []byte {
	return append(dst, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}
