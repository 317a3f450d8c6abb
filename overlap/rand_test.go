package overlap

import (
	"errors"
	"math"
	"testing"
)

func labelImage(width, height int, pix ...uint32) LabelImage {
	return LabelImage{Width: width, Height: height, Pix: pix}
}

func TestContingencyRandIndexKnownValues(t *testing.T) {
	// Pairs: A=1 (0,1), B=2, C=1 (2,3), D=2, so RI = 3/6. The adjusted
	// index is exactly 0 because A equals its expectation.
	truth := labelImage(2, 2, 0, 0, 1, 1)
	test := labelImage(2, 2, 0, 0, 0, 1)

	ri, err := ContingencyRandIndex(truth, test, Mask{})
	if err != nil {
		t.Fatal(err)
	}

	if !near(ri.RandIndex, 0.5) {
		t.Errorf("RandIndex was %g, expected 0.5", ri.RandIndex)
	}
	if !near(ri.AdjustedRandIndex, 0) {
		t.Errorf("AdjustedRandIndex was %g, expected 0", ri.AdjustedRandIndex)
	}
}

func TestContingencyRandIndexIdentical(t *testing.T) {
	img := labelImage(4, 2,
		0, 1, 1, 0,
		2, 2, 0, 3)

	ri, err := ContingencyRandIndex(img, img, Mask{})
	if err != nil {
		t.Fatal(err)
	}

	if !near(ri.RandIndex, 1) || !near(ri.AdjustedRandIndex, 1) {
		t.Fatalf("Identical labelings gave %+v", ri)
	}
}

// Label values are identifiers, so renumbering one side changes nothing.
func TestContingencyRandIndexIgnoresLabelValues(t *testing.T) {
	truth := labelImage(3, 2,
		0, 1, 1,
		2, 2, 0)
	renumbered := labelImage(3, 2,
		0, 40, 40,
		7, 7, 0)

	ri, err := ContingencyRandIndex(truth, renumbered, Mask{})
	if err != nil {
		t.Fatal(err)
	}

	if !near(ri.RandIndex, 1) || !near(ri.AdjustedRandIndex, 1) {
		t.Fatalf("Renumbered labels gave %+v", ri)
	}
}

func TestContingencyRandIndexSymmetric(t *testing.T) {
	a := labelImage(4, 3,
		0, 1, 1, 0,
		2, 1, 0, 3,
		2, 2, 3, 3)
	b := labelImage(4, 3,
		1, 1, 1, 0,
		0, 2, 2, 0,
		4, 4, 0, 5)
	valid := blockMask(4, 3, 0, 3, 0, 3)

	for _, v := range []Mask{{}, valid} {
		ab, err := ContingencyRandIndex(a, b, v)
		if err != nil {
			t.Fatal(err)
		}
		ba, err := ContingencyRandIndex(b, a, v)
		if err != nil {
			t.Fatal(err)
		}

		if !near(ab.RandIndex, ba.RandIndex) || !near(ab.AdjustedRandIndex, ba.AdjustedRandIndex) {
			t.Errorf("Asymmetric result: %+v vs %+v", ab, ba)
		}
	}
}

func TestContingencyRandIndexNoValidPixels(t *testing.T) {
	img := labelImage(2, 2, 0, 1, 1, 0)

	ri, err := ContingencyRandIndex(img, img, NewMask(2, 2))
	if err != nil {
		t.Fatal(err)
	}

	if !math.IsNaN(ri.RandIndex) || !math.IsNaN(ri.AdjustedRandIndex) {
		t.Fatalf("Expected NaN for an empty valid region, got %+v", ri)
	}
}

func TestContingencyRandIndexRespectsValidity(t *testing.T) {
	// The disagreement sits entirely in the second row, which is masked out.
	truth := labelImage(3, 2,
		0, 1, 1,
		1, 1, 1)
	test := labelImage(3, 2,
		0, 5, 5,
		0, 0, 0)

	ri, err := ContingencyRandIndex(truth, test, blockMask(3, 2, 0, 1, 0, 3))
	if err != nil {
		t.Fatal(err)
	}

	if !near(ri.RandIndex, 1) || !near(ri.AdjustedRandIndex, 1) {
		t.Fatalf("Expected perfect agreement inside the valid region, got %+v", ri)
	}
}

func TestContingencyRandIndexShapeMismatch(t *testing.T) {
	if _, err := ContingencyRandIndex(NewLabelImage(3, 2), NewLabelImage(2, 3), Mask{}); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("Expected ErrShapeMismatch, got %v", err)
	}
}
