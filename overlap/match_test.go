package overlap

import (
	"errors"
	"testing"
)

// row lists n pixels of row i starting at column j with the given label.
func row(i, j, n int, label uint32) []IJV {
	out := make([]IJV, 0, n)
	for k := 0; k < n; k++ {
		out = append(out, IJV{I: i, J: j + k, Label: label})
	}

	return out
}

func objects(width, height int, rows ...[]IJV) Labeling {
	out := Labeling{Width: width, Height: height}
	for _, r := range rows {
		out.Points = append(out.Points, r...)
	}

	return out
}

type matchExpectation struct {
	GroundTruth uint32
	Test        uint32
	Status      MatchStatus
}

func TestMatchObjects(t *testing.T) {
	for _, v := range []struct {
		Name        string
		Truth, Test Labeling
		Expected    []matchExpectation
	}{
		{
			"no overlap is unmatched",
			objects(6, 6, row(0, 0, 3, 1), row(4, 0, 3, 2)),
			objects(6, 6, row(0, 0, 3, 7)),
			[]matchExpectation{{1, 7, Matched}, {2, 0, NoOverlap}},
		},
		{
			"larger overlap wins a collision",
			objects(6, 6, row(0, 0, 3, 1), row(1, 0, 5, 2)),
			objects(6, 6, row(0, 0, 6, 1), row(1, 0, 6, 1)),
			[]matchExpectation{{1, 1, Demoted}, {2, 1, Matched}},
		},
		{
			"lowest test label breaks a tie",
			objects(6, 6, row(0, 0, 4, 1)),
			objects(6, 6, row(0, 0, 2, 9), row(0, 2, 2, 4)),
			[]matchExpectation{{1, 4, Matched}},
		},
		{
			"lowest ground truth label breaks a collision tie",
			objects(6, 6, row(0, 0, 3, 5), row(1, 0, 3, 3)),
			objects(6, 6, row(0, 0, 3, 1), row(1, 0, 3, 1)),
			[]matchExpectation{{3, 1, Matched}, {5, 1, Demoted}},
		},
		{
			// Object 1 prefers test 1 (3 > 2) but loses it to object 2 and is
			// not retried against test 2.
			"demoted objects are not rematched",
			objects(6, 6, row(0, 0, 5, 1), row(1, 0, 4, 2)),
			objects(6, 6, row(0, 0, 3, 1), row(0, 3, 2, 2), row(1, 0, 4, 1)),
			[]matchExpectation{{1, 1, Demoted}, {2, 1, Matched}},
		},
	} {
		m, err := MatchObjects(v.Truth, v.Test)
		if err != nil {
			t.Fatalf("%s: %v", v.Name, err)
		}

		if len(m.Assignments) != len(v.Expected) {
			t.Fatalf("%s: got %d assignments, expected %d", v.Name, len(m.Assignments), len(v.Expected))
		}

		for i, exp := range v.Expected {
			got := m.Assignments[i]
			if got.GroundTruth != exp.GroundTruth || got.Test != exp.Test || got.Status != exp.Status {
				t.Errorf("%s: assignment %d was %+v (%s), expected %+v (%s)", v.Name, i, got, got.Status, exp, exp.Status)
			}
		}
	}
}

func TestMatchObjectsOverlapTable(t *testing.T) {
	// Object 1 covers row 0 columns 0-3. Test 1 covers columns 2-5, test 2
	// covers column 0 twice over.
	truth := objects(6, 2, row(0, 0, 4, 1))
	test := objects(6, 2, row(0, 2, 4, 1), row(0, 0, 1, 2), row(0, 0, 1, 2))

	m, err := MatchObjects(truth, test)
	if err != nil {
		t.Fatal(err)
	}

	if got := m.Overlap(1, 1); got != 2 {
		t.Errorf("Overlap(1, 1) = %d, expected 2", got)
	}
	if got := m.Overlap(1, 2); got != 1 {
		t.Errorf("Overlap(1, 2) = %d, expected 1 (repeated entries count once)", got)
	}
	if got := m.TestArea(2); got != 1 {
		t.Errorf("TestArea(2) = %d, expected 1", got)
	}
	if got := m.GroundTruthArea(1); got != 4 {
		t.Errorf("GroundTruthArea(1) = %d, expected 4", got)
	}

	if dom, ok := m.DominantTest(1); !ok || dom != 1 {
		t.Errorf("DominantTest(1) = %d, %v; expected 1, true", dom, ok)
	}
	if _, ok := m.DominantTest(42); ok {
		t.Errorf("Unknown ground truth object reported as matched")
	}
}

func TestMatchObjectsPureFunction(t *testing.T) {
	truth := objects(6, 6, row(2, 0, 3, 2), row(0, 0, 3, 1))
	test := objects(6, 6, row(0, 0, 3, 8))
	before := append([]IJV(nil), truth.Points...)

	if _, err := MatchObjects(truth, test); err != nil {
		t.Fatal(err)
	}

	for i := range before {
		if truth.Points[i] != before[i] {
			t.Fatalf("Input was modified at entry %d", i)
		}
	}
}

func TestMatchObjectsContractViolations(t *testing.T) {
	if _, err := MatchObjects(objects(6, 6, row(0, 0, 2, 0)), objects(6, 6, row(0, 0, 2, 1))); !errors.Is(err, ErrBackgroundLabel) {
		t.Errorf("Expected ErrBackgroundLabel, got %v", err)
	}
	if _, err := MatchObjects(objects(6, 6, row(0, 5, 2, 1)), objects(6, 6, row(0, 0, 2, 1))); !errors.Is(err, ErrOutOfDomain) {
		t.Errorf("Expected ErrOutOfDomain, got %v", err)
	}
	if _, err := MatchObjects(objects(6, 6), objects(5, 6)); !errors.Is(err, ErrDomainMismatch) {
		t.Errorf("Expected ErrDomainMismatch, got %v", err)
	}
}
