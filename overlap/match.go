package overlap

import "fmt"

// MatchStatus explains the outcome for one ground truth object.
type MatchStatus uint8

const (
	// Matched objects kept their dominant test object.
	Matched MatchStatus = iota

	// NoOverlap objects share no coordinate with any test object.
	NoOverlap

	// Demoted objects lost their dominant test object to another ground truth
	// object with a larger overlap. Their second-best candidate is not tried.
	Demoted
)

func (s MatchStatus) String() string {
	switch s {
	case Matched:
		return "Matched"
	case NoOverlap:
		return "NoOverlap"
	case Demoted:
		return "Demoted"
	}

	return fmt.Sprintf("MatchStatus(%d)", uint8(s))
}

// Assignment records which test object a ground truth object was matched to.
// Test is the dominant test object (0 when there is none); it only counts as
// a match when Status is Matched.
type Assignment struct {
	GroundTruth uint32
	Test        uint32
	Status      MatchStatus
	Overlap     int64
}

func (a Assignment) IsMatched() bool {
	return a.Status == Matched
}

// Matching is the dominant-overlap assignment of ground truth objects to test
// objects, along with the tables it was derived from.
type Matching struct {
	// Assignments has one entry per ground truth object, ordered by label.
	Assignments []Assignment

	GroundTruthLabels []uint32
	TestLabels        []uint32

	// overlaps[g][t] is the number of coordinates carrying both g and t. Only
	// nonzero entries are stored.
	overlaps map[uint32]map[uint32]int64

	groundTruthArea map[uint32]int64
	testArea        map[uint32]int64
}

// Overlap returns the number of coordinates shared by ground truth object g
// and test object t.
func (m Matching) Overlap(g, t uint32) int64 {
	return m.overlaps[g][t]
}

// GroundTruthArea is the number of distinct coordinates of object g.
func (m Matching) GroundTruthArea(g uint32) int64 {
	return m.groundTruthArea[g]
}

// TestArea is the number of distinct coordinates of test object t.
func (m Matching) TestArea(t uint32) int64 {
	return m.testArea[t]
}

// DominantTest reports the test object matched to g, if any.
func (m Matching) DominantTest(g uint32) (uint32, bool) {
	for _, a := range m.Assignments {
		if a.GroundTruth == g {
			return a.Test, a.IsMatched()
		}
	}

	return 0, false
}

// MatchObjects assigns to every ground truth object the test object with which
// it shares the most coordinates, breaking ties toward the lowest test label.
// When several ground truth objects pick the same test object, only the one
// with the largest overlap with it (lowest label on ties) keeps the match; the
// others are demoted in a single pass.
func MatchObjects(groundTruth, test Labeling) (Matching, error) {
	if err := groundTruth.sameDomain(test); err != nil {
		return Matching{}, err
	}
	if err := groundTruth.Validate(); err != nil {
		return Matching{}, err
	}
	if err := test.Validate(); err != nil {
		return Matching{}, err
	}

	gtAt := groundTruth.labelsByCoordinate()
	testAt := test.labelsByCoordinate()

	out := Matching{
		GroundTruthLabels: groundTruth.Labels(),
		TestLabels:        test.Labels(),
		overlaps:          make(map[uint32]map[uint32]int64),
		groundTruthArea:   areas(gtAt),
		testArea:          areas(testAt),
	}

	// Map order does not matter here: each shared coordinate adds one to a
	// count.
	for idx, gs := range gtAt {
		ts := testAt[idx]
		if len(ts) == 0 {
			continue
		}
		for _, g := range gs {
			row, exists := out.overlaps[g]
			if !exists {
				row = make(map[uint32]int64)
				out.overlaps[g] = row
			}
			for _, t := range ts {
				row[t]++
			}
		}
	}

	// Pass 1: dominant test object per ground truth object. TestLabels is
	// ascending, so a strict comparison keeps the lowest label on ties.
	out.Assignments = make([]Assignment, 0, len(out.GroundTruthLabels))
	claimants := make(map[uint32][]int)
	for _, g := range out.GroundTruthLabels {
		a := Assignment{GroundTruth: g, Status: NoOverlap}
		for _, t := range out.TestLabels {
			if ov := out.overlaps[g][t]; ov > a.Overlap {
				a.Test = t
				a.Overlap = ov
				a.Status = Matched
			}
		}

		if a.IsMatched() {
			claimants[a.Test] = append(claimants[a.Test], len(out.Assignments))
		}
		out.Assignments = append(out.Assignments, a)
	}

	// Pass 2: resolve collisions. Claimants are in ascending ground truth
	// order, so a strict comparison again favors the lowest label.
	for _, idxs := range claimants {
		if len(idxs) < 2 {
			continue
		}

		winner := idxs[0]
		for _, i := range idxs[1:] {
			if out.Assignments[i].Overlap > out.Assignments[winner].Overlap {
				winner = i
			}
		}

		for _, i := range idxs {
			if i != winner {
				out.Assignments[i].Status = Demoted
			}
		}
	}

	return out, nil
}

func areas(labelsAt map[int][]uint32) map[uint32]int64 {
	out := make(map[uint32]int64)
	for _, labels := range labelsAt {
		for _, l := range labels {
			out[l]++
		}
	}

	return out
}
