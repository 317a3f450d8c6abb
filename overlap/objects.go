package overlap

import "fmt"

// ObjectCounts is the object-level analogue of ConfusionCounts. FP counts the
// pixels of ground truth objects that are claimed by test objects other than
// their match, and TN credits every matched object with the whole image minus
// its true positives, so these figures are not on the same scale as the
// pixel-mode counts.
type ObjectCounts struct {
	ConfusionCounts
	GroundTruthArea int64
}

// Precision is TP/(TP+FP). Unlike the pixel-mode ratios there is no fallback
// for empty denominators.
func (c ObjectCounts) Precision() float64 {
	return float64(c.TP) / float64(c.TP+c.FP)
}

func (c ObjectCounts) Recall() float64 {
	return float64(c.TP) / float64(c.GroundTruthArea)
}

func (c ObjectCounts) FFactor() float64 {
	p, r := c.Precision(), c.Recall()
	return 2 * p * r / (p + r)
}

func (c ObjectCounts) FalsePosRate() float64 {
	return float64(c.FP) / float64(c.FP+c.TN)
}

func (c ObjectCounts) FalseNegRate() float64 {
	return float64(c.FN) / float64(c.FN+c.TP)
}

func (c ObjectCounts) Metrics() Metrics {
	return Metrics{
		FFactor:      c.FFactor(),
		Precision:    c.Precision(),
		Recall:       c.Recall(),
		FalsePosRate: c.FalsePosRate(),
		FalseNegRate: c.FalseNegRate(),
	}
}

// CountObjects accumulates per-object counts from a matching over a domain of
// totalPixels coordinates.
//
// For a ground truth object g matched to t:
//
//	tp = overlap(g, t)
//	fn = |g| - tp
//	fp = sum of overlap(g, t') over every other test object t'
//	tn = totalPixels - tp
//
// A demoted g keeps its dominant t but the overlap with it is dropped from
// every count: tp = 0, fn = |g| - overlap(g, t), fp = the sum of its other
// overlaps, and no tn. An unmatched g has no overlaps, so it contributes
// fn = |g| only.
func CountObjects(m Matching, totalPixels int64) ObjectCounts {
	var out ObjectCounts

	for _, a := range m.Assignments {
		area := m.GroundTruthArea(a.GroundTruth)
		out.GroundTruthArea += area

		var claimed int64
		for _, ov := range m.overlaps[a.GroundTruth] {
			claimed += ov
		}

		switch a.Status {
		case NoOverlap:
			out.FN += area
			out.FP += claimed
			continue
		case Demoted:
			out.FN += area - a.Overlap
			out.FP += claimed - a.Overlap
			continue
		}

		out.TP += a.Overlap
		out.FN += area - a.Overlap
		out.FP += claimed - a.Overlap
		out.TN += totalPixels - a.Overlap
	}

	return out
}

// EvaluateObjects compares two object labelings. It needs at least one ground
// truth object and one test object.
func EvaluateObjects(req ObjectRequest) (Result, error) {
	matching, err := MatchObjects(req.GroundTruth, req.Test)
	if err != nil {
		return Result{}, err
	}

	if len(matching.GroundTruthLabels) == 0 || len(matching.TestLabels) == 0 {
		return Result{}, fmt.Errorf("found %d ground truth and %d test objects: %w", len(matching.GroundTruthLabels), len(matching.TestLabels), ErrNoObjects)
	}

	counts := CountObjects(matching, int64(req.GroundTruth.Width*req.GroundTruth.Height))

	rand, err := SparseRandIndex(req.GroundTruth, req.Test, req.Valid)
	if err != nil {
		return Result{}, err
	}

	out := Result{
		Metrics:            counts.Metrics(),
		Counts:             counts.ConfusionCounts,
		GroundTruthObjects: len(matching.GroundTruthLabels),
		TestObjects:        len(matching.TestLabels),
		Matching:           &matching,
	}
	out.Metrics.RandIndex = rand.RandIndex
	out.Metrics.AdjustedRandIndex = rand.AdjustedRandIndex

	if req.WantDisplay {
		// Foreground here is the union of each labeling's objects.
		display, _, err := ConfusionPixels(req.Test.Union(), req.GroundTruth.Union(), req.Valid)
		if err != nil {
			return Result{}, err
		}
		out.Display = &display
	}

	return out, nil
}
