package main

import (
	"fmt"
	"strconv"

	"github.com/carbocation/segoverlap/overlap"
)

// agreement adds chance-corrected figures to the pixel confusion counts.
type agreement struct {
	overlap.ConfusionCounts
}

// PO: observed probability of agreement
func (v agreement) PO() float64 {
	total := v.Total()
	if total == 0 {
		return 1
	}

	return float64(v.TP+v.TN) / float64(total)
}

// PE: probability of chance agreement
func (v agreement) PE() float64 {
	total := float64(v.Total())
	if total == 0 {
		return 1
	}

	pR1Label := float64(v.TP+v.FN) / total
	pR2Label := float64(v.TP+v.FP) / total

	return (pR1Label * pR2Label) + ((1 - pR1Label) * (1 - pR2Label))
}

// Kappa is a function of the observed and expected probabilities of agreement
func (v agreement) Kappa() float64 {
	if v.PE() == 1 {
		return 0
	}

	return (v.PO() - v.PE()) / (1 - v.PE())
}

func (v agreement) Jaccard() float64 {
	denom := v.TP + v.FP + v.FN
	if denom == 0 {
		return 0
	}

	return float64(v.TP) / float64(denom)
}

func header(metricSuffix string) []string {
	out := []string{"file", "LabelID", "Label", "Mode"}
	for _, feature := range overlap.FeatureNames {
		out = append(out, overlap.MeasurementName(feature, metricSuffix))
	}

	return append(out, "TP", "FP", "FN", "TN", "Kappa", "Jaccard", "GroundTruthComponents", "TestComponents")
}

func formatRow(file string, t target, mode string, res overlap.Result) []string {
	out := []string{file, t.ID, t.Name, mode}
	for _, v := range res.Metrics.Values() {
		out = append(out, formatFloat(v))
	}

	c := res.Counts
	out = append(out, fmt.Sprint(c.TP), fmt.Sprint(c.FP), fmt.Sprint(c.FN), fmt.Sprint(c.TN))

	// The object-level counts are not a partition of the image, so the
	// chance-corrected figures would be meaningless
	if mode == ModeObjects {
		out = append(out, "NA", "NA")
	} else {
		a := agreement{c}
		out = append(out, formatFloat(a.Kappa()), formatFloat(a.Jaccard()))
	}

	return append(out, strconv.Itoa(res.GroundTruthObjects), strconv.Itoa(res.TestObjects))
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
