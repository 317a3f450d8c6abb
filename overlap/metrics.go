package overlap

import "strings"

// Category is the measurement category that callers conventionally prefix
// overlap features with.
const Category = "Overlap"

const (
	FeatureFFactor           = "FFactor"
	FeaturePrecision         = "Precision"
	FeatureRecall            = "Recall"
	FeatureFalsePosRate      = "FalsePosRate"
	FeatureFalseNegRate      = "FalseNegRate"
	FeatureRandIndex         = "RandIndex"
	FeatureAdjustedRandIndex = "AdjustedRandIndex"
)

// FeatureNames lists every metric in output order.
var FeatureNames = []string{
	FeatureFFactor,
	FeaturePrecision,
	FeatureRecall,
	FeatureFalsePosRate,
	FeatureFalseNegRate,
	FeatureRandIndex,
	FeatureAdjustedRandIndex,
}

// MeasurementName joins the category, the feature and a target identifier,
// e.g. Overlap_FFactor_Nuclei. An empty target is omitted.
func MeasurementName(feature, target string) string {
	parts := []string{Category, feature}
	if target != "" {
		parts = append(parts, target)
	}

	return strings.Join(parts, "_")
}

// Metrics holds the scalar agreement figures for one comparison. Any field may
// be NaN where the inputs leave it undefined.
type Metrics struct {
	FFactor           float64
	Precision         float64
	Recall            float64
	FalsePosRate      float64
	FalseNegRate      float64
	RandIndex         float64
	AdjustedRandIndex float64
}

// Values returns the metrics in the order of FeatureNames.
func (m Metrics) Values() []float64 {
	return []float64{
		m.FFactor,
		m.Precision,
		m.Recall,
		m.FalsePosRate,
		m.FalseNegRate,
		m.RandIndex,
		m.AdjustedRandIndex,
	}
}

// Map keys each metric by its feature name.
func (m Metrics) Map() map[string]float64 {
	out := make(map[string]float64, len(FeatureNames))
	for i, v := range m.Values() {
		out[FeatureNames[i]] = v
	}

	return out
}

// RandIndices pairs the Rand Index with its chance-adjusted counterpart.
type RandIndices struct {
	RandIndex         float64
	AdjustedRandIndex float64
}

// PixelRequest selects the inputs of a foreground/background comparison.
type PixelRequest struct {
	GroundTruth Mask
	Test        Mask

	// Valid may be the zero Mask, in which case every pixel is scored.
	Valid Mask

	// WantDisplay asks for the per-pixel TP/FP/FN/TN masks.
	WantDisplay bool
}

// ObjectRequest selects the inputs of an object-level comparison.
type ObjectRequest struct {
	GroundTruth Labeling
	Test        Labeling

	// Valid restricts the Rand indices only. The zero Mask scores everything.
	Valid Mask

	WantDisplay bool
}

// Result is what an evaluator hands back to its caller.
type Result struct {
	Metrics Metrics
	Counts  ConfusionCounts

	// Number of objects on each side: connected foreground regions in pixel
	// mode, distinct labels in object mode.
	GroundTruthObjects int
	TestObjects        int

	// Display is populated only when requested.
	Display *ConfusionMasks

	// Matching is set by object-level evaluation.
	Matching *Matching
}
