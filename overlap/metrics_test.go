package overlap

import "testing"

func TestMeasurementName(t *testing.T) {
	for _, v := range []struct {
		Feature, Target string
		Expected        string
	}{
		{FeatureFFactor, "", "Overlap_FFactor"},
		{FeatureAdjustedRandIndex, "Nuclei", "Overlap_AdjustedRandIndex_Nuclei"},
	} {
		if got := MeasurementName(v.Feature, v.Target); got != v.Expected {
			t.Errorf("MeasurementName(%q, %q) = %q, expected %q", v.Feature, v.Target, got, v.Expected)
		}
	}
}

func TestMetricsMap(t *testing.T) {
	m := Metrics{FFactor: 1, Precision: 2, Recall: 3, FalsePosRate: 4, FalseNegRate: 5, RandIndex: 6, AdjustedRandIndex: 7}

	got := m.Map()
	if len(got) != len(FeatureNames) {
		t.Fatalf("Map has %d entries, expected %d", len(got), len(FeatureNames))
	}

	for i, name := range FeatureNames {
		if got[name] != float64(i+1) {
			t.Errorf("%s = %g, expected %d", name, got[name], i+1)
		}
	}
}
