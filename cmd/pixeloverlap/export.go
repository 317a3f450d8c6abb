package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/carbocation/segoverlap/overlap"
	"github.com/carbocation/segoverlap/overlay"
)

// exportLabelImages saves the label images that were scored, after cropping,
// as RLE files that pixeloverlap can read back with -width and -height.
func (c *comparer) exportLabelImages(name string, gt, test overlap.LabelImage) error {
	if c.ExportPath == "" {
		return nil
	}

	for suffix, img := range map[string]overlap.LabelImage{"groundtruth": gt, "test": test} {
		path := filepath.Join(c.ExportPath, fmt.Sprintf("%s.%s.rle", filepath.Base(name), suffix))
		if err := os.WriteFile(path, overlay.EncodeLabelImageToRLE(img), 0644); err != nil {
			return pfx.Err(err)
		}
	}

	return nil
}

// exportObjects saves both object labelings as IJV files, along with one
// line per ground truth object describing how it was matched.
func (c *comparer) exportObjects(name string, gt, test overlap.Labeling, m *overlap.Matching) error {
	if c.ExportPath == "" {
		return nil
	}

	base := filepath.Join(c.ExportPath, filepath.Base(name))

	for suffix, l := range map[string]overlap.Labeling{"groundtruth": gt, "test": test} {
		if err := writeIJVFile(fmt.Sprintf("%s.%s.ijv", base, suffix), l); err != nil {
			return err
		}
	}

	if m == nil {
		return nil
	}

	lines := []string{strings.Join([]string{"GroundTruthLabel", "GroundTruthArea", "TestLabel", "TestArea", "Overlap", "Status"}, "\t")}
	for _, a := range m.Assignments {
		testLabel, testArea := "NA", "NA"
		if a.Status != overlap.NoOverlap {
			testLabel = fmt.Sprint(a.Test)
			testArea = fmt.Sprint(m.TestArea(a.Test))
		}

		lines = append(lines, strings.Join([]string{
			fmt.Sprint(a.GroundTruth),
			fmt.Sprint(m.GroundTruthArea(a.GroundTruth)),
			testLabel,
			testArea,
			fmt.Sprint(m.Overlap(a.GroundTruth, a.Test)),
			a.Status.String(),
		}, "\t"))
	}

	return pfx.Err(os.WriteFile(base+".matches.tsv", []byte(strings.Join(lines, "\n")+"\n"), 0644))
}

func writeIJVFile(path string, l overlap.Labeling) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	if err := overlay.WriteIJV(f, l); err != nil {
		f.Close()
		return err
	}

	return pfx.Err(f.Close())
}
