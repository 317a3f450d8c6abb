package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/carbocation/segoverlap/overlap"
	"github.com/carbocation/segoverlap/overlay"
)

// target is one foreground definition that gets its own output row.
type target struct {
	ID   string
	Name string

	// Pixels carrying any of IDs are foreground. Empty means every
	// non-background pixel.
	IDs []uint32
}

var allForeground = target{ID: "all", Name: "all"}

func chooseTargets(labels overlay.LabelMap, labelID uint, mode string) ([]target, error) {
	if labelID > 0 {
		name := strconv.FormatUint(uint64(labelID), 10)
		if len(labels) > 0 {
			lab, exists := labels.ByID(labelID)
			if !exists {
				return nil, fmt.Errorf("Label ID %d is not in the config's label map", labelID)
			}
			name = lab.Label
		}

		return []target{{ID: strconv.FormatUint(uint64(labelID), 10), Name: name, IDs: []uint32{uint32(labelID)}}}, nil
	}

	if mode == ModeObjects || len(labels.Foreground()) == 0 {
		return []target{allForeground}, nil
	}

	out := make([]target, 0, len(labels))
	for _, lab := range labels.Foreground() {
		out = append(out, target{ID: strconv.FormatUint(uint64(lab.ID), 10), Name: lab.Label, IDs: []uint32{uint32(lab.ID)}})
	}

	return out, nil
}

// comparer holds everything needed to compare one pair of files. It is safe
// for concurrent use.
type comparer struct {
	Source overlay.Source

	GroundTruthPath string
	TestPath        string
	MaskPath        string
	DisplayPath     string
	DisplayScale    int

	// If set, the scored inputs are written here
	ExportPath string

	// Trimmed from file names for the output
	Suffix string

	Mode    string
	Targets []target

	// In objects mode, split this label's connected regions into objects
	ObjectLabel uint32

	// Optional; if set, every ID in an image must be known to it
	Labels overlay.LabelMap

	progress *progress
}

// ProcessOne compares the ground truth and test files that share a name and
// returns the formatted output rows.
func (c *comparer) ProcessOne(file string) ([][]string, error) {
	gtPath := c.GroundTruthPath + "/" + file
	testPath := c.TestPath + "/" + file
	name := file
	if c.Suffix != "" {
		name = strings.TrimSuffix(file, c.Suffix)
	}

	var valid overlap.Mask
	if c.MaskPath != "" {
		var err error
		valid, err = c.Source.ValidityMask(c.MaskPath + "/" + file)
		if err != nil {
			return nil, err
		}
	}

	if c.Mode == ModeObjects {
		return c.compareObjects(name, gtPath, testPath, valid)
	}

	return c.compareForeground(name, gtPath, testPath, valid)
}

func (c *comparer) openLabelImage(path string) (overlap.LabelImage, error) {
	img, err := c.Source.LabelImage(path)
	if err != nil {
		return img, err
	}

	if len(c.Labels) > 0 {
		if err := c.Labels.CheckLabelImage(img); err != nil {
			return img, pfx.Err(fmt.Errorf("%s: %v", path, err))
		}
	}

	return img, nil
}

func (c *comparer) compareForeground(name, gtPath, testPath string, valid overlap.Mask) ([][]string, error) {
	gt, err := c.openLabelImage(gtPath)
	if err != nil {
		return nil, err
	}

	test, err := c.openLabelImage(testPath)
	if err != nil {
		return nil, err
	}

	if err := c.exportLabelImages(name, gt, test); err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(c.Targets))
	for _, t := range c.Targets {
		res, err := overlap.EvaluatePixels(overlap.PixelRequest{
			GroundTruth: overlay.ForegroundMask(gt, t.IDs...),
			Test:        overlay.ForegroundMask(test, t.IDs...),
			Valid:       valid,
			WantDisplay: c.DisplayPath != "",
		})
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s (label %s): %v", name, t.ID, err))
		}

		if err := c.display(name, t, res); err != nil {
			return nil, err
		}

		c.progress.Push(res.Metrics)
		rows = append(rows, formatRow(name, t, c.Mode, res))
	}

	return rows, nil
}

func (c *comparer) openObjects(path string) (overlap.Labeling, error) {
	if c.ObjectLabel == 0 || overlay.DetectFormat(path) == overlay.FormatIJV {
		return c.Source.Labeling(path)
	}

	img, err := c.openLabelImage(path)
	if err != nil {
		return overlap.Labeling{}, err
	}

	objects, _ := overlay.ComponentLabeling(img, c.ObjectLabel)

	return objects, nil
}

func (c *comparer) compareObjects(name, gtPath, testPath string, valid overlap.Mask) ([][]string, error) {
	gt, err := c.openObjects(gtPath)
	if err != nil {
		return nil, err
	}

	test, err := c.openObjects(testPath)
	if err != nil {
		return nil, err
	}

	res, err := overlap.EvaluateObjects(overlap.ObjectRequest{
		GroundTruth: gt,
		Test:        test,
		Valid:       valid,
		WantDisplay: c.DisplayPath != "",
	})
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %v", name, err))
	}

	if err := c.exportObjects(name, gt, test, res.Matching); err != nil {
		return nil, err
	}

	t := c.Targets[0]
	if err := c.display(name, t, res); err != nil {
		return nil, err
	}

	c.progress.Push(res.Metrics)

	return [][]string{formatRow(name, t, c.Mode, res)}, nil
}

func (c *comparer) display(name string, t target, res overlap.Result) error {
	if c.DisplayPath == "" || res.Display == nil {
		return nil
	}

	img, err := overlay.RenderConfusion(*res.Display, c.DisplayScale)
	if err != nil {
		return err
	}

	return overlay.WritePNG(filepath.Join(c.DisplayPath, fmt.Sprintf("%s.%s.%s.png", filepath.Base(name), t.ID, c.Mode)), img)
}
