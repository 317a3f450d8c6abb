package overlay

import (
	"image"

	"github.com/carbocation/segoverlap/overlap"
)

const (
	confusionTruePositive uint32 = iota + 1
	confusionFalsePositive
	confusionFalseNegative
	confusionTrueNegative
)

// ConfusionLabels colors the rendered confusion masks. Pixels outside of the
// valid region stay transparent.
var ConfusionLabels = LabelMap{
	"TruePositive":  {ID: uint(confusionTruePositive), Color: "#ffffff"},
	"FalsePositive": {ID: uint(confusionFalsePositive), Color: "#ff00ff"},
	"FalseNegative": {ID: uint(confusionFalseNegative), Color: "#00ff00"},
	"TrueNegative":  {ID: uint(confusionTrueNegative), Color: "#202020"},
}

// ConfusionLabelImage collapses the four confusion masks into one label image
// keyed by the IDs of ConfusionLabels.
func ConfusionLabelImage(m overlap.ConfusionMasks) overlap.LabelImage {
	out := overlap.NewLabelImage(m.TruePositives.Width, m.TruePositives.Height)

	for id, mask := range map[uint32]overlap.Mask{
		confusionTruePositive:  m.TruePositives,
		confusionFalsePositive: m.FalsePositives,
		confusionFalseNegative: m.FalseNegatives,
		confusionTrueNegative:  m.TrueNegatives,
	} {
		for idx, v := range mask.Pix {
			if v {
				out.Pix[idx] = id
			}
		}
	}

	return out
}

// RenderConfusion paints the confusion masks, enlarged by scale.
func RenderConfusion(m overlap.ConfusionMasks, scale int) (image.Image, error) {
	img, err := ConfusionLabels.Paint(ConfusionLabelImage(m))
	if err != nil {
		return nil, err
	}

	return ScaleImage(img, scale), nil
}
