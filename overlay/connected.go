package overlay

import (
	"github.com/carbocation/segoverlap/overlap"
)

// CountConnectedRegions reports, for every ID present in the label image
// (background included), how many 8-connected regions carry it.
func CountConnectedRegions(img overlap.LabelImage) map[uint32]int {
	ids := make(map[uint32]struct{})
	for _, id := range img.Pix {
		ids[id] = struct{}{}
	}

	out := make(map[uint32]int, len(ids))
	for id := range ids {
		_, n := overlap.LabelComponents(ForegroundMask(img, id))
		out[id] = n
	}

	return out
}

// ComponentLabeling treats each 8-connected region of the pixels that carry
// id as its own object. It also returns the number of objects.
func ComponentLabeling(img overlap.LabelImage, id uint32) (overlap.Labeling, int) {
	components, n := overlap.LabelComponents(ForegroundMask(img, id))

	return overlap.LabelingFromImage(components), n
}
