package overlap

import (
	"github.com/theodesp/unionfind"
)

// Raster-scan labeling with a union-find over provisional pixel labels, after
// http://aishack.in/tutorials/connected-component-labelling/ but joining all
// eight neighbors.

// LabelComponents assigns a distinct positive label to each 8-connected
// foreground region of m. Labels are numbered 1..n in raster order of each
// region's first pixel. It returns the label image and n.
func LabelComponents(m Mask) (LabelImage, int) {
	out := NewLabelImage(m.Width, m.Height)
	if len(m.Pix) == 0 {
		return out, 0
	}

	uf := unionfind.New(len(m.Pix))

	// Only the already-visited half of the neighborhood needs to be checked:
	// up-left, up, up-right and left.
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			idx := y*m.Width + x
			if !m.Pix[idx] {
				continue
			}

			if x > 0 && m.Pix[idx-1] {
				uf.Union(idx, idx-1)
			}

			if y == 0 {
				continue
			}

			up := idx - m.Width
			if m.Pix[up] {
				uf.Union(idx, up)
			}
			if x > 0 && m.Pix[up-1] {
				uf.Union(idx, up-1)
			}
			if x < m.Width-1 && m.Pix[up+1] {
				uf.Union(idx, up+1)
			}
		}
	}

	// Now reconcile the provisional roots into consecutive labels
	rootLabels := make(map[int]uint32)
	for idx, fg := range m.Pix {
		if !fg {
			continue
		}

		root := uf.Root(idx)
		label, exists := rootLabels[root]
		if !exists {
			label = uint32(len(rootLabels) + 1)
			rootLabels[root] = label
		}
		out.Pix[idx] = label
	}

	return out, len(rootLabels)
}

// And returns a mask that is true where both a and b are. A zero-value b is
// treated as all true.
func And(a, b Mask) Mask {
	out := NewMask(a.Width, a.Height)
	for idx, v := range a.Pix {
		out.Pix[idx] = v && b.validAt(idx)
	}

	return out
}
