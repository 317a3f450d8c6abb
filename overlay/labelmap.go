package overlay

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/carbocation/pfx"
	"github.com/carbocation/segoverlap/overlap"
	"github.com/tj/go-rle"
)

// A Label tracks the segmentation ID with the human-identifiable Label and
// human-interpretable color (in RGB hex, e.g., #FF0000 for red).
type Label struct {
	Label     string
	ID        uint   `json:"id"`
	Color     string `json:"color"`
	SortOrder int    `json:"sort_order,omitempty"`
}

// LabelMap ([string label name]Label) keeps track of the relationship between
// human-visible colors and the segmentation ID of that label.
type LabelMap map[string]Label

// Valid ensures that the LabelMap is valid by testing that it is bijective.
func (l LabelMap) Valid() bool {
	inverse := make(map[uint]string)
	for k, v := range l {
		inverse[v.ID] = k
	}

	return len(l) == len(inverse)
}

func (l LabelMap) Sorted() []Label {
	out := make([]Label, 0, len(l))

	for k, v := range l {
		v.Label = k
		out = append(out, v)
	}

	sort.Slice(out, func(i, j int) bool {
		// If SortOrder is defined and different, use it:
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}

		// Otherwise drop down to the ID field for sorting
		return out[i].ID < out[j].ID
	})

	return out
}

// Foreground lists every label other than the background (ID 0), in sorted
// order.
func (l LabelMap) Foreground() []Label {
	out := make([]Label, 0, len(l))
	for _, v := range l.Sorted() {
		if v.ID == 0 {
			continue
		}
		out = append(out, v)
	}

	return out
}

// ByID finds the label with the given segmentation ID.
func (l LabelMap) ByID(id uint) (Label, bool) {
	for k, v := range l {
		if v.ID == id {
			v.Label = k
			return v, true
		}
	}

	return Label{}, false
}

// CheckLabelImage makes sure that every ID in the image is known to the map.
// The background is always permitted.
func (l LabelMap) CheckLabelImage(img overlap.LabelImage) error {
	seen := make(map[uint32]struct{})
	for _, id := range img.Pix {
		if id == 0 {
			continue
		}
		if _, exists := seen[id]; exists {
			continue
		}
		if _, exists := l.ByID(uint(id)); !exists {
			return pfx.Err(fmt.Errorf("Saw ID %d but could not find this ID in the label map", id))
		}
		seen[id] = struct{}{}
	}

	return nil
}

// Paint transforms a label image into a human-visible image based on the
// colors for those IDs. ID 0 (the background) is transparent.
func (l LabelMap) Paint(img overlap.LabelImage) (*image.RGBA, error) {
	colors := make(map[uint32]color.RGBA)
	colors[0] = color.RGBA{}
	for _, v := range l.Sorted() {
		if v.ID == 0 {
			continue
		}

		col, err := rgbaFromColorCode(v.Color)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("Label %s (ID %d): %v", v.Label, v.ID, err))
		}
		colors[uint32(v.ID)] = col
	}

	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for idx, id := range img.Pix {
		col, exists := colors[id]
		if !exists {
			return nil, pfx.Err(fmt.Errorf("Saw ID %d but could not find this ID in the label map", id))
		}
		out.SetRGBA(idx%img.Width, idx/img.Width, col)
	}

	return out, nil
}

// DecodeLabelImage consumes an ID-encoded image (where each pixel is #010101
// for ID 1, #020202 for ID 2 etc) into a label image.
func DecodeLabelImage(img image.Image) (overlap.LabelImage, error) {
	b := img.Bounds()
	out := overlap.NewLabelImage(b.Dx(), b.Dy())

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			id, err := LabeledPixelToID(img.At(x, y))
			if err != nil {
				return out, pfx.Err(fmt.Errorf("pixel (%d, %d): %v", x, y, err))
			}
			out.Set(x-b.Min.X, y-b.Min.Y, id)
		}
	}

	return out, nil
}

// EncodeLabelImage is the inverse of DecodeLabelImage. IDs above 255 cannot be
// represented.
func EncodeLabelImage(img overlap.LabelImage) (*image.RGBA, error) {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for idx, id := range img.Pix {
		if id > 255 {
			return nil, fmt.Errorf("ID %d at pixel %d does not fit in a label-encoded image", id, idx)
		}
		out.SetRGBA(idx%img.Width, idx/img.Width, color.RGBA{R: uint8(id), G: uint8(id), B: uint8(id), A: 255})
	}

	return out, nil
}

// ForegroundMask is true wherever the label image carries one of ids. With no
// ids, every non-background pixel is foreground.
func ForegroundMask(img overlap.LabelImage, ids ...uint32) overlap.Mask {
	want := make(map[uint32]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	out := overlap.NewMask(img.Width, img.Height)
	for idx, id := range img.Pix {
		if len(want) == 0 {
			out.Pix[idx] = id != 0
			continue
		}
		_, out.Pix[idx] = want[id]
	}

	return out
}

// EncodeLabelImageToRLE run-length encodes the IDs of a label image in
// row-major order.
func EncodeLabelImageToRLE(img overlap.LabelImage) []byte {
	pixelLabels := make([]int64, 0, len(img.Pix))
	for _, id := range img.Pix {
		pixelLabels = append(pixelLabels, int64(id))
	}

	return rle.EncodeInt64(pixelLabels)
}

// DecodeLabelImageFromRLE expands RLE bytes into a width x height label image.
func DecodeLabelImageFromRLE(rleBytes []byte, width, height int) (overlap.LabelImage, error) {
	slc, err := rle.DecodeInt64(rleBytes)
	if err != nil {
		return overlap.LabelImage{}, pfx.Err(err)
	}

	if len(slc) != width*height {
		return overlap.LabelImage{}, pfx.Err(fmt.Errorf("RLE data holds %d pixels, expected %dx%d=%d: %w", len(slc), width, height, width*height, overlap.ErrShapeMismatch))
	}

	out := overlap.NewLabelImage(width, height)
	for i, id := range slc {
		if id < 0 {
			return overlap.LabelImage{}, pfx.Err(fmt.Errorf("Negative ID %d at pixel %d", id, i))
		}
		out.Pix[i] = uint32(id)
	}

	return out, nil
}
