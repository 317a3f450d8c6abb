package overlay

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/carbocation/segoverlap/overlap"
	"github.com/disintegration/imaging"
)

const (
	WhichPointBottomRight = "br"
	WhichPointTopLeft     = "tl"
)

// Region is a crop box given by its top left (inclusive) and bottom right
// (exclusive) points, optionally dilated by a number of pixels on every side.
// A bottom right coordinate of 0 means the far edge of the image, so the zero
// Region covers the whole image.
type Region struct {
	TopLeftX, TopLeftY         int
	BottomRightX, BottomRightY int
	Dilation                   int
}

// ParseRegion reads "x0,y0,x1,y1". The empty string is the zero Region.
func ParseRegion(s string) (Region, error) {
	if strings.TrimSpace(s) == "" {
		return Region{}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Region{}, fmt.Errorf("Expected a region formatted as x0,y0,x1,y1 but got %q", s)
	}

	vals := make([]int, 0, 4)
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Region{}, fmt.Errorf("Region %q: %v", s, err)
		}
		if v < 0 {
			return Region{}, fmt.Errorf("Region %q has a negative coordinate", s)
		}
		vals = append(vals, v)
	}

	return Region{TopLeftX: vals[0], TopLeftY: vals[1], BottomRightX: vals[2], BottomRightY: vals[3]}, nil
}

func (r Region) IsZero() bool {
	return r == Region{}
}

// Rect resolves the region against an image of the given size.
func (r Region) Rect(width, height int) image.Rectangle {
	bottomRightX, bottomRightY := r.BottomRightX, r.BottomRightY

	// Correct max bounds if left unset (i.e., 0)
	if bottomRightX == 0 {
		bottomRightX = width
	}
	if bottomRightY == 0 {
		bottomRightY = height
	}

	return image.Rect(
		DilateDimension(r.TopLeftX, width, r.Dilation, WhichPointTopLeft),
		DilateDimension(r.TopLeftY, height, r.Dilation, WhichPointTopLeft),
		DilateDimension(bottomRightX, width, r.Dilation, WhichPointBottomRight),
		DilateDimension(bottomRightY, height, r.Dilation, WhichPointBottomRight),
	)
}

// SubsetImage crops an image to the region.
func SubsetImage(baseImg image.Image, r Region) image.Image {
	if r.IsZero() {
		return baseImg
	}

	b := baseImg.Bounds()
	rect := r.Rect(b.Dx(), b.Dy()).Add(b.Min)

	return imaging.Crop(baseImg, rect)
}

func SubsetLabelImage(img overlap.LabelImage, r Region) overlap.LabelImage {
	if r.IsZero() {
		return img
	}

	rect := r.Rect(img.Width, img.Height)
	out := overlap.NewLabelImage(rect.Dx(), rect.Dy())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			out.Set(x-rect.Min.X, y-rect.Min.Y, img.At(x, y))
		}
	}

	return out
}

// SubsetLabeling keeps the entries that fall inside the region and shifts
// them so that the region's top left corner becomes (0, 0).
func SubsetLabeling(l overlap.Labeling, r Region) overlap.Labeling {
	if r.IsZero() {
		return l
	}

	rect := r.Rect(l.Width, l.Height)
	out := overlap.Labeling{Width: rect.Dx(), Height: rect.Dy()}
	for _, p := range l.Points {
		if !image.Pt(p.J, p.I).In(rect) {
			continue
		}
		out.Add(p.I-rect.Min.Y, p.J-rect.Min.X, p.Label)
	}

	return out
}

// ScaleImage enlarges an image by an integer factor without blending labels.
func ScaleImage(img image.Image, scale int) image.Image {
	if scale <= 1 {
		return img
	}

	return imaging.Resize(img, img.Bounds().Dx()*scale, 0, imaging.NearestNeighbor)
}

// DilateDimension expands an axis by "dilationFactor" pixels (additive). It
// basically adds or subtracts pixels, while paying attention to not allow the
// position to leave the [0, max] range.
func DilateDimension(pos, max, dilationFactor int, direction string) int {
	out := pos
	if direction == WhichPointBottomRight {
		out = out + dilationFactor
	} else {
		out = out - dilationFactor
	}

	if out < 0 {
		out = 0
	}
	if out > max {
		out = max
	}

	return out
}
