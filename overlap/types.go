package overlap

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrShapeMismatch   = errors.New("inputs do not share the same shape")
	ErrBackgroundLabel = errors.New("label 0 is reserved for the background")
	ErrOutOfDomain     = errors.New("coordinate lies outside of the labeling domain")
	ErrDomainMismatch  = errors.New("labelings are defined over different domains")
	ErrNoObjects       = errors.New("at least one ground truth and one test object are required")
)

// Mask is a row-major 2-D boolean grid. When used as a validity mask, the zero
// value (nil Pix) means that every pixel participates.
type Mask struct {
	Width, Height int
	Pix           []bool
}

func NewMask(width, height int) Mask {
	return Mask{
		Width:  width,
		Height: height,
		Pix:    make([]bool, width*height),
	}
}

func (m Mask) At(x, y int) bool {
	return m.Pix[y*m.Width+x]
}

func (m Mask) Set(x, y int, v bool) {
	m.Pix[y*m.Width+x] = v
}

// Count returns the number of true pixels.
func (m Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v {
			n++
		}
	}

	return n
}

// validAt treats a nil validity mask as valid everywhere.
func (m Mask) validAt(idx int) bool {
	return m.Pix == nil || m.Pix[idx]
}

func (m Mask) checkShape(width, height int) error {
	if m.Width != width || m.Height != height || len(m.Pix) != width*height {
		return fmt.Errorf("mask is %dx%d (%d pixels), expected %dx%d: %w", m.Width, m.Height, len(m.Pix), width, height, ErrShapeMismatch)
	}

	return nil
}

// checkValid is like checkShape but accepts the zero validity mask.
func (m Mask) checkValid(width, height int) error {
	if m.Pix == nil {
		return nil
	}

	return m.checkShape(width, height)
}

// LabelImage is a row-major grid where each pixel carries exactly one label.
// Label 0 is the background.
type LabelImage struct {
	Width, Height int
	Pix           []uint32
}

func NewLabelImage(width, height int) LabelImage {
	return LabelImage{
		Width:  width,
		Height: height,
		Pix:    make([]uint32, width*height),
	}
}

func (l LabelImage) At(x, y int) uint32 {
	return l.Pix[y*l.Width+x]
}

func (l LabelImage) Set(x, y int, label uint32) {
	l.Pix[y*l.Width+x] = label
}

// IJV is a single (row, column, label) entry of a sparse labeling.
type IJV struct {
	I, J  int
	Label uint32
}

// Labeling is a sparse listing of labeled coordinates over a Width x Height
// domain. A coordinate may appear several times with different labels
// (overlapping objects) or not at all (background).
type Labeling struct {
	Width, Height int
	Points        []IJV
}

func NewLabeling(width, height int) *Labeling {
	return &Labeling{Width: width, Height: height}
}

func (l *Labeling) Add(i, j int, label uint32) {
	l.Points = append(l.Points, IJV{I: i, J: j, Label: label})
}

// LabelingFromImage lists every non-background pixel of a label image.
func LabelingFromImage(img LabelImage) Labeling {
	out := Labeling{Width: img.Width, Height: img.Height}
	for idx, label := range img.Pix {
		if label == 0 {
			continue
		}
		out.Points = append(out.Points, IJV{I: idx / img.Width, J: idx % img.Width, Label: label})
	}

	return out
}

// Validate reports whether every entry is an object label inside the domain.
func (l Labeling) Validate() error {
	for _, p := range l.Points {
		if p.Label == 0 {
			return fmt.Errorf("entry at (%d, %d): %w", p.I, p.J, ErrBackgroundLabel)
		}
		if p.I < 0 || p.J < 0 || p.I >= l.Height || p.J >= l.Width {
			return fmt.Errorf("entry (%d, %d) with label %d in a %dx%d domain: %w", p.I, p.J, p.Label, l.Width, l.Height, ErrOutOfDomain)
		}
	}

	return nil
}

func (l Labeling) sameDomain(other Labeling) error {
	if l.Width != other.Width || l.Height != other.Height {
		return fmt.Errorf("%dx%d vs %dx%d: %w", l.Width, l.Height, other.Width, other.Height, ErrDomainMismatch)
	}

	return nil
}

// Labels returns the distinct labels in ascending order.
func (l Labeling) Labels() []uint32 {
	seen := make(map[uint32]struct{})
	for _, p := range l.Points {
		seen[p.Label] = struct{}{}
	}

	out := make([]uint32, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Union returns the mask of coordinates that carry at least one label.
func (l Labeling) Union() Mask {
	out := NewMask(l.Width, l.Height)
	for _, p := range l.Points {
		out.Pix[p.I*l.Width+p.J] = true
	}

	return out
}

// labelsByCoordinate groups the labels present at each coordinate (flattened
// index), dropping repeated triples. Label slices are sorted.
func (l Labeling) labelsByCoordinate() map[int][]uint32 {
	out := make(map[int][]uint32)
	for _, p := range l.Points {
		idx := p.I*l.Width + p.J
		out[idx] = insertSorted(out[idx], p.Label)
	}

	return out
}

// insertSorted adds v to the sorted slice s unless it is already present.
func insertSorted(s []uint32, v uint32) []uint32 {
	pos := sort.Search(len(s), func(i int) bool { return s[i] >= v })
	if pos < len(s) && s[pos] == v {
		return s
	}

	s = append(s, 0)
	copy(s[pos+1:], s[pos:])
	s[pos] = v

	return s
}

func shapeError(what string, width, height, n, wantWidth, wantHeight int) error {
	return fmt.Errorf("%s is %dx%d (%d pixels), expected %dx%d: %w", what, width, height, n, wantWidth, wantHeight, ErrShapeMismatch)
}
