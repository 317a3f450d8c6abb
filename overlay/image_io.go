package overlay

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/segoverlap"
	"github.com/carbocation/segoverlap/overlap"
	_ "golang.org/x/image/bmp"
)

// Format is the on-disk representation of a segmentation.
type Format int

const (
	// FormatImage is a label-encoded PNG, GIF, BMP or JPEG (#010101 = ID 1).
	FormatImage Format = iota
	// FormatRLE is a run-length encoded, row-major list of IDs.
	FormatRLE
	// FormatIJV is a delimited i/j/label file that may list overlapping
	// objects.
	FormatIJV
)

func (f Format) String() string {
	switch f {
	case FormatRLE:
		return "rle"
	case FormatIJV:
		return "ijv"
	}

	return "image"
}

// DetectFormat guesses the format from the file extension, looking past any
// compression suffix.
func DetectFormat(path string) Format {
	name := strings.ToLower(filepath.Base(path))
	for _, suffix := range []string{".gz", ".bz2", ".xz", ".zip", ".z"} {
		name = strings.TrimSuffix(name, suffix)
	}

	switch filepath.Ext(name) {
	case ".rle":
		return FormatRLE
	case ".ijv", ".csv", ".tsv", ".txt":
		return FormatIJV
	}

	return FormatImage
}

// ImageFromBytes creates an image from the specified bytes. Must be PNG, GIF,
// BMP, or JPEG formatted (based on the decoders we have imported).
func ImageFromBytes(imgBytes []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(imgBytes))

	return img, err
}

func OpenImageFromLocalFileOrGoogleStorage(filePath string, storageClient *storage.Client) (image.Image, error) {
	imgBytes, err := segoverlap.ReadAllFromLocalFileOrGoogleStorage(filePath, storageClient)
	if err != nil {
		return nil, err
	}

	return ImageFromBytes(imgBytes)
}

// Source knows how to turn a segmentation file of any Format into the types
// that the overlap package compares.
type Source struct {
	// Safe for concurrent use by multiple goroutines. May be nil when no
	// path points to Google Storage.
	Client *storage.Client

	// Width and Height give the domain of RLE and IJV files, which do not
	// carry their own dimensions.
	Width, Height int

	// Region, if set, crops every input after it is read.
	Region Region
}

func (s Source) read(path string) ([]byte, error) {
	return segoverlap.ReadAllFromLocalFileOrGoogleStorage(path, s.Client)
}

func (s Source) checkDomain(path string) error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%s: %s files need a positive width and height, got %dx%d", path, DetectFormat(path), s.Width, s.Height)
	}

	return nil
}

// LabelImage reads an encoded image or an RLE file. IJV files may hold
// overlapping objects and so cannot be read as a label image.
func (s Source) LabelImage(path string) (overlap.LabelImage, error) {
	data, err := s.read(path)
	if err != nil {
		return overlap.LabelImage{}, err
	}

	switch DetectFormat(path) {
	case FormatIJV:
		return overlap.LabelImage{}, fmt.Errorf("%s: IJV files cannot be read as a label image", path)

	case FormatRLE:
		if err := s.checkDomain(path); err != nil {
			return overlap.LabelImage{}, err
		}

		data, err = segoverlap.MaybeDecompressBytes(data)
		if err != nil {
			return overlap.LabelImage{}, err
		}

		img, err := DecodeLabelImageFromRLE(data, s.Width, s.Height)
		if err != nil {
			return img, pfx.Err(fmt.Errorf("%s: %v", path, err))
		}

		return SubsetLabelImage(img, s.Region), nil
	}

	img, err := ImageFromBytes(data)
	if err != nil {
		return overlap.LabelImage{}, pfx.Err(fmt.Errorf("%s: %v", path, err))
	}

	return DecodeLabelImage(SubsetImage(img, s.Region))
}

// Labeling reads any supported format as a sparse labeling. For label images
// each non-background ID is one object.
func (s Source) Labeling(path string) (overlap.Labeling, error) {
	if DetectFormat(path) != FormatIJV {
		img, err := s.LabelImage(path)
		if err != nil {
			return overlap.Labeling{}, err
		}

		return overlap.LabelingFromImage(img), nil
	}

	if err := s.checkDomain(path); err != nil {
		return overlap.Labeling{}, err
	}

	data, err := s.read(path)
	if err != nil {
		return overlap.Labeling{}, err
	}

	l, err := ParseIJV(data, s.Width, s.Height)
	if err != nil {
		return l, pfx.Err(fmt.Errorf("%s: %v", path, err))
	}

	return SubsetLabeling(l, s.Region), nil
}

// ValidityMask reads a segmentation whose non-background pixels mark the
// region that should be scored.
func (s Source) ValidityMask(path string) (overlap.Mask, error) {
	img, err := s.LabelImage(path)
	if err != nil {
		return overlap.Mask{}, err
	}

	return ForegroundMask(img), nil
}

// WritePNG saves an image to a local path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return pfx.Err(err)
	}

	return pfx.Err(f.Close())
}
