// pixeloverlap compares ground truth segmentations against test segmentations
// and prints one row of overlap metrics per comparison to stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"github.com/carbocation/segoverlap"
	_ "github.com/carbocation/segoverlap/compileinfoprint"
	"github.com/carbocation/segoverlap/overlay"
)

const (
	ModeForeground = "foreground"
	ModeObjects    = "objects"
)

func init() {
	flag.Usage = func() {
		flag.PrintDefaults()

		log.Println("Example JSONConfig file layout:")
		bts, err := json.MarshalIndent(overlay.JSONConfig{
			Labels: overlay.LabelMap{
				"Background": overlay.Label{Color: "", ID: 0},
				"Nuclei":     overlay.Label{Color: "#ff0000", ID: 1},
			},
			ImageSuffix: ".png.mask.png",
		}, "", "  ")
		if err == nil {
			log.Println(string(bts))
		}
	}
}

// Safe for concurrent use by multiple goroutines
var client *storage.Client

// Serializes writes to stdout
var stdout sync.Mutex

func main() {
	fmt.Fprintf(os.Stderr, "%q\n", os.Args)
	started := time.Now()

	var path1, path2, jsonConfig, manifest, manifestColumn, suffix, maskPath, displayPath, exportPath, mode, crop, target string
	var labelID uint
	var width, height, dilation, displayScale, concurrency int

	flag.StringVar(&path1, "path1", "", "Path to folder with ground truth segmentations")
	flag.StringVar(&path2, "path2", "", "Path to folder with test segmentations, named the same as in -path1")
	flag.StringVar(&jsonConfig, "config", "", "(Optional) JSONConfig file from the github.com/carbocation/segoverlap/overlay package")
	flag.StringVar(&mode, "mode", ModeForeground, "Either 'foreground' (pixel by pixel, per label) or 'objects' (match objects to one another)")
	flag.UintVar(&labelID, "label", 0, "(Optional) Only consider this label ID. In objects mode, its connected regions become the objects.")
	flag.StringVar(&maskPath, "mask", "", "(Optional) Path to folder with validity masks, named the same as in -path1. Only non-background pixels are scored.")
	flag.StringVar(&manifest, "manifest", "", "(Optional) Path to manifest. If provided, will only look at files in the manifest rather than listing the entire directory's contents.")
	flag.StringVar(&manifestColumn, "manifest_column", "dicom_file", "(Optional) Name of the manifest column that holds the file names.")
	flag.StringVar(&suffix, "suffix", "", "(Optional) Suffix after each manifest entry. Defaults to the config's image_suffix.")
	flag.StringVar(&crop, "crop", "", "(Optional) Only compare the region x0,y0,x1,y1 (top left inclusive, bottom right exclusive).")
	flag.IntVar(&dilation, "dilate", 0, "(Optional) Number of pixels by which to expand the -crop region on each side.")
	flag.IntVar(&width, "width", 0, "Width of the domain. Required for RLE and IJV inputs unless set in the config.")
	flag.IntVar(&height, "height", 0, "Height of the domain. Required for RLE and IJV inputs unless set in the config.")
	flag.StringVar(&displayPath, "display", "", "(Optional) Path to a local folder where rendered TP/FP/FN/TN images will be written.")
	flag.StringVar(&exportPath, "export", "", "(Optional) Path to a local folder where the scored inputs (after cropping) will be written: RLE label images in foreground mode, IJV objects and a per-object match table in objects mode.")
	flag.IntVar(&displayScale, "display_scale", 1, "(Optional) Factor by which rendered images are enlarged.")
	flag.StringVar(&target, "target", "", "(Optional) Suffix for the metric column names, e.g., Nuclei yields Overlap_FFactor_Nuclei.")
	flag.IntVar(&concurrency, "concurrency", 4*runtime.NumCPU(), "(Optional) Number of comparisons to run at once.")
	flag.Parse()

	if path1 == "" || path2 == "" || (mode != ModeForeground && mode != ModeObjects) || concurrency < 1 {
		flag.Usage()
		os.Exit(1)
	}

	config := overlay.JSONConfig{}
	if jsonConfig != "" {
		var err error
		config, err = overlay.ParseJSONConfigFromPath(jsonConfig)
		if err != nil {
			log.Println(err)
			flag.Usage()
			os.Exit(1)
		}
	}

	// Flags win over the config file
	if suffix == "" {
		suffix = config.ImageSuffix
	}
	if manifest == "" {
		manifest = config.ManifestPath
	}
	if width == 0 {
		width = config.Width
	}
	if height == 0 {
		height = config.Height
	}
	if crop == "" {
		crop = config.Crop
	}

	region, err := overlay.ParseRegion(crop)
	if err != nil {
		log.Fatalln(err)
	}
	region.Dilation = dilation

	targets, err := chooseTargets(config.Labels, labelID, mode)
	if err != nil {
		log.Fatalln(err)
	}

	// Initialize the Google Storage client only if we're pointing to Google
	// Storage paths.
	if strings.HasPrefix(path1, "gs://") || strings.HasPrefix(path2, "gs://") || strings.HasPrefix(maskPath, "gs://") || strings.HasPrefix(manifest, "gs://") {
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
	}

	for _, dir := range []string{displayPath, exportPath} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(segoverlap.ExpandHome(dir), 0755); err != nil {
			log.Fatalln(err)
		}
	}

	cmp := &comparer{
		Source: overlay.Source{
			Client: client,
			Width:  width,
			Height: height,
			Region: region,
		},
		GroundTruthPath: segoverlap.ExpandHome(path1),
		TestPath:        segoverlap.ExpandHome(path2),
		MaskPath:        segoverlap.ExpandHome(maskPath),
		DisplayPath:     segoverlap.ExpandHome(displayPath),
		DisplayScale:    displayScale,
		ExportPath:      segoverlap.ExpandHome(exportPath),
		Suffix:          suffix,
		Mode:            mode,
		Targets:         targets,
		ObjectLabel:     uint32(labelID),
		Labels:          config.Labels,
		progress:        newProgress(),
	}

	fmt.Println(strings.Join(header(target), "\t"))

	if manifest != "" {
		files, err := getFileSlice(segoverlap.ExpandHome(manifest), manifestColumn)
		if err != nil {
			log.Fatalln(err)
		}

		for i := range files {
			files[i] += suffix
		}

		run(cmp, files, concurrency)
	} else {
		files, err := scanFolder(cmp.GroundTruthPath)
		if err != nil {
			log.Fatalln(err)
		}

		run(cmp, files, concurrency)
	}

	cmp.progress.Log()
	log.Println("Completed in", time.Since(started))
}

func run(cmp *comparer, files []string, concurrency int) {
	sem := make(chan bool, concurrency)

	// Process every image
	for i, file := range files {
		sem <- true
		go func(file string) {
			processWithRetries(cmp, file)
			<-sem
		}(file)

		if (i+1)%1000 == 0 {
			log.Printf("Queued %d images\n", i+1)
			cmp.progress.Log()
		}
	}

	for i := 0; i < cap(sem); i++ {
		sem <- true
	}
}

func processWithRetries(cmp *comparer, file string) {
	// The main purpose of this loop is to handle a specific filesystem
	// error (input/output error) that largely happens with GCSFuse, and
	// retry a few times before giving up.
	for loadAttempts, maxLoadAttempts := 1, 10; loadAttempts <= maxLoadAttempts; loadAttempts++ {

		rows, err := cmp.ProcessOne(file)

		if err != nil && loadAttempts == maxLoadAttempts {

			// We've exhausted our retries. Fail hard.
			log.Fatalln(err)

		} else if err != nil && strings.Contains(err.Error(), "input/output error") {

			// If it's an i/o error, we can retry
			log.Println("Sleeping 5s to recover from", err.Error(), ". Attempt #", loadAttempts)
			time.Sleep(5 * time.Second)
			continue

		} else if err != nil {

			// If it's an error that is not an i/o error, don't retry
			log.Println(file+":", err)
			break

		}

		stdout.Lock()
		for _, row := range rows {
			fmt.Println(strings.Join(row, "\t"))
		}
		stdout.Unlock()

		break
	}
}

// scanFolder lists the regular files in a local folder.
func scanFolder(dirname string) ([]string, error) {
	if strings.HasPrefix(dirname, "gs://") {
		return nil, fmt.Errorf("Listing Google Storage folders is not supported; please pass a -manifest")
	}

	f, err := os.Open(dirname)
	if err != nil {
		return nil, err
	}

	files, err := f.Readdir(-1)
	f.Close()
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(files))
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		out = append(out, file.Name())
	}

	return out, nil
}
