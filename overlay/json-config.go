package overlay

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/carbocation/segoverlap"
)

type JSONConfig struct {
	ConfigPath   string
	ManifestPath string   `json:"manifest"`
	Labels       LabelMap `json:"labels"`
	ImageSuffix  string   `json:"image_suffix"`

	// Domain of RLE and IJV inputs
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Optional crop box, formatted as x0,y0,x1,y1
	Crop string `json:"crop,omitempty"`
}

func ParseJSONConfigFromPath(path string) (JSONConfig, error) {
	out := JSONConfig{ConfigPath: path}

	f, err := os.Open(segoverlap.ExpandHome(path))
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(&out)
	if err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}

		return out, pfx.Err(err)
	}

	// Internally, go uses lower case for all colors, so we will too (while
	// permitting the user to use mixed case)
	for k, v := range out.Labels {
		v.Color = strings.ToLower(v.Color)
		out.Labels[k] = v
	}

	if !out.Labels.Valid() {
		return out, pfx.Err(fmt.Errorf("%s: label IDs must be unique", path))
	}

	if _, err := ParseRegion(out.Crop); err != nil {
		return out, pfx.Err(err)
	}

	// Interpret ~ if present
	out.ConfigPath = segoverlap.ExpandHome(out.ConfigPath)
	out.ManifestPath = segoverlap.ExpandHome(out.ManifestPath)

	return out, nil
}
