// pixeloverlapsummary is a convenience tool to summarize the output of
// pixeloverlap by mode and label
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/segoverlap/overlap"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

const (
	FilterRaw    = "raw"
	FilterFinite = "finite"
)

func main() {
	var input string
	var linePrefix string
	var bins int

	// Parse the command line arguments
	flag.StringVar(&input, "input", "", "The tab-delimited output of pixeloverlap")
	flag.StringVar(&linePrefix, "line_prefix", "", "Column to add to each line. If empty, no column will be added.")
	flag.IntVar(&bins, "histogram", 0, "(Optional) If positive, also print a histogram with this many buckets of each metric's finite values to stderr.")
	flag.Parse()

	if input == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Open the input file
	f, err := os.Open(input)
	if err != nil {
		log.Fatalln(err)
	}
	defer f.Close()

	var hist io.Writer
	if bins > 0 {
		hist = os.Stderr
	}

	if err := summarize(f, os.Stdout, hist, bins, linePrefix); err != nil {
		log.Fatalln(err)
	}
}

// group holds the raw metric values of every row that shares a mode and
// label, one slice per metric column.
type group struct {
	Mode   string
	Label  string
	Values [][]string
}

// summarize writes one line per group and filter to w. If hist is not nil,
// histograms of the finite values are written to it as well.
func summarize(r io.Reader, w, hist io.Writer, bins int, linePrefix string) error {
	csvReader := csv.NewReader(r)
	csvReader.Comma = '\t'
	entries, err := csvReader.ReadAll()
	if err != nil {
		return err
	}

	if len(entries) < 1 {
		return fmt.Errorf("No entries in the input file")
	}

	header := make(map[string]int)
	for i, col := range entries[0] {
		header[col] = i
	}

	labelCol, exists := header["Label"]
	if !exists {
		return fmt.Errorf("Input has no Label column; is it the output of pixeloverlap?")
	}
	modeCol, hasMode := header["Mode"]

	metricNames, metricCols := metricColumns(entries[0])
	if len(metricCols) == 0 {
		return fmt.Errorf("Input has no %s_ metric columns", overlap.Category)
	}

	groups := make(map[string]*group)
	order := make([]string, 0)
	for _, row := range entries[1:] {
		mode := ""
		if hasMode {
			mode = row[modeCol]
		}
		key := mode + "\t" + row[labelCol]

		g, ok := groups[key]
		if !ok {
			g = &group{Mode: mode, Label: row[labelCol], Values: make([][]string, len(metricCols))}
			groups[key] = g
			order = append(order, key)
		}

		for i, col := range metricCols {
			g.Values[i] = append(g.Values[i], row[col])
		}
	}
	sort.Strings(order)

	output := []string{"Mode", "Label"}
	if linePrefix != "" {
		output = append(output, "LinePrefix")
	}
	output = append(output, "Filter")
	for _, name := range metricNames {
		output = append(output, "N_"+name, name, name+"SD")
	}
	fmt.Fprintln(w, strings.Join(output, "\t"))

	for _, filter := range []string{FilterRaw, FilterFinite} {
		for _, key := range order {
			line, err := summarizeGroup(groups[key], filter, linePrefix)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, strings.Join(line, "\t"))
		}
	}

	if hist == nil {
		return nil
	}

	for _, key := range order {
		if err := printHistograms(hist, groups[key], metricNames, bins); err != nil {
			return err
		}
	}

	return nil
}

func printHistograms(w io.Writer, g *group, metricNames []string, bins int) error {
	for i, raw := range g.Values {
		values := parseValues(raw, true)
		if len(values) < 1 {
			continue
		}

		fmt.Fprintf(w, "%s %s %s (N=%d)\n", g.Mode, g.Label, metricNames[i], len(values))

		if min, max := floats.Min(values), floats.Max(values); min == max {
			fmt.Fprintf(w, "All values are %g\n", min)
			continue
		}

		if err := histogram.Fprint(w, histogram.Hist(bins, values), histogram.Linear(40)); err != nil {
			return err
		}
	}

	return nil
}

// metricColumns finds the overlap metric columns and the chance-corrected
// columns, in input order.
func metricColumns(header []string) ([]string, []int) {
	names := make([]string, 0)
	cols := make([]int, 0)
	for i, col := range header {
		if strings.HasPrefix(col, overlap.Category+"_") || col == "Kappa" || col == "Jaccard" {
			names = append(names, col)
			cols = append(cols, i)
		}
	}

	return names, cols
}

func summarizeGroup(g *group, filter, linePrefix string) ([]string, error) {
	output := []string{g.Mode, g.Label}
	if linePrefix != "" {
		output = append(output, linePrefix)
	}
	output = append(output, filter)

	for _, raw := range g.Values {
		values := parseValues(raw, filter == FilterFinite)

		output = append(output, strconv.Itoa(len(values)))

		if len(values) < 1 {
			output = append(output, []string{"N/A", "N/A"}...)
			continue
		}

		data := stats.LoadRawData(values)

		fl, err := data.Mean()
		if err != nil {
			return nil, err
		}
		output = append(output, fmt.Sprintf("%.3f", fl))

		fl, err = data.StandardDeviation()
		if err != nil {
			return nil, err
		}
		output = append(output, fmt.Sprintf("%.3f", fl))
	}

	return output, nil
}

// parseValues keeps every value that parses as a float. With finiteOnly, NaN
// and infinite values are dropped as well.
func parseValues(raw []string, finiteOnly bool) []float64 {
	out := make([]float64, 0, len(raw))
	for _, v := range raw {
		fl, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}

		if finiteOnly && (math.IsNaN(fl) || math.IsInf(fl, 0)) {
			continue
		}

		out = append(out, fl)
	}

	return out
}
