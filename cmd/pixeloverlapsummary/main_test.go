package main

import (
	"bytes"
	"strings"
	"testing"
)

const testInput = "file\tLabelID\tLabel\tMode\tOverlap_FFactor\tOverlap_RandIndex\tTP\tKappa\tJaccard\n" +
	"a\t1\tNuclei\tforeground\t1\t0.5\t10\t1\t1\n" +
	"b\t1\tNuclei\tforeground\t0.5\tNaN\t10\t0.5\t0.25\n" +
	"a\t2\tCytoplasm\tforeground\t0.25\t0.75\t10\t0.5\t0.5\n" +
	"a\tall\tall\tobjects\t0.75\t0.25\t3\tNA\tNA\n"

func TestSummarize(t *testing.T) {
	var out bytes.Buffer
	if err := summarize(strings.NewReader(testInput), &out, nil, 0, "run1"); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")

	// Header, then 3 groups for each of the 2 filters
	if len(lines) != 7 {
		t.Fatalf("Got %d lines, expected 7:\n%s", len(lines), out.String())
	}

	header := strings.Split(lines[0], "\t")
	if header[2] != "LinePrefix" || header[4] != "N_Overlap_FFactor" || header[5] != "Overlap_FFactor" || header[6] != "Overlap_FFactorSD" {
		t.Errorf("Unexpected header %v", header)
	}
	if len(header) != 4+4*3 {
		t.Errorf("Expected FFactor, RandIndex, Kappa and Jaccard summaries, got %v", header)
	}

	rows := make(map[string][]string)
	for _, line := range lines[1:] {
		cols := strings.Split(line, "\t")
		rows[cols[0]+"/"+cols[1]+"/"+cols[3]] = cols
	}

	raw := rows["foreground/Nuclei/raw"]
	if raw == nil {
		t.Fatalf("Missing raw Nuclei row in\n%s", out.String())
	}
	if raw[2] != "run1" || raw[4] != "2" || raw[5] != "0.750" {
		t.Errorf("Unexpected raw FFactor summary %v", raw)
	}
	if raw[7] != "2" || raw[8] != "NaN" {
		t.Errorf("A NaN should propagate in the raw summary, got %v", raw[7:10])
	}

	finite := rows["foreground/Nuclei/finite"]
	if finite[7] != "1" || finite[8] != "0.500" || finite[9] != "0.000" {
		t.Errorf("Unexpected finite RandIndex summary %v", finite[7:10])
	}

	objects := rows["objects/all/raw"]
	if objects[13] != "0" || objects[14] != "N/A" {
		t.Errorf("NA values should not be summarized, got %v", objects[13:])
	}
}

func TestSummarizeRejectsOtherInput(t *testing.T) {
	var out bytes.Buffer
	if err := summarize(strings.NewReader(""), &out, nil, 0, ""); err == nil {
		t.Errorf("Expected an error for empty input")
	}

	if err := summarize(strings.NewReader("file\tLabel\tAgree\na\tx\t1\n"), &out, nil, 0, ""); err == nil {
		t.Errorf("Expected an error for input without metric columns")
	}
}

func TestSummarizeHistogram(t *testing.T) {
	var out, hist bytes.Buffer
	if err := summarize(strings.NewReader(testInput), &out, &hist, 5, ""); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(hist.String(), "foreground Nuclei Overlap_FFactor (N=2)") {
		t.Errorf("Missing Nuclei FFactor histogram in\n%s", hist.String())
	}

	// NA values leave nothing to plot
	if strings.Contains(hist.String(), "objects all Kappa") {
		t.Errorf("Did not expect a Kappa histogram for objects mode")
	}
}
