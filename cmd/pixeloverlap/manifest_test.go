package main

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

func TestGetFileSlice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.csv")

	manifest := "sample_id,dicom_file,zip_file\n" +
		"1,a.dcm,x.zip\n" +
		"2,,x.zip\n" +
		"3,a.dcm,y.zip\n" +
		"4,b.dcm,y.zip\n"
	if err := os.WriteFile(path, []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}

	files, err := getFileSlice(path, "dicom_file")
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"a.dcm", "b.dcm"}
	if len(files) != len(expected) {
		t.Fatalf("Got %v, expected %v", files, expected)
	}
	for i := range expected {
		if files[i] != expected[i] {
			t.Errorf("Entry %d is %s, expected %s", i, files[i], expected[i])
		}
	}

	if _, err := getFileSlice(path, "image_file"); err == nil {
		t.Errorf("Expected an error for a missing column")
	}
}

func TestGetFileSliceCompressedTabs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.tsv.gz")

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte("file\tnote\nc.png\tfirst\nd.png\tsecond\n")); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	files, err := getFileSlice(path, "file")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || files[1] != "d.png" {
		t.Errorf("Unexpected entries %v", files)
	}
}

func TestGetFileSliceEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.csv")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := getFileSlice(path, "dicom_file"); err == nil {
		t.Errorf("Expected an error for an empty manifest")
	}
}
