package segoverlap

import "testing"

func TestDetermineDelimiterFromBytes(t *testing.T) {
	for _, v := range []struct {
		Name     string
		Input    string
		Expected rune
	}{
		{"tab", "i\tj\tlabel\n0\t3\t7\n2\t5\t8\n4\t6\t9\n", '\t'},
		{"comma", "i,j,label\n0,3,7\n2,5,8\n4,6,9\n", ','},
		{"empty", "", ','},
	} {
		if got := DetermineDelimiterFromBytes([]byte(v.Input)); got != v.Expected {
			t.Errorf("%s: got %q, expected %q", v.Name, got, v.Expected)
		}
	}
}
