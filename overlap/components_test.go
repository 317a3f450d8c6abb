package overlap

import "testing"

func maskFromRows(rows ...string) Mask {
	m := NewMask(len(rows[0]), len(rows))
	for y, r := range rows {
		for x, c := range r {
			m.Set(x, y, c == '#')
		}
	}

	return m
}

func TestLabelComponents(t *testing.T) {
	for _, v := range []struct {
		Name     string
		Mask     Mask
		Expected []uint32
		N        int
	}{
		{
			"empty",
			maskFromRows(
				"...",
				"..."),
			[]uint32{
				0, 0, 0,
				0, 0, 0},
			0,
		},
		{
			"diagonal neighbors join",
			maskFromRows(
				"#..",
				".#.",
				"..#"),
			[]uint32{
				1, 0, 0,
				0, 1, 0,
				0, 0, 1},
			1,
		},
		{
			"anti-diagonal neighbors join",
			maskFromRows(
				"..#",
				".#.",
				"#.."),
			[]uint32{
				0, 0, 1,
				0, 1, 0,
				1, 0, 0},
			1,
		},
		{
			"separated regions",
			maskFromRows(
				"##..#",
				"##..#",
				".....",
				"..##."),
			[]uint32{
				1, 1, 0, 0, 2,
				1, 1, 0, 0, 2,
				0, 0, 0, 0, 0,
				0, 0, 3, 3, 0},
			3,
		},
		{
			// The arms only meet on the last row, after both have been
			// given provisional labels.
			"arms joined from below",
			maskFromRows(
				"#.#.#",
				"#.#.#",
				"###.#"),
			[]uint32{
				1, 0, 1, 0, 2,
				1, 0, 1, 0, 2,
				1, 1, 1, 0, 2},
			2,
		},
		{
			// Region order follows the first pixel of each region in raster
			// order, not its size or its lowest row.
			"raster order",
			maskFromRows(
				"...#",
				"#...",
				"#..."),
			[]uint32{
				0, 0, 0, 1,
				2, 0, 0, 0,
				2, 0, 0, 0},
			2,
		},
	} {
		got, n := LabelComponents(v.Mask)
		if n != v.N {
			t.Errorf("%s: found %d components, expected %d", v.Name, n, v.N)
		}

		if got.Width != v.Mask.Width || got.Height != v.Mask.Height {
			t.Fatalf("%s: label image is %dx%d, expected %dx%d", v.Name, got.Width, got.Height, v.Mask.Width, v.Mask.Height)
		}

		for idx, exp := range v.Expected {
			if got.Pix[idx] != exp {
				t.Errorf("%s: pixel %d has label %d, expected %d", v.Name, idx, got.Pix[idx], exp)
			}
		}
	}
}

func TestAnd(t *testing.T) {
	a := maskFromRows(
		"##.",
		".##")
	b := maskFromRows(
		"#.#",
		"#.#")

	got := And(a, b)
	if expected := maskFromRows("#..", "..#"); !equalMasks(got, expected) {
		t.Errorf("And gave %v, expected %v", got.Pix, expected.Pix)
	}

	if got := And(a, Mask{}); !equalMasks(got, a) {
		t.Errorf("And with a zero mask gave %v, expected %v", got.Pix, a.Pix)
	}
}

func equalMasks(a, b Mask) bool {
	if a.Width != b.Width || a.Height != b.Height || len(a.Pix) != len(b.Pix) {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}

	return true
}
