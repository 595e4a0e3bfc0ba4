package core

import "testing"

func TestDiffIdentical(t *testing.T) {
	a := NewFrame(10, 5)
	b := NewFrame(10, 5)
	a.Set(3, 3, "x")
	b.Set(3, 3, "x")

	if changes := Diff(a, b); len(changes) != 0 {
		t.Errorf("Diff of identical frames = %v, expected none", changes)
	}
}

func TestDiffCountsChangedCells(t *testing.T) {
	tests := []struct {
		name string
		prev []glyphAt
		cur  []glyphAt
		want int
	}{
		{
			name: "one written",
			cur:  []glyphAt{{1, 1, "x"}},
			want: 1,
		},
		{
			name: "one cleared",
			prev: []glyphAt{{1, 1, "x"}},
			want: 1,
		},
		{
			name: "glyph swap",
			prev: []glyphAt{{1, 1, "x"}},
			cur:  []glyphAt{{1, 1, "+"}},
			want: 1,
		},
		{
			name: "lateral move of two enemies",
			prev: []glyphAt{{2, 1, "x"}, {4, 1, "x"}},
			cur:  []glyphAt{{3, 1, "x"}, {5, 1, "x"}},
			want: 4,
		},
		{
			name: "overlapping shift",
			prev: []glyphAt{{2, 1, "x"}, {3, 1, "x"}},
			cur:  []glyphAt{{3, 1, "x"}, {4, 1, "x"}},
			want: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prev := NewFrame(8, 4)
			for _, g := range tc.prev {
				g.RenderInto(prev)
			}
			cur := NewFrame(8, 4)
			for _, g := range tc.cur {
				g.RenderInto(cur)
			}

			changes := Diff(prev, cur)
			if len(changes) != tc.want {
				t.Errorf("Diff() = %d changes (%v), expected %d", len(changes), changes, tc.want)
			}
			for _, c := range changes {
				if cur.Get(c.X, c.Y) != c.Glyph {
					t.Errorf("change at (%d, %d) = %q, frame holds %q", c.X, c.Y, c.Glyph, cur.Get(c.X, c.Y))
				}
			}
		})
	}
}

func TestDiffRowMajorOrder(t *testing.T) {
	prev := NewFrame(4, 4)
	cur := NewFrame(4, 4)
	cur.Set(3, 0, "a")
	cur.Set(0, 2, "b")
	cur.Set(1, 0, "c")

	changes := Diff(prev, cur)
	expected := []CellChange{
		{X: 1, Y: 0, Glyph: "c"},
		{X: 3, Y: 0, Glyph: "a"},
		{X: 0, Y: 2, Glyph: "b"},
	}
	if len(changes) != len(expected) {
		t.Fatalf("Diff() = %v, expected %v", changes, expected)
	}
	for i := range expected {
		if changes[i] != expected[i] {
			t.Errorf("change %d = %+v, expected %+v", i, changes[i], expected[i])
		}
	}
}

func TestDiffWithoutPrevious(t *testing.T) {
	cur := NewFrame(4, 4)
	cur.Set(0, 0, "A")
	cur.Set(2, 3, "x")

	if changes := Diff(nil, cur); len(changes) != 2 {
		t.Errorf("Diff(nil, cur) = %v, expected 2 non-empty cells", changes)
	}

	// Mismatched dimensions fall back to the full set of non-empty cells
	if changes := Diff(NewFrame(2, 2), cur); len(changes) != 2 {
		t.Errorf("Diff(mismatched, cur) = %v, expected 2 non-empty cells", changes)
	}

	if changes := Diff(cur, nil); changes != nil {
		t.Errorf("Diff(prev, nil) = %v, expected nil", changes)
	}
}
