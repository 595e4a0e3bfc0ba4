package core

// CellChange describes one cell that must be repainted.
// An empty Glyph means the cell has to be cleared.
type CellChange struct {
	X, Y  int
	Glyph string
}

// Diff returns every cell whose glyph differs between prev and cur,
// in row-major order. A nil prev, or frames of different dimensions,
// yields every non-empty cell of cur.
func Diff(prev, cur *Frame) []CellChange {
	if cur == nil {
		return nil
	}
	if prev == nil || prev.width != cur.width || prev.height != cur.height {
		return Cells(cur)
	}

	var changes []CellChange
	for y := 0; y < cur.height; y++ {
		for x := 0; x < cur.width; x++ {
			if g := cur.cells[y][x]; g != prev.cells[y][x] {
				changes = append(changes, CellChange{X: x, Y: y, Glyph: g})
			}
		}
	}
	return changes
}

// Cells returns every non-empty cell of f in row-major order.
func Cells(f *Frame) []CellChange {
	changes := make([]CellChange, 0, f.Filled())
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			if g := f.cells[y][x]; g != "" {
				changes = append(changes, CellChange{X: x, Y: y, Glyph: g})
			}
		}
	}
	return changes
}
