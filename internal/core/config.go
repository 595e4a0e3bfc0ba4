package core

// RuntimeConfig contains the fixed playing-field geometry for a session.
// Every frame of a session shares these dimensions.
type RuntimeConfig struct {
	Cols int // Playing field width in cells
	Rows int // Playing field height in cells
}

// DefaultConfig returns a RuntimeConfig with the classic 40x20 field.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Cols: 40,
		Rows: 20,
	}
}

// LastCol returns the index of the rightmost column.
func (c RuntimeConfig) LastCol() int {
	return c.Cols - 1
}

// LastRow returns the index of the bottom row.
func (c RuntimeConfig) LastRow() int {
	return c.Rows - 1
}
