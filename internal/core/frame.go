package core

import (
	"strings"
)

// Frame is a fixed-size 2D grid of glyphs: the unit of renderable state.
// A cell holds either an empty string (nothing drawn) or a short glyph.
// The logic goroutine builds a fresh Frame every tick and hands it to the
// render pipeline; after the handoff the frame must not be written again.
type Frame struct {
	width  int
	height int
	cells  [][]string
}

// NewFrame creates a blank frame with the given dimensions.
func NewFrame(width, height int) *Frame {
	f := &Frame{
		width:  width,
		height: height,
	}
	f.allocate()
	return f
}

// allocate creates the underlying cell storage.
func (f *Frame) allocate() {
	f.cells = make([][]string, f.height)
	for y := range f.cells {
		f.cells[y] = make([]string, f.width)
	}
}

// Width returns the frame width in columns.
func (f *Frame) Width() int {
	return f.width
}

// Height returns the frame height in rows.
func (f *Frame) Height() int {
	return f.height
}

// Clear empties every cell.
func (f *Frame) Clear() {
	for y := range f.cells {
		for x := range f.cells[y] {
			f.cells[y][x] = ""
		}
	}
}

// Set places a glyph at the given position. The last write within a tick wins.
// Out-of-bounds coordinates are silently ignored.
func (f *Frame) Set(x, y int, glyph string) {
	if !f.inBounds(x, y) {
		return
	}
	f.cells[y][x] = glyph
}

// Get returns the glyph at the given position.
// Returns an empty string for empty or out-of-bounds cells.
func (f *Frame) Get(x, y int) string {
	if !f.inBounds(x, y) {
		return ""
	}
	return f.cells[y][x]
}

// Filled returns the number of non-empty cells.
func (f *Frame) Filled() int {
	n := 0
	for y := range f.cells {
		for x := range f.cells[y] {
			if f.cells[y][x] != "" {
				n++
			}
		}
	}
	return n
}

// DrawText writes a string horizontally starting at (x, y), one rune per cell.
// Characters that extend beyond frame bounds are clipped.
func (f *Frame) DrawText(x, y int, text string) {
	i := 0
	for _, r := range text {
		f.Set(x+i, y, string(r))
		i++
	}
}

func (f *Frame) inBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// String converts the frame to plain text, one line per row.
// Empty cells are rendered as spaces.
func (f *Frame) String() string {
	var sb strings.Builder
	sb.Grow(f.width*f.height + f.height)

	for y := 0; y < f.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < f.width; x++ {
			if g := f.cells[y][x]; g != "" {
				sb.WriteString(g)
			} else {
				sb.WriteRune(' ')
			}
		}
	}
	return sb.String()
}

// Drawable is anything that can render itself into a frame.
// The set is closed: the player and the enemy formation.
type Drawable interface {
	RenderInto(f *Frame)
}

// Compose renders drawables into a fresh frame in the given order.
// Later drawables win on overlapping cells.
func Compose(width, height int, drawables ...Drawable) *Frame {
	f := NewFrame(width, height)
	for _, d := range drawables {
		d.RenderInto(f)
	}
	return f
}
