// Package invaders implements the enemy formation and the player that fights it.
// Like every game package it is pure logic: time arrives as deltas, output is
// written into a core.Frame.
package invaders

import (
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Formation timing and layout. These are fixed for every session.
const (
	InitialMoveInterval = 2000 * time.Millisecond
	SpeedUpStep         = 250 * time.Millisecond
	MinMoveInterval     = 250 * time.Millisecond

	SparseStep     = 2 // Enemies occupy every SparseStep-th column and row
	FormationDepth = 9 // Enemies spawn above this row
)

// Glyphs used by the formation; the form alternates with the move cadence.
const (
	GlyphEnemy      = "x"
	GlyphEnemyBlink = "+"
)

const (
	dirLeft  = -1
	dirRight = 1
)

// Enemy is a single invader cell position.
type Enemy struct {
	X, Y int
}

// Formation owns the living enemies and their shared movement state.
type Formation struct {
	enemies   []Enemy
	timer     core.Timer
	direction int
	cols      int
	rows      int
}

// New creates the starting formation for a cols x rows field.
// Enemies fill a sparse grid that skips the two outer columns on each side,
// the top row and everything from FormationDepth down.
func New(cols, rows int) *Formation {
	var enemies []Enemy
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			if x > 1 && x < cols-2 &&
				y > 0 && y < FormationDepth &&
				x%SparseStep == 0 && y%SparseStep == 0 {
				enemies = append(enemies, Enemy{X: x, Y: y})
			}
		}
	}
	return NewWithEnemies(cols, rows, enemies)
}

// NewWithEnemies creates a formation from an explicit enemy list.
// The formation starts moving right at InitialMoveInterval.
func NewWithEnemies(cols, rows int, enemies []Enemy) *Formation {
	own := make([]Enemy, len(enemies))
	copy(own, enemies)
	return &Formation{
		enemies:   own,
		timer:     core.NewTimer(InitialMoveInterval),
		direction: dirRight,
		cols:      cols,
		rows:      rows,
	}
}

// Advance feeds elapsed time into the move countdown. When the countdown
// expires the whole formation moves one step: sideways, or, if an extremal
// enemy already sits on the edge in the current direction, one row down with
// the direction flipped and the move interval shortened.
// Returns true iff the formation moved during this call.
func (f *Formation) Advance(delta time.Duration) bool {
	f.timer.Update(delta)
	if !f.timer.Ready() {
		return false
	}
	f.timer.Reset()

	descend := false
	if f.direction == dirLeft {
		if f.minX() == 0 {
			f.direction = dirRight
			descend = true
		}
	} else {
		if f.maxX() == f.cols-1 {
			f.direction = dirLeft
			descend = true
		}
	}

	if descend {
		f.timer = core.NewTimer(max(f.timer.Duration()-SpeedUpStep, MinMoveInterval))
		for i := range f.enemies {
			f.enemies[i].Y++
		}
	} else {
		for i := range f.enemies {
			f.enemies[i].X += f.direction
		}
	}
	return true
}

// minX returns the leftmost enemy column, 0 for an empty formation.
func (f *Formation) minX() int {
	if len(f.enemies) == 0 {
		return 0
	}
	m := f.enemies[0].X
	for _, e := range f.enemies[1:] {
		m = min(m, e.X)
	}
	return m
}

// maxX returns the rightmost enemy column, 0 for an empty formation.
func (f *Formation) maxX() int {
	m := 0
	for _, e := range f.enemies {
		m = max(m, e.X)
	}
	return m
}

// RemoveEnemyAt removes the first enemy at exactly (x, y).
// Returns false when nothing was there; that is not an error.
func (f *Formation) RemoveEnemyAt(x, y int) bool {
	for i, e := range f.enemies {
		if e.X == x && e.Y == y {
			f.enemies = append(f.enemies[:i], f.enemies[i+1:]...)
			return true
		}
	}
	return false
}

// Cleared reports whether every enemy has been destroyed.
func (f *Formation) Cleared() bool {
	return len(f.enemies) == 0
}

// HasLanded reports whether any remaining enemy is at or below the bottom row.
// An empty formation has nothing that could land.
func (f *Formation) HasLanded(bottom int) bool {
	for _, e := range f.enemies {
		if e.Y >= bottom {
			return true
		}
	}
	return false
}

// RenderInto draws every enemy. The glyph blinks in step with the move
// countdown: GlyphEnemy while more than half of the interval remains.
func (f *Formation) RenderInto(dst *core.Frame) {
	glyph := GlyphEnemyBlink
	if f.timer.FractionLeft() > 0.5 {
		glyph = GlyphEnemy
	}
	for _, e := range f.enemies {
		dst.Set(e.X, e.Y, glyph)
	}
}

// Enemies returns a copy of the living enemies in insertion order.
func (f *Formation) Enemies() []Enemy {
	out := make([]Enemy, len(f.enemies))
	copy(out, f.enemies)
	return out
}

// Len returns the number of living enemies.
func (f *Formation) Len() int {
	return len(f.enemies)
}

// Direction returns +1 when moving right and -1 when moving left.
func (f *Formation) Direction() int {
	return f.direction
}

// MoveInterval returns the current countdown duration between moves.
func (f *Formation) MoveInterval() time.Duration {
	return f.timer.Duration()
}
