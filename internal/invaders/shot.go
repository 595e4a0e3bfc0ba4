package invaders

import (
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Shot timing.
const (
	ShotStepInterval = 50 * time.Millisecond
	ExplosionTime    = 250 * time.Millisecond
)

// Shot glyphs.
const (
	GlyphShot      = "|"
	GlyphExplosion = "*"
)

// Shot is a projectile travelling straight up from the player.
type Shot struct {
	X, Y      int
	exploding bool
	timer     core.Timer
}

// NewShot creates a shot at the given position.
func NewShot(x, y int) *Shot {
	return &Shot{
		X:     x,
		Y:     y,
		timer: core.NewTimer(ShotStepInterval),
	}
}

// Update moves the shot one row up every ShotStepInterval.
// An exploding shot stays in place until its explosion timer expires.
func (s *Shot) Update(delta time.Duration) {
	s.timer.Update(delta)
	if s.timer.Ready() && !s.exploding {
		if s.Y > 0 {
			s.Y--
		}
		s.timer.Reset()
	}
}

// Explode turns the shot into a short-lived explosion.
func (s *Shot) Explode() {
	s.exploding = true
	s.timer = core.NewTimer(ExplosionTime)
}

// Exploding reports whether the shot has hit something.
func (s *Shot) Exploding() bool {
	return s.exploding
}

// Dead reports whether the shot should be discarded: its explosion has
// finished or it reached the top row.
func (s *Shot) Dead() bool {
	return (s.exploding && s.timer.Ready()) || s.Y == 0
}

// RenderInto draws the shot or its explosion.
func (s *Shot) RenderInto(dst *core.Frame) {
	glyph := GlyphShot
	if s.exploding {
		glyph = GlyphExplosion
	}
	dst.Set(s.X, s.Y, glyph)
}
