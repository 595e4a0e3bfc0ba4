package invaders

import (
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// MaxShots is the number of shots a player may have in flight at once.
const MaxShots = 2

// GlyphPlayer is the player's ship.
const GlyphPlayer = "A"

// HitTarget is the collision query the player runs its shots against.
type HitTarget interface {
	RemoveEnemyAt(x, y int) bool
}

// Player is the ship on the bottom row.
type Player struct {
	x, y  int
	cols  int
	shots []*Shot
}

// NewPlayer places the player in the middle of the bottom row.
func NewPlayer(cols, rows int) *Player {
	return &Player{
		x:    cols / 2,
		y:    rows - 1,
		cols: cols,
	}
}

// Position returns the player's cell.
func (p *Player) Position() (int, int) {
	return p.x, p.y
}

// MoveLeft moves one column left, stopping at the edge.
func (p *Player) MoveLeft() {
	p.x = core.Clamp(p.x-1, 0, p.cols-1)
}

// MoveRight moves one column right, stopping at the edge.
func (p *Player) MoveRight() {
	p.x = core.Clamp(p.x+1, 0, p.cols-1)
}

// Shoot fires a new shot from just above the ship.
// Returns false when MaxShots are already in flight.
func (p *Player) Shoot() bool {
	if len(p.shots) >= MaxShots {
		return false
	}
	p.shots = append(p.shots, NewShot(p.x, p.y-1))
	return true
}

// Update advances all shots and drops the dead ones.
func (p *Player) Update(delta time.Duration) {
	live := p.shots[:0]
	for _, s := range p.shots {
		s.Update(delta)
		if !s.Dead() {
			live = append(live, s)
		}
	}
	p.shots = live
}

// DetectHits checks every flying shot against the target. A shot that the
// target confirms as a hit starts exploding.
// Returns true if at least one hit happened.
func (p *Player) DetectHits(target HitTarget) bool {
	hit := false
	for _, s := range p.shots {
		if !s.Exploding() && target.RemoveEnemyAt(s.X, s.Y) {
			s.Explode()
			hit = true
		}
	}
	return hit
}

// Shots returns the shots currently in flight.
func (p *Player) Shots() []*Shot {
	return p.shots
}

// RenderInto draws the ship and its shots.
func (p *Player) RenderInto(dst *core.Frame) {
	dst.Set(p.x, p.y, GlyphPlayer)
	for _, s := range p.shots {
		s.RenderInto(dst)
	}
}
