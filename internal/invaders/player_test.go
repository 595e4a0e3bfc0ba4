package invaders

import (
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

func TestPlayerMovementClamped(t *testing.T) {
	p := NewPlayer(5, 10)

	x, y := p.Position()
	if x != 2 || y != 9 {
		t.Fatalf("Position() = (%d, %d), expected (2, 9)", x, y)
	}

	for i := 0; i < 10; i++ {
		p.MoveLeft()
	}
	if x, _ := p.Position(); x != 0 {
		t.Errorf("after moving far left x = %d, expected 0", x)
	}

	for i := 0; i < 10; i++ {
		p.MoveRight()
	}
	if x, _ := p.Position(); x != 4 {
		t.Errorf("after moving far right x = %d, expected 4", x)
	}
}

func TestShootLimit(t *testing.T) {
	p := NewPlayer(40, 20)

	for i := 0; i < MaxShots; i++ {
		if !p.Shoot() {
			t.Fatalf("shot %d was refused", i)
		}
	}
	if p.Shoot() {
		t.Error("Shoot should refuse once MaxShots are in flight")
	}
	if len(p.Shots()) != MaxShots {
		t.Errorf("len(Shots()) = %d, expected %d", len(p.Shots()), MaxShots)
	}

	s := p.Shots()[0]
	if s.X != 20 || s.Y != 18 {
		t.Errorf("shot spawned at (%d, %d), expected (20, 18)", s.X, s.Y)
	}
}

func TestShotTravelsAndExpires(t *testing.T) {
	p := NewPlayer(40, 20)
	p.Shoot()

	p.Update(ShotStepInterval - 1)
	if got := p.Shots()[0].Y; got != 18 {
		t.Fatalf("shot moved early to row %d", got)
	}
	p.Update(1)
	if got := p.Shots()[0].Y; got != 17 {
		t.Fatalf("shot row = %d, expected 17", got)
	}

	for i := 0; i < 17; i++ {
		p.Update(ShotStepInterval)
	}
	if len(p.Shots()) != 0 {
		t.Errorf("shot reaching the top row should be discarded, %d left", len(p.Shots()))
	}
	if !p.Shoot() {
		t.Error("a freed slot should allow a new shot")
	}
}

func TestDetectHits(t *testing.T) {
	p := NewPlayer(40, 20)
	f := NewWithEnemies(40, 20, []Enemy{{X: 20, Y: 17}, {X: 10, Y: 5}})

	p.Shoot()
	if p.DetectHits(f) {
		t.Fatal("shot at row 18 should not hit an enemy at row 17")
	}

	p.Update(ShotStepInterval)
	if !p.DetectHits(f) {
		t.Fatal("shot at (20, 17) should hit")
	}
	if f.Len() != 1 {
		t.Errorf("formation has %d enemies after hit, expected 1", f.Len())
	}
	if !p.Shots()[0].Exploding() {
		t.Error("hitting shot should be exploding")
	}

	// An exploding shot does not hit again
	if p.DetectHits(f) {
		t.Error("exploding shot reported a second hit")
	}

	// Explosion stays in place for ExplosionTime
	p.Update(ExplosionTime - 1)
	if len(p.Shots()) != 1 || p.Shots()[0].Y != 17 {
		t.Fatalf("explosion should stay at row 17 until it expires")
	}
	p.Update(1)
	if len(p.Shots()) != 0 {
		t.Error("explosion should be discarded after ExplosionTime")
	}
}

func TestPlayerRender(t *testing.T) {
	p := NewPlayer(10, 10)
	p.Shoot()

	frame := core.NewFrame(10, 10)
	p.RenderInto(frame)

	if got := frame.Get(5, 9); got != GlyphPlayer {
		t.Errorf("player glyph = %q, expected %q", got, GlyphPlayer)
	}
	if got := frame.Get(5, 8); got != GlyphShot {
		t.Errorf("shot glyph = %q, expected %q", got, GlyphShot)
	}

	p.Shots()[0].Explode()
	frame = core.NewFrame(10, 10)
	p.RenderInto(frame)
	if got := frame.Get(5, 8); got != GlyphExplosion {
		t.Errorf("explosion glyph = %q, expected %q", got, GlyphExplosion)
	}
}

func TestComposeFormationOverPlayer(t *testing.T) {
	p := NewPlayer(10, 10)
	f := NewWithEnemies(10, 10, []Enemy{{X: 5, Y: 9}})

	frame := core.Compose(10, 10, p, f)
	if got := frame.Get(5, 9); got != GlyphEnemy {
		t.Errorf("overlapping cell = %q, expected the enemy glyph", got)
	}
}
