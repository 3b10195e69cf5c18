package object

import "time"

// Explosion timings for ground pound blasts.
const (
	ExplosionGrowTime   = 500 * time.Millisecond
	ExplosionLingerTime = 1500 * time.Millisecond
)

// Explosion is one blast of a ground pound cluster. It is dormant until its
// start time, grows linearly to MaxRadius, then lingers as a cosmetic outline.
// It can hit a target only while growing and at most once.
type Explosion struct {
	X, Y      float64
	MaxRadius float64
	Radius    float64

	damage   float64
	start    time.Duration
	consumed bool
}

// NewExplosion creates a blast that becomes active at start.
func NewExplosion(x, y, maxRadius, damage float64, start time.Duration) *Explosion {
	return &Explosion{X: x, Y: y, MaxRadius: maxRadius, damage: damage, start: start}
}

// Damage returns the blast damage.
func (e *Explosion) Damage() float64 {
	return e.damage
}

// Start returns the time the blast becomes active.
func (e *Explosion) Start() time.Duration {
	return e.start
}

// Consumed reports whether the blast has already hit.
func (e *Explosion) Consumed() bool {
	return e.consumed
}

// Update grows the blast and expires it after the linger time.
func (e *Explosion) Update(now time.Duration) bool {
	if now < e.start {
		e.Radius = 0
		return false
	}
	e.Radius = e.MaxRadius * progress(now, e.start, ExplosionGrowTime)
	return now-e.start >= ExplosionGrowTime+ExplosionLingerTime
}

// CollidesWith tests the current radius against t during the growth window.
func (e *Explosion) CollidesWith(t Target, now time.Duration) bool {
	if e.consumed || now < e.start || now-e.start > ExplosionGrowTime {
		return false
	}
	px, py := t.GetPosition()
	dx, dy := px-e.X, py-e.Y
	reach := e.Radius + t.GetRadius()
	if dx*dx+dy*dy >= reach*reach {
		return false
	}
	e.consumed = true
	return true
}

// Draw fills the blast while it grows and outlines it while it lingers.
func (e *Explosion) Draw(ctx DrawContext) error {
	if ctx.Now < e.start || e.Radius <= 0 {
		return nil
	}
	if ctx.Now-e.start <= ExplosionGrowTime {
		ctx.Canvas.FillCircle(e.X, e.Y, e.Radius)
		return nil
	}
	// Fade by thinning the outline to every other frame in the second half.
	lingered := ctx.Now - e.start - ExplosionGrowTime
	if lingered > ExplosionLingerTime/2 && (ctx.Now/(50*time.Millisecond))%2 == 0 {
		return nil
	}
	ctx.Canvas.DrawCircle(e.X, e.Y, e.Radius)
	return nil
}
