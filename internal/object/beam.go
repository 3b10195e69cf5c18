package object

import (
	"math"
	"time"

	"github.com/tomz197/bossrush/internal/draw"
	"github.com/tomz197/bossrush/internal/physics"
)

// BeamHitInterval is the minimum gap between two hits from the same beam, so a
// target standing in a beam is not damaged every tick.
const BeamHitInterval = 500 * time.Millisecond

// BeamKind distinguishes the two beam shapes.
type BeamKind int

const (
	// BeamPillar is a static vertical beam spanning the arena height.
	BeamPillar BeamKind = iota
	// BeamSweep is a ray anchored to a moving origin that rotates over time.
	BeamSweep
)

// Beam is a damaging laser. Pillars use the horizontal distance to their
// centre line; sweeps use the perpendicular distance to their ray.
type Beam struct {
	Kind   BeamKind
	X, Y   float64 // Sweep origin, or pillar centre x
	Angle  float64 // Current sweep angle
	Width  float64
	Length float64 // Sweep ray length, or pillar height

	StartAngle float64
	EndAngle   float64

	anchor   Anchor
	damage   float64
	start    time.Duration
	duration time.Duration

	hasHit  bool
	lastHit time.Duration
}

// NewPillar creates a vertical beam at x covering the full arena height.
func NewPillar(x, height, width, damage float64, start, duration time.Duration) *Beam {
	return &Beam{
		Kind:     BeamPillar,
		X:        x,
		Angle:    math.Pi / 2,
		Width:    width,
		Length:   height,
		damage:   damage,
		start:    start,
		duration: duration,
	}
}

// NewSweep creates a beam that follows anchor and eases from startAngle to endAngle.
func NewSweep(anchor Anchor, startAngle, endAngle, width, length, damage float64, start, duration time.Duration) *Beam {
	x, y := anchor.GetPosition()
	return &Beam{
		Kind:       BeamSweep,
		X:          x,
		Y:          y,
		Angle:      startAngle,
		Width:      width,
		Length:     length,
		StartAngle: startAngle,
		EndAngle:   endAngle,
		anchor:     anchor,
		damage:     damage,
		start:      start,
		duration:   duration,
	}
}

// Damage returns the damage dealt per hit.
func (b *Beam) Damage() float64 {
	return b.damage
}

// Update follows the anchor and advances the sweep. A sweep whose anchor has
// died expires immediately.
func (b *Beam) Update(now time.Duration) bool {
	if b.Kind == BeamPillar {
		return now-b.start >= b.duration
	}
	if b.anchor == nil || !b.anchor.Alive() {
		return true
	}
	b.X, b.Y = b.anchor.GetPosition()
	p := progress(now, b.start, b.duration)
	b.Angle = b.StartAngle + (b.EndAngle-b.StartAngle)*math.Sin(p*math.Pi/2)
	return p >= 1
}

// CollidesWith reports a hit when t overlaps the beam and the beam has not
// hit within BeamHitInterval.
func (b *Beam) CollidesWith(t Target, now time.Duration) bool {
	if !b.overlaps(t) {
		return false
	}
	if b.hasHit && now-b.lastHit < BeamHitInterval {
		return false
	}
	b.hasHit = true
	b.lastHit = now
	return true
}

func (b *Beam) overlaps(t Target) bool {
	px, py := t.GetPosition()
	r := t.GetRadius()
	if b.Kind == BeamPillar {
		return math.Abs(px-b.X) < b.Width/2+r
	}
	d, ok := physics.RayDistance(px, py, b.X, b.Y, b.Angle, b.Length)
	return ok && d < b.Width/2+r
}

// Draw renders the beam as a filled quad.
func (b *Beam) Draw(ctx DrawContext) error {
	if b.Kind == BeamPillar {
		hw := b.Width / 2
		ctx.Canvas.DrawPolygon([]draw.Point{
			{X: b.X - hw, Y: 0},
			{X: b.X + hw, Y: 0},
			{X: b.X + hw, Y: b.Length},
			{X: b.X - hw, Y: b.Length},
		}, true)
		return nil
	}
	dx, dy := math.Cos(b.Angle), math.Sin(b.Angle)
	nx, ny := -dy*b.Width/2, dx*b.Width/2
	ex, ey := b.X+dx*b.Length, b.Y+dy*b.Length
	ctx.Canvas.DrawPolygon([]draw.Point{
		{X: b.X + nx, Y: b.Y + ny},
		{X: ex + nx, Y: ey + ny},
		{X: ex - nx, Y: ey - ny},
		{X: b.X - nx, Y: b.Y - ny},
	}, true)
	return nil
}
