// Package object defines the arena entities: projectiles, hazard effects,
// warning telegraphs and the player, together with the small interfaces the
// boss logic and the arena use to exchange them.
package object

import (
	"io"
	"time"

	"github.com/tomz197/bossrush/internal/draw"
	"github.com/tomz197/bossrush/internal/physics"
)

// Bounds is the rectangular play area in logical pixels.
type Bounds struct {
	Width  float64
	Height float64
}

// Clamp keeps (x, y) at least margin away from every edge.
func (b Bounds) Clamp(x, y, margin float64) (float64, float64) {
	return physics.Clamp(x, margin, b.Width-margin), physics.Clamp(y, margin, b.Height-margin)
}

// Target is something hazards can hit.
type Target interface {
	GetPosition() (x, y float64)
	GetRadius() float64
	// TakeDamage applies damage and reports whether the target was defeated.
	TakeDamage(amount float64) (defeated bool)
}

// Anchor is a moving origin a hazard follows, such as a boss.
type Anchor interface {
	GetPosition() (x, y float64)
	Alive() bool
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // High-resolution canvas (2x vertical)
	Writer io.Writer    // Direct terminal output (for text)
	Now    time.Duration
}

// Drawable renders itself from its own state only.
type Drawable interface {
	Draw(ctx DrawContext) error
}

// Hazard is a time-bounded effect held in the arena's hazard collection.
type Hazard interface {
	Drawable
	// Update advances the effect to now and reports whether it has expired.
	Update(now time.Duration) (expired bool)
}

// Damaging is a hazard that can hurt a target. A true CollidesWith result
// consumes the hit: single-use effects will not report the same target again.
type Damaging interface {
	Hazard
	CollidesWith(t Target, now time.Duration) bool
	Damage() float64
}

// Sink is the append-only view of the arena's projectile and hazard collections.
type Sink interface {
	SpawnProjectile(p *Projectile)
	SpawnHazard(h Hazard)
}

// ShouldRenderBlink returns true if an object with remaining protection/invincibility
// time should be rendered this frame (for blinking effect).
// Returns true always if remaining <= 0 (no protection).
func ShouldRenderBlink(remaining time.Duration, frequency float64) bool {
	if remaining <= 0 {
		return true
	}
	phase := int(remaining.Seconds() * frequency)
	return phase%2 != 0
}

// progress returns how far now is through [start, start+d], clamped to [0, 1].
func progress(now, start, d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	return physics.Clamp(float64(now-start)/float64(d), 0, 1)
}
