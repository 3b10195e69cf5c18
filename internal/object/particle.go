package object

import (
	"math"
	"math/rand"
	"time"
)

// particleDrag is the per-tick velocity decay at 60 ticks per second.
const particleDrag = 0.95

type particle struct {
	x, y   float64
	vx, vy float64 // pixels per second
	life   time.Duration
}

// ParticleBurst is a cosmetic spray of particles. It never collides.
type ParticleBurst struct {
	particles []particle
	start     time.Duration
	last      time.Duration
	lifetime  time.Duration
}

// NewParticleBurst creates count particles flying out of (x, y) in random
// directions. speed is in pixels per second; each particle gets between 50%
// and 150% of it and between 50% and 100% of lifetime.
func NewParticleBurst(x, y float64, count int, speed float64, lifetime, now time.Duration, rng *rand.Rand) *ParticleBurst {
	b := &ParticleBurst{
		particles: make([]particle, count),
		start:     now,
		last:      now,
		lifetime:  lifetime,
	}
	for i := range b.particles {
		angle := rng.Float64() * 2 * math.Pi
		spd := speed * (0.5 + rng.Float64())
		b.particles[i] = particle{
			x:    x,
			y:    y,
			vx:   math.Cos(angle) * spd,
			vy:   math.Sin(angle) * spd,
			life: time.Duration(float64(lifetime) * (0.5 + rng.Float64()*0.5)),
		}
	}
	return b
}

// Len returns the number of particles in the burst.
func (b *ParticleBurst) Len() int {
	return len(b.particles)
}

// Update moves every particle and expires the burst once the longest-lived
// particle is gone.
func (b *ParticleBurst) Update(now time.Duration) bool {
	dt := (now - b.last).Seconds()
	b.last = now
	if dt > 0 {
		dragFactor := math.Pow(particleDrag, dt*60)
		for i := range b.particles {
			p := &b.particles[i]
			p.vx *= dragFactor
			p.vy *= dragFactor
			p.x += p.vx * dt
			p.y += p.vy * dt
		}
	}
	return now-b.start >= b.lifetime
}

// Draw renders the particles that are still alive. Particles in the last
// quarter of their lifetime are skipped to fake a fade.
func (b *ParticleBurst) Draw(ctx DrawContext) error {
	age := ctx.Now - b.start
	for _, p := range b.particles {
		if age >= p.life*3/4 {
			continue
		}
		ctx.Canvas.SetFloat(p.x, p.y)
	}
	return nil
}
