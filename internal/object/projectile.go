package object

import (
	"math"

	"github.com/tomz197/bossrush/internal/draw"
	"github.com/tomz197/bossrush/internal/physics"
)

// Projectile sizes and trail lengths.
const (
	// EnemyProjectileSize is the radius of boss bullets.
	EnemyProjectileSize = 4
	// PlayerProjectileSize is the radius of player bullets.
	PlayerProjectileSize = 3
	// DefaultTrailLength is how many past positions a projectile remembers.
	DefaultTrailLength = 5
)

// SpiralMotion replaces straight-line movement with an orbit around a fixed
// centre whose radius and angle grow every tick.
type SpiralMotion struct {
	CenterX, CenterY float64
	Radius           float64
	Angle            float64
	AngularVelocity  float64 // radians per tick
	MaxRadius        float64
}

// Projectile is a moving point hazard with optional ricochets.
// Speed and TurnRate are per tick; the arena advances in fixed steps.
type Projectile struct {
	X, Y      float64
	DX, DY    float64 // Unit direction
	Speed     float64
	Size      float64
	Damage    float64
	Ricochets int
	Enemy     bool

	// TurnRate rotates the direction every tick, bending the path.
	TurnRate float64
	// Spiral, when set, drives the position instead of DX/DY.
	Spiral *SpiralMotion

	// Trail holds previous positions, newest first, for rendering only.
	Trail    []draw.Point
	MaxTrail int
}

// NewProjectile creates a projectile heading along angle (radians).
func NewProjectile(x, y, angle, speed, damage float64, enemy bool) *Projectile {
	size := float64(PlayerProjectileSize)
	if enemy {
		size = EnemyProjectileSize
	}
	return &Projectile{
		X:        x,
		Y:        y,
		DX:       math.Cos(angle),
		DY:       math.Sin(angle),
		Speed:    speed,
		Size:     size,
		Damage:   damage,
		Enemy:    enemy,
		MaxTrail: DefaultTrailLength,
	}
}

// NewSpiralProjectile creates an enemy projectile that spirals out from (cx, cy).
func NewSpiralProjectile(cx, cy, angle, speed, damage, angularVelocity, maxRadius float64) *Projectile {
	p := NewProjectile(cx, cy, angle, speed, damage, true)
	p.Spiral = &SpiralMotion{
		CenterX:         cx,
		CenterY:         cy,
		Angle:           angle,
		AngularVelocity: angularVelocity,
		MaxRadius:       maxRadius,
	}
	return p
}

// Angle returns the current heading in radians. Spiral projectiles report
// their orbit angle.
func (p *Projectile) Angle() float64 {
	if p.Spiral != nil {
		return p.Spiral.Angle
	}
	return math.Atan2(p.DY, p.DX)
}

// Advance moves the projectile one tick inside bounds and reports whether it
// should be removed.
func (p *Projectile) Advance(b Bounds) (removed bool) {
	p.pushTrail()

	if s := p.Spiral; s != nil {
		s.Radius += p.Speed
		s.Angle += s.AngularVelocity
		p.DX, p.DY = math.Cos(s.Angle), math.Sin(s.Angle)
		p.X = s.CenterX + p.DX*s.Radius
		p.Y = s.CenterY + p.DY*s.Radius
		return s.Radius > s.MaxRadius || p.outside(b)
	}

	if p.TurnRate != 0 {
		sin, cos := math.Sincos(p.TurnRate)
		p.DX, p.DY = p.DX*cos-p.DY*sin, p.DX*sin+p.DY*cos
	}

	p.X += p.DX * p.Speed
	p.Y += p.DY * p.Speed

	bounced := false
	if p.Ricochets > 0 {
		if p.X-p.Size <= 0 {
			p.X = p.Size
			p.DX = -p.DX
			bounced = true
		} else if p.X+p.Size >= b.Width {
			p.X = b.Width - p.Size
			p.DX = -p.DX
			bounced = true
		}
		if p.Y-p.Size <= 0 {
			p.Y = p.Size
			p.DY = -p.DY
			bounced = true
		} else if p.Y+p.Size >= b.Height {
			p.Y = b.Height - p.Size
			p.DY = -p.DY
			bounced = true
		}
		if bounced {
			p.Ricochets--
		}
	}

	return (bounced && p.Ricochets == 0) || p.outside(b)
}

// outside reports whether the projectile is beyond the bounds by more than its size.
func (p *Projectile) outside(b Bounds) bool {
	return p.X < -p.Size || p.X > b.Width+p.Size || p.Y < -p.Size || p.Y > b.Height+p.Size
}

func (p *Projectile) pushTrail() {
	if p.MaxTrail <= 0 {
		return
	}
	if len(p.Trail) < p.MaxTrail {
		p.Trail = append(p.Trail, draw.Point{})
	}
	copy(p.Trail[1:], p.Trail[:len(p.Trail)-1])
	p.Trail[0] = draw.Point{X: p.X, Y: p.Y}
}

// CollidesWith is a circle-circle test against a target at (x, y) with radius.
func (p *Projectile) CollidesWith(x, y, radius float64) bool {
	return physics.Distance(p.X, p.Y, x, y) < p.Size+radius
}

// Draw renders the projectile and every other trail point.
func (p *Projectile) Draw(ctx DrawContext) error {
	if p.Enemy {
		ctx.Canvas.FillCircle(p.X, p.Y, p.Size)
	} else {
		ctx.Canvas.SetFloat(p.X, p.Y)
	}
	for i := 0; i < len(p.Trail); i += 2 {
		ctx.Canvas.SetFloat(p.Trail[i].X, p.Trail[i].Y)
	}
	return nil
}
