package object

import (
	"math"
	"time"

	"github.com/tomz197/bossrush/internal/config"
	"github.com/tomz197/bossrush/internal/draw"
	"github.com/tomz197/bossrush/internal/physics"
)

const (
	// damageFlashTime is how long the player blinks after taking damage.
	damageFlashTime = 300 * time.Millisecond
	// multishotSpread is the angle between bullets of one volley.
	multishotSpread = math.Pi / 8
	// shieldReduction is the damage share each shield level absorbs.
	shieldReduction = 0.1
)

// Intent is what the controller wants the player to do this tick.
type Intent struct {
	MoveX, MoveY float64 // Desired direction; normalized before use
	Fire         bool
}

// Player is the player-controlled ship.
type Player struct {
	X, Y      float64
	Size      float64
	Speed     float64 // Pixels per tick
	Health    float64
	MaxHealth float64

	// Shooting
	Damage       float64
	FireInterval time.Duration
	Ricochets    int
	Multishot    int     // Extra bullets per volley
	AutoFire     bool    // Fires at the boss without the trigger held
	Shield       int     // Each level absorbs shieldReduction of incoming damage
	Angle        float64 // Facing, radians

	now        time.Duration
	lastShot   time.Duration
	hasShot    bool
	lastDamage time.Duration
	hasDamage  bool
}

// NewPlayer creates a player at the given position with default stats.
func NewPlayer(x, y float64) *Player {
	return &Player{
		X:            x,
		Y:            y,
		Size:         config.PlayerSize,
		Speed:        config.PlayerSpeed,
		Health:       config.PlayerHealth,
		MaxHealth:    config.PlayerHealth,
		Damage:       config.PlayerDamage,
		FireInterval: config.PlayerFireInterval,
		Ricochets:    config.PlayerRicochets,
		Angle:        -math.Pi / 2,
	}
}

// GetPosition implements Target.
func (p *Player) GetPosition() (float64, float64) { return p.X, p.Y }

// GetRadius implements Target.
func (p *Player) GetRadius() float64 { return p.Size }

// Alive reports whether the player has health left.
func (p *Player) Alive() bool { return p.Health > 0 }

// TakeDamage implements Target.
func (p *Player) TakeDamage(amount float64) bool {
	amount *= max(0, 1-float64(p.Shield)*shieldReduction)
	p.Health -= amount
	if p.Health < 0 {
		p.Health = 0
	}
	p.lastDamage = p.now
	p.hasDamage = true
	return p.Health <= 0
}

// Knockback pushes the player distance pixels along (dx, dy), staying in bounds.
func (p *Player) Knockback(dx, dy, distance float64, b Bounds) {
	nx, ny := physics.Normalize(dx, dy)
	p.X, p.Y = b.Clamp(p.X+nx*distance, p.Y+ny*distance, p.Size)
}

// Update moves the player one tick according to in.
func (p *Player) Update(in Intent, now time.Duration, b Bounds) {
	p.now = now
	dx, dy := physics.Normalize(in.MoveX, in.MoveY)
	if dx != 0 || dy != 0 {
		p.X += dx * p.Speed
		p.Y += dy * p.Speed
		p.Angle = math.Atan2(dy, dx)
	}
	p.X, p.Y = b.Clamp(p.X, p.Y, p.Size)
}

// Fire returns the volley aimed at (aimX, aimY), or nil while reloading.
// Extra multishot bullets fan out evenly around the aim line.
func (p *Player) Fire(now time.Duration, aimX, aimY float64) []*Projectile {
	if p.hasShot && now-p.lastShot < p.FireInterval {
		return nil
	}
	p.hasShot = true
	p.lastShot = now

	aim := math.Atan2(aimY-p.Y, aimX-p.X)
	p.Angle = aim
	n := 1 + p.Multishot
	volley := make([]*Projectile, 0, n)
	for i := range n {
		angle := aim + (float64(i)-float64(n-1)/2)*multishotSpread
		proj := NewProjectile(p.X+math.Cos(angle)*p.Size, p.Y+math.Sin(angle)*p.Size, angle, config.PlayerBulletSpeed, p.Damage, false)
		proj.Size = config.PlayerBulletSize
		proj.Ricochets = p.Ricochets
		volley = append(volley, proj)
	}
	return volley
}

// Draw renders the ship as a triangle pointing along its facing.
// It blinks for a moment after taking damage.
func (p *Player) Draw(ctx DrawContext) error {
	if p.hasDamage && !ShouldRenderBlink(damageFlashTime-(ctx.Now-p.lastDamage), 20) {
		return nil
	}
	size := p.Size
	triangle := []draw.Point{
		{X: p.X + math.Cos(p.Angle)*size, Y: p.Y + math.Sin(p.Angle)*size},
		{X: p.X + math.Cos(p.Angle+2.5)*size*0.8, Y: p.Y + math.Sin(p.Angle+2.5)*size*0.8},
		{X: p.X + math.Cos(p.Angle-2.5)*size*0.8, Y: p.Y + math.Sin(p.Angle-2.5)*size*0.8},
	}
	ctx.Canvas.DrawPolygon(triangle, true)
	return nil
}
