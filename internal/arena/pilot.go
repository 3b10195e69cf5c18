package arena

import (
	"math"
	"math/rand"

	"github.com/tomz197/bossrush/internal/object"
	"github.com/tomz197/bossrush/internal/physics"
)

// Autopilot tuning.
const (
	pilotDodgeRadius = 90.0
	pilotOrbit       = 260.0
	pilotWallMargin  = 60.0
)

// Autopilot plays the arena for headless runs: it dodges the nearest enemy
// shot, otherwise circles the boss at a safe distance, and always fires.
type Autopilot struct {
	dir float64 // orbit direction, +1 or -1
}

// NewAutopilot creates a pilot that picks its orbit direction from rng.
func NewAutopilot(rng *rand.Rand) *Autopilot {
	a := &Autopilot{dir: 1}
	if rng.Intn(2) == 0 {
		a.dir = -1
	}
	return a
}

// Intent decides the next tick's input.
func (a *Autopilot) Intent(d *Director) object.Intent {
	p := d.Player()
	in := object.Intent{Fire: true}

	if dx, dy, ok := a.dodge(p, d.World()); ok {
		in.MoveX, in.MoveY = dx, dy
		return a.avoidWalls(p, d.World().Bounds, in)
	}

	b := d.Boss()
	if b == nil {
		in.MoveX = (d.World().Bounds.Width/2 - p.X)
		in.MoveY = (d.World().Bounds.Height*0.75 - p.Y)
		if math.Hypot(in.MoveX, in.MoveY) < p.Speed {
			in.MoveX, in.MoveY = 0, 0
		}
		return in
	}

	bx, by := b.GetPosition()
	rx, ry := physics.Normalize(p.X-bx, p.Y-by)
	dist := physics.Distance(p.X, p.Y, bx, by)
	// Tangent keeps the orbit; the radial part corrects distance.
	tx, ty := -ry*a.dir, rx*a.dir
	radial := physics.Clamp((pilotOrbit-dist)/pilotOrbit, -1, 1)
	in.MoveX = tx + rx*radial*2
	in.MoveY = ty + ry*radial*2
	return a.avoidWalls(p, d.World().Bounds, in)
}

// ChooseUpgrade takes an open upgrade offer: health when the ship is below
// half health, otherwise the first option.
func (a *Autopilot) ChooseUpgrade(d *Director) {
	offer := d.Offer()
	if len(offer) == 0 {
		return
	}
	pick := 0
	if p := d.Player(); p.Health < p.MaxHealth/2 {
		for i, o := range offer {
			if o.Kind == UpgradeHealth {
				pick = i
				break
			}
		}
	}
	if err := d.ChooseUpgrade(pick); err != nil {
		d.logger.Warn("autopilot upgrade", "err", err)
	}
}

// dodge steps away from the closest enemy projectile inside the dodge radius.
func (a *Autopilot) dodge(p *object.Player, w *World) (float64, float64, bool) {
	best := pilotDodgeRadius
	var threat *object.Projectile
	for _, pr := range w.Projectiles {
		if !pr.Enemy {
			continue
		}
		if d := physics.Distance(p.X, p.Y, pr.X, pr.Y); d < best {
			best = d
			threat = pr
		}
	}
	if threat == nil {
		return 0, 0, false
	}
	// Move perpendicular to the shot's heading, away from its line.
	h := threat.Angle()
	nx, ny := -math.Sin(h), math.Cos(h)
	if (p.X-threat.X)*nx+(p.Y-threat.Y)*ny < 0 {
		nx, ny = -nx, -ny
	}
	return nx, ny, true
}

// avoidWalls flips the orbit when the ship is pinned against an edge.
func (a *Autopilot) avoidWalls(p *object.Player, b object.Bounds, in object.Intent) object.Intent {
	switch {
	case p.X < pilotWallMargin && in.MoveX < 0, p.X > b.Width-pilotWallMargin && in.MoveX > 0:
		in.MoveX = -in.MoveX
		a.dir = -a.dir
	}
	switch {
	case p.Y < pilotWallMargin && in.MoveY < 0, p.Y > b.Height-pilotWallMargin && in.MoveY > 0:
		in.MoveY = -in.MoveY
		a.dir = -a.dir
	}
	return in
}
