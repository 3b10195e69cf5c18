package boss

import (
	"math"
	"time"

	"github.com/tomz197/bossrush/internal/physics"
)

// Movement tuning.
const (
	optimalDistance = 200.0
	distanceBand    = 50.0
	headingInterval = 2000 * time.Millisecond
	arenaMargin     = 50.0
)

type dash struct {
	originX, originY float64
	dirX, dirY       float64
	distance         float64
	damage           float64
	start            time.Duration
	duration         time.Duration
	returnToStart    bool

	returning    bool
	returnStart  time.Duration
	fromX, fromY float64
}

// Dashing reports whether a dash or its return is in progress.
func (b *Boss) Dashing() bool {
	return b.dash != nil
}

// StartDash moves the boss distance pixels toward (tx, ty) at speed pixels
// per second. It returns the total time the dash will take, including the
// return leg. Regular movement is suspended until the dash ends.
func (b *Boss) StartDash(tx, ty, distance, speed, damage float64, returnToStart bool, now time.Duration) time.Duration {
	dx, dy := physics.Normalize(tx-b.X, ty-b.Y)
	if (dx == 0 && dy == 0) || distance <= 0 || speed <= 0 {
		return 0
	}
	d := &dash{
		originX:       b.X,
		originY:       b.Y,
		dirX:          dx,
		dirY:          dy,
		distance:      distance,
		damage:        damage,
		start:         now,
		duration:      time.Duration(distance / speed * float64(time.Second)),
		returnToStart: returnToStart,
	}
	b.dash = d
	total := d.duration
	if returnToStart {
		total += dashReturnTime
	}
	return total
}

func (b *Boss) updateDash(now time.Duration) {
	d := b.dash
	if !d.returning {
		p := 1.0
		if d.duration > 0 {
			p = physics.Clamp(float64(now-d.start)/float64(d.duration), 0, 1)
		}
		b.X = d.originX + d.dirX*d.distance*p
		b.Y = d.originY + d.dirY*d.distance*p
		if p < 1 {
			return
		}
		if !d.returnToStart {
			b.dash = nil
			return
		}
		d.returning = true
		d.returnStart = now
		d.fromX, d.fromY = b.X, b.Y
		return
	}

	p := physics.Clamp(float64(now-d.returnStart)/float64(dashReturnTime), 0, 1)
	b.X = physics.Lerp(d.fromX, d.originX, p)
	b.Y = physics.Lerp(d.fromY, d.originY, p)
	if p >= 1 {
		b.dash = nil
	}
}

// wander keeps the boss near its preferred distance from the target and
// drifts along a random heading inside the band.
func (b *Boss) wander(now time.Duration) {
	if !b.headingSet || now-b.lastHeading > headingInterval {
		b.heading = b.env.Rand.Float64() * 2 * math.Pi
		b.lastHeading = now
		b.headingSet = true
	}

	moveX, moveY := math.Cos(b.heading), math.Sin(b.heading)
	if b.env.Target != nil {
		tx, ty := b.env.Target.GetPosition()
		dist := physics.Distance(b.X, b.Y, tx, ty)
		nx, ny := physics.Normalize(tx-b.X, ty-b.Y)
		switch {
		case dist > 0 && dist < optimalDistance-distanceBand:
			moveX, moveY = -nx, -ny
		case dist > optimalDistance+distanceBand:
			moveX, moveY = nx, ny
		}
	}
	b.X += moveX * b.Speed
	b.Y += moveY * b.Speed
	b.X, b.Y = b.env.Bounds.Clamp(b.X, b.Y, arenaMargin)
}
