package boss

import (
	"math"
	"time"

	"github.com/tomz197/bossrush/internal/object"
)

// execute instantiates the effects of s at the boss's current position.
func (p *Phase) execute(s PatternSpec, now time.Duration) {
	p.markBusy(now)
	switch s.Kind {
	case BulletCircle:
		p.executeCircle(s, now)
	case BulletBarrage:
		p.executeBarrage(s, now)
	case LaserPillar:
		p.executePillars(s, now)
	case LaserSweep:
		p.executeSweep(s, now)
	case GroundPound:
		p.executePound(s, now)
	case DashAttack:
		p.executeDash(s, now)
	}
	p.boss.emit(Event{Kind: EventPatternExecuted, Phase: p.Number, Pattern: s.Kind, At: now})
}

// repeat runs fn now for the first repetition and schedules the rest.
func (p *Phase) repeat(now, offset time.Duration, fn func()) {
	if offset == 0 {
		fn()
		return
	}
	p.timers.At(now+offset, p.guard(func(time.Duration) { fn() }))
}

func (p *Phase) damageOr(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

func (p *Phase) executeCircle(s PatternSpec, now time.Duration) {
	count := s.Count
	if count <= 0 {
		count = circleDefaultCount
	}
	speed := s.Speed
	if speed <= 0 {
		speed = circleDefaultSpeed
	}
	damage := p.damageOr(s.Damage, p.boss.Damage)
	layers := CircleLayers(s.Layers, p.Number)
	reps := Repetitions(p.Number)

	for rep := range reps {
		p.repeat(now, time.Duration(rep)*RepetitionDelay, func() {
			p.fireCircle(count, layers, rep, reps, speed, damage)
		})
	}
	p.markBusy(now + time.Duration(reps-1)*RepetitionDelay)
}

func (p *Phase) fireCircle(count, layers, rep, reps int, speed, damage float64) {
	bx, by := p.boss.GetPosition()
	spin := circleSpin * (1 + circleSpinPerRep*float64(rep))
	for layer := range layers {
		layerSpeed := perTick(speed * (1 - circleLayerFalloff*float64(layer)))
		offset := float64(layer)*math.Pi/6 + float64(rep)*math.Pi/float64(reps)
		for i := range count {
			angle := float64(i)/float64(count)*2*math.Pi + offset
			pr := object.NewSpiralProjectile(bx, by, angle, layerSpeed, damage, spin, circleMaxRadius)
			pr.MaxTrail = circleTrailLength
			p.boss.env.Sink.SpawnProjectile(pr)
		}
	}
}

func (p *Phase) executeBarrage(s PatternSpec, now time.Duration) {
	count := BarrageCount(s.Count, p.Number)
	waves := BarrageWaves(s.Waves, p.Number)
	reps := Repetitions(p.Number)
	delay := s.Delay
	if delay <= 0 {
		delay = barrageDefaultDelay
	}
	speed := s.Speed
	if speed <= 0 {
		speed = barrageDefaultSpeed
	}
	damage := p.damageOr(s.Damage, p.boss.Damage)
	repDelay := time.Duration(waves)*delay + RepetitionDelay

	for rep := range reps {
		for wave := range waves {
			offset := time.Duration(rep)*repDelay + time.Duration(wave)*delay
			p.repeat(now, offset, func() {
				p.fireWave(count, wave, waves, rep, reps, speed, damage)
			})
		}
	}
	p.markBusy(now + time.Duration(reps-1)*repDelay + time.Duration(waves-1)*delay)
}

func (p *Phase) fireWave(count, wave, waves, rep, reps int, speed, damage float64) {
	bx, by := p.boss.GetPosition()
	fan := FanSize(p.Number)
	step := barrageSpread / float64(fan-1)
	base := float64(wave)/float64(waves)*2*math.Pi + float64(rep)*math.Pi/float64(reps)
	turn := TurnSpread(p.Number)

	for i := range count {
		dir := base + float64(i)/float64(count)*2*math.Pi
		for j := range fan {
			angle := dir - barrageSpread/2 + float64(j)*step
			v := speed + float64(j%2)*2*speedUnit + float64(rep)*0.5*speedUnit
			pr := object.NewProjectile(bx, by, angle, perTick(v), damage, true)
			pr.TurnRate = (p.boss.env.Rand.Float64() - 0.5) * turn
			p.boss.env.Sink.SpawnProjectile(pr)
		}
	}
}

func (p *Phase) executePillars(s PatternSpec, now time.Duration) {
	env := p.boss.env
	count := s.Count
	if count <= 0 {
		count = pillarDefaultCount
	}
	damage := p.damageOr(s.Damage, p.boss.Damage*pillarDamageScale)
	spacing := env.Bounds.Width / float64(count+1)

	xs := make([]float64, count)
	for i := range count {
		xs[i] = spacing * float64(i+1)
		env.Sink.SpawnHazard(object.NewLineWarning(xs[i], 0, math.Pi/2, env.Bounds.Height, pillarWidth, now, pillarWarning))
	}

	p.timers.At(now+pillarWarning, p.guard(func(at time.Duration) {
		for _, x := range xs {
			env.Sink.SpawnHazard(object.NewPillar(x, env.Bounds.Height, pillarWidth, damage, at, pillarLifetime))
		}
		if !s.FollowWithDash {
			return
		}
		p.timers.At(at+pillarDashDelay, p.guard(func(at time.Duration) {
			bx, by := p.boss.GetPosition()
			nearest := xs[0]
			for _, x := range xs[1:] {
				if math.Abs(x-bx) < math.Abs(nearest-bx) {
					nearest = x
				}
			}
			speed := s.DashSpeed
			if speed <= 0 {
				speed = pillarDashSpeed
			}
			dmg := p.damageOr(s.DashDamage, p.boss.Damage*dashDamageScale)
			d := p.boss.StartDash(nearest, by, math.Abs(nearest-bx), speed, dmg, false, at)
			p.markBusy(at + d)
		}))
	}))
	p.markBusy(now + pillarWarning + pillarLifetime)
}

func (p *Phase) executeSweep(s PatternSpec, now time.Duration) {
	start, end := s.sweepArc()
	d := s.Duration
	if d <= 0 {
		d = sweepDefaultDuration
	}
	damage := p.damageOr(s.Damage, sweepDefaultDamage)
	p.boss.env.Sink.SpawnHazard(object.NewSweep(p.boss, start, end, sweepWidth, sweepLength, damage, now, d))
	p.markBusy(now + d)
}

func (p *Phase) executePound(s PatternSpec, now time.Duration) {
	radius := s.Radius
	if radius <= 0 {
		radius = poundDefaultRadius
	}
	damage := p.damageOr(s.Damage, p.boss.Damage)
	for i := range poundBlasts {
		a := float64(i) / poundBlasts * 2 * math.Pi
		scatter := p.boss.env.Rand.Float64() * radius * poundScatter
		x := s.TargetX + math.Cos(a)*scatter
		y := s.TargetY + math.Sin(a)*scatter
		blast := func(at time.Duration) {
			p.boss.env.Sink.SpawnHazard(object.NewExplosion(x, y, radius*poundRadiusScale, damage, at))
		}
		if i == 0 {
			blast(now)
			continue
		}
		// Later blasts belong to the phase so deactivating it cancels them.
		p.timers.At(now+time.Duration(i)*poundStagger, p.guard(blast))
	}
	p.markBusy(now + (poundBlasts-1)*poundStagger + object.ExplosionGrowTime)
}

func (p *Phase) executeDash(s PatternSpec, now time.Duration) {
	speed := s.Speed
	if speed <= 0 {
		speed = dashDefaultSpeed
	}
	damage := p.damageOr(s.Damage, p.boss.Damage*dashDamageScale)
	bx, by := p.boss.GetPosition()
	dist := s.Distance
	if dist <= 0 {
		dist = math.Hypot(s.TargetX-bx, s.TargetY-by)
	}
	d := p.boss.StartDash(s.TargetX, s.TargetY, dist, speed, damage, s.ReturnToStart, now)
	p.markBusy(now + d)
}
