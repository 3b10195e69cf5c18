package boss

import (
	"math"
	"time"

	"github.com/tomz197/bossrush/internal/object"
	"github.com/tomz197/bossrush/internal/physics"
	"github.com/tomz197/bossrush/internal/sched"
)

const (
	transitionFlashTime  = 500 * time.Millisecond
	transitionRingRadius = 200.0
	transitionRingTime   = 1000 * time.Millisecond
)

// PhaseState is the observable state of a phase.
type PhaseState int

const (
	PhaseInactive PhaseState = iota
	PhaseTransitioning
	PhaseIdle
	PhaseWarning
	PhaseExecuting
	PhaseDestroyed
)

func (s PhaseState) String() string {
	switch s {
	case PhaseInactive:
		return "inactive"
	case PhaseTransitioning:
		return "transitioning"
	case PhaseIdle:
		return "idle"
	case PhaseWarning:
		return "warning"
	case PhaseExecuting:
		return "executing"
	case PhaseDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// Phase is one health bracket of a boss with its own attack rotation.
type Phase struct {
	Number    int // 1-based
	MaxHealth float64
	Health    float64
	// Threshold is the fraction of total boss health that must be lost
	// before this phase takes over.
	Threshold float64
	Patterns  []PatternSpec

	boss   *Boss
	timers *sched.Group

	index         int
	restored      bool
	active        bool
	transitioning bool
	transitionEnd time.Duration
	lastPattern   time.Duration
	guarded       bool
	pending       *sched.Timer
	busyUntil     time.Duration
	now           time.Duration

	warnings []*object.Warning
}

// Activate starts the phase with a transition effect. The first pattern is
// dispatched once the transition ends.
func (p *Phase) Activate(now time.Duration) {
	p.timers.Cancel()
	p.active = true
	p.transitioning = true
	p.transitionEnd = now + TransitionDuration
	if !p.restored {
		p.index = 0
	}
	p.restored = false
	p.warnings = nil
	p.guarded = false
	p.pending = nil
	p.busyUntil = 0
	p.now = now

	env := p.boss.env
	bx, by := p.boss.GetPosition()
	env.Sink.SpawnHazard(object.NewFlash(env.Bounds, now, transitionFlashTime))
	env.Sink.SpawnHazard(object.NewRing(bx, by, transitionRingRadius, now, transitionRingTime))
}

// Deactivate stops the phase and drops every deferred action it owns.
func (p *Phase) Deactivate() {
	p.active = false
	p.transitioning = false
	p.guarded = false
	p.pending = nil
	p.warnings = nil
	p.timers.Cancel()
}

// Active reports whether the phase is the boss's running phase.
func (p *Phase) Active() bool {
	return p.active
}

// Index returns the position of the next pattern to dispatch.
func (p *Phase) Index() int {
	return p.index
}

// State reports where the phase is in its cycle.
func (p *Phase) State() PhaseState {
	switch {
	case p.Health <= 0:
		return PhaseDestroyed
	case !p.active:
		return PhaseInactive
	case p.transitioning:
		return PhaseTransitioning
	case p.pending.Pending():
		return PhaseWarning
	case p.now < p.busyUntil:
		return PhaseExecuting
	}
	return PhaseIdle
}

// Warnings returns the telegraphs currently shown for this phase.
func (p *Phase) Warnings() []*object.Warning {
	return p.warnings
}

// TakeDamage removes health and reports whether this hit destroyed the phase.
func (p *Phase) TakeDamage(amount float64) bool {
	if p.Health <= 0 {
		return false
	}
	p.Health = math.Max(0, p.Health-amount)
	return p.Health == 0
}

// Update advances warnings, ends the transition and dispatches patterns.
func (p *Phase) Update(now time.Duration) {
	p.now = now
	if !p.active || p.Health <= 0 || !p.boss.Alive() {
		return
	}

	live := p.warnings[:0]
	for _, w := range p.warnings {
		if !w.Update(now) {
			live = append(live, w)
		}
	}
	clear(p.warnings[len(live):])
	p.warnings = live

	if p.transitioning {
		if now < p.transitionEnd {
			return
		}
		p.transitioning = false
		p.dispatch(now)
		return
	}

	if now-p.lastPattern > PatternDelay && !p.guarded {
		p.dispatch(now)
	}
}

// dispatch telegraphs the next pattern and schedules its execution.
func (p *Phase) dispatch(now time.Duration) {
	if len(p.Patterns) == 0 {
		return
	}
	spec := p.Patterns[p.index]
	p.index = (p.index + 1) % len(p.Patterns)
	p.warnings = nil
	p.lastPattern = now
	p.guarded = true
	p.timers.At(now+WarningDelay, func(time.Duration) {
		p.guarded = false
	})

	if !spec.Kind.Known() {
		p.boss.env.Logger.Warn("unknown attack pattern", "kind", spec.Kind, "phase", p.Number, "boss", p.boss.Name)
		p.boss.emit(Event{Kind: EventPatternSkipped, Phase: p.Number, Pattern: spec.Kind, At: now})
		return
	}

	spec = p.resolveTarget(spec)
	p.warnings = p.telegraph(spec, now)
	p.boss.emit(Event{Kind: EventPatternDispatched, Phase: p.Number, Pattern: spec.Kind, At: now})
	p.pending = p.timers.At(now+WarningDelay, p.guard(func(at time.Duration) {
		p.execute(spec, at)
	}))
}

// resolveTarget pins aimed patterns to the player position at dispatch, so
// the telegraph and the attack land on the same spot.
func (p *Phase) resolveTarget(s PatternSpec) PatternSpec {
	if s.HasTarget || (s.Kind != GroundPound && s.Kind != DashAttack) {
		return s
	}
	if t := p.boss.env.Target; t != nil {
		s.TargetX, s.TargetY = t.GetPosition()
	} else {
		s.TargetX, s.TargetY = p.boss.GetPosition()
	}
	s.HasTarget = true
	return s
}

// guard wraps a deferred action so it becomes a no-op once the phase is no
// longer able to attack.
func (p *Phase) guard(fn sched.Action) sched.Action {
	return func(at time.Duration) {
		if !p.active || p.transitioning || !p.boss.Alive() || p.Health <= 0 {
			return
		}
		fn(at)
	}
}

// telegraph builds the warnings shown before spec executes.
func (p *Phase) telegraph(s PatternSpec, now time.Duration) []*object.Warning {
	bx, by := p.boss.GetPosition()
	switch s.Kind {
	case BulletCircle:
		r := s.Radius
		if r <= 0 {
			r = circleWarningRadius
		}
		return []*object.Warning{object.NewCircleWarning(bx, by, r, now, WarningDuration)}

	case LaserSweep:
		start, end := s.sweepArc()
		w := object.NewLineWarning(bx, by, start, sweepLength, sweepWarningWidth, now, WarningDuration)
		return []*object.Warning{w.Sweep(start, start+(end-start)*sweepPreviewFraction)}

	case GroundPound:
		r := s.Radius
		if r <= 0 {
			r = poundDefaultRadius
		}
		return []*object.Warning{object.NewCircleWarning(s.TargetX, s.TargetY, r, now, WarningDuration)}

	case BulletBarrage:
		count := s.Count
		if count <= 0 {
			count = barrageDefaultCount
		}
		dist := s.Distance
		if dist <= 0 {
			dist = barrageDefaultDistance
		}
		ws := make([]*object.Warning, 0, count)
		for i := range count {
			a := float64(i) / float64(count) * 2 * math.Pi
			ws = append(ws, object.NewCircleWarning(bx+math.Cos(a)*dist, by+math.Sin(a)*dist, barrageWarningRadius, now, WarningDuration))
		}
		return ws

	case DashAttack:
		a := math.Atan2(s.TargetY-by, s.TargetX-bx)
		length := s.Distance
		if length <= 0 {
			length = math.Max(physics.Distance(bx, by, s.TargetX, s.TargetY), dashMinimumLength)
		}
		return []*object.Warning{object.NewLineWarning(bx, by, a, length, dashWarningWidth, now, WarningDuration)}
	}
	return nil
}

// markBusy extends the executing window to at least until.
func (p *Phase) markBusy(until time.Duration) {
	if until > p.busyUntil {
		p.busyUntil = until
	}
}
