// Package boss implements multi-phase boss encounters: the phase state
// machine, attack pattern executors, health thresholds and boss movement.
package boss

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/bossrush/internal/object"
	"github.com/tomz197/bossrush/internal/sched"
)

// Feedback effects.
const (
	destructionRingRadius = 150.0
	destructionRingTime   = 800 * time.Millisecond

	finalRings       = 3
	finalRingRadius  = 300.0
	finalRingTime    = 1000 * time.Millisecond
	finalRingStagger = 200 * time.Millisecond
	finalParticles   = 50
	finalSpeed       = 240.0
	finalLifetime    = 1200 * time.Millisecond

	hitParticles    = 8
	hitSpeed        = 120.0
	hitLifetime     = 300 * time.Millisecond
	hitRingScale    = 4.0
	hitRingDuration = 400 * time.Millisecond
)

// Env is what a boss needs from the arena that owns it.
type Env struct {
	Sink   object.Sink
	Queue  *sched.Queue
	Target object.Target // the player; movement and aimed patterns follow it
	Bounds object.Bounds
	Rand   *rand.Rand
	Logger *log.Logger
}

// EventKind labels a boss lifecycle notification.
type EventKind int

const (
	EventPatternDispatched EventKind = iota
	EventPatternSkipped
	EventPatternExecuted
	EventPhaseChanged
	EventPhaseDestroyed
	EventDefeated
)

// Event is emitted synchronously from Update and TakeDamage.
type Event struct {
	Kind    EventKind
	Phase   int
	Pattern Kind
	At      time.Duration
}

// HUD is the display read of a boss.
type HUD struct {
	Name           string
	Tier           int
	Phase          int
	Phases         int
	HealthPct      float64
	PhaseHealthPct float64
	Invincible     bool
	Transitioning  bool
	State          PhaseState
}

// Boss is a multi-phase enemy. It is not safe for concurrent use; the arena
// goroutine owns it.
type Boss struct {
	Tier   int
	Name   string
	X, Y   float64
	Size   float64
	Speed  float64 // pixels per tick, wave scaled
	Damage float64 // wave scaled
	Points int
	// MaxHealth is the wave scaled tier health, shown to the player.
	MaxHealth float64

	// OnEvent, when set, receives every boss event.
	OnEvent func(Event)

	env     Env
	phases  []*Phase
	current int

	now             time.Duration
	invincibleUntil time.Duration
	lastChange      time.Duration
	changed         bool
	defeated        bool
	disposed        bool

	heading     float64
	lastHeading time.Duration
	headingSet  bool
	dash        *dash
}

// GetPosition implements object.Target and object.Anchor.
func (b *Boss) GetPosition() (float64, float64) { return b.X, b.Y }

// GetRadius implements object.Target.
func (b *Boss) GetRadius() float64 { return b.Size }

// Alive reports whether the boss can still act.
func (b *Boss) Alive() bool { return !b.defeated && !b.disposed }

// Defeated reports whether the last phase has been destroyed.
func (b *Boss) Defeated() bool { return b.defeated }

// Invincible reports whether the boss ignores damage right now.
func (b *Boss) Invincible() bool { return b.now < b.invincibleUntil }

// Phases returns the boss phases in order.
func (b *Boss) Phases() []*Phase { return b.phases }

// CurrentPhase returns the running phase.
func (b *Boss) CurrentPhase() *Phase { return b.phases[b.current] }

// HealthPct is the remaining share of the phase pools. Phases before the
// current one count as spent.
func (b *Boss) HealthPct() float64 {
	var left, total float64
	for i, p := range b.phases {
		total += p.MaxHealth
		if i >= b.current {
			left += p.Health
		}
	}
	if total <= 0 {
		return 0
	}
	return left / total
}

// Current returns the HUD read of the boss.
func (b *Boss) Current() HUD {
	p := b.phases[b.current]
	h := HUD{
		Name:          b.Name,
		Tier:          b.Tier,
		Phase:         p.Number,
		Phases:        len(b.phases),
		HealthPct:     b.HealthPct(),
		Invincible:    b.Invincible(),
		Transitioning: p.transitioning,
		State:         p.State(),
	}
	if p.MaxHealth > 0 {
		h.PhaseHealthPct = p.Health / p.MaxHealth
	}
	if b.defeated {
		h.HealthPct, h.PhaseHealthPct = 0, 0
	}
	return h
}

// ContactDamage is the damage dealt by touching the boss.
func (b *Boss) ContactDamage() float64 {
	if b.dash != nil && !b.dash.returning {
		return b.dash.damage
	}
	return b.Damage
}

// Update advances movement, phase thresholds and the running phase. While
// dashing only the dash moves; the phase and the threshold scan wait for it.
func (b *Boss) Update(now time.Duration) {
	b.now = now
	if !b.Alive() {
		return
	}
	if b.dash != nil {
		b.updateDash(now)
		return
	}
	b.wander(now)
	b.checkThresholds(now)
	b.phases[b.current].Update(now)
}

// TakeDamage routes damage to the running phase and reports overall defeat.
// It returns true exactly once.
func (b *Boss) TakeDamage(amount float64) bool {
	if !b.Alive() || b.Invincible() {
		return false
	}
	p := b.phases[b.current]
	if !p.TakeDamage(amount) {
		b.hitFeedback()
		return false
	}

	b.env.Sink.SpawnHazard(object.NewRing(b.X, b.Y, destructionRingRadius, b.now, destructionRingTime))
	p.Deactivate()
	b.dash = nil
	b.emit(Event{Kind: EventPhaseDestroyed, Phase: p.Number, At: b.now})

	if b.current == len(b.phases)-1 {
		b.defeat()
		return true
	}
	b.current++
	b.lastChange = b.now
	b.changed = true
	b.phases[b.current].Activate(b.now)
	b.env.Logger.Debug("boss phase destroyed", "boss", b.Name, "phase", p.Number)
	b.emit(Event{Kind: EventPhaseChanged, Phase: b.phases[b.current].Number, At: b.now})
	return false
}

// Dispose removes the boss and cancels every deferred action it owns.
func (b *Boss) Dispose() {
	b.disposed = true
	b.dash = nil
	for _, p := range b.phases {
		p.Deactivate()
	}
}

// checkThresholds moves to a later phase once enough total health is gone.
func (b *Boss) checkThresholds(now time.Duration) {
	cur := b.phases[b.current]
	if cur.transitioning {
		return
	}
	if b.changed && now-b.lastChange < PhaseChangeCooldown {
		return
	}
	pct := b.HealthPct()
	for i := len(b.phases) - 1; i >= 0; i-- {
		if i == b.current || pct > 1-b.phases[i].Threshold {
			continue
		}
		if i > b.current {
			b.switchPhase(i, now)
		}
		return
	}
}

func (b *Boss) switchPhase(i int, now time.Duration) {
	from := b.phases[b.current]
	from.Deactivate()
	b.current = i
	b.lastChange = now
	b.changed = true
	b.invincibleUntil = now + InvincibilityDuration
	b.phases[i].Activate(now)
	b.env.Logger.Debug("boss phase threshold crossed", "boss", b.Name, "from", from.Number, "to", b.phases[i].Number)
	b.emit(Event{Kind: EventPhaseChanged, Phase: b.phases[i].Number, At: now})
}

func (b *Boss) defeat() {
	b.defeated = true
	b.dash = nil
	for _, p := range b.phases {
		p.Deactivate()
	}
	for i := range finalRings {
		start := b.now + time.Duration(i)*finalRingStagger
		b.env.Sink.SpawnHazard(object.NewRing(b.X, b.Y, finalRingRadius, start, finalRingTime))
	}
	b.env.Sink.SpawnHazard(object.NewParticleBurst(b.X, b.Y, finalParticles, finalSpeed, finalLifetime, b.now, b.env.Rand))
	b.env.Logger.Info("boss defeated", "boss", b.Name, "tier", b.Tier, "points", b.Points)
	b.emit(Event{Kind: EventDefeated, Phase: b.phases[b.current].Number, At: b.now})
}

func (b *Boss) hitFeedback() {
	b.env.Sink.SpawnHazard(object.NewParticleBurst(b.X, b.Y, hitParticles, hitSpeed, hitLifetime, b.now, b.env.Rand))
	b.env.Sink.SpawnHazard(object.NewRing(b.X, b.Y, b.Size*hitRingScale, b.now, hitRingDuration))
}

func (b *Boss) emit(e Event) {
	if b.OnEvent != nil {
		b.OnEvent(e)
	}
}
