package boss

import (
	"math"
	"time"

	"github.com/tomz197/bossrush/internal/config"
)

// Kind names an attack pattern.
type Kind string

const (
	BulletCircle  Kind = "bullet_circle"
	BulletBarrage Kind = "bullet_barrage"
	LaserPillar   Kind = "laser_pillar"
	LaserSweep    Kind = "laser_sweep"
	GroundPound   Kind = "ground_pound"
	DashAttack    Kind = "dash_attack"
)

// Known reports whether the phase dispatcher has an executor for k.
func (k Kind) Known() bool {
	switch k {
	case BulletCircle, BulletBarrage, LaserPillar, LaserSweep, GroundPound, DashAttack:
		return true
	}
	return false
}

// Phase timing.
const (
	TransitionDuration    = 1000 * time.Millisecond
	WarningDuration       = 1500 * time.Millisecond
	WarningDelay          = 1500 * time.Millisecond
	PatternDelay          = 2500 * time.Millisecond
	RepetitionDelay       = 1000 * time.Millisecond
	PhaseChangeCooldown   = 1000 * time.Millisecond
	InvincibilityDuration = 3000 * time.Millisecond
)

// Pattern tuning. Pattern speeds are arena pixels per second.
const (
	speedUnit = 10.0

	circleDefaultCount  = 8
	circleDefaultSpeed  = 90.0
	circleLayerFalloff  = 0.15
	circleSpin          = 0.02
	circleSpinPerRep    = 0.2
	circleMaxRadius     = 2000
	circleTrailLength   = 8
	circleWarningRadius = 100.0

	barrageDefaultCount    = 3
	barrageDefaultWaves    = 3
	barrageDefaultDelay    = 150 * time.Millisecond
	barrageDefaultSpeed    = 60.0
	barrageDefaultDistance = 200.0
	barrageSpread          = math.Pi / 8
	barrageWarningRadius   = 30.0

	pillarDefaultCount = 3
	pillarWidth        = 60.0
	pillarWarning      = 2000 * time.Millisecond
	pillarLifetime     = 1000 * time.Millisecond
	pillarDamageScale  = 1.5
	pillarDashDelay    = 200 * time.Millisecond
	pillarDashSpeed    = 500.0

	sweepDefaultDuration = 2000 * time.Millisecond
	sweepDefaultDamage   = 20.0
	sweepWidth           = 40.0
	sweepLength          = 1000.0
	sweepWarningWidth    = 20.0
	sweepPreviewFraction = 0.8

	poundBlasts        = 3
	poundStagger       = 200 * time.Millisecond
	poundDefaultRadius = 150.0
	poundRadiusScale   = 0.6
	poundScatter       = 0.5

	dashDefaultSpeed  = 400.0
	dashDamageScale   = 2.0
	dashReturnTime    = 500 * time.Millisecond
	dashWarningWidth  = 30.0
	dashMinimumLength = 1.0
)

// PatternSpec is an immutable attack description. Damage fields are absolute
// values already derived from the boss damage; phase scaling is applied when
// the attack is executed.
type PatternSpec struct {
	Kind     Kind
	Count    int
	Layers   int
	Waves    int
	Speed    float64 // pixels per second
	Damage   float64
	Radius   float64
	Distance float64
	Duration time.Duration
	Delay    time.Duration

	StartAngle  float64
	EndAngle    float64
	HasEndAngle bool

	// TargetX, TargetY override the player position when HasTarget is set.
	TargetX, TargetY float64
	HasTarget        bool

	FollowWithDash bool
	DashSpeed      float64
	DashDamage     float64
	ReturnToStart  bool
}

// FromConfig converts a table entry into a spec. Damage multipliers are
// resolved against bossDamage; a zero multiplier leaves the kind default.
func FromConfig(c config.PatternConfig, bossDamage float64) PatternSpec {
	s := PatternSpec{
		Kind:           Kind(c.Kind),
		Count:          c.Count,
		Layers:         c.Layers,
		Waves:          c.Waves,
		Speed:          c.Speed,
		Radius:         c.Radius,
		Distance:       c.Distance,
		Duration:       time.Duration(c.DurationMS) * time.Millisecond,
		Delay:          time.Duration(c.DelayMS) * time.Millisecond,
		FollowWithDash: c.FollowWithDash,
		DashSpeed:      c.DashSpeed,
		ReturnToStart:  c.ReturnToStart,
	}
	if c.Damage > 0 {
		s.Damage = c.Damage * bossDamage
	}
	if c.DashDamage > 0 {
		s.DashDamage = c.DashDamage * bossDamage
	}
	if c.StartAngle != nil {
		s.StartAngle = *c.StartAngle
	}
	if c.EndAngle != nil {
		s.EndAngle = *c.EndAngle
		s.HasEndAngle = true
	}
	return s
}

// sweepArc returns the start and end angles with defaults applied.
func (s PatternSpec) sweepArc() (start, end float64) {
	start = s.StartAngle
	end = start + math.Pi
	if s.HasEndAngle {
		end = s.EndAngle
	}
	return start, end
}

// CircleLayers is the number of concentric rings a bullet circle fires.
func CircleLayers(base, phase int) int {
	if base <= 0 {
		base = 1
	}
	if phase >= 3 {
		return base + min(phase-2, 3)
	}
	return base
}

// Repetitions is how many times circle and barrage patterns repeat.
func Repetitions(phase int) int {
	if phase >= 4 {
		return min(phase-2, 3)
	}
	return 1
}

// BarrageCount is the number of fan directions in a barrage wave.
func BarrageCount(base, phase int) int {
	if base <= 0 {
		base = barrageDefaultCount
	}
	if phase >= 3 {
		return base + min(phase-2, 3)
	}
	return base
}

// BarrageWaves is the number of waves in one barrage repetition.
func BarrageWaves(base, phase int) int {
	if base <= 0 {
		base = barrageDefaultWaves
	}
	if phase >= 3 {
		return base + min(phase-2, 4)
	}
	return base
}

// FanSize is the number of projectiles in each barrage fan.
func FanSize(phase int) int {
	return 3 + min(phase-1, 2)
}

// TurnSpread bounds the random curve of barrage projectiles.
func TurnSpread(phase int) float64 {
	return 0.02 + float64(phase)*0.005
}

// WaveScaling is the multiplier applied to boss speed, health and damage.
func WaveScaling(wave int) float64 {
	return 1 + 0.0005*float64(wave) + 0.001*math.Floor(float64(wave)/10)
}

// perTick converts a pixels-per-second speed to pixels per tick.
func perTick(pxPerSecond float64) float64 {
	return pxPerSecond / config.TickRate
}
