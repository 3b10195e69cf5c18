package boss

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/bossrush/internal/config"
)

var (
	ErrNoSink   = errors.New("boss: env has no hazard sink")
	ErrNoQueue  = errors.New("boss: env has no scheduler")
	ErrNoPhases = errors.New("boss: tier has no phases")
)

// New builds the boss for a tier on the given wave, placed at (x, y).
// Speed, damage and displayed health are wave scaled; phase pools are not.
func New(tier config.TierConfig, wave int, x, y float64, env Env) (*Boss, error) {
	if env.Sink == nil {
		return nil, ErrNoSink
	}
	if env.Queue == nil {
		return nil, ErrNoQueue
	}
	if len(tier.Phases) == 0 {
		return nil, fmt.Errorf("tier %d: %w", tier.Tier, ErrNoPhases)
	}
	if env.Logger == nil {
		env.Logger = log.New(io.Discard)
	}
	if env.Rand == nil {
		env.Rand = rand.New(rand.NewSource(int64(wave)))
	}
	if env.Bounds.Width <= 0 || env.Bounds.Height <= 0 {
		env.Bounds.Width, env.Bounds.Height = config.ArenaWidth, config.ArenaHeight
	}

	scale := WaveScaling(wave)
	b := &Boss{
		Tier:      tier.Tier,
		Name:      tier.Name,
		X:         x,
		Y:         y,
		Size:      tier.Size,
		Speed:     tier.Speed * scale,
		Damage:    tier.Damage * scale,
		Points:    tier.Points,
		MaxHealth: tier.Health * scale,
		env:       env,
	}

	n := len(tier.Phases)
	b.phases = make([]*Phase, n)
	for i, pc := range tier.Phases {
		p := &Phase{
			Number:    i + 1,
			MaxHealth: pc.Health,
			Health:    pc.Health,
			Threshold: float64(i) / float64(n),
			Patterns:  make([]PatternSpec, len(pc.Patterns)),
			boss:      b,
			timers:    env.Queue.NewGroup(),
		}
		if pc.Threshold != nil {
			p.Threshold = *pc.Threshold
		}
		for j, c := range pc.Patterns {
			p.Patterns[j] = FromConfig(c, b.Damage)
		}
		b.phases[i] = p
	}
	return b, nil
}

// Start activates the first phase.
func (b *Boss) Start(now time.Duration) {
	b.now = now
	b.phases[b.current].Activate(now)
	b.env.Logger.Info("boss spawned", "boss", b.Name, "tier", b.Tier, "phases", len(b.phases))
}
