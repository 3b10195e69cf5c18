package boss

import (
	"testing"
	"time"

	"github.com/tomz197/bossrush/internal/config"
	"github.com/tomz197/bossrush/internal/object"
)

func TestFirstPatternAtTransitionEnd(t *testing.T) {
	r := newRig(t, testTier(1000))
	r.boss.Start(0)
	r.runUntil(3 * time.Second)

	d := r.eventsOf(EventPatternDispatched)
	if len(d) == 0 {
		t.Fatal("no pattern dispatched")
	}
	if d[0].At < TransitionDuration || d[0].At >= TransitionDuration+config.TickTime {
		t.Errorf("first dispatch at %v, want first tick at or after %v", d[0].At, TransitionDuration)
	}
	x := r.eventsOf(EventPatternExecuted)
	if len(x) == 0 {
		t.Fatal("no pattern executed")
	}
	if got := x[0].At - d[0].At; got != WarningDelay {
		t.Errorf("execution delay = %v, want %v", got, WarningDelay)
	}
}

func TestDispatchSpacing(t *testing.T) {
	tier := testTier(1000)
	tier.Phases[0].Patterns = append(tier.Phases[0].Patterns,
		config.PatternConfig{Kind: string(GroundPound)},
		config.PatternConfig{Kind: string(LaserSweep)},
	)
	r := newRig(t, tier)
	r.boss.Start(0)
	r.runUntil(20 * time.Second)

	d := r.eventsOf(EventPatternDispatched)
	if len(d) < 5 {
		t.Fatalf("dispatches = %d, want at least 5", len(d))
	}
	for i := 1; i < len(d); i++ {
		if gap := d[i].At - d[i-1].At; gap <= PatternDelay {
			t.Errorf("dispatch %d came %v after the previous, want more than %v", i, gap, PatternDelay)
		}
	}
	want := []Kind{BulletCircle, GroundPound, LaserSweep, BulletCircle}
	for i, k := range want {
		if d[i].Pattern != k {
			t.Errorf("dispatch %d kind = %s, want %s", i, d[i].Pattern, k)
		}
	}
}

func TestUnknownKindIsSkipped(t *testing.T) {
	tier := testTier(1000)
	tier.Phases[0].Patterns = []config.PatternConfig{
		{Kind: "meteor_shower"},
		{Kind: string(BulletCircle), Count: 8, Speed: 120},
	}
	r := newRig(t, tier)
	r.boss.Start(0)
	r.runUntil(1100 * ms)

	if got := len(r.eventsOf(EventPatternSkipped)); got != 1 {
		t.Fatalf("skipped = %d, want 1", got)
	}
	if got := len(r.boss.CurrentPhase().Warnings()); got != 0 {
		t.Errorf("warnings for unknown kind = %d, want 0", got)
	}

	r.runUntil(6 * time.Second)
	d := r.eventsOf(EventPatternDispatched)
	if len(d) == 0 || d[0].Pattern != BulletCircle {
		t.Fatalf("dispatched = %v, want bullet_circle next", d)
	}
	if len(r.eventsOf(EventPatternExecuted)) == 0 {
		t.Error("rotation stalled after unknown kind")
	}
}

func TestPhaseStates(t *testing.T) {
	r := newRig(t, testTier(1000))
	p := r.boss.CurrentPhase()
	if p.State() != PhaseInactive {
		t.Errorf("State() before start = %v, want inactive", p.State())
	}
	r.boss.Start(0)
	r.tick()
	if p.State() != PhaseTransitioning {
		t.Errorf("State() after start = %v, want transitioning", p.State())
	}
	r.runUntil(1100 * ms)
	if p.State() != PhaseWarning {
		t.Errorf("State() after dispatch = %v, want warning", p.State())
	}
	if got := len(p.Warnings()); got != 1 {
		t.Errorf("Warnings() = %d, want 1", got)
	}

	// A single circle at phase 1 has no repetitions, so it is idle as soon
	// as it fires.
	r.runUntil(2600 * ms)
	if p.State() != PhaseIdle {
		t.Errorf("State() after execution = %v, want idle", p.State())
	}
	if got := len(p.Warnings()); got != 0 {
		t.Errorf("Warnings() after expiry = %d, want 0", got)
	}
}

func TestActivateSpawnsTransitionEffect(t *testing.T) {
	r := newRig(t, testTier(1000))
	r.boss.Start(0)
	if got := len(hazardsOf[*object.Flash](r.sink)); got != 1 {
		t.Errorf("flashes = %d, want 1", got)
	}
	rings := hazardsOf[*object.Ring](r.sink)
	if len(rings) != 1 || rings[0].MaxRadius != transitionRingRadius {
		t.Errorf("rings = %v, want one of radius %v", rings, transitionRingRadius)
	}
}

func TestTelegraphShapes(t *testing.T) {
	r := newRig(t, testTier(1000))
	p := r.boss.CurrentPhase()

	tests := []struct {
		name  string
		spec  PatternSpec
		count int
		shape object.WarningShape
	}{
		{"circle", PatternSpec{Kind: BulletCircle}, 1, object.WarningCircle},
		{"sweep", PatternSpec{Kind: LaserSweep}, 1, object.WarningLine},
		{"pound", PatternSpec{Kind: GroundPound, HasTarget: true, TargetX: 100, TargetY: 100}, 1, object.WarningCircle},
		{"barrage", PatternSpec{Kind: BulletBarrage, Count: 5}, 5, object.WarningCircle},
		{"dash", PatternSpec{Kind: DashAttack, HasTarget: true, TargetX: 600, TargetY: 300}, 1, object.WarningLine},
		{"pillar", PatternSpec{Kind: LaserPillar}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := p.telegraph(tt.spec, 0)
			if len(ws) != tt.count {
				t.Fatalf("warnings = %d, want %d", len(ws), tt.count)
			}
			for _, w := range ws {
				if w.Shape != tt.shape {
					t.Errorf("Shape = %v, want %v", w.Shape, tt.shape)
				}
				if w.Duration() != WarningDuration {
					t.Errorf("Duration() = %v, want %v", w.Duration(), WarningDuration)
				}
			}
		})
	}
}

func TestDispatchPinsTargetAtTelegraph(t *testing.T) {
	tier := testTier(1000)
	tier.Phases[0].Patterns = []config.PatternConfig{{Kind: string(GroundPound), Radius: 150}}
	r := newRig(t, tier)
	r.target.x, r.target.y = 200, 450
	r.boss.Start(0)
	r.runUntil(1100 * ms)

	ws := r.boss.CurrentPhase().Warnings()
	if len(ws) != 1 || ws[0].X != 200 || ws[0].Y != 450 {
		t.Fatalf("warning = %+v, want circle at (200, 450)", ws)
	}

	r.target.x, r.target.y = 700, 100
	r.runUntil(2600 * ms)
	blasts := hazardsOf[*object.Explosion](r.sink)
	if len(blasts) != 3 {
		t.Fatalf("explosions = %d, want 3", len(blasts))
	}
	for i, e := range blasts {
		if d := (e.X-200)*(e.X-200) + (e.Y-450)*(e.Y-450); d > 75*75+1e-6 {
			t.Errorf("explosion %d at (%v, %v), want within 75 of the telegraph", i, e.X, e.Y)
		}
	}
}

func TestPhaseTakeDamageOnce(t *testing.T) {
	p := &Phase{Number: 1, MaxHealth: 100, Health: 100}
	hits := []struct {
		amount float64
		want   bool
		health float64
	}{
		{30, false, 70},
		{70, true, 0},
		{10, false, 0},
		{500, false, 0},
	}
	for i, h := range hits {
		if got := p.TakeDamage(h.amount); got != h.want {
			t.Errorf("hit %d: TakeDamage(%v) = %v, want %v", i, h.amount, got, h.want)
		}
		if p.Health != h.health {
			t.Errorf("hit %d: Health = %v, want %v", i, p.Health, h.health)
		}
	}
}
