package object

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

type fakeTarget struct {
	x, y, r float64
	hits    int
	taken   float64
}

func (f *fakeTarget) GetPosition() (float64, float64) { return f.x, f.y }
func (f *fakeTarget) GetRadius() float64             { return f.r }
func (f *fakeTarget) TakeDamage(amount float64) bool {
	f.hits++
	f.taken += amount
	return false
}

type fakeAnchor struct {
	x, y  float64
	alive bool
}

func (a *fakeAnchor) GetPosition() (float64, float64) { return a.x, a.y }
func (a *fakeAnchor) Alive() bool                     { return a.alive }

const ms = time.Millisecond

func TestSweepAngleEasesAndExpires(t *testing.T) {
	anchor := &fakeAnchor{x: 400, y: 300, alive: true}
	b := NewSweep(anchor, 0, math.Pi, 40, 1000, 20, 0, 2000*ms)

	if expired := b.Update(1000 * ms); expired {
		t.Fatal("sweep expired at half time")
	}
	if b.Angle <= 0 || b.Angle >= math.Pi {
		t.Errorf("angle at 1000ms = %v, want strictly between 0 and pi", b.Angle)
	}
	if want := math.Pi * math.Sin(math.Pi/4); math.Abs(b.Angle-want) > 1e-9 {
		t.Errorf("angle at 1000ms = %v, want %v", b.Angle, want)
	}
	if b.Update(1999 * ms) {
		t.Error("sweep expired before its duration")
	}
	if !b.Update(2000 * ms) {
		t.Error("sweep not expired at 2000ms")
	}
}

func TestSweepTracksAnchor(t *testing.T) {
	anchor := &fakeAnchor{x: 100, y: 100, alive: true}
	b := NewSweep(anchor, 0, math.Pi, 40, 1000, 20, 0, 2000*ms)
	anchor.x, anchor.y = 200, 250
	b.Update(10 * ms)
	if b.X != 200 || b.Y != 250 {
		t.Errorf("origin = (%v,%v), want (200,250)", b.X, b.Y)
	}
	anchor.alive = false
	if !b.Update(20 * ms) {
		t.Error("sweep survived its anchor")
	}
}

func TestSweepCollision(t *testing.T) {
	anchor := &fakeAnchor{x: 0, y: 0, alive: true}
	b := NewSweep(anchor, 0, 0, 40, 500, 20, 0, 2000*ms)
	b.Update(0)

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"on beam", 200, 0, true},
		{"edge overlap", 200, 25, true},
		{"beside beam", 200, 40, false},
		{"past end", 520, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			beam := NewSweep(anchor, 0, 0, 40, 500, 20, 0, 2000*ms)
			beam.Update(0)
			if got := beam.CollidesWith(&fakeTarget{x: tt.x, y: tt.y, r: 10}, 0); got != tt.want {
				t.Errorf("CollidesWith = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBeamHitInterval(t *testing.T) {
	b := NewPillar(100, 600, 60, 30, 0, time.Second)
	target := &fakeTarget{x: 110, y: 300, r: 10}
	if !b.CollidesWith(target, 0) {
		t.Fatal("first contact missed")
	}
	if b.CollidesWith(target, 100*ms) {
		t.Error("beam hit twice inside the hit interval")
	}
	if !b.CollidesWith(target, BeamHitInterval) {
		t.Error("beam did not hit again after the interval")
	}
}

func TestPillarCollisionAndExpiry(t *testing.T) {
	b := NewPillar(100, 600, 60, 30, 0, time.Second)
	// |px - x| < width/2 + r  =>  |px - 100| < 40
	if b.CollidesWith(&fakeTarget{x: 140, y: 10, r: 10}, 0) {
		t.Error("pillar hit a target exactly at the edge distance")
	}
	if !b.CollidesWith(&fakeTarget{x: 61, y: 590, r: 10}, 0) {
		t.Error("pillar missed an overlapping target")
	}
	if b.Update(999 * ms) {
		t.Error("pillar expired early")
	}
	if !b.Update(time.Second) {
		t.Error("pillar not expired after its lifetime")
	}
}

func TestExplosionDormantThenSingleHit(t *testing.T) {
	e := NewExplosion(300, 300, 90, 25, 400*ms)
	target := &fakeTarget{x: 300, y: 300, r: 15}

	e.Update(200 * ms)
	if e.CollidesWith(target, 200*ms) {
		t.Fatal("explosion hit before its start time")
	}

	hits := 0
	for now := 400 * ms; now <= 3*time.Second; now += 16 * ms {
		if expired := e.Update(now); expired {
			break
		}
		if e.CollidesWith(target, now) {
			hits++
		}
	}
	if hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
	if !e.Consumed() {
		t.Error("explosion not marked consumed")
	}
}

func TestExplosionGrowthAndLinger(t *testing.T) {
	e := NewExplosion(0, 0, 100, 10, 0)
	e.Update(250 * ms)
	if math.Abs(e.Radius-50) > 1e-9 {
		t.Errorf("Radius at half growth = %v, want 50", e.Radius)
	}
	e.Update(ExplosionGrowTime + 100*ms)
	if e.Radius != 100 {
		t.Errorf("Radius while lingering = %v, want 100", e.Radius)
	}
	if e.CollidesWith(&fakeTarget{r: 5}, ExplosionGrowTime+100*ms) {
		t.Error("lingering explosion dealt damage")
	}
	if !e.Update(ExplosionGrowTime + ExplosionLingerTime) {
		t.Error("explosion not expired after linger")
	}
}

func TestRingGrowsLinearly(t *testing.T) {
	r := NewRing(0, 0, 200, 100*ms, time.Second)
	if r.Update(50 * ms) {
		t.Fatal("ring expired before start")
	}
	if r.Radius != 0 {
		t.Errorf("Radius before start = %v, want 0", r.Radius)
	}
	r.Update(600 * ms)
	if math.Abs(r.Radius-100) > 1e-9 {
		t.Errorf("Radius at 50%% = %v, want 100", r.Radius)
	}
	if !r.Update(1100 * ms) {
		t.Error("ring not expired at end")
	}
}

func TestParticleBurstExpires(t *testing.T) {
	b := NewParticleBurst(10, 10, 12, 100, 400*ms, 0, rand.New(rand.NewSource(1)))
	if b.Len() != 12 {
		t.Fatalf("Len = %d, want 12", b.Len())
	}
	if b.Update(200 * ms) {
		t.Error("burst expired early")
	}
	if !b.Update(400 * ms) {
		t.Error("burst not expired after lifetime")
	}
	var _ Hazard = b
	if _, ok := Hazard(b).(Damaging); ok {
		t.Error("particle burst must not be damaging")
	}
}

func TestWarningFillAndSweepPreview(t *testing.T) {
	w := NewLineWarning(0, 0, 0, 1000, 20, 0, 1500*ms).Sweep(0, 0.8*math.Pi)
	if w.Update(750 * ms) {
		t.Fatal("warning expired early")
	}
	if math.Abs(w.Fill-0.5) > 1e-9 {
		t.Errorf("Fill = %v, want 0.5", w.Fill)
	}
	if math.Abs(w.Angle-0.4*math.Pi) > 1e-9 {
		t.Errorf("Angle = %v, want %v", w.Angle, 0.4*math.Pi)
	}
	if !w.Update(1500 * ms) {
		t.Error("warning not expired at duration")
	}
	x, y := NewLineWarning(10, 10, math.Pi/2, 50, 10, 0, ms).End()
	if math.Abs(x-10) > 1e-9 || math.Abs(y-60) > 1e-9 {
		t.Errorf("End = (%v,%v), want (10,60)", x, y)
	}
}
