package boss

import (
	"strings"
	"testing"
	"time"

	"github.com/tomz197/bossrush/internal/config"
)

func rotationTier() config.TierConfig {
	tier := testTier(500, 500)
	tier.Phases[0].Patterns = []config.PatternConfig{
		{Kind: string(BulletCircle), Count: 8, Speed: 120},
		{Kind: string(GroundPound)},
		{Kind: string(LaserSweep)},
	}
	return tier
}

func TestSnapshotResumesPatternOrder(t *testing.T) {
	orig := newRig(t, rotationTier())
	orig.boss.Start(0)
	orig.runUntil(4 * time.Second) // two dispatches
	orig.boss.TakeDamage(120)

	if got := orig.boss.CurrentPhase().Index(); got != 2 {
		t.Fatalf("Index() = %d, want 2", got)
	}
	raw, err := EncodeSnapshot(orig.boss.Snapshot())
	if err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}
	if !strings.Contains(string(raw), "pattern_index: 2") {
		t.Errorf("snapshot yaml missing pattern index:\n%s", raw)
	}

	snap, err := DecodeSnapshot(raw)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	resumed := newRig(t, rotationTier())
	if err := resumed.boss.Restore(snap); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if got := resumed.boss.CurrentPhase().Health; got != 380 {
		t.Errorf("restored health = %v, want 380", got)
	}
	resumed.boss.Start(0)
	resumed.runUntil(8 * time.Second)

	orig.runUntil(12 * time.Second)
	want := orig.eventsOf(EventPatternDispatched)[2:]
	got := resumed.eventsOf(EventPatternDispatched)
	if len(got) < 2 || len(want) < 2 {
		t.Fatalf("dispatches: resumed %d, uninterrupted %d, want at least 2 each", len(got), len(want))
	}
	for i := range 2 {
		if got[i].Pattern != want[i].Pattern {
			t.Errorf("dispatch %d after resume = %s, want %s", i, got[i].Pattern, want[i].Pattern)
		}
	}
}

func TestRestoreRejectsMismatch(t *testing.T) {
	r := newRig(t, rotationTier())
	good := r.boss.Snapshot()

	tests := []struct {
		name string
		edit func(s *Snapshot)
	}{
		{"tier", func(s *Snapshot) { s.Tier = 4 }},
		{"phase count", func(s *Snapshot) { s.Phases = s.Phases[:1] }},
		{"current", func(s *Snapshot) { s.Current = 5 }},
		{"health", func(s *Snapshot) { s.Phases[0].Health = 9000 }},
		{"index", func(s *Snapshot) { s.Phases[0].PatternIndex = 3 }},
		{"number", func(s *Snapshot) { s.Phases[1].PhaseNumber = 7 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := good
			s.Phases = append([]PhaseSnapshot(nil), good.Phases...)
			tt.edit(&s)
			if err := newRig(t, rotationTier()).boss.Restore(s); err == nil {
				t.Error("Restore() error = nil, want error")
			}
		})
	}
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	if _, err := DecodeSnapshot([]byte("phases: [")); err == nil {
		t.Error("DecodeSnapshot() error = nil, want error")
	}
}
