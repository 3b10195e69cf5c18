package main

import (
	"reflect"
	"testing"
	"time"

	"github.com/tomz197/bossrush/internal/boss"
	"github.com/tomz197/bossrush/internal/config"
)

func weakTables() *config.Tables {
	return &config.Tables{Tiers: []config.TierConfig{{
		Tier:   1,
		Name:   "Training Drone",
		Size:   40,
		Speed:  1,
		Health: 20,
		Damage: 1,
		Points: 100,
		Phases: []config.PhaseConfig{{
			Health:   20,
			Patterns: []config.PatternConfig{{Kind: "bullet_circle", Count: 4, Speed: 60}},
		}},
	}}}
}

func testBatch(workers int) batchConfig {
	return batchConfig{
		Runs:         6,
		Workers:      workers,
		Waves:        1,
		BossInterval: 1,
		MaxGameTime:  30 * time.Second,
		Seed:         42,
		Tables:       config.StaticSource(weakTables()),
	}
}

func TestRunBatchAccountsEveryRun(t *testing.T) {
	sum := runBatch(testBatch(3))
	deaths := 0
	for _, n := range sum.DeathsByTier {
		deaths += n
	}
	if got := sum.Wins + sum.Timeouts + deaths; got != sum.Runs {
		t.Errorf("wins + timeouts + deaths = %d, want %d", got, sum.Runs)
	}
	if sum.WinRate < 0 || sum.WinRate > 1 {
		t.Errorf("WinRate = %v, want within [0, 1]", sum.WinRate)
	}
	if sum.AvgGameSeconds <= 0 {
		t.Errorf("AvgGameSeconds = %v, want > 0", sum.AvgGameSeconds)
	}
}

func TestRunBatchIsReproducible(t *testing.T) {
	a := runBatch(testBatch(1))
	b := runBatch(testBatch(4))
	if !reflect.DeepEqual(a, b) {
		t.Errorf("summary depends on worker count:\n%+v\n%+v", a, b)
	}
}

func TestSimulateWinsAgainstWeakBoss(t *testing.T) {
	cfg := testBatch(1)
	cfg.MaxGameTime = 2 * time.Minute
	res := simulate(cfg, 0)
	if res.TimedOut {
		t.Fatalf("run timed out at wave %d", res.Wave)
	}
	if res.Win && res.BossesDefeated != 1 {
		t.Errorf("win with %d bosses defeated, want 1", res.BossesDefeated)
	}
}

func TestSimulateResumesWoundedBoss(t *testing.T) {
	cfg := testBatch(1)
	cfg.MaxGameTime = 2 * time.Minute
	fresh := simulate(cfg, 0)

	raw := []byte("tier: 1\nname: Training Drone\nx: 400\ny: 120\ncurrent: 0\nphases:\n  - phase: 1\n    health: 1\n    pattern_index: 0\n")
	snap, err := boss.DecodeSnapshot(raw)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	cfg.Resume = &snap
	resumed := simulate(cfg, 0)

	if !resumed.Win {
		t.Fatalf("resumed run did not win: %+v", resumed)
	}
	if resumed.GameTime >= fresh.GameTime {
		t.Errorf("resumed GameTime = %v, want less than the fresh run's %v", resumed.GameTime, fresh.GameTime)
	}
}
