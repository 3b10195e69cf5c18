package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultTablesValid(t *testing.T) {
	tables := DefaultTables()
	if len(tables.Tiers) != BossTierCount {
		t.Fatalf("len(Tiers) = %d, want %d", len(tables.Tiers), BossTierCount)
	}

	wantPhases := map[int]int{1: 3, 2: 4, 3: 5, 4: 4, 5: 6}
	for tier, want := range wantPhases {
		cfg, ok := tables.Tier(tier)
		if !ok {
			t.Fatalf("Tier(%d) missing", tier)
		}
		if got := len(cfg.Phases); got != want {
			t.Errorf("tier %d phases = %d, want %d", tier, got, want)
		}
	}
}

func TestDefaultTierOneStats(t *testing.T) {
	cfg, _ := DefaultTables().Tier(1)
	if cfg.Size != 40 || cfg.Speed != 1 || cfg.Health != 500 || cfg.Damage != 20 || cfg.Points != 200 {
		t.Errorf("tier 1 stats = %+v", cfg)
	}
	first := cfg.Phases[0].Patterns[0]
	if first.Kind != "bullet_circle" || first.Count != 8 || first.Speed != 80 {
		t.Errorf("tier 1 first pattern = %+v", first)
	}
	pillar := cfg.Phases[0].Patterns[1]
	if !pillar.FollowWithDash || pillar.Damage != 1.5 {
		t.Errorf("tier 1 pillar = %+v", pillar)
	}
}

func TestParseTablesErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"empty", "tiers: []", "no tiers"},
		{"bad yaml", "tiers: [", "decode boss tables"},
		{"no phases", "tiers:\n  - {tier: 1, size: 1, health: 1}", "tier 1: no phases"},
		{
			"zero phase health",
			"tiers:\n  - tier: 1\n    size: 1\n    health: 1\n    phases:\n      - {health: 0, patterns: [{kind: dash_attack}]}",
			"tier 1 phase 1: health must be positive",
		},
		{
			"missing kind",
			"tiers:\n  - tier: 1\n    size: 1\n    health: 1\n    phases:\n      - {health: 5, patterns: [{count: 3}]}",
			"tier 1 phase 1 pattern 1: missing kind",
		},
		{
			"threshold out of range",
			"tiers:\n  - tier: 1\n    size: 1\n    health: 1\n    phases:\n      - {health: 5, threshold: 1.5, patterns: [{kind: dash_attack}]}",
			"outside [0,1)",
		},
		{
			"missing tier",
			"tiers:\n  - tier: 1\n    size: 1\n    health: 1\n    phases:\n      - {health: 5, patterns: [{kind: dash_attack}]}",
			"tier 2: missing",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTables([]byte(tt.yaml))
			if err == nil {
				t.Fatal("ParseTables succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseTablesNoTiersSentinel(t *testing.T) {
	_, err := ParseTables([]byte("tiers: []"))
	if !errors.Is(err, ErrNoTiers) {
		t.Errorf("err = %v, want ErrNoTiers", err)
	}
}

func TestLoadTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bosses.yaml")
	if err := os.WriteFile(path, defaultTables, 0o644); err != nil {
		t.Fatal(err)
	}
	tables, err := LoadTables(path)
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	if len(tables.Tiers) != BossTierCount {
		t.Errorf("len(Tiers) = %d, want %d", len(tables.Tiers), BossTierCount)
	}

	if _, err := LoadTables(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v, want os.ErrNotExist", err)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("BOSSRUSH_TEST_INT", "7")
	if got := GetEnvInt("BOSSRUSH_TEST_INT", 1); got != 7 {
		t.Errorf("GetEnvInt = %d, want 7", got)
	}
	t.Setenv("BOSSRUSH_TEST_INT", "seven")
	if got := GetEnvInt("BOSSRUSH_TEST_INT", 1); got != 1 {
		t.Errorf("GetEnvInt(invalid) = %d, want 1", got)
	}
	if got := GetEnvInt("BOSSRUSH_TEST_UNSET", 3); got != 3 {
		t.Errorf("GetEnvInt(unset) = %d, want 3", got)
	}
}
