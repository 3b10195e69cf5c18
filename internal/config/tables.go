package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed bosses.yaml
var defaultTables []byte

// Tables holds the boss configuration for every tier.
type Tables struct {
	Tiers []TierConfig `yaml:"tiers"`
}

// TierConfig describes one boss tier before wave scaling.
type TierConfig struct {
	Tier   int           `yaml:"tier"`
	Name   string        `yaml:"name"`
	Size   float64       `yaml:"size"`
	Speed  float64       `yaml:"speed"`
	Health float64       `yaml:"health"`
	Damage float64       `yaml:"damage"`
	Points int           `yaml:"points"`
	Phases []PhaseConfig `yaml:"phases"`
}

// PhaseConfig is one health bracket of a boss.
type PhaseConfig struct {
	Health float64 `yaml:"health"`
	// Threshold overrides the default i/n activation threshold.
	Threshold *float64        `yaml:"threshold,omitempty"`
	Patterns  []PatternConfig `yaml:"patterns"`
}

// PatternConfig is the table form of an attack pattern. Damage and DashDamage
// are multipliers of the boss base damage; zero means the pattern default.
type PatternConfig struct {
	Kind           string   `yaml:"kind"`
	Count          int      `yaml:"count,omitempty"`
	Layers         int      `yaml:"layers,omitempty"`
	Waves          int      `yaml:"waves,omitempty"`
	Speed          float64  `yaml:"speed,omitempty"`
	Damage         float64  `yaml:"damage,omitempty"`
	Radius         float64  `yaml:"radius,omitempty"`
	Distance       float64  `yaml:"distance,omitempty"`
	StartAngle     *float64 `yaml:"start_angle,omitempty"`
	EndAngle       *float64 `yaml:"end_angle,omitempty"`
	DurationMS     int      `yaml:"duration_ms,omitempty"`
	DelayMS        int      `yaml:"delay_ms,omitempty"`
	FollowWithDash bool     `yaml:"follow_with_dash,omitempty"`
	DashSpeed      float64  `yaml:"dash_speed,omitempty"`
	DashDamage     float64  `yaml:"dash_damage,omitempty"`
	ReturnToStart  bool     `yaml:"return_to_start,omitempty"`
}

// ErrNoTiers is returned when a table file defines no tiers at all.
var ErrNoTiers = errors.New("boss tables: no tiers defined")

// DefaultTables returns the embedded tier tables.
func DefaultTables() *Tables {
	t, err := ParseTables(defaultTables)
	if err != nil {
		// Embedded data is checked by TestDefaultTablesValid.
		panic(fmt.Sprintf("embedded boss tables: %v", err))
	}
	return t
}

// LoadTables reads and validates a YAML table file.
func LoadTables(path string) (*Tables, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read boss tables: %w", err)
	}
	t, err := ParseTables(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseTables decodes and validates YAML table data.
func ParseTables(b []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("decode boss tables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks the structural invariants the boss builder relies on.
func (t *Tables) Validate() error {
	if len(t.Tiers) == 0 {
		return ErrNoTiers
	}
	seen := make(map[int]bool, len(t.Tiers))
	for _, tier := range t.Tiers {
		if tier.Tier < 1 {
			return fmt.Errorf("tier %d: tier number must be positive", tier.Tier)
		}
		if seen[tier.Tier] {
			return fmt.Errorf("tier %d: defined twice", tier.Tier)
		}
		seen[tier.Tier] = true
		if tier.Size <= 0 || tier.Health <= 0 {
			return fmt.Errorf("tier %d: size and health must be positive", tier.Tier)
		}
		if len(tier.Phases) == 0 {
			return fmt.Errorf("tier %d: no phases", tier.Tier)
		}
		for i, ph := range tier.Phases {
			if ph.Health <= 0 {
				return fmt.Errorf("tier %d phase %d: health must be positive", tier.Tier, i+1)
			}
			if ph.Threshold != nil && (*ph.Threshold < 0 || *ph.Threshold >= 1) {
				return fmt.Errorf("tier %d phase %d: threshold %v outside [0,1)", tier.Tier, i+1, *ph.Threshold)
			}
			if len(ph.Patterns) == 0 {
				return fmt.Errorf("tier %d phase %d: no patterns", tier.Tier, i+1)
			}
			for j, p := range ph.Patterns {
				if p.Kind == "" {
					return fmt.Errorf("tier %d phase %d pattern %d: missing kind", tier.Tier, i+1, j+1)
				}
			}
		}
	}
	for n := 1; n <= BossTierCount; n++ {
		if !seen[n] {
			return fmt.Errorf("tier %d: missing", n)
		}
	}
	return nil
}

// Tier returns the configuration for tier n.
func (t *Tables) Tier(n int) (TierConfig, bool) {
	for _, tier := range t.Tiers {
		if tier.Tier == n {
			return tier, true
		}
	}
	return TierConfig{}, false
}
