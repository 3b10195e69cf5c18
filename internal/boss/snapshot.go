package boss

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// PhaseSnapshot is the saved progress of one phase.
type PhaseSnapshot struct {
	PhaseNumber  int     `yaml:"phase"`
	Health       float64 `yaml:"health"`
	PatternIndex int     `yaml:"pattern_index"`
}

// Snapshot is the saved progress of a boss encounter.
type Snapshot struct {
	Tier    int             `yaml:"tier"`
	Name    string          `yaml:"name"`
	X       float64         `yaml:"x"`
	Y       float64         `yaml:"y"`
	Current int             `yaml:"current"`
	Phases  []PhaseSnapshot `yaml:"phases"`
}

// Snapshot captures the phase progress.
func (p *Phase) Snapshot() PhaseSnapshot {
	return PhaseSnapshot{PhaseNumber: p.Number, Health: p.Health, PatternIndex: p.index}
}

// Restore applies s to an inactive phase. The pattern index survives the
// next Activate, so the rotation resumes where it stopped.
func (p *Phase) Restore(s PhaseSnapshot) error {
	if s.PhaseNumber != p.Number {
		return fmt.Errorf("restore phase %d: snapshot is for phase %d", p.Number, s.PhaseNumber)
	}
	if s.Health < 0 || s.Health > p.MaxHealth {
		return fmt.Errorf("restore phase %d: health %v outside [0,%v]", p.Number, s.Health, p.MaxHealth)
	}
	if len(p.Patterns) > 0 && (s.PatternIndex < 0 || s.PatternIndex >= len(p.Patterns)) {
		return fmt.Errorf("restore phase %d: pattern index %d out of range", p.Number, s.PatternIndex)
	}
	p.Health = s.Health
	p.index = s.PatternIndex
	p.restored = true
	return nil
}

// Snapshot captures the boss position and every phase.
func (b *Boss) Snapshot() Snapshot {
	s := Snapshot{Tier: b.Tier, Name: b.Name, X: b.X, Y: b.Y, Current: b.current}
	for _, p := range b.phases {
		s.Phases = append(s.Phases, p.Snapshot())
	}
	return s
}

// Restore applies s to a boss that has not been started yet.
func (b *Boss) Restore(s Snapshot) error {
	if s.Tier != b.Tier {
		return fmt.Errorf("restore boss: snapshot tier %d, boss tier %d", s.Tier, b.Tier)
	}
	if len(s.Phases) != len(b.phases) {
		return fmt.Errorf("restore boss: snapshot has %d phases, boss has %d", len(s.Phases), len(b.phases))
	}
	if s.Current < 0 || s.Current >= len(b.phases) {
		return fmt.Errorf("restore boss: current phase %d out of range", s.Current)
	}
	for i, ps := range s.Phases {
		if err := b.phases[i].Restore(ps); err != nil {
			return err
		}
	}
	b.X, b.Y = s.X, s.Y
	b.current = s.Current
	return nil
}

// EncodeSnapshot renders s as YAML.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode boss snapshot: %w", err)
	}
	return out, nil
}

// DecodeSnapshot parses a YAML snapshot.
func DecodeSnapshot(b []byte) (Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode boss snapshot: %w", err)
	}
	return s, nil
}
