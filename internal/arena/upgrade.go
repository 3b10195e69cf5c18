package arena

import (
	"math/rand"

	"github.com/tomz197/bossrush/internal/object"
)

// UpgradeKind is one of the between-wave ship upgrades.
type UpgradeKind int

const (
	UpgradeHealth UpgradeKind = iota
	UpgradeSpeed
	UpgradeDamage
	UpgradeFireRate
	UpgradeRicochet
	UpgradeMultiFire
	UpgradeAutoFire
	UpgradeShield
	upgradeKindCount
)

// upgradeChoices is how many upgrades a cleared wave offers.
const upgradeChoices = 3

// upgradeDef is a catalogue entry.
type upgradeDef struct {
	name, description string
	maxLevel          int
	apply             func(p *object.Player)
}

var upgradeDefs = [upgradeKindCount]upgradeDef{
	UpgradeHealth: {"Health Boost", "Max health +10, fully healed", 10, func(p *object.Player) {
		p.MaxHealth += 10
		p.Health = p.MaxHealth
	}},
	UpgradeSpeed: {"Speed Boost", "Movement speed +10%", 10, func(p *object.Player) {
		p.Speed *= 1.1
	}},
	UpgradeDamage: {"Damage Boost", "Bullet damage +10%", 10, func(p *object.Player) {
		p.Damage *= 1.1
	}},
	UpgradeFireRate: {"Rapid Fire", "Time between shots -5%", 10, func(p *object.Player) {
		p.FireInterval = p.FireInterval * 95 / 100
	}},
	UpgradeRicochet: {"Ricochet", "Bullets bounce off one more wall", 5, func(p *object.Player) {
		p.Ricochets++
	}},
	UpgradeMultiFire: {"Multi-Fire", "One more bullet per shot", 3, func(p *object.Player) {
		p.Multishot++
	}},
	UpgradeAutoFire: {"Auto-Fire", "Fire at the boss without holding the trigger", 1, func(p *object.Player) {
		p.AutoFire = true
	}},
	UpgradeShield: {"Defense Shield", "Incoming damage -10%", 5, func(p *object.Player) {
		p.Shield++
	}},
}

func (k UpgradeKind) String() string {
	if k < 0 || k >= upgradeKindCount {
		return "unknown"
	}
	return upgradeDefs[k].name
}

// MaxLevel is how many times the upgrade can be taken.
func (k UpgradeKind) MaxLevel() int {
	if k < 0 || k >= upgradeKindCount {
		return 0
	}
	return upgradeDefs[k].maxLevel
}

// UpgradeLevels counts how often each upgrade has been taken.
type UpgradeLevels [upgradeKindCount]int

// Apply takes upgrade k for p. It reports false once k is at its cap.
func (l *UpgradeLevels) Apply(k UpgradeKind, p *object.Player) bool {
	if k < 0 || k >= upgradeKindCount || l[k] >= upgradeDefs[k].maxLevel {
		return false
	}
	upgradeDefs[k].apply(p)
	l[k]++
	return true
}

// Draw returns up to n distinct upgrades that are below their cap, in random order.
func (l *UpgradeLevels) Draw(rng *rand.Rand, n int) []UpgradeKind {
	var open []UpgradeKind
	for k := range upgradeKindCount {
		if l[k] < upgradeDefs[k].maxLevel {
			open = append(open, k)
		}
	}
	rng.Shuffle(len(open), func(i, j int) { open[i], open[j] = open[j], open[i] })
	return open[:min(n, len(open))]
}

// UpgradeOption is an offered upgrade as the frontend shows it.
type UpgradeOption struct {
	Kind        UpgradeKind
	Name        string
	Description string
	Level       int // Levels already taken
	MaxLevel    int
}

func (l *UpgradeLevels) option(k UpgradeKind) UpgradeOption {
	def := upgradeDefs[k]
	return UpgradeOption{Kind: k, Name: def.name, Description: def.description, Level: l[k], MaxLevel: def.maxLevel}
}
