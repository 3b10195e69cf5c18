package config

import "time"

// Arena dimensions in logical pixels. Every entity position lives in this space.
const (
	ArenaWidth  = 800
	ArenaHeight = 600
)

// Simulation timing. The arena always advances in fixed steps of TickTime so
// per-tick speeds stay consistent regardless of render rate.
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)

// MaxTicksPerFrame caps catch-up steps after a stall.
const MaxTicksPerFrame = 5

// Player stats.
const (
	PlayerSize         = 15
	PlayerSpeed        = 5.0 // pixels per tick
	PlayerHealth       = 100
	PlayerDamage       = 10
	PlayerFireInterval = 250 * time.Millisecond
	PlayerBulletSpeed  = 10.0 // pixels per tick
	PlayerBulletSize   = 3
	PlayerRicochets    = 0
)

// Wave flow.
const (
	// BossWaveInterval is the default spacing of boss waves. 1 means every wave is a boss wave.
	BossWaveInterval = 1
	// WaveIntermission is the pause between a cleared wave and the next one.
	WaveIntermission = 3 * time.Second
	// BossTierCount is the number of distinct boss tiers; later boss waves cycle through them.
	BossTierCount = 5
)

// Terminal frontend.
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS

	// MaxRenderWidth and MaxRenderHeight clamp the canvas on large terminals.
	MaxRenderWidth  = 200
	MaxRenderHeight = 75

	InactivityWarnUser       = 60 * time.Second
	InactivityDisconnectUser = 90 * time.Second
	ShutdownDisplayTime      = 5 * time.Second
)
