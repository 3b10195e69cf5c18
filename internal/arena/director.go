// Package arena runs one encounter: it owns the clock, the scheduler, the
// player, the boss and the projectile and hazard collections, and advances
// them in a fixed order every tick.
package arena

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/bossrush/internal/boss"
	"github.com/tomz197/bossrush/internal/config"
	"github.com/tomz197/bossrush/internal/object"
	"github.com/tomz197/bossrush/internal/sched"
)

// Stage is the director's position in the wave flow.
type Stage int

const (
	StageIntermission Stage = iota
	StageBoss
	StageRegular
	StageGameOver
)

func (s Stage) String() string {
	switch s {
	case StageIntermission:
		return "intermission"
	case StageBoss:
		return "boss"
	case StageRegular:
		return "regular"
	case StageGameOver:
		return "game over"
	}
	return "unknown"
}

// RegularSpawner runs non-boss waves. The arena only drives it.
type RegularSpawner interface {
	StartWave(wave int, sink object.Sink, now time.Duration)
	// Update advances the wave and reports whether it has been cleared.
	Update(now time.Duration) (cleared bool)
}

// EventKind identifies an arena event.
type EventKind int

const (
	EventWaveStarted EventKind = iota
	EventBossSpawned
	EventPhaseChanged
	EventBossDefeated
	EventWaveCleared
	EventPlayerDefeated
	EventUpgradeChosen
)

func (k EventKind) String() string {
	switch k {
	case EventWaveStarted:
		return "wave started"
	case EventBossSpawned:
		return "boss spawned"
	case EventPhaseChanged:
		return "phase changed"
	case EventBossDefeated:
		return "boss defeated"
	case EventWaveCleared:
		return "wave cleared"
	case EventPlayerDefeated:
		return "player defeated"
	case EventUpgradeChosen:
		return "upgrade chosen"
	}
	return "unknown"
}

// Event is something the frontend may want to react to.
type Event struct {
	Kind    EventKind
	Wave    int
	Tier    int
	Phase   int
	Points  int
	Upgrade UpgradeKind
	At      time.Duration
}

// Options configures a Director.
type Options struct {
	Tables *config.TableSource
	// BossInterval spaces boss waves; 1 makes every wave a boss wave.
	BossInterval int
	// StartWave is the wave before the first one played.
	StartWave    int
	Intermission time.Duration
	Regular      RegularSpawner
	Rand         *rand.Rand
	Logger       *log.Logger
	// Resume, when set, restores the first boss spawned from a saved encounter.
	Resume *boss.Snapshot
}

var (
	// ErrNoTables is returned when Options has no table source.
	ErrNoTables = errors.New("arena: no boss tables")
	// ErrNoUpgrade is returned when choosing an upgrade that is not on offer.
	ErrNoUpgrade = errors.New("arena: upgrade not on offer")
)

// HUD is the per-frame status read.
type HUD struct {
	Wave         int
	Score        int
	Stage        Stage
	PlayerHealth float64
	PlayerMax    float64
	NextWaveIn   time.Duration
	Upgrades     []UpgradeOption
	Boss         *boss.HUD
}

// Director owns one arena and is driven by a single goroutine.
type Director struct {
	opts   Options
	world  *World
	queue  *sched.Queue
	player *object.Player
	boss   *boss.Boss
	logger *log.Logger
	rng    *rand.Rand

	now        time.Duration
	wave       int
	stage      Stage
	nextWaveAt time.Duration
	score      int
	bossesDown int
	// clearFire drops enemy fire once the collision pass is done.
	clearFire bool
	// offer is open until it is taken or the next wave starts.
	offer  []UpgradeKind
	levels UpgradeLevels
	resume *boss.Snapshot

	events []Event
}

// New creates a director with the player at its spawn point. The first wave
// starts after one intermission.
func New(opts Options) (*Director, error) {
	if opts.Tables == nil {
		return nil, ErrNoTables
	}
	if opts.BossInterval <= 0 {
		opts.BossInterval = config.BossWaveInterval
	}
	if opts.Intermission <= 0 {
		opts.Intermission = config.WaveIntermission
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	bounds := object.Bounds{Width: config.ArenaWidth, Height: config.ArenaHeight}
	d := &Director{
		opts:   opts,
		world:  NewWorld(bounds),
		queue:  sched.NewQueue(),
		player: object.NewPlayer(bounds.Width/2, bounds.Height*0.75),
		logger: opts.Logger,
		rng:    opts.Rand,
		wave:   opts.StartWave,
		stage:  StageIntermission,
		resume: opts.Resume,
	}
	d.nextWaveAt = opts.Intermission
	return d, nil
}

// Now returns the game clock.
func (d *Director) Now() time.Duration { return d.now }

// Wave returns the current wave number.
func (d *Director) Wave() int { return d.wave }

// Stage returns the wave flow stage.
func (d *Director) Stage() Stage { return d.stage }

// Score returns the accumulated points.
func (d *Director) Score() int { return d.score }

// BossesDefeated returns how many bosses the player has beaten.
func (d *Director) BossesDefeated() int { return d.bossesDown }

// Player returns the player ship.
func (d *Director) Player() *object.Player { return d.player }

// Boss returns the live boss, or nil.
func (d *Director) Boss() *boss.Boss { return d.boss }

// World returns the projectile and hazard collections.
func (d *Director) World() *World { return d.world }

// Offer returns the upgrades on offer, or nil if there is no open choice.
func (d *Director) Offer() []UpgradeOption {
	if len(d.offer) == 0 {
		return nil
	}
	opts := make([]UpgradeOption, len(d.offer))
	for i, k := range d.offer {
		opts[i] = d.levels.option(k)
	}
	return opts
}

// Levels returns how often each upgrade has been taken this run.
func (d *Director) Levels() UpgradeLevels { return d.levels }

// ChooseUpgrade takes offered upgrade i and closes the offer.
func (d *Director) ChooseUpgrade(i int) error {
	if d.stage != StageIntermission || i < 0 || i >= len(d.offer) {
		return ErrNoUpgrade
	}
	k := d.offer[i]
	if !d.levels.Apply(k, d.player) {
		return ErrNoUpgrade
	}
	d.offer = nil
	d.logger.Debug("upgrade chosen", "wave", d.wave, "upgrade", k, "level", d.levels[k])
	d.emit(Event{Kind: EventUpgradeChosen, Wave: d.wave, Upgrade: k})
	return nil
}

// DrainEvents returns the events since the last call.
func (d *Director) DrainEvents() []Event {
	ev := d.events
	d.events = nil
	return ev
}

// HUD returns the status read for the current tick.
func (d *Director) HUD() HUD {
	h := HUD{
		Wave:         d.wave,
		Score:        d.score,
		Stage:        d.stage,
		PlayerHealth: d.player.Health,
		PlayerMax:    d.player.MaxHealth,
	}
	if d.stage == StageIntermission {
		h.NextWaveIn = max(0, d.nextWaveAt-d.now)
		h.Upgrades = d.Offer()
	}
	if d.boss != nil {
		bh := d.boss.Current()
		h.Boss = &bh
	}
	return h
}

// Tick advances the arena by one fixed step.
func (d *Director) Tick(in object.Intent) {
	if d.stage == StageGameOver {
		return
	}
	d.now += config.TickTime
	d.queue.Advance(d.now)

	d.player.Update(in, d.now, d.world.Bounds)
	if in.Fire || (d.player.AutoFire && d.boss != nil) {
		d.fire()
	}
	if d.boss != nil {
		d.boss.Update(d.now)
	}
	if d.stage == StageRegular && d.opts.Regular != nil && d.opts.Regular.Update(d.now) {
		d.clearWave()
	}
	d.world.FlushSpawned()

	d.world.Advance(d.now)
	d.checkCollisions()
	d.world.Compact()
	if d.clearFire {
		d.world.ClearEnemyFire()
		d.clearFire = false
	}
	d.world.FlushSpawned()

	if d.stage == StageIntermission && d.now >= d.nextWaveAt {
		d.startWave()
	}
}

// fire shoots at the boss, or along the ship's facing when there is none.
func (d *Director) fire() {
	p := d.player
	aimX, aimY := p.X+math.Cos(p.Angle), p.Y+math.Sin(p.Angle)
	if d.boss != nil {
		aimX, aimY = d.boss.GetPosition()
	}
	for _, pr := range p.Fire(d.now, aimX, aimY) {
		d.world.SpawnProjectile(pr)
	}
}

func (d *Director) emit(e Event) {
	e.At = d.now
	d.events = append(d.events, e)
}

// startWave begins the next wave: a boss on boss waves, otherwise the
// regular spawner, if any.
func (d *Director) startWave() {
	if len(d.offer) > 0 {
		d.logger.Debug("upgrade offer lapsed", "wave", d.wave)
		d.offer = nil
	}
	d.wave++
	d.emit(Event{Kind: EventWaveStarted, Wave: d.wave})
	if IsBossWave(d.wave, d.opts.BossInterval) {
		if err := d.spawnBoss(); err != nil {
			d.logger.Error("spawn boss", "wave", d.wave, "err", err)
			d.clearWave()
		}
		return
	}
	if d.opts.Regular == nil {
		d.clearWave()
		return
	}
	d.stage = StageRegular
	d.opts.Regular.StartWave(d.wave, d.world, d.now)
}

func (d *Director) spawnBoss() error {
	n := TierForWave(d.wave, d.opts.BossInterval)
	tier, ok := d.opts.Tables.Tables().Tier(n)
	if !ok {
		return fmt.Errorf("tier %d not in tables", n)
	}
	b, err := boss.New(tier, d.wave, d.world.Bounds.Width/2, d.world.Bounds.Height*0.2, boss.Env{
		Sink:   d.world,
		Queue:  d.queue,
		Target: d.player,
		Bounds: d.world.Bounds,
		Rand:   d.rng,
		Logger: d.logger.With("wave", d.wave),
	})
	if err != nil {
		return err
	}
	if snap := d.resume; snap != nil {
		d.resume = nil
		if err := b.Restore(*snap); err != nil {
			d.logger.Warn("resume boss", "wave", d.wave, "err", err)
		} else {
			d.logger.Info("resumed boss", "wave", d.wave, "tier", n, "phase", snap.Current+1)
		}
	}
	b.OnEvent = d.onBossEvent
	b.Start(d.now)
	d.boss = b
	d.stage = StageBoss
	d.emit(Event{Kind: EventBossSpawned, Wave: d.wave, Tier: n, Phase: b.CurrentPhase().Number})
	return nil
}

func (d *Director) onBossEvent(e boss.Event) {
	if e.Kind == boss.EventPhaseChanged {
		d.logger.Debug("boss phase changed", "wave", d.wave, "phase", e.Phase)
		d.emit(Event{Kind: EventPhaseChanged, Wave: d.wave, Tier: d.boss.Tier, Phase: e.Phase})
	}
}

// bossDefeated is called once, when the killing blow lands.
func (d *Director) bossDefeated() {
	b := d.boss
	d.score += b.Points
	d.bossesDown++
	d.emit(Event{Kind: EventBossDefeated, Wave: d.wave, Tier: b.Tier, Points: b.Points})
	b.Dispose()
	d.boss = nil
	d.clearFire = true
	d.clearWave()
}

func (d *Director) clearWave() {
	d.stage = StageIntermission
	d.nextWaveAt = d.now + d.opts.Intermission
	d.offer = d.levels.Draw(d.rng, upgradeChoices)
	d.emit(Event{Kind: EventWaveCleared, Wave: d.wave})
}

func (d *Director) playerDefeated() {
	d.stage = StageGameOver
	d.offer = nil
	d.emit(Event{Kind: EventPlayerDefeated, Wave: d.wave})
	if d.boss == nil {
		d.logger.Info("player defeated", "wave", d.wave, "score", d.score)
		return
	}
	snap, err := boss.EncodeSnapshot(d.boss.Snapshot())
	if err != nil {
		d.logger.Warn("snapshot boss", "err", err)
	}
	d.logger.Info("player defeated", "wave", d.wave, "score", d.score, "boss", string(snap))
	d.boss.Dispose()
}

// IsBossWave reports whether wave is a boss wave for the given interval.
func IsBossWave(wave, interval int) bool {
	if interval <= 0 {
		interval = 1
	}
	return wave > 0 && wave%interval == 0
}

// TierForWave returns the boss tier for a boss wave. Tiers cycle after the last one.
func TierForWave(wave, interval int) int {
	if interval <= 0 {
		interval = 1
	}
	n := wave / interval
	if n < 1 {
		n = 1
	}
	return (n-1)%config.BossTierCount + 1
}
