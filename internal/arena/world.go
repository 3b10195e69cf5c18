package arena

import (
	"time"

	"github.com/tomz197/bossrush/internal/object"
)

// World holds the projectile and hazard collections of one arena.
// Spawns made while the world is being updated are queued and appended by
// FlushSpawned, so iteration never sees its own additions.
type World struct {
	Bounds      object.Bounds
	Projectiles []*object.Projectile
	Hazards     []object.Hazard

	spawnedProjectiles []*object.Projectile
	spawnedHazards     []object.Hazard

	// Projectiles consumed by a collision this tick (deferred compaction).
	toRemove map[*object.Projectile]struct{}
}

// Compile-time check that World is a hazard sink.
var _ object.Sink = (*World)(nil)

// NewWorld creates an empty world of the given size.
func NewWorld(bounds object.Bounds) *World {
	return &World{
		Bounds:   bounds,
		toRemove: make(map[*object.Projectile]struct{}),
	}
}

// SpawnProjectile queues p to be added after the current update step.
func (w *World) SpawnProjectile(p *object.Projectile) {
	w.spawnedProjectiles = append(w.spawnedProjectiles, p)
}

// SpawnHazard queues h to be added after the current update step.
func (w *World) SpawnHazard(h object.Hazard) {
	w.spawnedHazards = append(w.spawnedHazards, h)
}

// FlushSpawned adds all queued objects and clears the queues.
func (w *World) FlushSpawned() {
	w.Projectiles = append(w.Projectiles, w.spawnedProjectiles...)
	w.Hazards = append(w.Hazards, w.spawnedHazards...)
	clear(w.spawnedProjectiles)
	clear(w.spawnedHazards)
	w.spawnedProjectiles = w.spawnedProjectiles[:0]
	w.spawnedHazards = w.spawnedHazards[:0]
}

// Advance moves every projectile one tick and updates every hazard,
// dropping whatever reports removal.
func (w *World) Advance(now time.Duration) {
	kept := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if !p.Advance(w.Bounds) {
			kept = append(kept, p)
		}
	}
	clear(w.Projectiles[len(kept):])
	w.Projectiles = kept

	live := w.Hazards[:0]
	for _, h := range w.Hazards {
		if !h.Update(now) {
			live = append(live, h)
		}
	}
	clear(w.Hazards[len(live):])
	w.Hazards = live
}

// Remove marks p for removal at the next Compact.
func (w *World) Remove(p *object.Projectile) {
	w.toRemove[p] = struct{}{}
}

// Removed reports whether p has been marked this tick.
func (w *World) Removed(p *object.Projectile) bool {
	_, ok := w.toRemove[p]
	return ok
}

// Compact drops projectiles marked by Remove.
func (w *World) Compact() {
	if len(w.toRemove) == 0 {
		return
	}
	kept := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if _, gone := w.toRemove[p]; !gone {
			kept = append(kept, p)
		}
	}
	clear(w.Projectiles[len(kept):])
	w.Projectiles = kept
	clear(w.toRemove)
}

// ClearEnemyFire drops every enemy projectile and damaging hazard, leaving
// cosmetic effects to play out.
func (w *World) ClearEnemyFire() {
	kept := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		if !p.Enemy {
			kept = append(kept, p)
		}
	}
	clear(w.Projectiles[len(kept):])
	w.Projectiles = kept

	live := w.Hazards[:0]
	for _, h := range w.Hazards {
		if _, hurts := h.(object.Damaging); !hurts {
			live = append(live, h)
		}
	}
	clear(w.Hazards[len(live):])
	w.Hazards = live
}

// enemyProjectiles counts live enemy projectiles.
func (w *World) enemyProjectiles() int {
	n := 0
	for _, p := range w.Projectiles {
		if p.Enemy {
			n++
		}
	}
	return n
}
