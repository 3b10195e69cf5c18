package arena

import (
	"github.com/tomz197/bossrush/internal/object"
	"github.com/tomz197/bossrush/internal/physics"
)

// contactKnockback is how far touching the boss throws the player.
const contactKnockback = 150.0

// checkCollisions resolves projectile, hazard and contact hits for the tick.
func (d *Director) checkCollisions() {
	p := d.player
	px, py := p.GetPosition()
	pr := p.GetRadius()

	for _, proj := range d.world.Projectiles {
		if d.world.Removed(proj) {
			continue
		}
		if proj.Enemy {
			if proj.CollidesWith(px, py, pr) {
				d.world.Remove(proj)
				p.TakeDamage(proj.Damage)
			}
			continue
		}
		if d.boss == nil {
			continue
		}
		bx, by := d.boss.GetPosition()
		if proj.CollidesWith(bx, by, d.boss.GetRadius()) {
			d.world.Remove(proj)
			if d.boss.TakeDamage(proj.Damage) {
				d.bossDefeated()
			}
		}
	}

	for _, h := range d.world.Hazards {
		if dmg, ok := h.(object.Damaging); ok && dmg.CollidesWith(p, d.now) {
			p.TakeDamage(dmg.Damage())
		}
	}

	if b := d.boss; b != nil && b.Alive() {
		bx, by := b.GetPosition()
		if physics.Distance(bx, by, px, py) <= pr+b.GetRadius() {
			p.Knockback(px-bx, py-by, contactKnockback, d.world.Bounds)
			p.TakeDamage(b.ContactDamage())
		}
	}

	if !p.Alive() {
		d.playerDefeated()
	}
}
