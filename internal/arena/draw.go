package arena

import "github.com/tomz197/bossrush/internal/object"

// Draw renders hazards first, then projectiles, the boss and the player.
func (d *Director) Draw(ctx object.DrawContext) error {
	for _, h := range d.world.Hazards {
		if err := h.Draw(ctx); err != nil {
			return err
		}
	}
	for _, p := range d.world.Projectiles {
		if err := p.Draw(ctx); err != nil {
			return err
		}
	}
	if d.boss != nil {
		if err := d.boss.Draw(ctx); err != nil {
			return err
		}
	}
	if d.player.Alive() {
		return d.player.Draw(ctx)
	}
	return nil
}
