package boss

import (
	"math"

	"github.com/tomz197/bossrush/internal/draw"
	"github.com/tomz197/bossrush/internal/object"
)

// Draw renders the boss body, its phase pips and the active telegraphs.
// The body blinks while invincible.
func (b *Boss) Draw(ctx object.DrawContext) error {
	if !b.Alive() {
		return nil
	}
	for _, w := range b.phases[b.current].warnings {
		if err := w.Draw(ctx); err != nil {
			return err
		}
	}

	if object.ShouldRenderBlink(b.invincibleUntil-ctx.Now, 10) {
		ctx.Canvas.DrawCircle(b.X, b.Y, b.Size)
		ctx.Canvas.FillCircle(b.X, b.Y, b.Size*0.4)
	}

	// One spike per remaining phase.
	left := len(b.phases) - b.current
	for i := range left {
		a := float64(i)/float64(left)*2*math.Pi - math.Pi/2
		inner := draw.Point{X: b.X + math.Cos(a)*b.Size, Y: b.Y + math.Sin(a)*b.Size}
		outer := draw.Point{X: b.X + math.Cos(a)*b.Size*1.3, Y: b.Y + math.Sin(a)*b.Size*1.3}
		ctx.Canvas.DrawLine(inner, outer)
	}
	return nil
}
