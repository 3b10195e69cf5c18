package object

import "time"

// Ring is a cosmetic circle expanding linearly to MaxRadius over its duration.
type Ring struct {
	X, Y      float64
	MaxRadius float64
	Radius    float64
	start     time.Duration
	duration  time.Duration
}

// NewRing creates a ring starting at now. A start in the future keeps the
// ring invisible until then.
func NewRing(x, y, maxRadius float64, start, duration time.Duration) *Ring {
	return &Ring{X: x, Y: y, MaxRadius: maxRadius, start: start, duration: duration}
}

// Update grows the ring and expires it at the end of its duration.
func (r *Ring) Update(now time.Duration) bool {
	if now < r.start {
		r.Radius = 0
		return false
	}
	r.Radius = r.MaxRadius * progress(now, r.start, r.duration)
	return now-r.start >= r.duration
}

// Draw renders the ring outline.
func (r *Ring) Draw(ctx DrawContext) error {
	if r.Radius <= 0 {
		return nil
	}
	ctx.Canvas.DrawCircle(r.X, r.Y, r.Radius)
	return nil
}

// Flash is a short cosmetic frame around the whole arena marking a phase change.
type Flash struct {
	bounds   Bounds
	start    time.Duration
	duration time.Duration
}

// NewFlash creates a flash covering bounds.
func NewFlash(bounds Bounds, start, duration time.Duration) *Flash {
	return &Flash{bounds: bounds, start: start, duration: duration}
}

// Update expires the flash after its duration.
func (f *Flash) Update(now time.Duration) bool {
	return now-f.start >= f.duration
}

// Draw blinks a double border around the arena.
func (f *Flash) Draw(ctx DrawContext) error {
	if int((ctx.Now-f.start)/(100*time.Millisecond))%2 == 1 {
		return nil
	}
	w, h := f.bounds.Width, f.bounds.Height
	for _, inset := range []float64{1, 6} {
		ctx.Canvas.DrawRect(inset, inset, w-2*inset, h-2*inset)
	}
	return nil
}
