package object

import (
	"math"
	"time"

	"github.com/tomz197/bossrush/internal/draw"
)

// WarningShape is the geometry of a telegraph.
type WarningShape int

const (
	WarningCircle WarningShape = iota
	WarningLine
)

// Warning telegraphs an upcoming attack. It never deals damage.
type Warning struct {
	Shape  WarningShape
	X, Y   float64
	Radius float64 // Circle radius
	Angle  float64 // Line direction
	Length float64 // Line length
	Width  float64 // Line width

	// Fill is the elapsed fraction of the warning, in [0, 1].
	Fill float64

	start    time.Duration
	duration time.Duration

	sweeping  bool
	sweepFrom float64
	sweepTo   float64
}

// NewCircleWarning creates a circular telegraph.
func NewCircleWarning(x, y, radius float64, start, duration time.Duration) *Warning {
	return &Warning{Shape: WarningCircle, X: x, Y: y, Radius: radius, start: start, duration: duration}
}

// NewLineWarning creates a line telegraph from (x, y) along angle.
func NewLineWarning(x, y, angle, length, width float64, start, duration time.Duration) *Warning {
	return &Warning{
		Shape:    WarningLine,
		X:        x,
		Y:        y,
		Angle:    angle,
		Length:   length,
		Width:    width,
		start:    start,
		duration: duration,
	}
}

// Sweep makes a line warning rotate from one angle to another over its
// lifetime, previewing a sweeping beam.
func (w *Warning) Sweep(from, to float64) *Warning {
	w.sweeping = true
	w.sweepFrom = from
	w.sweepTo = to
	w.Angle = from
	return w
}

// Start returns the warning's creation time.
func (w *Warning) Start() time.Duration {
	return w.start
}

// Duration returns how long the warning is shown.
func (w *Warning) Duration() time.Duration {
	return w.duration
}

// End returns the far end of a line warning.
func (w *Warning) End() (x, y float64) {
	return w.X + math.Cos(w.Angle)*w.Length, w.Y + math.Sin(w.Angle)*w.Length
}

// Update refreshes the fill and preview angle and reports expiry.
func (w *Warning) Update(now time.Duration) bool {
	w.Fill = progress(now, w.start, w.duration)
	if w.sweeping {
		w.Angle = w.sweepFrom + (w.sweepTo-w.sweepFrom)*w.Fill
	}
	return now-w.start >= w.duration
}

// Draw renders a dashed outline that solidifies as the warning fills.
func (w *Warning) Draw(ctx DrawContext) error {
	switch w.Shape {
	case WarningCircle:
		ctx.Canvas.DrawCircle(w.X, w.Y, w.Radius)
		if w.Fill > 0 {
			ctx.Canvas.DrawCircle(w.X, w.Y, w.Radius*w.Fill)
		}
	case WarningLine:
		ex, ey := w.End()
		if w.Fill < 0.5 && (ctx.Now/(150*time.Millisecond))%2 == 0 {
			return nil
		}
		ctx.Canvas.DrawLine(draw.Point{X: w.X, Y: w.Y}, draw.Point{X: ex, Y: ey})
	}
	return nil
}
