package loop

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/bossrush/internal/config"
)

func fixedTerm(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

// idleReader never returns, so the input stream stays open.
func idleReader(t *testing.T) *bufio.Reader {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	return bufio.NewReader(pr)
}

func TestStepper(t *testing.T) {
	tests := []struct {
		name    string
		elapsed []time.Duration
		want    []int
	}{
		{"one tick per frame", []time.Duration{config.TickTime, config.TickTime}, []int{1, 1}},
		{"carry remainder", []time.Duration{config.TickTime / 2, config.TickTime / 2}, []int{0, 1}},
		{"cap after stall", []time.Duration{time.Second, config.TickTime}, []int{config.MaxTicksPerFrame, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var st stepper
			for i, e := range tt.elapsed {
				if got := st.steps(e); got != tt.want[i] {
					t.Errorf("steps(%v) #%d = %d, want %d", e, i, got, tt.want[i])
				}
			}
		})
	}
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		w, h             int
		rw, rh, col, row int
	}{
		{80, 24, 80, 24, 0, 0},
		{config.MaxRenderWidth + 20, config.MaxRenderHeight + 10, config.MaxRenderWidth, config.MaxRenderHeight, 10, 5},
	}
	for _, tt := range tests {
		rw, rh, col, row := clampTermSize(tt.w, tt.h)
		if rw != tt.rw || rh != tt.rh || col != tt.col || row != tt.row {
			t.Errorf("clampTermSize(%d, %d) = %d, %d, %d, %d, want %d, %d, %d, %d",
				tt.w, tt.h, rw, rh, col, row, tt.rw, tt.rh, tt.col, tt.row)
		}
	}
}

func TestSessionQuitsOnClosedInput(t *testing.T) {
	var out bytes.Buffer
	hub := NewHub()
	s := NewSession(bufio.NewReader(strings.NewReader("")), &out, Options{
		Tables:   config.StaticSource(config.DefaultTables()),
		TermSize: fixedTerm(100, 40),
		Hub:      hub,
	})
	if hub.Len() != 1 {
		t.Fatalf("hub.Len() = %d after NewSession, want 1", hub.Len())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ctx.Err() != nil {
		t.Fatal("Run() only returned on timeout")
	}
	if hub.Len() != 0 {
		t.Errorf("hub.Len() = %d after Run, want 0", hub.Len())
	}
	if !strings.Contains(out.String(), "Shoot") {
		t.Error("start screen never drawn")
	}
}

func TestSessionStepsArena(t *testing.T) {
	s := NewSession(idleReader(t), io.Discard, Options{
		Tables:    config.StaticSource(config.DefaultTables()),
		TermSize:  fixedTerm(100, 40),
		Seed:      7,
		StartWave: 0,
	})
	s.startRun()
	if s.Screen() != ScreenPlaying || s.Director() == nil {
		t.Fatalf("after startRun screen = %v, director = %v", s.Screen(), s.Director())
	}

	s.updatePlaying(100 * time.Millisecond)
	if got, want := s.Director().Now(), config.MaxTicksPerFrame*config.TickTime; got != want {
		t.Errorf("Now() = %v, want %v", got, want)
	}

	s.in.Pause = true
	s.updatePlaying(time.Second)
	if got, want := s.Director().Now(), config.MaxTicksPerFrame*config.TickTime; got != want {
		t.Errorf("Now() while paused = %v, want %v", got, want)
	}
	if err := s.drawFrame(); err != nil {
		t.Errorf("drawFrame() error = %v", err)
	}
}

func TestSessionShutdownScreen(t *testing.T) {
	hub := NewHub()
	s := NewSession(idleReader(t), io.Discard, Options{
		Tables:   config.StaticSource(config.DefaultTables()),
		TermSize: fixedTerm(100, 40),
		Hub:      hub,
	})
	go hub.Shutdown(50 * time.Millisecond)
	deadline := time.Now().Add(time.Second)
	for s.Screen() != ScreenShutdown && time.Now().Before(deadline) {
		s.processHubEvents(time.Now())
		time.Sleep(5 * time.Millisecond)
	}
	if s.Screen() != ScreenShutdown {
		t.Fatalf("Screen() = %v, want shutdown", s.Screen())
	}
	if !s.shutdownAt.After(time.Now()) {
		t.Error("shutdown countdown not set")
	}
}
