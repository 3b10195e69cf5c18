package input

import (
	"testing"
	"time"

	"github.com/tomz197/bossrush/internal/object"
)

func feed(s *Stream, bs string) {
	for i := 0; i < len(bs); i++ {
		s.ch <- bs[i]
	}
}

func keys(in Input) [9]bool {
	return [9]bool{in.Quit, in.Left, in.Right, in.Up, in.Down, in.Fire, in.Pause, in.Enter, in.Escape}
}

func TestReadKeys(t *testing.T) {
	tests := []struct {
		name  string
		bytes string
		want  Input
	}{
		{"wasd left", "a", Input{Left: true}},
		{"vim right", "l", Input{Right: true}},
		{"up and fire", "w ", Input{Up: true, Fire: true}},
		{"arrow up", "\x1b[A", Input{Up: true}},
		{"arrow down", "\x1b[B", Input{Down: true}},
		{"arrow right", "\x1b[C", Input{Right: true}},
		{"arrow left", "\x1b[D", Input{Left: true}},
		{"bare escape", "\x1b", Input{Escape: true}},
		{"quit", "q", Input{Quit: true}},
		{"ctrl-c", "\x03", Input{Quit: true}},
		{"enter", "\r", Input{Enter: true}},
		{"diagonal", "sd", Input{Down: true, Right: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStream()
			feed(s, tt.bytes)
			got := s.Read(time.Unix(100, 0))
			if string(got.Pressed) != tt.bytes {
				t.Errorf("Pressed = %q, want %q", got.Pressed, tt.bytes)
			}
			if keys(got) != keys(tt.want) {
				t.Errorf("Read() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReadChoice(t *testing.T) {
	tests := []struct {
		name  string
		bytes string
		want  int
	}{
		{"none", "a", 0},
		{"first", "1", 1},
		{"last wins", "13", 3},
		{"zero ignored", "0", 0},
		{"with movement", "w2", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStream()
			feed(s, tt.bytes)
			if got := s.Read(time.Unix(100, 0)).Choice; got != tt.want {
				t.Errorf("Choice = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestKeyHold(t *testing.T) {
	s := newStream()
	start := time.Unix(100, 0)
	feed(s, "a")
	s.Read(start)

	if in := s.Read(start.Add(keyHoldDuration / 2)); !in.Left {
		t.Error("Left released before hold duration")
	}
	if in := s.Read(start.Add(keyHoldDuration)); in.Left {
		t.Error("Left still held after hold duration")
	}
}

func TestToggles(t *testing.T) {
	s := newStream()
	now := time.Unix(100, 0)
	feed(s, "xp")
	in := s.Read(now)
	if !in.Fire || !in.Pause {
		t.Fatalf("Read() = %+v, want auto fire and pause on", in)
	}
	// Toggles persist without further presses.
	in = s.Read(now.Add(time.Second))
	if !in.Fire || !in.Pause {
		t.Errorf("toggles dropped: %+v", in)
	}
	feed(s, "xp")
	in = s.Read(now.Add(2 * time.Second))
	if in.Fire || in.Pause {
		t.Errorf("toggles not cleared: %+v", in)
	}
}

func TestClosedStreamQuits(t *testing.T) {
	s := newStream()
	close(s.ch)
	if in := s.Read(time.Unix(100, 0)); !in.Quit {
		t.Error("closed stream did not report Quit")
	}
}

func TestIntent(t *testing.T) {
	tests := []struct {
		in   Input
		want object.Intent
	}{
		{Input{}, object.Intent{}},
		{Input{Left: true, Up: true}, object.Intent{MoveX: -1, MoveY: -1}},
		{Input{Left: true, Right: true, Fire: true}, object.Intent{Fire: true}},
		{Input{Down: true}, object.Intent{MoveY: 1}},
	}
	for _, tt := range tests {
		if got := tt.in.Intent(); got != tt.want {
			t.Errorf("%+v.Intent() = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
