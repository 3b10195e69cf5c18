// Package input turns a raw terminal byte stream into held-key state.
package input

import (
	"bufio"
	"time"

	"github.com/tomz197/bossrush/internal/object"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report repeats, so it has to bridge the key-repeat gap.
const keyHoldDuration = 120 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Fire    bool
	Pause   bool
	Enter   bool
	Escape  bool
	Choice  int // Last digit key 1-9 pressed this frame, 0 if none
	Pressed []byte
}

// Intent converts held keys into a movement and fire intent for the arena.
func (in Input) Intent() object.Intent {
	var it object.Intent
	if in.Left {
		it.MoveX--
	}
	if in.Right {
		it.MoveX++
	}
	if in.Up {
		it.MoveY--
	}
	if in.Down {
		it.MoveY++
	}
	it.Fire = in.Fire
	return it
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit   time.Time
	left   time.Time
	right  time.Time
	up     time.Time
	down   time.Time
	fire   time.Time
	enter  time.Time
	escape time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch    chan byte
	state keyState
	// pause and autoFire are toggles, not held keys.
	pause    bool
	autoFire bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The channel is closed when r returns an error.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	return s.Read(time.Now())
}

// Read drains the stream and reports the keys held at now. Arrow keys arrive
// as CSI sequences; everything else is a single byte.
func (s *Stream) Read(now time.Time) Input {
	var buf []byte
	closed := false
	choice := 0
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			handled := true
			switch buf[i+2] {
			case 'A':
				s.state.up = now
			case 'B':
				s.state.down = now
			case 'C':
				s.state.right = now
			case 'D':
				s.state.left = now
			default:
				handled = false
			}
			if handled {
				i += 2
				continue
			}
		}
		if b >= '1' && b <= '9' {
			choice = int(b - '0')
		}
		s.apply(b, now)
	}

	held := func(t time.Time) bool { return !t.IsZero() && now.Sub(t) < keyHoldDuration }
	in := Input{
		Quit:    held(s.state.quit) || closed,
		Left:    held(s.state.left),
		Right:   held(s.state.right),
		Up:      held(s.state.up),
		Down:    held(s.state.down),
		Fire:    held(s.state.fire) || s.autoFire,
		Pause:   s.pause,
		Enter:   held(s.state.enter),
		Escape:  held(s.state.escape),
		Choice:  choice,
		Pressed: buf,
	}
	return in
}

// apply updates the key state for a single pressed byte.
func (s *Stream) apply(b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		s.state.quit = now
	case 'a', 'A', 'h', 'H':
		s.state.left = now
	case 'd', 'D', 'l', 'L':
		s.state.right = now
	case 'w', 'W', 'k', 'K':
		s.state.up = now
	case 's', 'S', 'j', 'J':
		s.state.down = now
	case ' ', 'f', 'F':
		s.state.fire = now
	case 'x', 'X':
		s.autoFire = !s.autoFire
	case 'p', 'P':
		s.pause = !s.pause
	case '\n', '\r':
		s.state.enter = now
	case '\x1b':
		s.state.escape = now
	}
}
