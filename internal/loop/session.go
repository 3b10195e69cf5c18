// Package loop drives one terminal session: it reads keys, steps an arena
// at a fixed rate and renders it with the half-block canvas.
package loop

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/bossrush/internal/arena"
	"github.com/tomz197/bossrush/internal/config"
	"github.com/tomz197/bossrush/internal/draw"
	"github.com/tomz197/bossrush/internal/input"
)

// Screen is the session's current view.
type Screen int

const (
	ScreenStart Screen = iota
	ScreenPlaying
	ScreenGameOver
	ScreenShutdown
)

// bannerTime is how long wave and phase banners stay up.
const bannerTime = 2 * time.Second

// Options configures a Session.
type Options struct {
	Tables       *config.TableSource
	BossInterval int
	StartWave    int
	Seed         int64
	Username     string
	TermSize     draw.TermSizeFunc
	Logger       *log.Logger
	// Hub is optional; without one the session never sees a shutdown.
	Hub *Hub
}

// Session handles rendering and input for a single terminal.
type Session struct {
	opts   Options
	logger *log.Logger

	id     int
	events <-chan HubEvent

	director *arena.Director
	stepper  stepper
	canvas   *draw.Canvas
	cw       *draw.ChunkWriter
	writer   io.Writer
	stream   *input.Stream
	in       input.Input

	screen     Screen
	running    bool
	lastInput  time.Time
	inactive   bool
	shutdownAt time.Time
	runs       int
	best       int

	banner      string
	bannerUntil time.Duration
}

// NewSession prepares a session that reads keys from r and draws to w.
func NewSession(r *bufio.Reader, w io.Writer, opts Options) *Session {
	if opts.TermSize == nil {
		opts.TermSize = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	s := &Session{
		opts:      opts,
		logger:    opts.Logger,
		writer:    w,
		stream:    input.StartStream(r),
		running:   true,
		lastInput: time.Now(),
	}
	if opts.Hub != nil {
		s.id, s.events = opts.Hub.Register()
	}

	tw, th, _ := opts.TermSize()
	rw, rh, oc, or := clampTermSize(tw, th)
	s.canvas = draw.NewScaledCanvas(rw, rh, config.ArenaWidth, config.ArenaHeight)
	s.canvas.SetOffset(oc, or)
	s.cw = draw.NewChunkWriter(w, oc, or)
	return s
}

// Director returns the arena of the current run, or nil before the first one.
func (s *Session) Director() *arena.Director { return s.director }

// Screen returns the current view.
func (s *Session) Screen() Screen { return s.screen }

// Run blocks until the player quits, the input closes, the session goes
// idle for too long, the host shuts down or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	draw.ClearScreen(s.writer)
	if s.opts.Hub != nil {
		defer s.opts.Hub.Unregister(s.id)
	}

	last := time.Now()
	for s.running {
		select {
		case <-ctx.Done():
			draw.ClearScreen(s.writer)
			return nil
		default:
		}

		frameStart := time.Now()
		elapsed := frameStart.Sub(last)
		last = frameStart

		s.processInput(frameStart)
		s.processHubEvents(frameStart)
		s.updateScreen()

		switch s.screen {
		case ScreenStart:
			if s.in.Fire || s.in.Enter {
				s.startRun()
			}
		case ScreenPlaying:
			s.updatePlaying(elapsed)
		case ScreenGameOver:
			if s.in.Enter {
				s.startRun()
			}
		case ScreenShutdown:
			if frameStart.After(s.shutdownAt) {
				s.running = false
			}
		}

		if err := s.drawFrame(); err != nil {
			return err
		}

		if d := time.Since(frameStart); d < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - d)
		}
	}

	draw.ClearScreen(s.writer)
	return nil
}

func (s *Session) processInput(now time.Time) {
	s.in = input.ReadInput(s.stream)

	switch idle := now.Sub(s.lastInput); {
	case len(s.in.Pressed) > 0:
		s.lastInput = now
		s.inactive = false
	case idle > config.InactivityDisconnectUser:
		s.logger.Info("disconnecting idle session", "user", s.opts.Username, "idle", idle)
		s.running = false
	case idle > config.InactivityWarnUser:
		s.inactive = true
	}

	if s.in.Quit {
		s.running = false
	}
}

func (s *Session) processHubEvents(now time.Time) {
	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				s.running = false
				return
			}
			if ev.Type == EventServerShutdown {
				s.screen = ScreenShutdown
				s.shutdownAt = now.Add(config.ShutdownDisplayTime)
			}
		default:
			return
		}
	}
}

// updateScreen follows terminal resizes, clamped to the max render size.
func (s *Session) updateScreen() {
	tw, th, err := s.opts.TermSize()
	if err != nil {
		return
	}
	rw, rh, oc, or := clampTermSize(tw, th)
	if rw != s.canvas.TerminalWidth() || rh != s.canvas.TerminalHeight() {
		draw.ClearScreen(s.writer)
	}
	s.canvas.Resize(rw, rh)
	s.canvas.SetOffset(oc, or)
	s.cw.SetOffset(oc, or)
}

// startRun begins a fresh arena. Each run gets its own seed so restarts differ.
func (s *Session) startRun() {
	s.runs++
	d, err := arena.New(arena.Options{
		Tables:       s.opts.Tables,
		BossInterval: s.opts.BossInterval,
		StartWave:    s.opts.StartWave,
		Rand:         rand.New(rand.NewSource(s.opts.Seed + int64(s.runs))),
		Logger:       s.logger.With("user", s.opts.Username, "run", s.runs),
	})
	if err != nil {
		s.logger.Error("start run", "err", err)
		s.running = false
		return
	}
	s.director = d
	s.stepper = stepper{}
	s.banner = ""
	s.screen = ScreenPlaying
}

func (s *Session) updatePlaying(elapsed time.Duration) {
	if s.in.Pause {
		return
	}
	intent := s.in.Intent()
	for range s.stepper.steps(elapsed) {
		s.director.Tick(intent)
	}
	if s.in.Choice > 0 && len(s.director.Offer()) > 0 {
		if err := s.director.ChooseUpgrade(s.in.Choice - 1); err != nil {
			s.logger.Debug("upgrade choice", "choice", s.in.Choice, "err", err)
		}
	}
	for _, ev := range s.director.DrainEvents() {
		s.onArenaEvent(ev)
	}
}

func (s *Session) onArenaEvent(ev arena.Event) {
	switch ev.Kind {
	case arena.EventBossSpawned:
		if b := s.director.Boss(); b != nil {
			s.showBanner(ev.At, "WAVE %d  %s", ev.Wave, b.Name)
		}
	case arena.EventPhaseChanged:
		s.showBanner(ev.At, "PHASE %d", ev.Phase)
	case arena.EventBossDefeated:
		s.showBanner(ev.At, "BOSS DEFEATED  +%d", ev.Points)
	case arena.EventUpgradeChosen:
		s.showBanner(ev.At, "%s  %d/%d", ev.Upgrade, s.director.Levels()[ev.Upgrade], ev.Upgrade.MaxLevel())
	case arena.EventPlayerDefeated:
		s.screen = ScreenGameOver
		score := s.director.Score()
		s.best = max(s.best, score)
		if s.opts.Hub != nil {
			s.best = s.opts.Hub.ReportScore(score)
		}
		s.logger.Info("run over", "user", s.opts.Username, "wave", ev.Wave, "score", score)
	}
}

// stepper converts wall-clock frame time into a whole number of fixed ticks.
type stepper struct {
	acc time.Duration
}

// steps returns how many ticks to run for a frame that took elapsed. After a
// stall the backlog beyond MaxTicksPerFrame is dropped.
func (st *stepper) steps(elapsed time.Duration) int {
	st.acc += elapsed
	n := int(st.acc / config.TickTime)
	if n > config.MaxTicksPerFrame {
		st.acc = 0
		return config.MaxTicksPerFrame
	}
	st.acc -= time.Duration(n) * config.TickTime
	return n
}

// clampTermSize clamps terminal dimensions to the max render resolution and
// computes the offset that centres the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxRenderWidth)
	renderHeight = min(termHeight, config.MaxRenderHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
