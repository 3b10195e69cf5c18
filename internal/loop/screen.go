package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/bossrush/internal/arena"
	"github.com/tomz197/bossrush/internal/config"
	"github.com/tomz197/bossrush/internal/draw"
	"github.com/tomz197/bossrush/internal/object"
)

const hudBarWidth = 20

func (s *Session) showBanner(at time.Duration, format string, args ...any) {
	s.banner = fmt.Sprintf(format, args...)
	s.bannerUntil = at + bannerTime
}

// drawFrame clears the terminal and draws the arena plus the text overlay.
func (s *Session) drawFrame() error {
	s.cw.WriteString("\033[H\033[2J")
	s.canvas.Clear()

	if s.director != nil && s.screen != ScreenStart {
		ctx := object.DrawContext{Canvas: s.canvas, Writer: s.cw, Now: s.director.Now()}
		if err := s.director.Draw(ctx); err != nil {
			return err
		}
	}
	s.canvas.Render(s.cw)
	s.canvas.RenderBorder(s.cw)
	s.drawUI()
	return s.cw.Flush()
}

func (s *Session) drawUI() {
	w := s.canvas.TerminalWidth()
	h := s.canvas.TerminalHeight()
	cx, cy := w/2, h/2

	if s.screen == ScreenShutdown {
		s.drawShutdownScreen(cx, cy)
		return
	}
	if s.inactive {
		s.drawInactivityScreen(cx, cy)
		return
	}
	switch s.screen {
	case ScreenStart:
		s.drawStartScreen(cx, cy)
	case ScreenPlaying:
		s.drawHUD(w, h)
		if s.in.Pause {
			s.centered(cx, cy, "PAUSED  (P to resume)")
		}
	case ScreenGameOver:
		s.drawHUD(w, h)
		s.drawGameOverScreen(cx, cy)
	}
}

func (s *Session) centered(cx, row int, text string) {
	s.cw.WriteAt(cx-len([]rune(text))/2, row, text)
}

func (s *Session) drawStartScreen(cx, cy int) {
	title := []string{
		` ___  ___  ___  ___   ___ _   _ ___ _  _ `,
		`| _ )/ _ \/ __|/ __| | _ \ | | / __| || |`,
		`| _ \ (_) \__ \\__ \ |   / |_| \__ \ __ |`,
		`|___/\___/|___/|___/ |_|_\\___/|___/_||_|`,
	}
	top := cy - 8
	for i, line := range title {
		s.centered(cx, top+i, line)
	}
	s.centered(cx, top+len(title)+1, "~ a boss rush in your terminal ~")

	controls := []string{
		"W A S D / arrows  . . . Move",
		"SPACE / F . . . . . . . Shoot",
		"X . . . . . . Toggle autofire",
		"1 2 3 . . . . . Pick upgrade",
		"P . . . . . . . . . . . Pause",
		"Q . . . . . . . . . . .  Quit",
	}
	row := top + len(title) + 3
	for i, line := range controls {
		s.centered(cx, row+i, line)
	}
	if time.Now().UnixMilli()/600%2 == 0 {
		s.centered(cx, row+len(controls)+2, ">>  Press SPACE to Start  <<")
	}
	if best := s.bestScore(); best > 0 {
		s.centered(cx, row+len(controls)+4, fmt.Sprintf("Best: %d", best))
	}
}

// drawHUD writes fixed-width fields so shrinking values leave no residue.
func (s *Session) drawHUD(w, h int) {
	hud := s.director.HUD()
	cw := s.cw

	cw.WriteAt(2, 1, fmt.Sprintf("Wave %-3d Score %-8d", hud.Wave, hud.Score))

	hp := 0.0
	if hud.PlayerMax > 0 {
		hp = hud.PlayerHealth / hud.PlayerMax
	}
	cw.WriteAt(2, h, fmt.Sprintf("HP %s %3.0f", draw.Bar(hp, hudBarWidth), hud.PlayerHealth))

	if b := hud.Boss; b != nil {
		name := fmt.Sprintf("%s  [%d/%d]", b.Name, b.Phase, b.Phases)
		if b.Invincible {
			name += " *"
		}
		cw.WriteAt(w-len([]rune(name))-1, 1, name)
		cw.WriteAt(w-hudBarWidth-1, 2, draw.Bar(b.HealthPct, hudBarWidth))
		cw.WriteAt(w-hudBarWidth-1, 3, draw.Bar(b.PhaseHealthPct, hudBarWidth))
	}

	if hud.Stage == arena.StageIntermission {
		s.centered(w/2, 2, fmt.Sprintf("Next wave in %.1fs", hud.NextWaveIn.Seconds()))
		for i, o := range hud.Upgrades {
			s.centered(w/2, h/2+i*2, fmt.Sprintf("[%d] %s %d/%d  %s", i+1, o.Name, o.Level, o.MaxLevel, o.Description))
		}
	}
	if s.banner != "" && s.director.Now() < s.bannerUntil {
		s.centered(w/2, h/3, s.banner)
	}
}

func (s *Session) drawGameOverScreen(cx, cy int) {
	title := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}
	top := cy - 6
	for i, line := range title {
		s.centered(cx, top+i, line)
	}
	d := s.director
	s.centered(cx, top+len(title)+1, fmt.Sprintf("Score: %d   Wave: %d   Bosses: %d", d.Score(), d.Wave(), d.BossesDefeated()))
	s.centered(cx, top+len(title)+2, fmt.Sprintf("Best: %d", s.bestScore()))
	if time.Now().UnixMilli()/600%2 == 0 {
		s.centered(cx, top+len(title)+4, ">>  Press ENTER to Restart  <<")
	}
}

func (s *Session) drawInactivityScreen(cx, cy int) {
	s.centered(cx, cy-2, "INACTIVITY WARNING")
	left := config.InactivityDisconnectUser - time.Since(s.lastInput)
	s.centered(cx, cy, fmt.Sprintf("You will be disconnected in %d seconds.", int(left.Seconds())))
	s.centered(cx, cy+2, "Press any key to continue")
}

func (s *Session) drawShutdownScreen(cx, cy int) {
	s.centered(cx, cy-3, "SERVER SHUTTING DOWN")
	s.centered(cx, cy-1, "The server is restarting for maintenance.")
	s.centered(cx, cy, "Please reconnect in a moment.")
	left := int(time.Until(s.shutdownAt).Seconds()) + 1
	s.centered(cx, cy+2, fmt.Sprintf("Disconnecting in %d seconds...", left))
	s.centered(cx, cy+4, "Press Q to disconnect now")
}

func (s *Session) bestScore() int {
	if s.opts.Hub != nil {
		return s.opts.Hub.Best()
	}
	return s.best
}
