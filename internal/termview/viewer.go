// Package termview draws the arena in a terminal with tcell.
package termview

import (
	"context"
	"fmt"
	"time"

	"bullethell/internal/config"
	"bullethell/internal/game"
	"bullethell/internal/input"
	"bullethell/internal/projectile"

	"github.com/deeean/go-vector/vector3"
	"github.com/gdamore/tcell/v2"
)

// Screen is the part of tcell.Screen the viewer draws with
type Screen interface {
	Size() (width, height int)
	Clear()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// Viewer renders a headless game into a terminal and forwards key presses.
type Viewer struct {
	screen Screen
	game   *game.BulletHellGame
	cfg    config.TerminalConfig
	beeper Beeper // Optional

	frame       time.Duration
	lastChanges int
}

// New creates a viewer. beeper may be nil.
func New(screen Screen, g *game.BulletHellGame, cfg config.TerminalConfig, beeper Beeper) *Viewer {
	frame := time.Duration(cfg.FrameMillis) * time.Millisecond
	if frame <= 0 {
		frame = 33 * time.Millisecond
	}
	if cfg.CellsPerUnit <= 0 {
		cfg.CellsPerUnit = 1
	}
	return &Viewer{screen: screen, game: g, cfg: cfg, beeper: beeper, frame: frame}
}

// Run ticks and draws until ctx is cancelled or the player quits
func (v *Viewer) Run(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(v.frame)
	defer ticker.Stop()

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || v.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			v.Tick()
		}
	}
}

// Tick advances the game by one frame and redraws
func (v *Viewer) Tick() {
	if !v.game.Paused() {
		v.game.Step(v.frame.Seconds())
	}
	v.checkPatternChange()
	v.Draw()
}

func (v *Viewer) checkPatternChange() {
	changes := 0
	for _, s := range v.game.Ships() {
		changes += s.PatternChanges()
	}
	if changes != v.lastChanges && v.beeper != nil {
		v.beeper.Beep()
	}
	v.lastChanges = changes
}

// HandleEvent reacts to a terminal event and reports whether to quit
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return true
			case 'p', 'P':
				v.game.HandleAction(input.TogglePause)
			case 'c', 'C':
				v.game.HandleAction(input.NextCamera)
			}
		}
	case *tcell.EventResize:
		v.Draw()
	}
	return false
}

// Cell maps a world position to a terminal cell around centre. Cells are about
// twice as tall as wide so X gets double the scale.
func (v *Viewer) Cell(p, centre vector3.Vector3, width, height int) (int, int) {
	col := width/2 + int((p.X-centre.X)*v.cfg.CellsPerUnit*2)
	row := height/2 - int((p.Z-centre.Z)*v.cfg.CellsPerUnit)
	return col, row
}

// Draw renders one frame
func (v *Viewer) Draw() {
	v.screen.Clear()
	width, height := v.screen.Size()

	ship := v.game.ActiveShip()
	var centre vector3.Vector3
	if ship != nil {
		centre = ship.Position()
	}

	colors := make([]tcell.Color, len(v.game.Ships()))
	for i, s := range v.game.Ships() {
		colors[i] = tcell.NewRGBColor(int32(s.Color.R), int32(s.Color.G), int32(s.Color.B))
	}

	// rows 0-1 and the last row are status lines
	v.game.Bullets().Each(func(b projectile.View) {
		col, row := v.Cell(b.Position, centre, width, height)
		if col < 0 || col >= width || row < 2 || row >= height-1 {
			return
		}
		style := tcell.StyleDefault.Foreground(tcell.ColorYellow)
		if b.Owner >= 0 && b.Owner < len(colors) {
			style = tcell.StyleDefault.Foreground(colors[b.Owner])
		}
		r := '•'
		if b.Life < 0.3 {
			r = '·'
		}
		v.screen.SetContent(col, row, r, nil, style)
	})

	for i, s := range v.game.Ships() {
		col, row := v.Cell(s.Position(), centre, width, height)
		if col < 0 || col >= width || row < 2 || row >= height-1 {
			continue
		}
		v.screen.SetContent(col, row, '@', nil, tcell.StyleDefault.Foreground(colors[i]).Bold(true))
	}

	if ship != nil {
		st := ship.Scheduler.State()
		v.print(0, 0, ship.Counter.Text(), tcell.StyleDefault.Bold(true))
		v.print(0, 1, fmt.Sprintf("%s | pattern %s | %s %.1fs | bullets %d",
			ship.Name, st.Pattern, st.Phase, st.PhaseTimer, v.game.Bullets().Active()), tcell.StyleDefault)
	}
	status := "q: quit  p: pause  c: next ship"
	if v.game.Paused() {
		status = "PAUSED  " + status
	}
	v.print(0, height-1, status, tcell.StyleDefault.Foreground(tcell.ColorGray))

	v.screen.Show()
}

func (v *Viewer) print(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
