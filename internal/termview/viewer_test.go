package termview

import (
	"context"
	"testing"
	"time"

	"bullethell/internal/config"
	"bullethell/internal/game"

	"github.com/deeean/go-vector/vector3"
	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
)

// fakeScreen records cells like a tiny terminal
type fakeScreen struct {
	width, height int
	cells         map[[2]int]rune
	shows         int
}

func newFakeScreen(w, h int) *fakeScreen {
	return &fakeScreen{width: w, height: h, cells: make(map[[2]int]rune)}
}

func (f *fakeScreen) Size() (int, int) { return f.width, f.height }
func (f *fakeScreen) Clear()           { f.cells = make(map[[2]int]rune) }
func (f *fakeScreen) Show()            { f.shows++ }
func (f *fakeScreen) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	f.cells[[2]int{x, y}] = primary
}

func (f *fakeScreen) row(y int) string {
	out := make([]rune, f.width)
	for x := range out {
		if r, ok := f.cells[[2]int{x, y}]; ok {
			out[x] = r
		} else {
			out[x] = ' '
		}
	}
	return string(out)
}

func (f *fakeScreen) count(r rune) int {
	n := 0
	for _, c := range f.cells {
		if c == r {
			n++
		}
	}
	return n
}

type countingBeeper struct {
	beeps int
}

func (c *countingBeeper) Beep() { c.beeps++ }

func newTestViewer(t *testing.T, beeper Beeper) (*Viewer, *fakeScreen, *game.BulletHellGame) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Shooting.PatternDuration = 1
	cfg.Shooting.PauseDuration = 1
	cfg.Terminal.FrameMillis = 250
	g, err := game.NewBulletHellGame(cfg)
	if err != nil {
		t.Fatalf("Expected game to build, got %v", err)
	}
	t.Cleanup(g.Close)

	screen := newFakeScreen(80, 24)
	return New(screen, g, cfg.Terminal, beeper), screen, g
}

func TestTickDrawsCounterAndBullets(t *testing.T) {
	v, screen, _ := newTestViewer(t, nil)
	v.Tick()

	if got := screen.row(0)[:len("Bullets Fired: 6")]; got != "Bullets Fired: 6" {
		t.Errorf("Expected counter on the first row, got %q", got)
	}
	if screen.count('@') != 1 {
		t.Errorf("Expected one ship glyph, got %d", screen.count('@'))
	}
	if screen.count('•') == 0 {
		t.Error("Expected bullets to be drawn")
	}
	if screen.shows != 1 {
		t.Errorf("Expected one Show per frame, got %d", screen.shows)
	}
}

func TestBeepOnPatternChange(t *testing.T) {
	b := &countingBeeper{}
	v, _, _ := newTestViewer(t, b)

	// 250ms frames: active ends at 1s, pause ends at 2s
	for i := 0; i < 8; i++ {
		v.Tick()
	}
	if b.beeps != 1 {
		t.Errorf("Expected one beep for one pattern change, got %d", b.beeps)
	}
}

func TestKeys(t *testing.T) {
	v, _, g := newTestViewer(t, nil)

	if v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)) {
		t.Fatal("Expected p not to quit")
	}
	if !g.Paused() {
		t.Error("Expected p to pause")
	}
	if !v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("Expected q to quit")
	}
	if !v.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Expected Esc to quit")
	}
}

func TestPausedTickDoesNotFire(t *testing.T) {
	v, _, g := newTestViewer(t, nil)
	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone))
	v.Tick()
	if g.Bullets().Active() != 0 {
		t.Errorf("Expected no bullets while paused, got %d", g.Bullets().Active())
	}
}

func TestCellMapping(t *testing.T) {
	v, _, _ := newTestViewer(t, nil)
	col, row := v.Cell(vector3.Vector3{X: 3, Z: 2}, vector3.Vector3{X: 1}, 80, 24)
	if col != 44 || row != 10 {
		t.Errorf("Expected cell (44, 10), got (%d, %d)", col, row)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	v, _, _ := newTestViewer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- v.Run(ctx, make(chan tcell.Event)) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean exit, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected Run to return after cancel")
	}
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(1000)
	s, err := Tone(rate, 100, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("Expected a tone, got %v", err)
	}

	buf := make([][2]float64, 16)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		for _, smp := range buf[:n] {
			if smp[0] > beepVolume+1e-9 || smp[0] < -beepVolume-1e-9 {
				t.Fatalf("Expected samples within the volume, got %v", smp[0])
			}
		}
		if !ok {
			break
		}
	}
	if total != 50 {
		t.Errorf("Expected 50 samples, got %d", total)
	}
}

func TestToneAboveNyquistFails(t *testing.T) {
	if _, err := Tone(beep.SampleRate(1000), 600, time.Second); err == nil {
		t.Error("Expected an error for a frequency above half the sample rate")
	}
}
