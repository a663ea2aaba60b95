package hud

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Label is a text element on screen. It implements shooting.DisplaySink so a
// scheduler can push its bullet counter straight into it.
type Label struct {
	text    string
	X, Y    int // Baseline-left position in screen pixels
	Color   color.Color
	Visible bool
	face    font.Face
}

// NewLabel creates a visible white label at the given position
func NewLabel(x, y int) *Label {
	return &Label{
		X:       x,
		Y:       y,
		Color:   color.RGBA{240, 240, 240, 255},
		Visible: true,
		face:    basicfont.Face7x13,
	}
}

// SetText replaces the label text
func (l *Label) SetText(s string) {
	l.text = s
}

// Text returns the current label text
func (l *Label) Text() string {
	return l.text
}

// Width returns the rendered width of the current text in pixels
func (l *Label) Width() int {
	return font.MeasureString(l.face, l.text).Ceil()
}

// Draw renders the label onto screen
func (l *Label) Draw(screen *ebiten.Image) {
	if !l.Visible || l.text == "" {
		return
	}
	text.Draw(screen, l.text, l.face, l.X, l.Y, l.Color)
}
