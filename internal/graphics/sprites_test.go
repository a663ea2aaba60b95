package graphics

import (
	"image/color"
	"path/filepath"
	"testing"

	"bullethell/internal/config"
)

func TestSpritePath(t *testing.T) {
	sm := NewSpriteManager("assets/sprites", config.DefaultConfig().Graphics)
	want := filepath.Join("assets", "sprites", "bullet.png")
	if got := sm.SpritePath(SpriteBullet); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestRGBClampsChannels(t *testing.T) {
	got := RGB([3]int{-20, 128, 999})
	want := color.RGBA{0, 128, 255, 255}
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestFade(t *testing.T) {
	c := color.RGBA{200, 100, 50, 255}
	if got := Fade(c, 1); got != c {
		t.Errorf("Expected full colour at 1, got %v", got)
	}
	if got := Fade(c, 0.5); got.R != 100 || got.A != 127 {
		t.Errorf("Expected half colour, got %v", got)
	}
	if got := Fade(c, -1); got.A != 0 {
		t.Errorf("Expected transparent below 0, got %v", got)
	}
}
