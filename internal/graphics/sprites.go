package graphics

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"

	"bullethell/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	SpriteBullet = "bullet"
	SpriteShip   = "ship"
)

// SpriteManager hands out white sprites that callers tint with ColorScale.
// PNGs found in the sprite directory win over the generated placeholders.
type SpriteManager struct {
	dir       string
	graphics  config.GraphicsConfig
	sprites   map[string]*ebiten.Image
	missCache map[string]bool // Names already known to have no file
}

func NewSpriteManager(dir string, gfx config.GraphicsConfig) *SpriteManager {
	return &SpriteManager{
		dir:       dir,
		graphics:  gfx,
		sprites:   make(map[string]*ebiten.Image),
		missCache: make(map[string]bool),
	}
}

// SpritePath returns where a named sprite would be loaded from
func (sm *SpriteManager) SpritePath(name string) string {
	return filepath.Join(sm.dir, name+".png")
}

func (sm *SpriteManager) GetSprite(name string) *ebiten.Image {
	if sprite, exists := sm.sprites[name]; exists {
		return sprite
	}

	if !sm.missCache[name] {
		if img, err := sm.load(name); err == nil {
			sm.sprites[name] = img
			return img
		}
		sm.missCache[name] = true
	}

	img := sm.createPlaceholder(name)
	sm.sprites[name] = img
	return img
}

func (sm *SpriteManager) load(name string) (*ebiten.Image, error) {
	file, err := os.Open(sm.SpritePath(name))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sprite %s: %w", name, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

func (sm *SpriteManager) createPlaceholder(name string) *ebiten.Image {
	white := color.RGBA{255, 255, 255, 255}
	switch name {
	case SpriteBullet:
		r := float32(max(1, sm.graphics.BulletSize))
		size := int(r*2) + 2
		img := ebiten.NewImage(size, size)
		vector.DrawFilledCircle(img, float32(size)/2, float32(size)/2, r, white, true)
		return img
	case SpriteShip:
		r := float32(max(2, sm.graphics.ShipSize))
		size := int(r*2) + 4
		img := ebiten.NewImage(size, size)
		c := float32(size) / 2
		vector.StrokeCircle(img, c, c, r, 2, white, true)
		vector.DrawFilledCircle(img, c, c, r/2, white, true)
		return img
	default:
		img := ebiten.NewImage(16, 16)
		img.Fill(color.RGBA{128, 128, 128, 255})
		return img
	}
}

// DrawCentered draws sprite centred at (x, y) tinted with c
func DrawCentered(dst, sprite *ebiten.Image, x, y float64, c color.Color) {
	w, h := sprite.Bounds().Dx(), sprite.Bounds().Dy()
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(x-float64(w)/2, y-float64(h)/2)
	opts.ColorScale.ScaleWithColor(c)
	dst.DrawImage(sprite, opts)
}

// RGB converts a config colour triple, clamping each channel to 0..255
func RGB(c [3]int) color.RGBA {
	clamp := func(v int) uint8 {
		return uint8(min(255, max(0, v)))
	}
	return color.RGBA{clamp(c[0]), clamp(c[1]), clamp(c[2]), 255}
}

// Fade scales a colour's alpha by f in [0, 1]
func Fade(c color.RGBA, f float64) color.RGBA {
	f = min(1, max(0, f))
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: uint8(float64(c.A) * f),
	}
}
