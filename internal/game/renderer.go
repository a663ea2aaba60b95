package game

import (
	"fmt"
	"image/color"
	"math"

	"bullethell/internal/camera"
	"bullethell/internal/graphics"
	"bullethell/internal/projectile"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Renderer draws the arena top-down around the active camera
type Renderer struct {
	game *BulletHellGame

	background  color.RGBA
	bulletColor color.RGBA
	gridColor   color.RGBA
	ownerColors []color.RGBA
	fallbackCam *camera.Follow
}

// NewRenderer creates a renderer for game
func NewRenderer(game *BulletHellGame) *Renderer {
	gfx := game.config.Graphics
	r := &Renderer{
		game:        game,
		background:  graphics.RGB(gfx.Background),
		bulletColor: graphics.RGB(gfx.BulletColor),
		gridColor:   color.RGBA{40, 40, 70, 255},
		fallbackCam: camera.NewFollow("origin", nil, game.config.GetCameraZoom()),
	}
	for _, s := range game.ships {
		r.ownerColors = append(r.ownerColors, s.Color)
	}
	return r
}

// Draw renders one frame
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(r.background)

	cam := r.fallbackCam
	if ship := r.game.ActiveShip(); ship != nil {
		cam = ship.Camera
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	r.drawGrid(screen, cam, w, h)
	r.drawBullets(screen, cam, w, h)
	r.drawShips(screen, cam, w, h)
	r.drawHUD(screen)
	if r.game.showPerf {
		r.drawPerfOverlay(screen)
	}
}

func (r *Renderer) drawGrid(screen *ebiten.Image, cam *camera.Follow, w, h int) {
	spacing := r.game.config.Graphics.GridSpacing
	if spacing <= 0 || cam.Zoom <= 0 {
		return
	}
	step := spacing * cam.Zoom
	if step < 4 {
		return
	}

	c := cam.Centre()
	// screen position of the grid line nearest the left/top edge
	originX, originY := cam.WorldToScreen(c, w, h)
	offX := math.Mod(originX-c.X*cam.Zoom, step)
	offY := math.Mod(originY+c.Z*cam.Zoom, step)

	for x := offX; x < float64(w); x += step {
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(h), 1, r.gridColor, false)
	}
	for y := offY; y < float64(h); y += step {
		vector.StrokeLine(screen, 0, float32(y), float32(w), float32(y), 1, r.gridColor, false)
	}
}

func (r *Renderer) drawBullets(screen *ebiten.Image, cam *camera.Follow, w, h int) {
	sprite := r.game.sprites.GetSprite(graphics.SpriteBullet)
	radius := r.game.config.Graphics.BulletSize

	r.game.bullets.Each(func(b projectile.View) {
		x, y := cam.WorldToScreen(b.Position, w, h)
		if !camera.OnScreen(x, y, radius, w, h) {
			return
		}
		c := r.bulletColor
		if b.Owner >= 0 && b.Owner < len(r.ownerColors) {
			c = r.ownerColors[b.Owner]
		}
		graphics.DrawCentered(screen, sprite, x, y, graphics.Fade(c, 0.35+0.65*b.Life))
	})
}

func (r *Renderer) drawShips(screen *ebiten.Image, cam *camera.Follow, w, h int) {
	sprite := r.game.sprites.GetSprite(graphics.SpriteShip)
	radius := r.game.config.Graphics.ShipSize

	for _, s := range r.game.ships {
		x, y := cam.WorldToScreen(s.Position(), w, h)
		if !camera.OnScreen(x, y, radius, w, h) {
			continue
		}
		graphics.DrawCentered(screen, sprite, x, y, s.Color)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s h=%.2f", s.Name, s.Position().Y), int(x+radius)+4, int(y-radius))
	}
}

func (r *Renderer) drawHUD(screen *ebiten.Image) {
	ship := r.game.ActiveShip()
	if ship == nil {
		ebitenutil.DebugPrintAt(screen, "No camera", 10, 8)
		return
	}
	ship.Counter.Draw(screen)

	st := ship.Scheduler.State()
	lines := []string{
		fmt.Sprintf("Camera %d/%d: %s", r.game.switcher.ActiveIndex()+1, r.game.switcher.Len(), ship.Name),
		fmt.Sprintf("Pattern: %s (%s %.1fs)", st.Pattern, st.Phase, st.PhaseTimer),
	}
	if r.game.paused {
		lines = append(lines, "PAUSED")
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 10, 30+i*16)
	}

	h := r.game.config.GetScreenHeight()
	ebitenutil.DebugPrintAt(screen, "P: pause  C: next camera  F3: perf  Esc: quit", 10, h-20)
}

func (r *Renderer) drawPerfOverlay(screen *ebiten.Image) {
	m := r.game.threading.PerformanceMonitor.GetCurrentMetrics()
	lines := []string{
		fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS()),
		fmt.Sprintf("TPS: %.1f", ebiten.ActualTPS()),
		fmt.Sprintf("Bullets: %d", m.BulletsActive),
		fmt.Sprintf("Fired: %d", m.BulletsFired),
		fmt.Sprintf("Invocations: %d", m.PatternInvocations),
		fmt.Sprintf("Mem: %dMB", m.MemoryUsageMB),
	}

	lineHeight := 16
	padding := 6
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}
	boxW := maxLen*6 + padding*2
	boxH := len(lines)*lineHeight + padding*2
	x := r.game.config.GetScreenWidth() - boxW - 10
	y := 10

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), color.RGBA{0, 0, 0, 160}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x+padding, y+padding+i*lineHeight)
	}
}
