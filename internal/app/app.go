//go:build ebiten

package app

import (
	"time"

	"skyshade/internal/core"
	"skyshade/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a preview scene to the ebiten.Game interface.
type Game struct {
	scene   core.Scene
	frame   *ebiten.Image
	hud     *ui.HUD
	overlay *ui.Overlay

	scale    int
	panel    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided scene.
func New(scene core.Scene, cfg *Config) *Game {
	size := scene.Size()
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	return &Game{
		scene:   scene,
		frame:   ebiten.NewImage(size.W, size.H),
		hud:     ui.NewHUD(scene, cfg.Panel),
		overlay: ui.NewOverlay(scene),
		scale:   scale,
		panel:   max(cfg.Panel, 0),
		seed:    cfg.Seed,
	}
}

// Reset re-seeds the scene.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.scene.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the scene clock.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	g.hud.Update(g.viewWidth())

	if !g.paused || g.tickOnce {
		g.scene.Step()
		g.tickOnce = false
	}
	return nil
}

// Draw blits the last rendered frame, then the overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.frame.WritePixels(g.scene.Pixels())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(g.frame, op)

	g.overlay.Draw(screen, g.paused)
	g.hud.Draw(screen, g.viewWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.scene.Size()
	return s.W*g.scale + g.panel, s.H * g.scale
}

func (g *Game) viewWidth() int { return g.scene.Size().W * g.scale }
