//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	icore "skyshade/internal/core"
	"skyshade/pkg/core"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type frameProvider interface {
	Frame() core.Frame
}

type paletteProvider interface {
	Palette() core.SkyColors
}

// Overlay draws optional debugging visuals on top of the preview: a frame
// info line (1) and swatches of the derived sky palette (2).
type Overlay struct {
	scene       icore.Scene
	showInfo    bool
	showPalette bool
	pixel       *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(scene icore.Scene) *Overlay {
	o := &Overlay{scene: scene, showInfo: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the overlay layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showInfo = !o.showInfo
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showPalette = !o.showPalette
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image, paused bool) {
	if o.showInfo {
		o.drawInfo(screen, paused)
	}
	if o.showPalette {
		if provider, ok := o.scene.(paletteProvider); ok {
			o.drawPalette(screen, provider.Palette())
		}
	}
}

func (o *Overlay) drawInfo(screen *ebiten.Image, paused bool) {
	line := fmt.Sprintf("%s  %.0f fps", o.scene.Name(), ebiten.ActualFPS())
	if provider, ok := o.scene.(frameProvider); ok {
		f := provider.Frame()
		line = fmt.Sprintf("%s  %s  t=%.1f  rain=%.2f", line, f.Env.Realm, f.Time, f.Rain)
		if f.Env.Underwater {
			line += "  underwater"
		}
	}
	if paused {
		line += "  [paused]"
	}
	text.Draw(screen, line, basicfont.Face7x13, 8, 16, color.RGBA{R: 240, G: 240, B: 240, A: 255})
}

func (o *Overlay) drawPalette(screen *ebiten.Image, colors core.SkyColors) {
	const size = 18
	y := float64(screen.Bounds().Dy() - size - 8)
	for i, c := range []mgl32.Vec3{colors.Zenith, colors.Horizon, colors.HorizonEdge} {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(size, size)
		op.GeoM.Translate(float64(8+i*(size+4)), y)
		op.ColorScale.ScaleWithColor(swatch(c))
		screen.DrawImage(o.pixel, op)
	}
}

// swatch converts a linear palette stop to a display color. Stops may exceed
// one, so they are clamped rather than tone mapped.
func swatch(c mgl32.Vec3) color.RGBA {
	b := func(v float32) uint8 { return uint8(core.Clamp01(v)*255 + 0.5) }
	return color.RGBA{R: b(c[0]), G: b(c[1]), B: b(c[2]), A: 255}
}
