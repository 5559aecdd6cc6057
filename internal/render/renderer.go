// Package render draws the preview scene through the shading pipeline.
package render

import (
	"runtime"
	"sync"

	icore "skyshade/internal/core"
	"skyshade/internal/pipeline"
	"skyshade/pkg/core"
)

// Renderer shades whole frames with a pool of row workers.
type Renderer struct {
	W, H    int
	workers int

	grid *icore.ColorGrid
	pix  []byte
}

// NewRenderer allocates buffers for a w×h frame. workers <= 0 uses one per CPU.
func NewRenderer(w, h, workers int) *Renderer {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	grid := icore.NewColorGrid(w, h)
	return &Renderer{
		W:       grid.W,
		H:       grid.H,
		workers: workers,
		grid:    grid,
		pix:     make([]byte, grid.W*grid.H*4),
	}
}

// Render shades every pixel for frame f seen from cam and returns the RGBA
// buffer. The buffer is reused by the next call.
func (r *Renderer) Render(p *pipeline.Pipeline, f core.Frame, cam Camera) []byte {
	s := newShader(p, f, cam)

	rows := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				row := r.grid.Row(y)
				for x := range row {
					row[x] = s.pixel(cam.Ray(x, y, r.W, r.H))
				}
			}
		}()
	}
	for y := 0; y < r.H; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()

	fillRGBA(r.pix, r.grid.Cells())
	return r.pix
}

// Grid exposes the display colors of the last frame.
func (r *Renderer) Grid() *icore.ColorGrid { return r.grid }
