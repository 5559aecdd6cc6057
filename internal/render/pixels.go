package render

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"skyshade/pkg/core"
)

// fillRGBA converts display colors into opaque RGBA pixels in buf.
// Channels are clamped to [0, 1]; non-finite values become black.
func fillRGBA(buf []byte, cells []mgl32.Vec3) {
	for i, c := range cells {
		base := i * 4
		if !core.Finite(c[0], c[1], c[2]) {
			c = mgl32.Vec3{}
		}
		buf[base+0] = toByte(c[0])
		buf[base+1] = toByte(c[1])
		buf[base+2] = toByte(c[2])
		buf[base+3] = 255
	}
}

func toByte(v float32) uint8 {
	return uint8(core.Clamp01(v)*255 + 0.5)
}

// Image wraps an RGBA pixel buffer of the given size without copying.
func Image(buf []byte, w, h int) *image.RGBA {
	return &image.RGBA{Pix: buf, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
}
