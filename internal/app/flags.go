package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters shared by the preview tools.
type Config struct {
	Scene   string
	Width   int
	Height  int
	Scale   int
	TPS     int
	Seed    int64
	Workers int
	// Panel is the HUD width in screen pixels; 0 hides it.
	Panel int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scene: "day", Width: 320, Height: 180, Scale: 3, TPS: 30, Seed: 42, Panel: 280}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Scene, "scene", c.Scene, "preview preset to render")
	fs.IntVar(&c.Width, "width", c.Width, "frame width in shaded pixels")
	fs.IntVar(&c.Height, "height", c.Height, "frame height in shaded pixels")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for camera and clock jitter")
	fs.IntVar(&c.Workers, "workers", c.Workers, "render workers (0 = one per CPU)")
	fs.IntVar(&c.Panel, "panel", c.Panel, "HUD panel width in pixels (0 hides it)")
}

// SceneConfig merges the frame settings into a pipeline parameter map, the
// form scene factories accept.
func (c *Config) SceneConfig(params map[string]string) map[string]string {
	out := make(map[string]string, len(params)+4)
	for k, v := range params {
		out[k] = v
	}
	out["w"] = strconv.Itoa(c.Width)
	out["h"] = strconv.Itoa(c.Height)
	out["tps"] = strconv.Itoa(c.TPS)
	out["workers"] = strconv.Itoa(c.Workers)
	return out
}
