package render

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"

	icore "skyshade/internal/core"
	"skyshade/internal/pipeline"
	"skyshade/pkg/core"
)

// Preset fixes the frame inputs that a real host would read from the world.
type Preset struct {
	Name string
	Fog  mgl32.Vec3
	Rain float32
	Env  core.Env
	// Pitch tilts the camera; underwater looks down at the pool floor.
	Pitch float32
}

var presets = map[string]Preset{
	"day":        {Name: "day", Fog: mgl32.Vec3{0.7, 0.8, 0.95}, Pitch: 0.12},
	"dusk":       {Name: "dusk", Fog: mgl32.Vec3{0.75, 0.42, 0.3}, Pitch: 0.08},
	"night":      {Name: "night", Fog: mgl32.Vec3{0.02, 0.03, 0.06}, Pitch: 0.05},
	"rain":       {Name: "rain", Fog: mgl32.Vec3{0.42, 0.46, 0.5}, Rain: 1, Pitch: 0.12},
	"nether":     {Name: "nether", Fog: mgl32.Vec3{0.33, 0.08, 0.04}, Env: core.Env{Realm: core.RealmNether}, Pitch: 0.15},
	"end":        {Name: "end", Fog: mgl32.Vec3{0.06, 0.03, 0.09}, Env: core.Env{Realm: core.RealmEnd}, Pitch: 0.1},
	"underwater": {Name: "underwater", Fog: mgl32.Vec3{0.1, 0.3, 0.5}, Env: core.Env{Underwater: true}, Pitch: 0.3},
}

// Presets lists the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options configures a preview.
type Options struct {
	Width          int
	Height         int
	Workers        int
	TPS            int
	Speed          float32
	RenderDistance float32
	// Travel is how fast the camera moves forward, in blocks per shader second.
	Travel float32
}

// DefaultOptions returns the standard preview settings.
func DefaultOptions() Options {
	return Options{Width: 320, Height: 180, TPS: 30, Speed: 1, RenderDistance: 96, Travel: 1.5}
}

// optionsFromMap reads the preview keys; anything else is left to the pipeline.
func optionsFromMap(cfg map[string]string) Options {
	o := DefaultOptions()
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			o.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			o.Height = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			o.Workers = parsed
		}
	}
	if v, ok := cfg["tps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			o.TPS = parsed
		}
	}
	if v, ok := cfg["speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			o.Speed = float32(parsed)
		}
	}
	if v, ok := cfg["render_distance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil && parsed > 0 {
			o.RenderDistance = float32(parsed)
		}
	}
	return o
}

// Preview is an animated scene for one preset. Tunable setters rebuild the
// pipeline; the pipeline itself is never mutated.
type Preview struct {
	preset   Preset
	opts     Options
	cfg      pipeline.Config
	pipe     *pipeline.Pipeline
	renderer *Renderer
	clock    *icore.Clock
	cam      Camera
	pix      []byte
}

// NewPreview builds a preview of preset with the given pipeline config.
func NewPreview(name string, cfg pipeline.Config, opts Options) (*Preview, error) {
	preset, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (have %v)", name, Presets())
	}
	pipe, err := pipeline.New(cfg)
	if err != nil {
		return nil, err
	}
	p := &Preview{
		preset:   preset,
		opts:     opts,
		cfg:      cfg,
		pipe:     pipe,
		renderer: NewRenderer(opts.Width, opts.Height, opts.Workers),
		clock:    icore.NewClock(opts.TPS, opts.Speed),
		cam:      Camera{Pitch: preset.Pitch},
	}
	p.render()
	return p, nil
}

// Name returns the preset name.
func (p *Preview) Name() string { return p.preset.Name }

// Size returns the frame size.
func (p *Preview) Size() icore.Size { return icore.Size{W: p.renderer.W, H: p.renderer.H} }

// Reset picks a new start time and camera heading from seed.
func (p *Preview) Reset(seed int64) {
	rng := core.NewRNG(seed)
	p.clock.Set(rng.Range(0, 600))
	p.cam = Camera{Yaw: rng.Range(-0.35, 0.35), Pitch: p.preset.Pitch}
	p.render()
}

// Step advances the clock by one tick and renders.
func (p *Preview) Step() {
	p.clock.Tick()
	p.render()
}

// Pixels returns the last rendered frame.
func (p *Preview) Pixels() []byte { return p.pix }

// Frame returns the inputs of the current frame.
func (p *Preview) Frame() core.Frame {
	return core.Frame{
		Time:           p.clock.Time,
		Rain:           p.preset.Rain,
		Fog:            p.preset.Fog,
		RenderDistance: p.opts.RenderDistance,
		Env:            p.preset.Env,
	}
}

// Palette returns the sky colors the pipeline derives for the current frame.
func (p *Preview) Palette() core.SkyColors { return p.pipe.Colors(p.Frame()) }

// Seek jumps the clock to t and renders.
func (p *Preview) Seek(t float32) {
	p.clock.Set(t)
	p.render()
}

func (p *Preview) render() {
	cam := p.cam
	cam.Travel = p.clock.Time * p.opts.Travel
	p.pix = p.renderer.Render(p.pipe, p.Frame(), cam)
}

// Config returns the active pipeline configuration.
func (p *Preview) Config() pipeline.Config { return p.cfg }

// Parameters reports the pipeline tunables.
func (p *Preview) Parameters() icore.ParameterSnapshot { return p.cfg.Parameters() }

// ParameterControls lists the HUD-adjustable tunables.
func (p *Preview) ParameterControls() []icore.ParameterControl { return p.cfg.ParameterControls() }

// SetFloatParameter updates a tunable and rebuilds the pipeline.
func (p *Preview) SetFloatParameter(key string, value float64) bool {
	next := p.cfg
	if !next.SetFloatParameter(key, value) {
		return false
	}
	return p.rebuild(next)
}

// SetIntParameter updates a tunable and rebuilds the pipeline.
func (p *Preview) SetIntParameter(key string, value int) bool {
	next := p.cfg
	if !next.SetIntParameter(key, value) {
		return false
	}
	return p.rebuild(next)
}

func (p *Preview) rebuild(cfg pipeline.Config) bool {
	pipe, err := pipeline.New(cfg)
	if err != nil {
		return false
	}
	p.cfg, p.pipe = cfg, pipe
	p.render()
	return true
}

func init() {
	for _, name := range Presets() {
		name := name
		icore.Register(name, func(cfg map[string]string) (icore.Scene, error) {
			return NewPreview(name, pipeline.FromMap(cfg), optionsFromMap(cfg))
		})
	}
}
