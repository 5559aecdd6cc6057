package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"skyshade/internal/pipeline"
	"skyshade/pkg/core"
	"skyshade/pkg/lighting"
	"skyshade/pkg/tonemap"
	"skyshade/pkg/water"
)

type combo struct {
	clouds    string
	weighting string
	wave      water.WaveMode
	curve     tonemap.Curve
	env       core.Env
}

func (c combo) String() string {
	env := c.env.Realm.String()
	if c.env.Underwater {
		env += "+underwater"
	}
	return fmt.Sprintf("clouds=%s weighting=%s wave=%s curve=%s env=%s", c.clouds, c.weighting, c.wave, c.curve, env)
}

type stageCounts struct {
	sky, terrain, water, actor int
}

func (s stageCounts) total() int { return s.sky + s.terrain + s.water + s.actor }

type comboResult struct {
	combo   combo
	bad     stageCounts
	example string
}

func main() {
	samples := flag.Int("samples", 2000, "random fragments per combination")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seed := flag.Int64("seed", 1337, "seed for fragment generation")
	base := pipeline.DefaultConfig()
	base.Bind(flag.CommandLine)
	flag.Parse()

	envs := []core.Env{
		{},
		{Underwater: true},
		{Realm: core.RealmNether},
		{Realm: core.RealmEnd},
	}
	var combos []combo
	for _, model := range []string{"billboard", "volumetric"} {
		for _, weighting := range lighting.Weightings() {
			for _, wave := range []water.WaveMode{water.WaveOff, water.WaveBump, water.WaveNoise} {
				for _, curve := range tonemap.Curves() {
					for _, env := range envs {
						combos = append(combos, combo{model, weighting, wave, curve, env})
					}
				}
			}
		}
	}

	fmt.Printf("Checking %d combinations (%d workers, %d samples each)\n", len(combos), *workers, *samples)

	jobs := make(chan combo)
	results := make(chan comboResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				results <- runCombo(base, c, *samples, *seed)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, c := range combos {
			jobs <- c
		}
		close(jobs)
	}()

	start := time.Now()
	var failed []comboResult
	var totals stageCounts
	for res := range results {
		totals.sky += res.bad.sky
		totals.terrain += res.bad.terrain
		totals.water += res.bad.water
		totals.actor += res.bad.actor
		if res.bad.total() > 0 {
			failed = append(failed, res)
		}
	}
	elapsed := time.Since(start)

	if len(failed) == 0 {
		fmt.Printf("All stages finite across %d fragments (elapsed %s)\n", len(combos)*(*samples), elapsed.Round(time.Millisecond))
		return
	}

	sort.Slice(failed, func(i, j int) bool { return failed[i].bad.total() > failed[j].bad.total() })
	fmt.Printf("\nNon-finite outputs: sky=%d terrain=%d water=%d actor=%d (elapsed %s)\n",
		totals.sky, totals.terrain, totals.water, totals.actor, elapsed.Round(time.Millisecond))
	for i := 0; i < len(failed) && i < 10; i++ {
		res := failed[i]
		fmt.Printf("%2d) %s sky=%d terrain=%d water=%d actor=%d first: %s\n",
			i+1, res.combo, res.bad.sky, res.bad.terrain, res.bad.water, res.bad.actor, res.example)
	}
	os.Exit(1)
}

func runCombo(base pipeline.Config, c combo, samples int, seed int64) comboResult {
	cfg := base
	cfg.CloudModel = c.clouds
	cfg.Weighting = c.weighting
	cfg.Water.Wave = c.wave
	cfg.Tonemap.Curve = c.curve
	cfg.PBR = true
	res := comboResult{combo: c}

	p, err := pipeline.New(cfg)
	if err != nil {
		res.bad.sky = samples
		res.example = err.Error()
		return res
	}

	rng := core.NewRNG(seed)
	note := func(stage string, f core.Frame, v mgl32.Vec3) {
		if res.example == "" {
			res.example = fmt.Sprintf("%s t=%.2f rain=%.2f fog=%v -> %v", stage, f.Time, f.Rain, f.Fog, v)
		}
	}
	for i := 0; i < samples; i++ {
		f := randomFrame(rng, c.env)
		colors := p.Colors(f)
		view := rng.Direction()

		if out := p.ShadeSky(view, f, colors); !finite(out.Color) {
			res.bad.sky++
			note("sky", f, out.Color)
		}

		down := mgl32.Vec3{view[0], -mgl32.Abs(view[1]) - 0.01, view[2]}
		down = core.Normalize(down)
		dist := rng.Range(0.5, f.RenderDistance)
		light := randomLight(rng)
		tiled := rng.Vec3(-500, 500)
		mist := rng.Vec3(0, 1).Vec4(rng.Unit())

		terrain := p.ShadeTerrain(pipeline.Terrain{
			Albedo:   rng.Vec3(0, 1).Vec4(1),
			Light:    light,
			WorldPos: down.Mul(dist),
			ClipPos:  mgl32.Vec3{rng.Range(-1, 1), rng.Range(-1, 1), dist},
			View:     down,
			Tiled:    tiled,
			Chunk:    chunkOf(tiled),
			CamDist:  dist,
			Mist:     mist,
		}, f, colors)
		if !finite(terrain.Color) {
			res.bad.terrain++
			note("terrain", f, terrain.Color)
		}

		surf := p.ShadeWater(pipeline.Water{
			Surface: water.Input{
				WorldPos:    down.Mul(dist),
				Color:       rng.Vec3(0, 1).Vec4(rng.Range(0.3, 1)),
				VertexAlpha: rng.Range(0.3, 1),
				View:        down,
				Chunk:       chunkOf(tiled),
				Tiled:       tiled,
				FractY:      rng.Unit(),
				Lit:         light.Lit,
				CamDist:     dist,
			},
			Light: light,
			Mist:  mist,
		}, f, colors)
		if !finite(surf.Color) || !core.Finite(surf.Alpha) {
			res.bad.water++
			note("water", f, surf.Color)
		}

		actor := p.ShadeActor(pipeline.Actor{
			Actor: lighting.Actor{
				Pos:       down.Mul(dist),
				Normal:    rng.Direction().Vec4(0),
				World:     mgl32.Ident4(),
				TileLight: mgl32.Vec4{light.LightMap[0], 0, light.LightMap[1], 1},
			},
			Albedo:    rng.Vec3(0, 1).Vec4(1),
			View:      down,
			SunDir:    rng.Direction(),
			Metallic:  rng.Unit(),
			Roughness: rng.Range(0.05, 1),
			Mist:      mist,
		}, f, colors)
		if !finite(actor.Color) {
			res.bad.actor++
			note("actor", f, actor.Color)
		}
	}
	return res
}

func randomFrame(rng *core.RNG, env core.Env) core.Frame {
	f := core.Frame{
		Time:           rng.Range(0, 10000),
		Fog:            rng.Vec3(0, 1),
		RenderDistance: rng.Range(16, 512),
		Env:            env,
	}
	if rng.Bool() {
		f.Rain = rng.Unit()
	}
	return f
}

func randomLight(rng *core.RNG) lighting.Fragment {
	lm := mgl32.Vec2{rng.Unit(), rng.Unit()}
	return lighting.Fragment{
		Color:    rng.Vec3(0, 1),
		LightMap: lm,
		Lit:      lm,
		Shade:    rng.Unit(),
		Foliage:  rng.Bool(),
	}
}

func chunkOf(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{p[0] - 16*core.Floor(p[0]/16), p[1] - core.Floor(p[1]), p[2] - 16*core.Floor(p[2]/16)}
}

func finite(v mgl32.Vec3) bool { return core.Finite(v[0], v[1], v[2]) }
