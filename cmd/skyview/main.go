//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"skyshade/internal/app"
	"skyshade/internal/core"
	"skyshade/internal/pipeline"
	_ "skyshade/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	shading := pipeline.DefaultConfig()
	shading.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Scenes()[cfg.Scene]
	if !ok {
		log.Fatalf("unknown scene %q (have %v)", cfg.Scene, core.SceneNames())
	}

	scene, err := factory(cfg.SceneConfig(shading.Parameters().Map()))
	if err != nil {
		log.Fatalf("build scene %q: %v", cfg.Scene, err)
	}
	scene.Reset(cfg.Seed)

	game := app.New(scene, cfg)
	size := scene.Size()

	ebiten.SetWindowTitle("skyshade: " + scene.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+max(cfg.Panel, 0), size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
