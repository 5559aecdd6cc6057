package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"skyshade/internal/pipeline"
	"skyshade/pkg/core"
	"skyshade/pkg/tonemap"
)

type levelList []float32

func (l *levelList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
	return strings.Join(parts, ",")
}

func (l *levelList) Set(value string) error {
	for _, s := range strings.Split(value, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
		if err != nil {
			return fmt.Errorf("bad level %q: %w", s, err)
		}
		*l = append(*l, float32(v))
	}
	return nil
}

func main() {
	cfg := pipeline.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	var levels levelList
	flag.Var(&levels, "levels", "comma-separated linear grey levels to map (repeatable)")
	only := flag.Bool("only", false, "print only the configured curve")
	flag.Parse()

	if len(levels) == 0 {
		levels = levelList{0, 0.02, 0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8}
	}

	curves := tonemap.Curves()
	if *only {
		curves = []tonemap.Curve{cfg.Tonemap.Curve}
	}

	fmt.Printf("Exposure %.2f, contrast %.2f, saturation %.2f\n\n",
		cfg.Tonemap.Exposure, cfg.Tonemap.Contrast, cfg.Tonemap.Saturation)
	fmt.Printf("%-20s", "curve")
	for _, v := range levels {
		fmt.Printf("%8.3g", v)
	}
	fmt.Printf("%10s\n", "inv err")

	for _, curve := range curves {
		params := cfg.Tonemap
		params.Curve = curve
		m := tonemap.New(params)
		marker := " "
		if curve == cfg.Tonemap.Curve {
			marker = "*"
		}
		fmt.Printf("%s%-19s", marker, curve)
		for _, v := range levels {
			out := m.Map(core.Splat(v))
			fmt.Printf("%8.3f", out[1])
		}
		fmt.Printf("%10.4f\n", inverseError(m))
	}
}

// inverseError is the worst round trip error of Inverse over dark greys, the
// range the nether fog palette relies on.
func inverseError(m *tonemap.Mapper) float32 {
	var worst float32
	for v := float32(0.01); v <= 0.2; v += 0.01 {
		graded := m.Map(core.Splat(v))
		back := m.Map(m.Inverse(graded))
		diff := back.Sub(graded)
		worst = core.Max(worst, core.MaxComponent(mgl32.Vec3{mgl32.Abs(diff[0]), mgl32.Abs(diff[1]), mgl32.Abs(diff[2])}))
	}
	return worst
}
