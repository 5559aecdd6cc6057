// Package clouds implements the two interchangeable cloud fields: cheap
// billboard value-noise clouds and raymarched volumetric clouds.
package clouds

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Sample is the result of evaluating a cloud field along one view ray.
type Sample struct {
	Color mgl32.Vec3
	// Alpha is the coverage in [0, 1].
	Alpha float32
	// Height is the brightness multiplier derived from where along the ray
	// the density sits (self shadow for billboards, density-weighted slab
	// height for volumes).
	Height float32
}

// Ray describes the view ray a cloud field is evaluated along.
type Ray struct {
	Dir  mgl32.Vec3
	Pos  mgl32.Vec3
	Time float32
	Rain float32
}

// Colors are the ambient colors a cloud field tints itself with.
type Colors struct {
	Zenith  mgl32.Vec3
	Horizon mgl32.Vec3
	Fog     mgl32.Vec3
}

// Model is the contract shared by every cloud field.
type Model interface {
	Name() string
	Render(r Ray, c Colors) Sample
	// ReflectionScale is the factor applied to clouds seen in water, given
	// the surface's own cloud reflection setting.
	ReflectionScale(surface float32) float32
}

// Params holds the tunables for both cloud models.
type Params struct {
	BillboardScale mgl32.Vec2
	BillboardSpeed float32

	Thickness     float32
	RainThickness float32
	Steps         int
	Scale         float32
	Shape         float32
	Density       float32
	Velocity      float32
	Fluffiness    float32
}

// DefaultParams returns the standard cloud configuration.
func DefaultParams() Params {
	return Params{
		BillboardScale: mgl32.Vec2{0.016, 0.022},
		BillboardSpeed: 0.04,
		Thickness:      2.3,
		RainThickness:  4.0,
		Steps:          40,
		Scale:          0.033,
		Shape:          0.65,
		Density:        25.0,
		Velocity:       0.8,
		Fluffiness:     0.1,
	}
}

// Factory constructs a Model from params.
type Factory func(p Params) Model

var models = map[string]Factory{}

// Register adds a cloud model factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	models[name] = f
}

// Names lists the registered model names in sorted order.
func Names() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the model registered under name.
func New(name string, p Params) (Model, error) {
	f, ok := models[name]
	if !ok {
		return nil, fmt.Errorf("unknown cloud model %q (have %v)", name, Names())
	}
	return f(p), nil
}
