package core

import "sort"

// Size describes the dimensions of a preview frame.
type Size struct {
	W int
	H int
}

// Scene is an animated preview rendered through the shading pipeline.
type Scene interface {
	Name() string
	Size() Size
	// Reset re-seeds the scene's weather and camera jitter and rewinds its clock.
	Reset(seed int64)
	// Step advances the clock and re-renders the frame.
	Step()
	// Pixels returns the last frame as tightly packed RGBA.
	Pixels() []byte
}

// Factory constructs a Scene using an optional configuration map.
type Factory func(cfg map[string]string) (Scene, error)

var scenes = map[string]Factory{}

// Register adds a scene factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	scenes[name] = f
}

// Scenes exposes the registry of available scene factories.
func Scenes() map[string]Factory {
	return scenes
}

// SceneNames lists registered scenes in sorted order.
func SceneNames() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
