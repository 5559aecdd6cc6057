package pipeline

import (
	"strconv"

	"skyshade/pkg/clouds"
	"skyshade/pkg/lighting"
	"skyshade/pkg/rain"
	"skyshade/pkg/sky"
	"skyshade/pkg/tonemap"
	"skyshade/pkg/water"
)

// Config selects the shading strategies and holds every kernel's constants.
type Config struct {
	CloudModel string
	// Weighting names the actor normal weighting.
	Weighting string
	Aurora    bool
	PBR       bool

	Clouds       clouds.Params
	AuroraParams sky.AuroraParams
	Palette      sky.PaletteParams
	Lighting     lighting.Params
	Water        water.Params
	Rain         rain.Params
	Tonemap      tonemap.Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		CloudModel:   "volumetric",
		Weighting:    "fancy",
		Aurora:       true,
		Clouds:       clouds.DefaultParams(),
		AuroraParams: sky.DefaultAuroraParams(),
		Palette:      sky.DefaultPaletteParams(),
		Lighting:     lighting.DefaultParams(),
		Water:        water.DefaultParams(),
		Rain:         rain.DefaultParams(),
		Tonemap:      tonemap.DefaultParams(),
	}
}

// floatField binds a tunable float to its key, label and HUD bounds.
type floatField struct {
	group string
	key   string
	label string
	ptr   func(*Config) *float32
	step  float64
	min   float64
	max   float64
}

var floatFields = []floatField{
	{"Clouds", "cloud_thickness", "Cloud thickness", func(c *Config) *float32 { return &c.Clouds.Thickness }, 0.1, 0.1, 8},
	{"Clouds", "cloud_rain_thickness", "Cloud rain thickness", func(c *Config) *float32 { return &c.Clouds.RainThickness }, 0.1, 0.1, 8},
	{"Clouds", "cloud_scale", "Cloud scale", func(c *Config) *float32 { return &c.Clouds.Scale }, 0.001, 0.001, 0.2},
	{"Clouds", "cloud_shape", "Cloud shape", func(c *Config) *float32 { return &c.Clouds.Shape }, 0.05, 0, 0.95},
	{"Clouds", "cloud_density", "Cloud density", func(c *Config) *float32 { return &c.Clouds.Density }, 1, 1, 100},
	{"Clouds", "cloud_velocity", "Cloud velocity", func(c *Config) *float32 { return &c.Clouds.Velocity }, 0.1, 0, 10},
	{"Clouds", "cloud_fluffiness", "Cloud fluffiness", func(c *Config) *float32 { return &c.Clouds.Fluffiness }, 0.05, 0, 1},
	{"Clouds", "cloud_billboard_speed", "Billboard speed", func(c *Config) *float32 { return &c.Clouds.BillboardSpeed }, 0.01, 0, 1},

	{"Aurora", "aurora_strength", "Aurora strength", func(c *Config) *float32 { return &c.AuroraParams.Strength }, 0.1, 0, 5},
	{"Aurora", "aurora_velocity", "Aurora velocity", func(c *Config) *float32 { return &c.AuroraParams.Velocity }, 0.01, 0, 1},
	{"Aurora", "aurora_scale", "Aurora scale", func(c *Config) *float32 { return &c.AuroraParams.Scale }, 0.005, 0.001, 0.5},
	{"Aurora", "aurora_width", "Aurora width", func(c *Config) *float32 { return &c.AuroraParams.Width }, 0.02, 0.01, 1},

	{"Lighting", "sun_intensity", "Sun intensity", func(c *Config) *float32 { return &c.Lighting.SunIntensity }, 0.05, 0, 10},
	{"Lighting", "torch_intensity", "Torch intensity", func(c *Config) *float32 { return &c.Lighting.TorchIntensity }, 0.05, 0, 5},
	{"Lighting", "night_brightness", "Night brightness", func(c *Config) *float32 { return &c.Lighting.NightBrightness }, 0.05, 0, 2},
	{"Lighting", "cave_brightness", "Cave brightness", func(c *Config) *float32 { return &c.Lighting.CaveBrightness }, 0.05, 0, 2},
	{"Lighting", "shadow_intensity", "Shadow intensity", func(c *Config) *float32 { return &c.Lighting.ShadowIntensity }, 0.05, 0, 1},
	{"Lighting", "shadow_sides", "Shadow sides", func(c *Config) *float32 { return &c.Lighting.ShadowSides }, 0.05, 0, 1},
	{"Lighting", "underwater_brightness", "Underwater brightness", func(c *Config) *float32 { return &c.Lighting.UnderwaterBrightness }, 0.05, 0, 3},
	{"Lighting", "caustic_intensity", "Caustic intensity", func(c *Config) *float32 { return &c.Lighting.CausticIntensity }, 0.1, 0, 5},
	{"Lighting", "underwater_wave", "Underwater wave", func(c *Config) *float32 { return &c.Lighting.UnderwaterWave }, 0.01, 0, 1},

	{"Water", "water_transparency", "Water transparency", func(c *Config) *float32 { return &c.Water.Transparency }, 0.01, 0, 1},
	{"Water", "water_bump", "Water bump", func(c *Config) *float32 { return &c.Water.Bump }, 0.005, 0, 0.5},
	{"Water", "water_cloud_reflection", "Water cloud reflection", func(c *Config) *float32 { return &c.Water.CloudReflection }, 0.05, 0, 4},
	{"Water", "moonlight_intensity", "Moonlight intensity", func(c *Config) *float32 { return &c.Water.MoonlightIntensity }, 0.05, 0, 2},

	{"Rain", "rain_mist_opacity", "Rain mist opacity", func(c *Config) *float32 { return &c.Rain.MistOpacity }, 0.01, 0, 1},
	{"Rain", "rain_wetness", "Ground wetness", func(c *Config) *float32 { return &c.Rain.Wetness }, 0.05, 0, 2},
	{"Rain", "rain_puddles", "Puddles", func(c *Config) *float32 { return &c.Rain.Puddles }, 0.05, 0, 1},
	{"Rain", "ground_reflection", "Forced ground reflection", func(c *Config) *float32 { return &c.Rain.GroundReflection }, 0.05, 0, 1},

	{"Grading", "exposure", "Exposure", func(c *Config) *float32 { return &c.Tonemap.Exposure }, 0.05, 0.05, 5},
	{"Grading", "contrast", "Contrast", func(c *Config) *float32 { return &c.Tonemap.Contrast }, 0.02, 0.1, 3},
	{"Grading", "saturation", "Saturation", func(c *Config) *float32 { return &c.Tonemap.Saturation }, 0.05, 0, 3},
}

func lookupFloat(key string) (floatField, bool) {
	for _, f := range floatFields {
		if f.key == key {
			return f, true
		}
	}
	return floatField{}, false
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Unparsable values leave the default in place.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["clouds"]; ok && v != "" {
		c.CloudModel = v
	}
	if v, ok := cfg["weighting"]; ok && v != "" {
		c.Weighting = v
	}
	if v, ok := cfg["aurora"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Aurora = parsed
		}
	}
	if v, ok := cfg["pbr"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.PBR = parsed
		}
	}
	if v, ok := cfg["blinking_torch"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Lighting.BlinkingTorch = parsed
		}
	}
	if v, ok := cfg["fog_fade"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Water.FogFade = parsed
		}
	}
	if v, ok := cfg["ground_aurora"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Rain.AuroraReflection = parsed
		}
	}
	if v, ok := cfg["wave"]; ok {
		if parsed, err := water.ParseWaveMode(v); err == nil {
			c.Water.Wave = parsed
		}
	}
	if v, ok := cfg["tonemap"]; ok {
		if parsed, err := tonemap.ParseCurve(v); err == nil {
			c.Tonemap.Curve = parsed
		}
	}
	if v, ok := cfg["cloud_steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Clouds.Steps = parsed
		}
	}
	for _, f := range floatFields {
		v, ok := cfg[f.key]
		if !ok {
			continue
		}
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			*f.ptr(&c) = float32(parsed)
		}
	}
	return c
}
