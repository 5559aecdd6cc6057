package pipeline

import (
	"flag"
	"fmt"
	"math"
	"strconv"
	"strings"

	icore "skyshade/internal/core"
	"skyshade/pkg/clouds"
	"skyshade/pkg/lighting"
	"skyshade/pkg/tonemap"
	"skyshade/pkg/water"
)

// Parameters reports the configuration for the HUD and CLI summaries.
func (c *Config) Parameters() icore.ParameterSnapshot {
	groups := []icore.ParameterGroup{
		{
			Name: "Strategies",
			Params: []icore.Parameter{
				stringParam("clouds", "Cloud model", c.CloudModel),
				stringParam("weighting", "Actor normals", c.Weighting),
				boolParam("aurora", "Aurora", c.Aurora),
				boolParam("pbr", "PBR actors", c.PBR),
				boolParam("blinking_torch", "Blinking torch", c.Lighting.BlinkingTorch),
				stringParam("wave", "Water wave", c.Water.Wave.String()),
				boolParam("fog_fade", "Water fog fade", c.Water.FogFade),
				boolParam("ground_aurora", "Aurora in puddles", c.Rain.AuroraReflection),
				intParam("tonemap", "Tone curve", int(c.Tonemap.Curve)),
				intParam("cloud_steps", "Cloud steps", c.Clouds.Steps),
			},
		},
	}
	index := map[string]int{}
	for _, f := range floatFields {
		i, ok := index[f.group]
		if !ok {
			groups = append(groups, icore.ParameterGroup{Name: f.group})
			i = len(groups) - 1
			index[f.group] = i
		}
		groups[i].Params = append(groups[i].Params, floatParam(f.key, f.label, *f.ptr(c)))
	}
	return icore.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable values.
func (c *Config) ParameterControls() []icore.ParameterControl {
	controls := []icore.ParameterControl{
		{Key: "cloud_steps", Label: "Cloud steps", Type: icore.ParamTypeInt, Step: 4, Min: 1, Max: 128, HasMin: true, HasMax: true},
		{Key: "tonemap", Label: "Tone curve", Type: icore.ParamTypeInt, Step: 1, Min: 1, Max: float64(tonemap.CustomPBR), HasMin: true, HasMax: true},
	}
	for _, f := range floatFields {
		controls = append(controls, icore.ParameterControl{
			Key:    f.key,
			Label:  f.label,
			Type:   icore.ParamTypeFloat,
			Step:   f.step,
			Min:    f.min,
			Max:    f.max,
			HasMin: true,
			HasMax: true,
		})
	}
	return controls
}

// SetFloatParameter updates a float tunable, clamping to its bounds.
func (c *Config) SetFloatParameter(key string, value float64) bool {
	f, ok := lookupFloat(key)
	if !ok || math.IsNaN(value) {
		return false
	}
	value = math.Min(math.Max(value, f.min), f.max)
	*f.ptr(c) = float32(value)
	return true
}

// SetIntParameter updates an integer tunable, clamping to its bounds.
func (c *Config) SetIntParameter(key string, value int) bool {
	switch key {
	case "cloud_steps":
		c.Clouds.Steps = max(1, min(value, 128))
	case "tonemap":
		c.Tonemap.Curve = tonemap.Curve(max(1, min(value, int(tonemap.CustomPBR))))
	default:
		return false
	}
	return true
}

// Validate reports strategy names that New would reject.
func (c *Config) Validate() error {
	if _, err := clouds.New(c.CloudModel, c.Clouds); err != nil {
		return err
	}
	if _, err := lighting.Weighting(c.Weighting); err != nil {
		return err
	}
	return nil
}

// Bind attaches the strategy selections and grading to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.CloudModel, "clouds", c.CloudModel, fmt.Sprintf("cloud model %v", clouds.Names()))
	fs.StringVar(&c.Weighting, "weighting", c.Weighting, fmt.Sprintf("actor normal weighting %v", lighting.Weightings()))
	fs.BoolVar(&c.Aurora, "aurora", c.Aurora, "draw the aurora")
	fs.BoolVar(&c.PBR, "pbr", c.PBR, "add a Cook-Torrance term to actors")
	fs.BoolVar(&c.Lighting.BlinkingTorch, "blinking-torch", c.Lighting.BlinkingTorch, "flicker torch light")
	fs.BoolVar(&c.Water.FogFade, "fog-fade", c.Water.FogFade, "fade water alpha with the base color")
	fs.BoolVar(&c.Rain.AuroraReflection, "ground-aurora", c.Rain.AuroraReflection, "reflect the aurora in puddles")
	fs.IntVar(&c.Clouds.Steps, "cloud-steps", c.Clouds.Steps, "volumetric cloud raymarch steps")
	fs.Func("wave", "water wave mode (off, bump, noise)", func(s string) error {
		m, err := water.ParseWaveMode(s)
		if err != nil {
			return err
		}
		c.Water.Wave = m
		return nil
	})
	fs.Func("tonemap", "tone curve name or number", func(s string) error {
		curve, err := tonemap.ParseCurve(s)
		if err != nil {
			return err
		}
		c.Tonemap.Curve = curve
		return nil
	})
	fs.Func("set", "override a tunable as key=value (repeatable)", func(s string) error {
		key, val, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", s)
		}
		if _, ok := lookupFloat(key); !ok {
			return fmt.Errorf("unknown tunable %q", key)
		}
		parsed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("tunable %s: %w", key, err)
		}
		c.SetFloatParameter(key, parsed)
		return nil
	})
}

func stringParam(key, label, value string) icore.Parameter {
	return icore.Parameter{Key: key, Label: label, Type: icore.ParamTypeString, Value: value}
}

func boolParam(key, label string, value bool) icore.Parameter {
	return icore.Parameter{Key: key, Label: label, Type: icore.ParamTypeBool, Value: strconv.FormatBool(value)}
}

func intParam(key, label string, value int) icore.Parameter {
	return icore.Parameter{Key: key, Label: label, Type: icore.ParamTypeInt, Value: strconv.Itoa(value)}
}

func floatParam(key, label string, value float32) icore.Parameter {
	return icore.Parameter{
		Key:   key,
		Label: label,
		Type:  icore.ParamTypeFloat,
		Value: strconv.FormatFloat(float64(value), 'f', -1, 32),
	}
}
