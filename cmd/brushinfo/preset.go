package main

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/brush"
	"github.com/gogpu/brush/internal/mask"
)

// preset is the YAML form of a procedural tip.
//
//	name: soft-round
//	shape: circle
//	type: curve
//	diameter: 24
//	ratio: 0.8
//	fade: {horizontal: 0.5, vertical: 0.5}
//	falloff: in-out-sine
type preset struct {
	Name       string   `yaml:"name"`
	Shape      string   `yaml:"shape"`
	Type       string   `yaml:"type"`
	Diameter   float64  `yaml:"diameter"`
	Ratio      *float64 `yaml:"ratio"`
	Fade       fade     `yaml:"fade"`
	Spikes     int      `yaml:"spikes"`
	AntiAlias  *bool    `yaml:"antialias"`
	Density    *float64 `yaml:"density"`
	Randomness float64  `yaml:"randomness"`
	Falloff    string   `yaml:"falloff"`
	Spacing    float64  `yaml:"spacing"`
	Softness   float64  `yaml:"softness"`
}

type fade struct {
	Horizontal *float64 `yaml:"horizontal"`
	Vertical   *float64 `yaml:"vertical"`
}

// parsePreset decodes data and fills unset fields from the default mask.
func parsePreset(data []byte) (preset, brush.MaskParams, error) {
	var pr preset
	if err := yaml.Unmarshal(data, &pr); err != nil {
		return pr, brush.MaskParams{}, fmt.Errorf("preset: %w", err)
	}

	p := brush.DefaultMaskParams()
	var err error
	if p.Shape, err = mask.ParseShape(pr.Shape); err != nil {
		return pr, p, err
	}
	if p.Type, err = mask.ParseType(pr.Type); err != nil {
		return pr, p, err
	}
	if pr.Diameter != 0 {
		p.Diameter = pr.Diameter
	}
	setIf(&p.Ratio, pr.Ratio)
	setIf(&p.HorizontalFade, pr.Fade.Horizontal)
	setIf(&p.VerticalFade, pr.Fade.Vertical)
	setIf(&p.Density, pr.Density)
	setIf(&p.AntiAlias, pr.AntiAlias)
	if pr.Spikes != 0 {
		p.Spikes = pr.Spikes
	}
	p.Randomness = pr.Randomness
	if pr.Falloff != "" {
		fn, ok := mask.Falloff(pr.Falloff)
		if !ok {
			return pr, p, fmt.Errorf("%w: falloff %q", mask.ErrInvalidParams, pr.Falloff)
		}
		p.Falloff = fn
	}
	if pr.Name == "" {
		pr.Name = "preset"
	}
	return pr, p, p.Validate()
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// tip builds the procedural tip described by the preset.
func (pr preset) tip(p brush.MaskParams, opts ...brush.Option) *brush.Tip {
	if pr.Spacing > 0 {
		opts = append(opts, brush.WithSpacing(pr.Spacing))
	}
	t := brush.NewProceduralTip(pr.Name, p, opts...)
	if pr.Softness > 0 {
		t.SetSoftness(pr.Softness)
	}
	return t
}
