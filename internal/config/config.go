// Package config holds the settings of the scene demos and the parameter set
// the control panel edits.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

const (
	VariantBasic = "basic"
	VariantQuad  = "quad"
	VariantModel = "model"
)

// Control panel parameter names.
const (
	SphereColor = "sphereColor"
	Wireframe   = "wireframe"
	Speed       = "speed"
	Angle       = "angle"
	Penumbra    = "penumbra"
	Intensity   = "intensity"
)

// Upper limits of the range options. All of them start at 0.
const (
	SpeedMax     = 0.1
	AngleMax     = 1
	PenumbraMax  = 1
	IntensityMax = 100000
)

var ErrInvalid = errors.New("invalid config")

// Options is the parameter set: the values the control panel edits and the
// frame loop reads.
type Options struct {
	SphereColor string  `toml:"sphereColor"`
	Wireframe   bool    `toml:"wireframe"`
	Speed       float64 `toml:"speed"`
	Angle       float64 `toml:"angle"`
	Penumbra    float64 `toml:"penumbra"`
	Intensity   float64 `toml:"intensity"`
}

// Value returns the option with the given panel name.
func (o *Options) Value(name string) (any, bool) {
	switch name {
	case SphereColor:
		return o.SphereColor, true
	case Wireframe:
		return o.Wireframe, true
	case Speed:
		return o.Speed, true
	case Angle:
		return o.Angle, true
	case Penumbra:
		return o.Penumbra, true
	case Intensity:
		return o.Intensity, true
	}
	return nil, false
}

// Validate reports every option outside its range and a sphere color that is
// not #rgb or #rrggbb.
func (o *Options) Validate() []string {
	var problems []string
	if err := ValidateColor(o.SphereColor); err != nil {
		problems = append(problems, fmt.Sprintf("%s: %v", SphereColor, err))
	}
	for _, r := range []struct {
		name  string
		value float64
		max   float64
	}{
		{Speed, o.Speed, SpeedMax},
		{Angle, o.Angle, AngleMax},
		{Penumbra, o.Penumbra, PenumbraMax},
		{Intensity, o.Intensity, IntensityMax},
	} {
		if !(r.value >= 0 && r.value <= r.max) {
			problems = append(problems, fmt.Sprintf("%s %v not in [0, %v]", r.name, r.value, r.max))
		}
	}
	return problems
}

// ValidateColor accepts #rgb and #rrggbb.
func ValidateColor(s string) error {
	if len(s) != 4 && len(s) != 7 {
		return fmt.Errorf("%q is not #rgb or #rrggbb", s)
	}
	_, err := colorful.Hex(s)
	return err
}

// Names lists the options in panel order.
func Names() []string {
	return []string{SphereColor, Wireframe, Speed, Angle, Penumbra, Intensity}
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type Camera struct {
	Fov      float64    `toml:"fov"`
	Near     float64    `toml:"near"`
	Far      float64    `toml:"far"`
	Position [3]float64 `toml:"position"`
}

type Scene struct {
	Amplitude       float64 `toml:"amplitude"`
	FogDensity      float64 `toml:"fogDensity"`
	FogColor        string  `toml:"fogColor"`
	Background      string  `toml:"background"` // image path, empty for a plain color
	BackgroundColor string  `toml:"backgroundColor"`
	ModelPath       string  `toml:"model"`
	SphereSegments  int     `toml:"sphereSegments"`
	PlaneSegments   int     `toml:"planeSegments"`
}

type Config struct {
	Variant string  `toml:"variant"`
	Window  Window  `toml:"window"`
	Camera  Camera  `toml:"camera"`
	Scene   Scene   `toml:"scene"`
	Options Options `toml:"options"`
}

// DefaultOptions returns the parameter set the panel starts with.
func DefaultOptions() Options {
	return Options{
		SphereColor: "#ffea00",
		Wireframe:   false,
		Speed:       0.01,
		Angle:       0.2,
		Penumbra:    0,
		Intensity:   100000,
	}
}

func Default() *Config {
	return &Config{
		Variant: VariantBasic,
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "gosie3d scene",
		},
		Camera: Camera{
			Fov:      75,
			Near:     0.1,
			Far:      1000,
			Position: [3]float64{-10, 30, 30},
		},
		Scene: Scene{
			Amplitude:       10,
			FogDensity:      0.01,
			FogColor:        "#ffffff",
			BackgroundColor: "#000000",
			SphereSegments:  50,
			PlaneSegments:   30,
		},
		Options: DefaultOptions(),
	}
}

// Load reads a TOML file over the defaults. Keys missing from the file keep
// their default value and unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return nil, fmt.Errorf("decoding: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var problems []string
	switch c.Variant {
	case VariantBasic, VariantQuad, VariantModel:
	default:
		problems = append(problems, fmt.Sprintf("unknown variant %q", c.Variant))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		problems = append(problems, fmt.Sprintf("window size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		problems = append(problems, fmt.Sprintf("camera fov %v", c.Camera.Fov))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		problems = append(problems, fmt.Sprintf("camera near/far %v/%v", c.Camera.Near, c.Camera.Far))
	}
	if c.Scene.FogDensity < 0 {
		problems = append(problems, fmt.Sprintf("fog density %v", c.Scene.FogDensity))
	}
	if !(c.Scene.Amplitude >= 0) {
		problems = append(problems, fmt.Sprintf("amplitude %v", c.Scene.Amplitude))
	}
	problems = append(problems, c.Options.Validate()...)
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, ", "))
	}
	return nil
}
