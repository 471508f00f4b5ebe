package controls

import "github.com/smasonuk/gosie3d/internal/config"

// Limits of the range parameters, shared with config validation.
const (
	SpeedMax     = config.SpeedMax
	AngleMax     = config.AngleMax
	PenumbraMax  = config.PenumbraMax
	IntensityMax = config.IntensityMax
)

// NewOptionsPanel registers every field of opts. The frame loop reads opts each
// tick, so the controls need no change callbacks.
func NewOptionsPanel(opts *config.Options) *Panel {
	p := NewPanel()
	p.AddColor(config.SphereColor, &opts.SphereColor, nil)
	p.AddBool(config.Wireframe, &opts.Wireframe, nil)
	p.AddRange(config.Speed, &opts.Speed, 0, SpeedMax, nil)
	p.AddRange(config.Angle, &opts.Angle, 0, AngleMax, nil)
	p.AddRange(config.Penumbra, &opts.Penumbra, 0, PenumbraMax, nil)
	p.AddRange(config.Intensity, &opts.Intensity, 0, IntensityMax, nil)
	return p
}
