// Package controls binds named parameters to fields of the parameter set and
// applies edits to them, whether they come from widgets or a watched file.
package controls

import (
	"errors"
	"fmt"
	"math"

	"github.com/smasonuk/gosie3d/internal/config"
)

var (
	ErrUnknownControl = errors.New("unknown control")
	ErrInvalidValue   = errors.New("invalid value")
)

type Kind int

const (
	KindColor Kind = iota
	KindBool
	KindRange
)

func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindBool:
		return "bool"
	case KindRange:
		return "range"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Control is one registered parameter.
type Control struct {
	Name string
	Kind Kind
	Min  float64 // range only
	Max  float64 // range only

	color    *string
	boolean  *bool
	number   *float64
	onChange func(any)
}

// Value returns the bound field's current value.
func (c *Control) Value() any {
	switch c.Kind {
	case KindColor:
		return *c.color
	case KindBool:
		return *c.boolean
	default:
		return *c.number
	}
}

// Panel is the set of registered controls. It is not safe for concurrent use;
// edits happen on the game goroutine.
type Panel struct {
	controls []*Control
	byName   map[string]*Control
}

func NewPanel() *Panel {
	return &Panel{byName: make(map[string]*Control)}
}

func (p *Panel) add(c *Control) *Control {
	if old, ok := p.byName[c.Name]; ok {
		*old = *c
		return old
	}
	p.controls = append(p.controls, c)
	p.byName[c.Name] = c
	return c
}

// AddColor binds a hex color field. onChange may be nil.
func (p *Panel) AddColor(name string, field *string, onChange func(string)) *Control {
	c := &Control{Name: name, Kind: KindColor, color: field}
	if onChange != nil {
		c.onChange = func(v any) { onChange(v.(string)) }
	}
	return p.add(c)
}

// AddBool binds a boolean field. onChange may be nil.
func (p *Panel) AddBool(name string, field *bool, onChange func(bool)) *Control {
	c := &Control{Name: name, Kind: KindBool, boolean: field}
	if onChange != nil {
		c.onChange = func(v any) { onChange(v.(bool)) }
	}
	return p.add(c)
}

// AddRange binds a number field limited to [min, max]. onChange may be nil.
func (p *Panel) AddRange(name string, field *float64, min, max float64, onChange func(float64)) *Control {
	c := &Control{Name: name, Kind: KindRange, Min: min, Max: max, number: field}
	if onChange != nil {
		c.onChange = func(v any) { onChange(v.(float64)) }
	}
	return p.add(c)
}

// Controls returns the controls in registration order.
func (p *Panel) Controls() []*Control {
	return p.controls
}

func (p *Panel) Get(name string) (*Control, bool) {
	c, ok := p.byName[name]
	return c, ok
}

// Set writes value to the named field and runs its change callback. Range
// values are clamped. On error the field is left unchanged.
func (p *Panel) Set(name string, value any) error {
	c, ok := p.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}

	var applied any
	switch c.Kind {
	case KindColor:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s wants a color string, got %T", ErrInvalidValue, name, value)
		}
		if err := ValidateColor(s); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, name, err)
		}
		*c.color = s
		applied = s
	case KindBool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s wants a bool, got %T", ErrInvalidValue, name, value)
		}
		*c.boolean = b
		applied = b
	case KindRange:
		f, ok := toFloat(value)
		if !ok || math.IsNaN(f) {
			return fmt.Errorf("%w: %s wants a number, got %T", ErrInvalidValue, name, value)
		}
		f = min(max(f, c.Min), c.Max)
		*c.number = f
		applied = f
	}

	if c.onChange != nil {
		c.onChange(applied)
	}
	return nil
}

// ValidateColor accepts #rgb and #rrggbb.
func ValidateColor(s string) error {
	return config.ValidateColor(s)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
