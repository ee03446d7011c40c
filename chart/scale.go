// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"math"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/vec"
)

// Defaults for ScaleOptions.
const (
	DefaultMaxTicks   = 10
	DefaultLogEpsilon = 0.001
)

// ScaleOptions tunes scale construction. Zero fields take their
// defaults.
type ScaleOptions struct {
	// MaxTicks is the maximum number of major ticks on a numeric
	// scale.
	MaxTicks int

	// LogEpsilon replaces the low end of a logarithmic domain
	// that is zero or negative.
	LogEpsilon float64
}

func (o ScaleOptions) withDefaults() ScaleOptions {
	if o.MaxTicks < 2 {
		o.MaxTicks = DefaultMaxTicks
	}
	if !(o.LogEpsilon > 0) {
		o.LogEpsilon = DefaultLogEpsilon
	}
	return o
}

// A Scale maps values on one axis to pixel positions.
//
// Scales are immutable. They are rebuilt whenever their axis, data,
// or layout changes.
type Scale struct {
	Kind ScaleKind

	// Domain is the numeric domain of a Linear or Logarithmic
	// scale, after degenerate and non-positive domains have been
	// repaired.
	Domain Extent

	// Categories is the domain of an Ordinal scale: the distinct
	// non-null values on the axis in first-seen order.
	Categories []Value

	// Range is the pixel range. Domain.Min (or the first
	// category) maps to Range[0].
	Range Range

	// Ticks are the values at which to draw axis ticks.
	Ticks []Value

	m func(Value) float64
}

// Map returns the pixel position of v, or NaN if v cannot be placed
// on s.
func (s *Scale) Map(v Value) float64 {
	return s.m(v)
}

// MapChecked is like Map, but returns an error wrapping
// ErrUnmappable instead of NaN.
func (s *Scale) MapChecked(v Value) (float64, error) {
	y := s.m(v)
	if math.IsNaN(y) {
		return y, fmt.Errorf("%w: %v on %v scale", ErrUnmappable, v, s.Kind)
	}
	return y, nil
}

// A Tick is a labeled position on an axis.
type Tick struct {
	Value Value   `yaml:"value"`
	Pos   float64 `yaml:"pos"`
	Label string  `yaml:"label"`
}

// TickMarks returns s's ticks with their pixel positions and labels.
func (s *Scale) TickMarks() []Tick {
	ticks := make([]Tick, len(s.Ticks))
	for i, v := range s.Ticks {
		label := v.String()
		if x, ok := v.Float(); ok {
			label = fmt.Sprintf("%.6g", x)
		}
		ticks[i] = Tick{v, s.Map(v), label}
	}
	return ticks
}

// BuildScale constructs the scale for axis a given all of the values
// bound to it and its pixel range.
func BuildScale(a Axis, values []Value, r Range, o ScaleOptions) (*Scale, error) {
	o = o.withDefaults()
	switch a.Scale {
	case Linear:
		return buildLinear(ExtentOf(values).OrZero(), r, o), nil
	case Logarithmic:
		return buildLog(ExtentOf(values).OrZero(), r, o), nil
	case Ordinal:
		return buildOrdinal(values, r), nil
	}
	return nil, fmt.Errorf("%w: bad scale kind %v", ErrInvalidAxis, a.Scale)
}

// unitScale is the part of the go-moremath scale interface used
// here. Map sends the domain to [0, 1].
type unitScale interface {
	Map(x float64) float64
	Ticks(o scale.TickOptions) (major, minor []float64)
}

func buildLinear(d Extent, r Range, o ScaleOptions) *Scale {
	if d.Min == d.Max {
		return degenerate(Linear, d, r)
	}
	return numeric(Linear, d, r, &scale.Linear{Min: d.Min, Max: d.Max}, o)
}

func buildLog(d Extent, r Range, o ScaleOptions) *Scale {
	if d.Min <= 0 {
		d.Min = o.LogEpsilon
	}
	if d.Max < d.Min {
		d.Max = d.Min
	}
	if d.Min == d.Max {
		return degenerate(Logarithmic, d, r)
	}
	ls, err := scale.NewLog(d.Min, d.Max, 10)
	if err != nil {
		// Unreachable for 0 < Min < Max.
		return degenerate(Logarithmic, d, r)
	}
	s := numeric(Logarithmic, d, r, &ls, o)
	linear := s.m
	s.m = func(v Value) float64 {
		if x, ok := v.Float(); ok && x <= 0 {
			return math.NaN()
		}
		return linear(v)
	}
	return s
}

func numeric(kind ScaleKind, d Extent, r Range, us unitScale, o ScaleOptions) *Scale {
	major, _ := us.Ticks(scale.TickOptions{Max: o.MaxTicks})
	ticks := make([]Value, len(major))
	for i, x := range major {
		ticks[i] = Num(x)
	}
	return &Scale{
		Kind:   kind,
		Domain: d,
		Range:  r,
		Ticks:  ticks,
		m: func(v Value) float64 {
			x, ok := v.Float()
			if !ok {
				return math.NaN()
			}
			return r.at(us.Map(x))
		},
	}
}

// degenerate returns a scale over a single-point domain. Every number
// maps to the middle of r.
func degenerate(kind ScaleKind, d Extent, r Range) *Scale {
	mid := r.at(0.5)
	return &Scale{
		Kind:   kind,
		Domain: d,
		Range:  r,
		Ticks:  []Value{Num(d.Min)},
		m: func(v Value) float64 {
			if _, ok := v.Float(); !ok {
				return math.NaN()
			}
			return mid
		},
	}
}

func buildOrdinal(values []Value, r Range) *Scale {
	cats := make([]Value, 0, len(values))
	for _, v := range values {
		if !v.IsNull() {
			cats = append(cats, v)
		}
	}
	cats = slice.Nub(cats).([]Value)

	var pos []float64
	switch len(cats) {
	case 0:
	case 1:
		pos = []float64{r.at(0.5)}
	default:
		pos = vec.Linspace(r[0], r[1], len(cats))
		// Pin the far end against rounding.
		pos[len(pos)-1] = r[1]
	}
	index := make(map[Value]float64, len(cats))
	for i, c := range cats {
		index[c] = pos[i]
	}

	return &Scale{
		Kind:       Ordinal,
		Categories: cats,
		Range:      r,
		Ticks:      cats,
		m: func(v Value) float64 {
			if p, ok := index[v]; ok {
				return p
			}
			return math.NaN()
		},
	}
}
