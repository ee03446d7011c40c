// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/aclements/go-cartesian/reactive"
)

// An AxisID identifies an axis. IDs are unique by construction: two
// calls to NewAxisID never return equal IDs, even for the same name.
// The zero AxisID means "unspecified".
type AxisID struct {
	seq  uint64
	name string
}

var axisSeq atomic.Uint64

// NewAxisID returns a new, unique AxisID. name is used only for
// display.
func NewAxisID(name string) AxisID {
	return AxisID{seq: axisSeq.Add(1), name: name}
}

// The default axes. Every Engine registers both as Linear axes, and
// series that do not name an axis use them.
var (
	DefaultX = NewAxisID("default-x")
	DefaultY = NewAxisID("default-y")
)

// IsZero reports whether id is the zero (unspecified) AxisID.
func (id AxisID) IsZero() bool {
	return id.seq == 0
}

func (id AxisID) String() string {
	switch {
	case id.IsZero():
		return "<unspecified>"
	case id.name == "":
		return fmt.Sprintf("axis#%d", id.seq)
	}
	return id.name
}

// A Plane is the direction an axis runs across the canvas.
type Plane uint8

const (
	// X is the horizontal plane. Pixel positions increase left to
	// right.
	X Plane = iota
	// Y is the vertical plane. Pixel positions increase top to
	// bottom, so values increase toward the top.
	Y
)

func (p Plane) String() string {
	switch p {
	case X:
		return "x"
	case Y:
		return "y"
	}
	return fmt.Sprintf("Plane(%d)", uint8(p))
}

// ScaleKind selects how an axis maps values to pixels.
type ScaleKind uint8

const (
	Linear ScaleKind = iota
	Logarithmic
	Ordinal
)

var scaleKindNames = [...]string{
	Linear:      "linear",
	Logarithmic: "log",
	Ordinal:     "ordinal",
}

func (k ScaleKind) String() string {
	if int(k) < len(scaleKindNames) {
		return scaleKindNames[k]
	}
	return fmt.Sprintf("ScaleKind(%d)", uint8(k))
}

// ParseScaleKind parses the String form of a ScaleKind.
func ParseScaleKind(s string) (ScaleKind, error) {
	for k, name := range scaleKindNames {
		if strings.EqualFold(s, name) {
			return ScaleKind(k), nil
		}
	}
	if strings.EqualFold(s, "logarithmic") {
		return Logarithmic, nil
	}
	return 0, fmt.Errorf("unknown scale kind %q", s)
}

// ValueKind is the kind of values an axis carries.
type ValueKind uint8

const (
	Number ValueKind = iota
	Category
)

func (k ValueKind) String() string {
	switch k {
	case Number:
		return "number"
	case Category:
		return "category"
	}
	return fmt.Sprintf("ValueKind(%d)", uint8(k))
}

// An Axis configures one axis of a chart.
type Axis struct {
	Plane  Plane
	Scale  ScaleKind
	Values ValueKind
	Label  string
}

// Validate checks that a is a consistent configuration.
func (a Axis) Validate() error {
	if a.Plane > Y {
		return fmt.Errorf("%w: bad plane %v", ErrInvalidAxis, a.Plane)
	}
	if a.Values > Category {
		return fmt.Errorf("%w: bad value kind %v", ErrInvalidAxis, a.Values)
	}
	switch a.Scale {
	case Linear, Logarithmic:
		if a.Values == Category {
			return fmt.Errorf("%w: %v scale cannot carry category values", ErrInvalidAxis, a.Scale)
		}
	case Ordinal:
	default:
		return fmt.Errorf("%w: bad scale kind %v", ErrInvalidAxis, a.Scale)
	}
	return nil
}

// An AxisDef pairs an AxisID with its configuration.
type AxisDef struct {
	ID   AxisID
	Axis Axis
}

// AxisRegistry owns the set of configured axes. Its state is an
// immutable snapshot that every mutation replaces.
type AxisRegistry struct {
	layout *LayoutRegistry
	axes   *reactive.Cell[map[AxisID]Axis]
}

// NewAxisRegistry returns a registry in g containing the default
// axes. Axis ranges are taken from layout.
func NewAxisRegistry(g *reactive.Graph, layout *LayoutRegistry) *AxisRegistry {
	return &AxisRegistry{
		layout: layout,
		axes: reactive.NewCellOf(g, "axes", map[AxisID]Axis{
			DefaultX: {Plane: X, Scale: Linear},
			DefaultY: {Plane: Y, Scale: Linear},
		}),
	}
}

// AddAxis registers id with configuration a, replacing any existing
// configuration.
func (r *AxisRegistry) AddAxis(id AxisID, a Axis) error {
	if err := checkAxis(id, a); err != nil {
		return &AxisError{"add", id, err}
	}
	r.axes.Update(func(old map[AxisID]Axis) map[AxisID]Axis {
		return withAxis(old, id, a)
	})
	return nil
}

// AddAxisIfAbsent registers id with configuration a only if id is not
// registered yet. It reports whether a was added.
func (r *AxisRegistry) AddAxisIfAbsent(id AxisID, a Axis) (bool, error) {
	if err := checkAxis(id, a); err != nil {
		return false, &AxisError{"add", id, err}
	}
	if _, ok := r.Axis(id); ok {
		return false, nil
	}
	r.axes.Update(func(old map[AxisID]Axis) map[AxisID]Axis {
		return withAxis(old, id, a)
	})
	return true, nil
}

// RemoveAxis deletes id. It reports whether id was registered.
func (r *AxisRegistry) RemoveAxis(id AxisID) bool {
	if _, ok := r.Axis(id); !ok {
		return false
	}
	r.axes.Update(func(old map[AxisID]Axis) map[AxisID]Axis {
		m := make(map[AxisID]Axis, len(old))
		for k, v := range old {
			if k != id {
				m[k] = v
			}
		}
		return m
	})
	return true
}

// Axis returns the configuration of id.
func (r *AxisRegistry) Axis(id AxisID) (Axis, bool) {
	a, ok := r.axes.Get()[id]
	return a, ok
}

// RangeOf returns the pixel range of axis id under the current
// layout.
func (r *AxisRegistry) RangeOf(id AxisID) (Range, error) {
	a, ok := r.Axis(id)
	if !ok {
		return Range{}, &AxisError{"range of", id, ErrUnknownAxis}
	}
	return r.layout.PlaneRange(a.Plane), nil
}

// Signal returns the registry's state as a reactive value.
func (r *AxisRegistry) Signal() reactive.Signal[map[AxisID]Axis] {
	return r.axes
}

func checkAxis(id AxisID, a Axis) error {
	if id.IsZero() {
		return fmt.Errorf("%w: zero axis id", ErrInvalidAxis)
	}
	return a.Validate()
}

func withAxis(old map[AxisID]Axis, id AxisID, a Axis) map[AxisID]Axis {
	m := make(map[AxisID]Axis, len(old)+1)
	for k, v := range old {
		m[k] = v
	}
	m[id] = a
	return m
}
