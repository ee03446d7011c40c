// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"math"

	"github.com/aclements/go-moremath/stats"

	"github.com/aclements/go-cartesian/reactive"
)

// SeriesKind distinguishes ordinary series from reference lines.
type SeriesKind uint8

const (
	// Plain series are rendered as points or paths.
	Plain SeriesKind = iota
	// Reference series hold partial points, each describing a
	// full-span line across one axis.
	Reference
)

// A Series is a named, ordered sequence of points bound to an x axis
// and a y axis.
type Series struct {
	ID     string
	XAxis  AxisID
	YAxis  AxisID
	Points []Point
	Kind   SeriesKind
}

// An Extent is the numeric [Min, Max] of a set of values. The empty
// extent is [+Inf, -Inf].
type Extent struct {
	Min, Max float64
}

// EmptyExtent returns the extent of no values.
func EmptyExtent() Extent {
	return Extent{math.Inf(1), math.Inf(-1)}
}

// Empty reports whether e contains no values.
func (e Extent) Empty() bool {
	return !(e.Min <= e.Max)
}

// OrZero returns e, or [0, 0] if e is empty.
func (e Extent) OrZero() Extent {
	if e.Empty() {
		return Extent{}
	}
	return e
}

// ExtentOf returns the extent of the finite numbers in vs. Nulls,
// strings, NaNs and infinities are ignored.
func ExtentOf(vs []Value) Extent {
	xs := make([]float64, 0, len(vs))
	for _, v := range vs {
		if x, ok := v.finite(); ok {
			xs = append(xs, x)
		}
	}
	if len(xs) == 0 {
		return EmptyExtent()
	}
	min, max := stats.Bounds(xs)
	return Extent{min, max}
}

// dataState is an immutable snapshot of the registered series.
type dataState struct {
	byID  map[string]*Series
	order []string // insertion order of IDs
}

func (s dataState) each(f func(*Series)) {
	for _, id := range s.order {
		f(s.byID[id])
	}
}

// DataRegistry owns the set of data series.
type DataRegistry struct {
	g     *reactive.Graph
	state *reactive.Cell[dataState]

	values map[AxisID]*reactive.Derived[[]Value]
	extent map[AxisID]*reactive.Derived[Extent]
	points map[string]*reactive.Derived[[]Point]
}

// NewDataRegistry returns an empty registry in g.
func NewDataRegistry(g *reactive.Graph) *DataRegistry {
	return &DataRegistry{
		g:      g,
		state:  reactive.NewCellOf(g, "data", dataState{byID: map[string]*Series{}}),
		values: make(map[AxisID]*reactive.Derived[[]Value]),
		extent: make(map[AxisID]*reactive.Derived[Extent]),
		points: make(map[string]*reactive.Derived[[]Point]),
	}
}

// AddSeries inserts s, replacing any series with the same ID. A
// replaced series keeps its position in iteration order. Zero axis
// IDs are replaced by DefaultX and DefaultY. The registry keeps its
// own copy of s.Points.
func (d *DataRegistry) AddSeries(s Series) {
	if s.XAxis.IsZero() {
		s.XAxis = DefaultX
	}
	if s.YAxis.IsZero() {
		s.YAxis = DefaultY
	}
	s.Points = append([]Point(nil), s.Points...)

	d.state.Update(func(old dataState) dataState {
		next := dataState{byID: make(map[string]*Series, len(old.byID)+1), order: old.order}
		for k, v := range old.byID {
			next.byID[k] = v
		}
		if _, ok := old.byID[s.ID]; !ok {
			next.order = append(append([]string(nil), old.order...), s.ID)
		}
		next.byID[s.ID] = &s
		return next
	})
}

// DeleteSeries removes series id. It reports whether it was present.
// A PointsOf signal for id is closed.
func (d *DataRegistry) DeleteSeries(id string) bool {
	drop(d.points, id)
	if _, ok := d.state.Get().byID[id]; !ok {
		return false
	}
	d.state.Update(func(old dataState) dataState {
		next := dataState{byID: make(map[string]*Series, len(old.byID))}
		for _, k := range old.order {
			if k != id {
				next.byID[k] = old.byID[k]
				next.order = append(next.order, k)
			}
		}
		return next
	})
	return true
}

// Series returns a copy of series id.
func (d *DataRegistry) Series(id string) (Series, bool) {
	s, ok := d.state.Get().byID[id]
	if !ok {
		return Series{}, false
	}
	c := *s
	c.Points = append([]Point(nil), s.Points...)
	return c, true
}

// IDs returns the IDs of all series in insertion order.
func (d *DataRegistry) IDs() []string {
	return append([]string(nil), d.state.Get().order...)
}

// Points returns the points of series id, or nil if there is no such
// series.
func (d *DataRegistry) Points(id string) []Point {
	return append([]Point(nil), pointsOf(d.state.Get(), id)...)
}

// ValuesForAxis returns every value bound to axis: the x coordinates
// of series whose x axis is axis and the y coordinates of series
// whose y axis is axis. A series using axis on both sides
// contributes both.
func (d *DataRegistry) ValuesForAxis(axis AxisID) []Value {
	return valuesForAxis(d.state.Get(), axis)
}

// Extent returns the numeric extent of the values bound to axis, or
// [0, 0] if there are no finite numbers.
func (d *DataRegistry) Extent(axis AxisID) Extent {
	return ExtentOf(d.ValuesForAxis(axis)).OrZero()
}

// References returns the IDs of series bound to axis, in insertion
// order.
func (d *DataRegistry) References(axis AxisID) []string {
	var ids []string
	d.state.Get().each(func(s *Series) {
		if s.XAxis == axis || s.YAxis == axis {
			ids = append(ids, s.ID)
		}
	})
	return ids
}

// ValuesOf returns a reactive view of ValuesForAxis(axis).
func (d *DataRegistry) ValuesOf(axis AxisID) reactive.Signal[[]Value] {
	if v, ok := d.values[axis]; ok {
		return v
	}
	v := reactive.Map[dataState](d.g, "values "+axis.String(), d.state, func(s dataState) []Value {
		return valuesForAxis(s, axis)
	})
	d.values[axis] = v
	return v
}

// ExtentOf returns a reactive view of Extent(axis).
func (d *DataRegistry) ExtentOf(axis AxisID) reactive.Signal[Extent] {
	if e, ok := d.extent[axis]; ok {
		return e
	}
	e := reactive.Map(d.g, "extent "+axis.String(), d.ValuesOf(axis), func(vs []Value) Extent {
		return ExtentOf(vs).OrZero()
	})
	d.extent[axis] = e
	return e
}

// PointsOf returns a reactive view of Points(id).
func (d *DataRegistry) PointsOf(id string) reactive.Signal[[]Point] {
	if p, ok := d.points[id]; ok {
		return p
	}
	p := reactive.Map[dataState](d.g, "data "+id, d.state, func(s dataState) []Point {
		return pointsOf(s, id)
	})
	d.points[id] = p
	return p
}

// forgetAxis closes the ValuesOf and ExtentOf signals of axis.
func (d *DataRegistry) forgetAxis(axis AxisID) {
	drop(d.extent, axis)
	drop(d.values, axis)
}

// drop closes the node cached under k, if any, and forgets it.
func drop[K comparable, T any](m map[K]*reactive.Derived[T], k K) {
	if n, ok := m[k]; ok {
		n.Close()
		delete(m, k)
	}
}

func pointsOf(s dataState, id string) []Point {
	if ser, ok := s.byID[id]; ok {
		return ser.Points
	}
	return nil
}

func valuesForAxis(s dataState, axis AxisID) []Value {
	var vs []Value
	s.each(func(ser *Series) {
		if ser.XAxis == axis {
			for _, p := range ser.Points {
				vs = append(vs, p.X)
			}
		}
		if ser.YAxis == axis {
			for _, p := range ser.Points {
				vs = append(vs, p.Y)
			}
		}
	})
	return vs
}
