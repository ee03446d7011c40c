// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart derives pixel-space scales and geometry for Cartesian
// charts.
//
// An Engine holds three registries: data series, the canvas layout,
// and axis configuration. Visual elements mutate the registries and
// subscribe to values derived from them: the Scale of an axis, a
// Generator for an axis pair, or the ready-to-draw geometry of a
// series. Derived values are recomputed whenever the state they
// depend on changes.
//
// A minimal chart:
//
//	e := chart.New(chart.Options{})
//	e.SetSize(200, 100)
//	e.AddSeries("a", []chart.Point{chart.XY(0, 0), chart.XY(10, 10)}, chart.DefaultX, chart.DefaultY)
//	path, _ := e.Path("a")
//	path.Subscribe(func(p chart.Polyline) { fmt.Println(p.D()) })
//
// An Engine is not safe for concurrent use.
package chart

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aclements/go-cartesian/reactive"
)

// Options configures an Engine. The zero Options is ready to use.
type Options struct {
	// Logger receives diagnostics. If nil, slog.Default() is used.
	Logger *slog.Logger

	// MaxTicks is the maximum number of ticks on numeric scales
	// (default DefaultMaxTicks).
	MaxTicks int

	// LogEpsilon is the low end used for logarithmic domains that
	// reach zero or below (default DefaultLogEpsilon).
	LogEpsilon float64

	// PointRadius is the radius of generated point markers
	// (default DefaultPointRadius).
	PointRadius float64
}

// An Engine is a reactive chart layout.
type Engine struct {
	log       *slog.Logger
	g         *reactive.Graph
	data      *DataRegistry
	layout    *LayoutRegistry
	axes      *AxisRegistry
	scaleOpts ScaleOptions
	radius    float64

	elements int

	scales map[AxisID]*reactive.Derived[*Scale]
	gens   map[[2]AxisID]*reactive.Derived[Generator]
	points map[string]*reactive.Derived[[]Circle]
	lines  map[string]*reactive.Derived[[]Segment]
	paths  map[string]*reactive.Derived[Polyline]
}

// New returns an Engine with a 0×0 canvas, no series, and the
// default axes DefaultX and DefaultY.
func New(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	radius := opts.PointRadius
	if !(radius > 0) {
		radius = DefaultPointRadius
	}
	g := reactive.New(log)
	layout := NewLayoutRegistry(g, log)
	return &Engine{
		log:    log,
		g:      g,
		data:   NewDataRegistry(g),
		layout: layout,
		axes:   NewAxisRegistry(g, layout),
		scaleOpts: ScaleOptions{
			MaxTicks:   opts.MaxTicks,
			LogEpsilon: opts.LogEpsilon,
		}.withDefaults(),
		radius: radius,
		scales: make(map[AxisID]*reactive.Derived[*Scale]),
		gens:   make(map[[2]AxisID]*reactive.Derived[Generator]),
		points: make(map[string]*reactive.Derived[[]Circle]),
		lines:  make(map[string]*reactive.Derived[[]Segment]),
		paths:  make(map[string]*reactive.Derived[Polyline]),
	}
}

// Data returns e's data registry. Mutate series through e so that
// they are validated.
func (e *Engine) Data() *DataRegistry { return e.data }

// Layout returns e's layout registry.
func (e *Engine) Layout() *LayoutRegistry { return e.layout }

// Axes returns e's axis registry. Mutate axes through e so that
// they are validated against the series that use them.
func (e *Engine) Axes() *AxisRegistry { return e.axes }

// Batch calls f and coalesces the changes it makes into a single
// recomputation of derived values.
func (e *Engine) Batch(f func()) {
	e.g.Batch(f)
}

// WriteDot writes e's dependency graph in Graphviz format.
func (e *Engine) WriteDot(w io.Writer) error {
	return e.g.WriteDot(w)
}

// AddAxis registers or replaces axis id. Replacing an axis may not
// move it to a plane that conflicts with the series using it.
func (e *Engine) AddAxis(id AxisID, a Axis) error {
	if err := e.checkReplace(id, a); err != nil {
		return err
	}
	return e.axes.AddAxis(id, a)
}

// AddAxisIfAbsent registers axis id unless it is already registered.
// It reports whether the axis was added.
func (e *Engine) AddAxisIfAbsent(id AxisID, a Axis) (bool, error) {
	return e.axes.AddAxisIfAbsent(id, a)
}

// AddAxes registers or replaces several axes at once. Either all of
// defs are applied, with a single recomputation, or none are.
func (e *Engine) AddAxes(defs ...AxisDef) error {
	for _, d := range defs {
		if err := checkAxis(d.ID, d.Axis); err != nil {
			return &AxisError{"add", d.ID, err}
		}
		if err := e.checkReplace(d.ID, d.Axis); err != nil {
			return err
		}
	}
	e.g.Batch(func() {
		for _, d := range defs {
			// Validated above.
			e.axes.AddAxis(d.ID, d.Axis)
		}
	})
	return nil
}

func (e *Engine) checkReplace(id AxisID, a Axis) error {
	for _, sid := range e.data.References(id) {
		s, _ := e.data.Series(sid)
		if (s.XAxis == id && a.Plane != X) || (s.YAxis == id && a.Plane != Y) {
			return &AxisError{"add", id, fmt.Errorf("%w: series %q uses it on another plane", ErrPlaneMismatch, sid)}
		}
	}
	return nil
}

// RemoveAxis unregisters axis id. It fails with ErrAxisInUse while any
// series references the axis. Scale and Generator signals obtained
// for the axis are closed.
func (e *Engine) RemoveAxis(id AxisID) error {
	if _, ok := e.axes.Axis(id); !ok {
		return &AxisError{"remove", id, ErrUnknownAxis}
	}
	if refs := e.data.References(id); len(refs) > 0 {
		return &AxisError{"remove", id, fmt.Errorf("%w: referenced by series %q", ErrAxisInUse, refs)}
	}
	for key := range e.gens {
		if key[0] == id || key[1] == id {
			drop(e.gens, key)
		}
	}
	drop(e.scales, id)
	e.data.forgetAxis(id)
	e.axes.RemoveAxis(id)
	return nil
}

// AddSeries inserts or replaces series id with points bound to axes x
// and y. Zero axis IDs select DefaultX and DefaultY. Both axes must be
// registered, x on plane X and y on plane Y.
func (e *Engine) AddSeries(id string, points []Point, x, y AxisID) error {
	return e.addSeries(Series{ID: id, XAxis: x, YAxis: y, Points: points, Kind: Plain})
}

// AddReferenceLine inserts or replaces series id holding the single
// partial point p, which describes a full-span line: vertical if p.Y
// is null, horizontal if p.X is null.
func (e *Engine) AddReferenceLine(id string, p Point, x, y AxisID) error {
	if !p.IsPartial() {
		return &SeriesError{"add", id, fmt.Errorf("%w: got %v", ErrNotReference, p)}
	}
	return e.addSeries(Series{ID: id, XAxis: x, YAxis: y, Points: []Point{p}, Kind: Reference})
}

func (e *Engine) addSeries(s Series) error {
	if s.XAxis.IsZero() {
		s.XAxis = DefaultX
	}
	if s.YAxis.IsZero() {
		s.YAxis = DefaultY
	}
	if err := e.checkBinding(s.XAxis, X); err != nil {
		return &SeriesError{"add", s.ID, err}
	}
	if err := e.checkBinding(s.YAxis, Y); err != nil {
		return &SeriesError{"add", s.ID, err}
	}
	e.log.Debug("chart: add series", "id", s.ID, "points", len(s.Points), "x", s.XAxis, "y", s.YAxis)
	e.data.AddSeries(s)
	return nil
}

func (e *Engine) checkBinding(id AxisID, p Plane) error {
	a, ok := e.axes.Axis(id)
	if !ok {
		return fmt.Errorf("%w %v", ErrUnknownAxis, id)
	}
	if a.Plane != p {
		return fmt.Errorf("%w: axis %v is on plane %v, want %v", ErrPlaneMismatch, id, a.Plane, p)
	}
	return nil
}

// DeleteSeries removes series id. It reports whether it existed.
// Geometry signals obtained for the series are closed.
func (e *Engine) DeleteSeries(id string) bool {
	drop(e.points, id)
	drop(e.lines, id)
	drop(e.paths, id)
	return e.data.DeleteSeries(id)
}

// SetSize sets the canvas size.
func (e *Engine) SetSize(width, height float64) {
	e.layout.SetSize(width, height)
}

// RequestSpace reserves amount pixels on side of the canvas.
func (e *Engine) RequestSpace(side Side, amount float64) (*Reservation, error) {
	return e.layout.RequestSpace(side, amount)
}

// Size returns the canvas size as a reactive value.
func (e *Engine) Size() reactive.Signal[Size] { return e.layout.SizeSignal() }

// Margins returns the margins as a reactive value.
func (e *Engine) Margins() reactive.Signal[Margins] { return e.layout.MarginsSignal() }

// ViewBox returns the canvas view box as a reactive value.
func (e *Engine) ViewBox() reactive.Signal[string] { return e.layout.ViewBox() }

// Scale returns the scale of axis id as a reactive value. It fails
// with ErrUnknownAxis if id is not registered. Removing the axis
// closes the value.
func (e *Engine) Scale(id AxisID) (reactive.Signal[*Scale], error) {
	if _, ok := e.axes.Axis(id); !ok {
		return nil, &AxisError{"scale", id, ErrUnknownAxis}
	}
	return e.scale(id), nil
}

func (e *Engine) scale(id AxisID) *reactive.Derived[*Scale] {
	if s, ok := e.scales[id]; ok {
		return s
	}
	values := e.data.ValuesOf(id)
	deps := []reactive.Node{e.axes.Signal(), values, e.layout.RangeOf(X), e.layout.RangeOf(Y)}
	s := reactive.Derive(e.g, "scale "+id.String(), deps, func() (*Scale, error) {
		return e.buildScale(id, reactive.Get(values))
	})
	e.scales[id] = s
	return s
}

// buildScale builds the scale of axis id over values. It must only be
// called while computing a node that depends on the axes and both
// plane ranges.
func (e *Engine) buildScale(id AxisID, values []Value) (*Scale, error) {
	a, ok := reactive.Get(e.axes.Signal())[id]
	if !ok {
		return nil, &AxisError{"scale", id, ErrUnknownAxis}
	}
	return BuildScale(a, values, reactive.Get(e.layout.RangeOf(a.Plane)), e.scaleOpts)
}

// Generator returns a Generator over axes x and y as a reactive value.
func (e *Engine) Generator(x, y AxisID) (reactive.Signal[Generator], error) {
	for _, id := range []AxisID{x, y} {
		if _, ok := e.axes.Axis(id); !ok {
			return nil, &AxisError{"generator", id, ErrUnknownAxis}
		}
	}
	return e.generator(x, y), nil
}

func (e *Engine) generator(x, y AxisID) *reactive.Derived[Generator] {
	key := [2]AxisID{x, y}
	if gen, ok := e.gens[key]; ok {
		return gen
	}
	gen := reactive.Combine2[*Scale, *Scale](e.g, "generator "+x.String()+","+y.String(), e.scale(x), e.scale(y),
		func(sx, sy *Scale) (Generator, error) {
			return Generator{X: sx, Y: sy, Radius: e.radius}, nil
		})
	e.gens[key] = gen
	return gen
}

// check looks up series id for a geometry request.
func (e *Engine) check(op, id string) (Series, error) {
	s, ok := e.data.Series(id)
	if !ok {
		return s, &SeriesError{op, id, ErrUnknownSeries}
	}
	for _, a := range []AxisID{s.XAxis, s.YAxis} {
		if _, ok := e.axes.Axis(a); !ok {
			return s, &SeriesError{op, id, fmt.Errorf("%w %v", ErrUnknownAxis, a)}
		}
	}
	return s, nil
}

// geometry returns the cached node computing f over series id, making
// it if needed. The node depends on all of the chart state rather
// than on the scales of the series' current axes, so it follows the
// series when AddSeries binds it to other axes.
func geometry[T any](e *Engine, cache map[string]*reactive.Derived[T], op, id string, f func(*Series, Generator) (T, error)) *reactive.Derived[T] {
	if d, ok := cache[id]; ok {
		return d
	}
	deps := []reactive.Node{e.data.state, e.axes.Signal(), e.layout.RangeOf(X), e.layout.RangeOf(Y)}
	d := reactive.Derive(e.g, op+" "+id, deps, func() (T, error) {
		var zero T
		s, gen, err := e.resolve(id)
		if err == nil {
			var v T
			if v, err = f(s, gen); err == nil {
				return v, nil
			}
		}
		return zero, &SeriesError{op, id, err}
	})
	cache[id] = d
	return d
}

// resolve returns series id and a Generator over the scales of the
// axes it is bound to now.
func (e *Engine) resolve(id string) (*Series, Generator, error) {
	state := e.data.state.Get()
	s, ok := state.byID[id]
	if !ok {
		return nil, Generator{}, ErrUnknownSeries
	}
	sx, err := e.buildScale(s.XAxis, valuesForAxis(state, s.XAxis))
	if err != nil {
		return nil, Generator{}, err
	}
	sy, err := e.buildScale(s.YAxis, valuesForAxis(state, s.YAxis))
	if err != nil {
		return nil, Generator{}, err
	}
	return s, Generator{X: sx, Y: sy, Radius: e.radius}, nil
}

// Points returns the point markers of series id as a reactive value.
// Deleting the series closes the value.
func (e *Engine) Points(id string) (reactive.Signal[[]Circle], error) {
	if _, err := e.check("points", id); err != nil {
		return nil, err
	}
	return geometry(e, e.points, "points", id, func(s *Series, gen Generator) ([]Circle, error) {
		cs := make([]Circle, len(s.Points))
		for i, p := range s.Points {
			c, err := gen.Point(p)
			if err != nil {
				return nil, fmt.Errorf("point %d: %w", i, err)
			}
			cs[i] = c
		}
		return cs, nil
	}), nil
}

// Lines returns the reference lines of series id, which must have
// been added with AddReferenceLine, as a reactive value. Deleting the
// series closes the value.
func (e *Engine) Lines(id string) (reactive.Signal[[]Segment], error) {
	s, err := e.check("lines", id)
	if err != nil {
		return nil, err
	}
	if s.Kind != Reference {
		return nil, &SeriesError{"lines", id, ErrNotReference}
	}
	return geometry(e, e.lines, "lines", id, func(s *Series, gen Generator) ([]Segment, error) {
		if s.Kind != Reference {
			return nil, ErrNotReference
		}
		segs := make([]Segment, len(s.Points))
		for i, p := range s.Points {
			seg, err := gen.Line(p)
			if err != nil {
				return nil, err
			}
			segs[i] = seg
		}
		return segs, nil
	}), nil
}

// Path returns the polyline through the points of series id, in
// order, as a reactive value. Deleting the series closes the value.
func (e *Engine) Path(id string) (reactive.Signal[Polyline], error) {
	if _, err := e.check("path", id); err != nil {
		return nil, err
	}
	return geometry(e, e.paths, "path", id, func(s *Series, gen Generator) (Polyline, error) {
		return gen.Path(s.Points)
	}), nil
}
