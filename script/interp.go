// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package script

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aclements/go-cartesian/chart"
	"github.com/aclements/go-cartesian/reactive"
)

// An Interp runs script commands against a chart.Engine.
//
// Mutations:
//
//	size W H
//	axis NAME x|y linear|log|ordinal [number|category] [LABEL]
//	axis? NAME x|y linear|log|ordinal [number|category] [LABEL]
//	rmaxis NAME
//	series ID XAXIS YAXIS [X,Y...]
//	ref ID XAXIS YAXIS X,Y
//	rmseries ID
//	reserve NAME top|bottom|left|right AMOUNT
//	release NAME
//	with ELEMENT series|ref ID XAXIS YAXIS [X,Y...]
//	with ELEMENT reserve top|bottom|left|right AMOUNT
//	unmount ELEMENT
//	begin
//	end
//
// "axis?" registers the axis only if it does not exist yet. An axis
// argument of "-" selects the default axis for that side; the default
// axes are also named "default-x" and "default-y". In points, "null"
// is a null coordinate, a number is numeric, and anything else is a
// category. "with" performs a mutation on behalf of an element,
// which is created by its first use; "unmount" removes the element's
// series and releases its space. Commands between begin and end are
// applied as a single change.
//
// Queries:
//
//	size
//	margins
//	viewbox
//	ids
//	scale AXIS
//	points ID
//	lines ID
//	path ID
type Interp struct {
	e        *chart.Engine
	axes     map[string]chart.AxisID
	reserved map[string]*chart.Reservation
	elements map[string]*chart.Element

	// batch holds the commands after a begin, or nil if there is
	// no open begin.
	batch []*Command
}

// An Error is a failed command.
type Error struct {
	Cmd *Command
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Cmd.Line, e.Cmd.Name, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrUsage indicates a command with the wrong arguments.
var ErrUsage = errors.New("bad arguments")

// NewInterp returns an interpreter that applies commands to e.
func NewInterp(e *chart.Engine) *Interp {
	return &Interp{
		e: e,
		axes: map[string]chart.AxisID{
			chart.DefaultX.String(): chart.DefaultX,
			chart.DefaultY.String(): chart.DefaultY,
		},
		reserved: make(map[string]*chart.Reservation),
		elements: make(map[string]*chart.Element),
	}
}

// Engine returns the engine commands are applied to.
func (in *Interp) Engine() *chart.Engine {
	return in.e
}

// InBatch reports whether a begin is waiting for its end.
func (in *Interp) InBatch() bool {
	return in.batch != nil
}

// Axis returns the axis the script calls name.
func (in *Interp) Axis(name string) (chart.AxisID, bool) {
	id, ok := in.axes[name]
	return id, ok
}

var mutations = map[string]bool{
	"size": true, "axis": true, "axis?": true, "rmaxis": true,
	"series": true, "ref": true, "rmseries": true,
	"reserve": true, "release": true, "with": true, "unmount": true,
}

func isQuery(c *Command) bool {
	switch c.Name {
	case "size":
		return len(c.Args) == 0
	case "margins", "viewbox", "ids", "scale", "points", "lines", "path":
		return true
	}
	return false
}

// Exec runs c. For a query, it returns the result, which is one of
// chart.Size, chart.Margins, a view box string, the series IDs as a
// []string, *ScaleResult, []chart.Circle, []chart.Segment, or
// *PathResult. Mutations return a nil result.
//
// Mutations between begin and end are checked only for their name
// until end, which reports the first error among them. The others
// are still applied.
func (in *Interp) Exec(c *Command) (any, error) {
	switch c.Name {
	case "begin":
		if in.batch != nil {
			return nil, &Error{c, errors.New("begin inside begin")}
		}
		if len(c.Args) != 0 {
			return nil, &Error{c, ErrUsage}
		}
		in.batch = []*Command{}
		return nil, nil
	case "end":
		if in.batch == nil {
			return nil, &Error{c, errors.New("end without begin")}
		}
		batch := in.batch
		in.batch = nil
		var first error
		in.e.Batch(func() {
			for _, c := range batch {
				if _, err := in.exec(c); err != nil && first == nil {
					first = err
				}
			}
		})
		return nil, first
	}

	if in.batch != nil {
		if isQuery(c) {
			return nil, &Error{c, errors.New("query inside begin/end")}
		}
		if !mutations[c.Name] {
			return nil, &Error{c, errors.New("unknown command")}
		}
		in.batch = append(in.batch, c)
		return nil, nil
	}
	return in.exec(c)
}

func (in *Interp) exec(c *Command) (any, error) {
	var res any
	var err error
	switch c.Name {
	case "size":
		res, err = in.size(c.Args)
	case "axis", "axis?":
		err = in.axis(c.Args, c.Name == "axis?")
	case "rmaxis":
		err = in.rmaxis(c.Args)
	case "series", "ref":
		err = in.series(in.e, c.Args, c.Name == "ref")
	case "rmseries":
		if len(c.Args) != 1 {
			err = ErrUsage
			break
		}
		in.e.DeleteSeries(c.Args[0])
	case "reserve":
		err = in.reserve(c.Args)
	case "release":
		err = in.release(c.Args)
	case "with":
		err = in.with(c.Args)
	case "unmount":
		err = in.unmount(c.Args)
	case "margins":
		res, err = value(in.e.Margins(), c.Args)
	case "viewbox":
		res, err = value(in.e.ViewBox(), c.Args)
	case "ids":
		if len(c.Args) != 0 {
			err = ErrUsage
			break
		}
		res = in.e.Data().IDs()
	case "scale":
		res, err = in.scale(c.Args)
	case "points":
		res, err = geometry(c.Args, in.e.Points)
	case "lines":
		res, err = geometry(c.Args, in.e.Lines)
	case "path":
		res, err = in.path(c.Args)
	default:
		err = errors.New("unknown command")
	}
	if err != nil {
		return nil, &Error{c, err}
	}
	return res, nil
}

func value[T any](s reactive.Signal[T], args []string) (any, error) {
	if len(args) != 0 {
		return nil, ErrUsage
	}
	return s.Value()
}

func (in *Interp) size(args []string) (any, error) {
	switch len(args) {
	case 0:
		return value(in.e.Size(), nil)
	case 2:
		w, err := parseFloat(args[0])
		if err != nil {
			return nil, err
		}
		h, err := parseFloat(args[1])
		if err != nil {
			return nil, err
		}
		in.e.SetSize(w, h)
		return nil, nil
	}
	return nil, ErrUsage
}

func (in *Interp) axis(args []string, ifAbsent bool) error {
	if len(args) < 3 || len(args) > 5 {
		return ErrUsage
	}
	var a chart.Axis
	switch args[1] {
	case "x":
		a.Plane = chart.X
	case "y":
		a.Plane = chart.Y
	default:
		return fmt.Errorf("bad plane %q", args[1])
	}
	kind, err := chart.ParseScaleKind(args[2])
	if err != nil {
		return err
	}
	a.Scale = kind
	if kind == chart.Ordinal {
		a.Values = chart.Category
	}
	if len(args) >= 4 {
		switch args[3] {
		case "number":
			a.Values = chart.Number
		case "category":
			a.Values = chart.Category
		default:
			return fmt.Errorf("bad value kind %q", args[3])
		}
	}
	if len(args) == 5 {
		a.Label = args[4]
	}

	name := args[0]
	if name == "-" {
		return fmt.Errorf("axis name %q is reserved", name)
	}
	id, ok := in.axes[name]
	if !ok {
		id = chart.NewAxisID(name)
	}
	if ifAbsent {
		_, err = in.e.AddAxisIfAbsent(id, a)
	} else {
		err = in.e.AddAxis(id, a)
	}
	if err == nil {
		in.axes[name] = id
	}
	return err
}

func (in *Interp) rmaxis(args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := in.axisRef(args[0], chart.AxisID{})
	if err != nil {
		return err
	}
	// The name stays bound so that re-adding the axis revives
	// existing subscriptions.
	return in.e.RemoveAxis(id)
}

func (in *Interp) axisRef(name string, def chart.AxisID) (chart.AxisID, error) {
	if name == "-" && !def.IsZero() {
		return def, nil
	}
	id, ok := in.axes[name]
	if !ok {
		return id, fmt.Errorf("%w %q", chart.ErrUnknownAxis, name)
	}
	return id, nil
}

// A seriesAdder is a *chart.Engine or a *chart.Element.
type seriesAdder interface {
	AddSeries(id string, points []chart.Point, x, y chart.AxisID) error
	AddReferenceLine(id string, p chart.Point, x, y chart.AxisID) error
}

func (in *Interp) series(to seriesAdder, args []string, ref bool) error {
	if len(args) < 3 || (ref && len(args) != 4) {
		return ErrUsage
	}
	x, err := in.axisRef(args[1], chart.DefaultX)
	if err != nil {
		return err
	}
	y, err := in.axisRef(args[2], chart.DefaultY)
	if err != nil {
		return err
	}
	pts := make([]chart.Point, 0, len(args)-3)
	for _, arg := range args[3:] {
		p, err := ParsePoint(arg)
		if err != nil {
			return err
		}
		pts = append(pts, p)
	}
	if ref {
		return to.AddReferenceLine(args[0], pts[0], x, y)
	}
	return to.AddSeries(args[0], pts, x, y)
}

// ParsePoint parses a point of the form "X,Y". Each coordinate is
// parsed with chart.ParseValue. The point is split at the last comma,
// so X may contain commas but Y may not.
func ParsePoint(s string) (chart.Point, error) {
	i := strings.LastIndexByte(s, ',')
	if i < 0 {
		return chart.Point{}, fmt.Errorf("bad point %q: want X,Y", s)
	}
	return chart.Point{X: chart.ParseValue(s[:i]), Y: chart.ParseValue(s[i+1:])}, nil
}

func (in *Interp) reserve(args []string) error {
	if len(args) != 3 {
		return ErrUsage
	}
	if _, ok := in.reserved[args[0]]; ok {
		return fmt.Errorf("reservation %q already exists", args[0])
	}
	side, amount, err := parseSpace(args[1], args[2])
	if err != nil {
		return err
	}
	r, err := in.e.RequestSpace(side, amount)
	if err != nil {
		return err
	}
	in.reserved[args[0]] = r
	return nil
}

func parseSpace(side, amount string) (chart.Side, float64, error) {
	s, err := chart.ParseSide(side)
	if err != nil {
		return 0, 0, err
	}
	x, err := parseFloat(amount)
	if err != nil {
		return 0, 0, err
	}
	return s, x, nil
}

func (in *Interp) release(args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	r, ok := in.reserved[args[0]]
	if !ok {
		return fmt.Errorf("unknown reservation %q", args[0])
	}
	r.Release()
	delete(in.reserved, args[0])
	return nil
}

func (in *Interp) with(args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	el := in.elements[args[0]]
	if el == nil {
		el = in.e.Mount(args[0])
		in.elements[args[0]] = el
	}
	switch args[1] {
	case "series", "ref":
		return in.series(el, args[2:], args[1] == "ref")
	case "reserve":
		if len(args) != 4 {
			return ErrUsage
		}
		side, amount, err := parseSpace(args[2], args[3])
		if err != nil {
			return err
		}
		_, err = el.RequestSpace(side, amount)
		return err
	}
	return fmt.Errorf("%q cannot be used with an element", args[1])
}

func (in *Interp) unmount(args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	el := in.elements[args[0]]
	if el == nil {
		return fmt.Errorf("unknown element %q", args[0])
	}
	el.Remove()
	delete(in.elements, args[0])
	return nil
}

// ScaleResult describes the scale of an axis.
type ScaleResult struct {
	Axis       string        `yaml:"axis"`
	Kind       string        `yaml:"kind"`
	Domain     *chart.Extent `yaml:"domain,omitempty"`
	Categories []chart.Value `yaml:"categories,omitempty,flow"`
	Range      chart.Range   `yaml:"range,flow"`
	Ticks      []chart.Tick  `yaml:"ticks"`
}

func (in *Interp) scale(args []string) (any, error) {
	if len(args) != 1 {
		return nil, ErrUsage
	}
	id, err := in.axisRef(args[0], chart.AxisID{})
	if err != nil {
		return nil, err
	}
	sig, err := in.e.Scale(id)
	if err != nil {
		return nil, err
	}
	s, err := sig.Value()
	if err != nil {
		return nil, err
	}
	res := &ScaleResult{
		Axis:       args[0],
		Kind:       s.Kind.String(),
		Categories: s.Categories,
		Range:      s.Range,
		Ticks:      s.TickMarks(),
	}
	if s.Kind != chart.Ordinal {
		d := s.Domain
		res.Domain = &d
	}
	return res, nil
}

func geometry[T any](args []string, f func(string) (reactive.Signal[T], error)) (any, error) {
	if len(args) != 1 {
		return nil, ErrUsage
	}
	sig, err := f(args[0])
	if err != nil {
		return nil, err
	}
	return sig.Value()
}

// PathResult describes the path through a series.
type PathResult struct {
	D        string         `yaml:"d"`
	Vertices []chart.Vertex `yaml:"vertices"`
}

func (in *Interp) path(args []string) (any, error) {
	if len(args) != 1 {
		return nil, ErrUsage
	}
	sig, err := in.e.Path(args[0])
	if err != nil {
		return nil, err
	}
	p, err := sig.Value()
	if err != nil {
		return nil, err
	}
	return &PathResult{p.D(), p.Vertices}, nil
}

func parseFloat(s string) (float64, error) {
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", s)
	}
	return x, nil
}
