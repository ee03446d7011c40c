// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultPointRadius is the radius of generated point markers.
const DefaultPointRadius = 10

// A Circle is a point marker in pixel space.
type Circle struct {
	CX float64 `yaml:"cx"`
	CY float64 `yaml:"cy"`
	R  float64 `yaml:"r"`
}

// A Segment is a straight line in pixel space.
type Segment struct {
	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
	X2 float64 `yaml:"x2"`
	Y2 float64 `yaml:"y2"`
}

// A Vertex is a point of a Polyline in pixel space.
type Vertex struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// A Polyline is a connected sequence of straight segments.
type Polyline struct {
	Vertices []Vertex `yaml:"vertices"`
}

// D returns p in SVG path data form, "Mx,yLx,y...". It returns "" for
// an empty polyline.
func (p Polyline) D() string {
	var b strings.Builder
	for i, v := range p.Vertices {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteByte('L')
		}
		b.WriteString(strconv.FormatFloat(v.X, 'g', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(v.Y, 'g', -1, 64))
	}
	return b.String()
}

// A Generator turns data points into pixel geometry using the scales
// of an x axis and a y axis.
type Generator struct {
	X, Y   *Scale
	Radius float64
}

// NewGenerator returns a Generator over x and y with the default
// point radius.
func NewGenerator(x, y *Scale) Generator {
	return Generator{X: x, Y: y, Radius: DefaultPointRadius}
}

// Point returns the marker for p.
func (g Generator) Point(p Point) (Circle, error) {
	cx, cy, err := g.xy(p)
	if err != nil {
		return Circle{}, err
	}
	return Circle{cx, cy, g.Radius}, nil
}

// Line returns the full-span reference line for partial point p. If
// p.Y is null, the line is vertical at p.X and spans the y range; if
// p.X is null, it is horizontal at p.Y and spans the x range. It is
// an error for p to have zero or two null coordinates.
func (g Generator) Line(p Point) (Segment, error) {
	if !p.IsPartial() {
		return Segment{}, fmt.Errorf("%w: got %v", ErrNotReference, p)
	}
	if p.Y.IsNull() {
		x, err := g.X.MapChecked(p.X)
		if err != nil {
			return Segment{}, err
		}
		return Segment{x, g.Y.Range[0], x, g.Y.Range[1]}, nil
	}
	y, err := g.Y.MapChecked(p.Y)
	if err != nil {
		return Segment{}, err
	}
	return Segment{g.X.Range[0], y, g.X.Range[1], y}, nil
}

// Path returns the polyline through ps in order.
func (g Generator) Path(ps []Point) (Polyline, error) {
	vs := make([]Vertex, len(ps))
	for i, p := range ps {
		x, y, err := g.xy(p)
		if err != nil {
			return Polyline{}, fmt.Errorf("point %d: %w", i, err)
		}
		vs[i] = Vertex{x, y}
	}
	return Polyline{vs}, nil
}

func (g Generator) xy(p Point) (x, y float64, err error) {
	if x, err = g.X.MapChecked(p.X); err != nil {
		return
	}
	y, err = g.Y.MapChecked(p.Y)
	return
}
