// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/aclements/go-cartesian/reactive"
)

// A Side is one edge of the canvas.
type Side uint8

const (
	Top Side = iota
	Bottom
	Left
	Right
)

var sideNames = [...]string{Top: "top", Bottom: "bottom", Left: "left", Right: "right"}

func (s Side) String() string {
	if int(s) < len(sideNames) {
		return sideNames[s]
	}
	return fmt.Sprintf("Side(%d)", uint8(s))
}

// ParseSide parses the String form of a Side.
func ParseSide(s string) (Side, error) {
	for i, name := range sideNames {
		if s == name {
			return Side(i), nil
		}
	}
	return 0, fmt.Errorf("unknown side %q", s)
}

// Size is the canvas size in pixels.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Margins is the space reserved on each side of the canvas.
type Margins struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
}

// Get returns the margin on side s.
func (m Margins) Get(s Side) float64 {
	switch s {
	case Top:
		return m.Top
	case Bottom:
		return m.Bottom
	case Left:
		return m.Left
	case Right:
		return m.Right
	}
	panic("bad side " + s.String())
}

func (m *Margins) add(s Side, x float64) {
	switch s {
	case Top:
		m.Top += x
	case Bottom:
		m.Bottom += x
	case Left:
		m.Left += x
	case Right:
		m.Right += x
	}
}

// A Range is a pixel interval. Range[0] is where the low end of an
// axis domain is drawn and Range[1] is where the high end is drawn,
// so a Range may be decreasing.
type Range [2]float64

// Span returns the signed length of r.
func (r Range) Span() float64 {
	return r[1] - r[0]
}

// at returns the point a fraction t of the way along r. It returns
// r[0] and r[1] exactly at t=0 and t=1.
func (r Range) at(t float64) float64 {
	return r[0]*(1-t) + r[1]*t
}

// LayoutRegistry owns the canvas size and the margins reserved by
// visual elements.
type LayoutRegistry struct {
	log  *slog.Logger
	size *reactive.Cell[Size]

	// active lists the unreleased reservations in the order they
	// were made. Margins are always summed from it, so releasing a
	// reservation restores the margins bit for bit.
	active  *reactive.Cell[[]*Reservation]
	margins *reactive.Derived[Margins]
	ranges  [2]*reactive.Derived[Range]
	viewBox *reactive.Derived[string]
}

// NewLayoutRegistry returns a registry in g with a 0×0 canvas and no
// margins.
func NewLayoutRegistry(g *reactive.Graph, log *slog.Logger) *LayoutRegistry {
	if log == nil {
		log = slog.Default()
	}
	l := &LayoutRegistry{
		log:    log,
		size:   reactive.NewCellOf(g, "size", Size{}),
		active: reactive.NewCellOf(g, "reservations", []*Reservation(nil)),
	}
	l.margins = reactive.Map[[]*Reservation](g, "margins", l.active, sumMargins)
	for _, p := range []Plane{X, Y} {
		p := p
		l.ranges[p] = reactive.Combine2[Size, Margins](g, "range "+p.String(), l.size, l.margins,
			func(s Size, m Margins) (Range, error) {
				return planeRange(p, s, m), nil
			})
	}
	l.viewBox = reactive.Map[Size](g, "viewbox", l.size, func(s Size) string {
		return "0 0 " + strconv.FormatFloat(s.Width, 'g', -1, 64) + " " + strconv.FormatFloat(s.Height, 'g', -1, 64)
	})
	return l
}

// SetSize replaces the canvas size.
func (l *LayoutRegistry) SetSize(width, height float64) {
	l.size.Set(Size{width, height})
}

// Size returns the current canvas size.
func (l *LayoutRegistry) Size() Size {
	return l.size.Get()
}

// Margins returns the current margins.
func (l *LayoutRegistry) Margins() Margins {
	return reactive.Get[Margins](l.margins)
}

func sumMargins(rs []*Reservation) Margins {
	var m Margins
	for _, r := range rs {
		m.add(r.side, r.amount)
	}
	return m
}

// A Reservation is space held on one side of the canvas. Release
// returns the space.
type Reservation struct {
	l        *LayoutRegistry
	side     Side
	amount   float64
	released bool
}

// RequestSpace adds amount pixels to the margin on side and returns a
// Reservation that gives it back. Reservations on the same side
// accumulate.
func (l *LayoutRegistry) RequestSpace(side Side, amount float64) (*Reservation, error) {
	if side > Right {
		return nil, fmt.Errorf("%w: bad side %v", ErrInvalidSpace, side)
	}
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("%w: %v pixels on %v", ErrInvalidSpace, amount, side)
	}
	r := &Reservation{l: l, side: side, amount: amount}
	l.active.Update(func(rs []*Reservation) []*Reservation {
		return append(rs[:len(rs):len(rs)], r)
	})
	return r, nil
}

func (r *Reservation) Side() Side      { return r.side }
func (r *Reservation) Amount() float64 { return r.amount }
func (r *Reservation) Released() bool  { return r.released }

// Release returns r's space to the canvas. Only the first call has an
// effect.
func (r *Reservation) Release() {
	if r.released {
		r.l.log.Warn("chart: space reservation released twice", "side", r.side, "amount", r.amount)
		return
	}
	r.released = true
	r.l.active.Update(func(rs []*Reservation) []*Reservation {
		next := make([]*Reservation, 0, len(rs))
		for _, o := range rs {
			if o != r {
				next = append(next, o)
			}
		}
		return next
	})
}

// PlaneRange returns the pixel range of plane under the current
// layout. The Y range is inverted: its low end is at the bottom.
func (l *LayoutRegistry) PlaneRange(p Plane) Range {
	return planeRange(p, l.size.Get(), reactive.Get[Margins](l.margins))
}

func planeRange(p Plane, s Size, m Margins) Range {
	if p == Y {
		return Range{s.Height - m.Top - m.Bottom, m.Top}
	}
	return Range{m.Left, s.Width - m.Left - m.Right}
}

// RangeOf returns a reactive view of PlaneRange(p).
func (l *LayoutRegistry) RangeOf(p Plane) reactive.Signal[Range] {
	return l.ranges[p]
}

// SizeSignal returns the canvas size as a reactive value.
func (l *LayoutRegistry) SizeSignal() reactive.Signal[Size] {
	return l.size
}

// MarginsSignal returns the margins as a reactive value.
func (l *LayoutRegistry) MarginsSignal() reactive.Signal[Margins] {
	return l.margins
}

// ViewBox returns the SVG view box of the canvas, "0 0 W H", as a
// reactive value.
func (l *LayoutRegistry) ViewBox() reactive.Signal[string] {
	return l.viewBox
}
