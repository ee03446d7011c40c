// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"math"
	"strconv"
)

type valueKind uint8

const (
	nullValue valueKind = iota
	numberValue
	stringValue
)

// A Value is a single coordinate of a data point: null, a number, or
// a string category. The zero Value is null.
//
// Values are comparable and may be used as map keys.
type Value struct {
	kind valueKind
	num  float64
	str  string
}

// Null is the null Value.
var Null = Value{}

// Num returns a numeric Value.
func Num(x float64) Value {
	return Value{kind: numberValue, num: x}
}

// Str returns a string (category) Value.
func Str(s string) Value {
	return Value{kind: stringValue, str: s}
}

// ParseValue parses s as a Value: "null" is Null, anything
// strconv.ParseFloat accepts is a number, and everything else is a
// string.
func ParseValue(s string) Value {
	if s == "null" {
		return Null
	}
	if x, err := strconv.ParseFloat(s, 64); err == nil {
		return Num(x)
	}
	return Str(s)
}

func (v Value) IsNull() bool   { return v.kind == nullValue }
func (v Value) IsNumber() bool { return v.kind == numberValue }
func (v Value) IsString() bool { return v.kind == stringValue }

// Float returns v's numeric value. ok is false if v is not a number.
func (v Value) Float() (x float64, ok bool) {
	if v.kind != numberValue {
		return math.NaN(), false
	}
	return v.num, true
}

// finite returns v's numeric value if it is a finite number.
func (v Value) finite() (float64, bool) {
	x, ok := v.Float()
	if !ok || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, false
	}
	return x, true
}

func (v Value) String() string {
	switch v.kind {
	case numberValue:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case stringValue:
		return v.str
	}
	return "null"
}

// MarshalYAML encodes v as a YAML null, number, or string.
func (v Value) MarshalYAML() (interface{}, error) {
	switch v.kind {
	case numberValue:
		return v.num, nil
	case stringValue:
		return v.str, nil
	}
	return nil, nil
}

// A Point is a logical data point. A point with exactly one null
// coordinate is partial: it describes a reference line across the
// other axis.
type Point struct {
	X Value `yaml:"x"`
	Y Value `yaml:"y"`
}

// XY returns the numeric point (x, y).
func XY(x, y float64) Point {
	return Point{Num(x), Num(y)}
}

// AtX returns the partial point describing a vertical reference line
// at x.
func AtX(x Value) Point {
	return Point{X: x, Y: Null}
}

// AtY returns the partial point describing a horizontal reference
// line at y.
func AtY(y Value) Point {
	return Point{X: Null, Y: y}
}

// IsPartial reports whether exactly one of p's coordinates is null.
func (p Point) IsPartial() bool {
	return p.X.IsNull() != p.Y.IsNull()
}

func (p Point) String() string {
	return "(" + p.X.String() + ", " + p.Y.String() + ")"
}
