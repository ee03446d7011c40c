// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAxis indicates a reference to an axis that is not
	// registered.
	ErrUnknownAxis = errors.New("unknown axis")

	// ErrAxisInUse indicates an attempt to remove an axis that
	// series still reference.
	ErrAxisInUse = errors.New("axis in use")

	// ErrInvalidAxis indicates an inconsistent axis configuration.
	ErrInvalidAxis = errors.New("invalid axis")

	// ErrPlaneMismatch indicates a series whose x axis is not
	// horizontal or whose y axis is not vertical.
	ErrPlaneMismatch = errors.New("axis plane mismatch")

	// ErrUnknownSeries indicates a reference to a series that does
	// not exist.
	ErrUnknownSeries = errors.New("unknown series")

	// ErrNotReference indicates a reference line point that does
	// not have exactly one null coordinate.
	ErrNotReference = errors.New("reference point must have exactly one null coordinate")

	// ErrUnmappable indicates a value a scale cannot place, such
	// as null or a category the axis has not seen.
	ErrUnmappable = errors.New("value cannot be mapped")

	// ErrInvalidSpace indicates a negative or non-finite margin
	// reservation.
	ErrInvalidSpace = errors.New("invalid space reservation")
)

// AxisError records an error concerning a specific axis.
type AxisError struct {
	Op   string
	Axis AxisID
	Err  error
}

func (e *AxisError) Error() string {
	return fmt.Sprintf("%s axis %s: %v", e.Op, e.Axis, e.Err)
}

func (e *AxisError) Unwrap() error {
	return e.Err
}

// SeriesError records an error concerning a specific series.
type SeriesError struct {
	Op     string
	Series string
	Err    error
}

func (e *SeriesError) Error() string {
	return fmt.Sprintf("%s series %q: %v", e.Op, e.Series, e.Err)
}

func (e *SeriesError) Unwrap() error {
	return e.Err
}
