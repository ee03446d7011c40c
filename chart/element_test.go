// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementRemove(t *testing.T) {
	e := New(Options{})
	e.SetSize(200, 100)
	require.NoError(t, e.AddSeries("keep", []Point{XY(0, 0), XY(1, 1)}, DefaultX, DefaultY))

	el := e.Mount("line")
	require.NoError(t, el.AddSeries(el.ID(), []Point{XY(0, 0), XY(10, 10)}, DefaultX, DefaultY))
	require.NoError(t, el.AddReferenceLine(el.ID()+"/ref", AtY(Num(5)), DefaultX, DefaultY))
	_, err := el.RequestSpace(Left, 30)
	require.NoError(t, err)

	path, err := e.Path(el.ID())
	require.NoError(t, err)
	own := 0
	el.Track(path.Subscribe(func(Polyline) { own++ }))

	sig, err := e.Scale(DefaultX)
	require.NoError(t, err)
	var ranges []Range
	sig.Subscribe(func(s *Scale) { ranges = append(ranges, s.Range) })

	el.Remove()
	assert.True(t, el.Removed())
	assert.Equal(t, 1, own, "removed element saw its own teardown")
	assert.Equal(t, []Range{{30, 170}, {0, 200}}, ranges, "teardown was not a single change")
	assert.Equal(t, Margins{}, e.Layout().Margins())
	assert.Equal(t, []string{"keep"}, e.Data().References(DefaultX))

	// Removing again changes nothing.
	el.Remove()
	assert.Len(t, ranges, 2)
	assert.Equal(t, Margins{}, e.Layout().Margins())
}

func TestElementIDs(t *testing.T) {
	e := New(Options{})
	a, b := e.Mount("points"), e.Mount("points")
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, "points", a.Name())
}

func TestElementFailedAdd(t *testing.T) {
	e := New(Options{})
	el := e.Mount("bad")
	err := el.AddSeries("s", nil, NewAxisID("missing"), DefaultY)
	assert.ErrorIs(t, err, ErrUnknownAxis)
	_, err = el.RequestSpace(Top, -1)
	assert.ErrorIs(t, err, ErrInvalidSpace)

	// Remove must not delete a series el never owned.
	require.NoError(t, e.AddSeries("s", nil, DefaultX, DefaultY))
	el.Remove()
	_, ok := e.Data().Series("s")
	assert.True(t, ok)
}
