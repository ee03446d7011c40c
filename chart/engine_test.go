// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-cartesian/reactive"
)

func mustScale(t *testing.T, e *Engine, id AxisID) *Scale {
	t.Helper()
	sig, err := e.Scale(id)
	require.NoError(t, err)
	s, err := sig.Value()
	require.NoError(t, err)
	return s
}

func TestEngineScenario(t *testing.T) {
	e := New(Options{})
	require.NoError(t, e.AddSeries("a", []Point{XY(0, 0), XY(10, 10)}, DefaultX, DefaultY))
	e.SetSize(200, 100)

	x := mustScale(t, e, DefaultX)
	assert.Equal(t, Extent{0, 10}, x.Domain)
	assert.Equal(t, Range{0, 200}, x.Range)

	y := mustScale(t, e, DefaultY)
	assert.Equal(t, Extent{0, 10}, y.Domain)
	assert.Equal(t, Range{100, 0}, y.Range)

	path, err := e.Path("a")
	require.NoError(t, err)
	assert.Equal(t, "M0,100L200,0", reactive.Get(path).D())

	points, err := e.Points("a")
	require.NoError(t, err)
	assert.Equal(t, []Circle{{0, 100, DefaultPointRadius}, {200, 0, DefaultPointRadius}}, reactive.Get(points))

	vb, err := e.ViewBox().Value()
	require.NoError(t, err)
	assert.Equal(t, "0 0 200 100", vb)
}

func TestEngineReactsToChanges(t *testing.T) {
	e := New(Options{PointRadius: 3})
	e.SetSize(200, 100)
	require.NoError(t, e.AddSeries("a", []Point{XY(0, 0), XY(10, 10)}, AxisID{}, AxisID{}))

	path, err := e.Path("a")
	require.NoError(t, err)
	var got []string
	path.Subscribe(func(p Polyline) { got = append(got, p.D()) })

	// Widening the domain moves every point.
	require.NoError(t, e.AddSeries("b", []Point{XY(20, 10)}, DefaultX, DefaultY))
	// Reserving space shrinks the range.
	r, err := e.RequestSpace(Left, 20)
	require.NoError(t, err)
	r.Release()
	e.DeleteSeries("b")

	assert.Equal(t, []string{
		"M0,100L200,0",
		"M0,100L100,0",
		"M20,100L100,0",
		"M0,100L100,0",
		"M0,100L200,0",
	}, got)

	points, err := e.Points("a")
	require.NoError(t, err)
	assert.Equal(t, 3.0, reactive.Get(points)[0].R)

	// Deleting the series closes its geometry.
	e.DeleteSeries("a")
	_, err = points.Value()
	assert.ErrorIs(t, err, reactive.ErrClosed)
	_, err = path.Value()
	assert.ErrorIs(t, err, reactive.ErrClosed)
	_, err = e.Path("a")
	assert.ErrorIs(t, err, ErrUnknownSeries)
}

func TestEngineRebindSeries(t *testing.T) {
	e := New(Options{})
	e.SetSize(100, 100)
	x2 := NewAxisID("x2")
	require.NoError(t, e.AddAxis(x2, Axis{Plane: X}))
	pts := []Point{XY(0, 0), XY(10, 10)}
	require.NoError(t, e.AddSeries("a", pts, DefaultX, DefaultY))

	path, err := e.Path("a")
	require.NoError(t, err)
	var got []string
	path.Subscribe(func(p Polyline) { got = append(got, p.D()) })

	// Moving the series to x2 leaves DefaultX without data, but the
	// path follows the series to its new axis.
	require.NoError(t, e.AddSeries("a", pts, x2, DefaultY))
	fresh, err := e.Path("a")
	require.NoError(t, err)
	assert.Equal(t, "M0,100L100,0", reactive.Get(fresh).D())
	assert.Equal(t, []string{"M0,100L100,0", "M0,100L100,0"}, got)

	// Changing the new axis reaches the old subscription.
	require.NoError(t, e.AddAxis(x2, Axis{Plane: X, Scale: Logarithmic}))
	require.NoError(t, e.AddSeries("a", []Point{XY(1, 0), XY(100, 10)}, x2, DefaultY))
	assert.Equal(t, "M0,100L100,0", got[len(got)-1])
	assert.Equal(t, "M0,100L100,0", reactive.Get(path).D())
}

func TestEngineGeometryErrors(t *testing.T) {
	e := New(Options{})
	e.SetSize(100, 100)
	lg := NewAxisID("log")
	require.NoError(t, e.AddAxis(lg, Axis{Plane: Y, Scale: Logarithmic}))
	require.NoError(t, e.AddSeries("a", []Point{XY(0, 1), XY(1, 10)}, DefaultX, lg))

	points, err := e.Points("a")
	require.NoError(t, err)
	var errs []error
	n := 0
	points.SubscribeErr(func(cs []Circle, err error) {
		if err != nil {
			errs = append(errs, err)
			return
		}
		n++
	})
	require.Equal(t, 1, n)

	// y=0 cannot be placed on a log scale.
	require.NoError(t, e.AddSeries("a", []Point{XY(0, 0), XY(1, 10)}, DefaultX, lg))
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrUnmappable)

	e.DeleteSeries("a")
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[1], reactive.ErrClosed)
}

func TestEngineChurnReleasesNodes(t *testing.T) {
	e := New(Options{})
	e.SetSize(100, 100)
	require.NoError(t, e.AddSeries("keep", []Point{XY(0, 0)}, DefaultX, DefaultY))
	_, err := e.Path("keep")
	require.NoError(t, err)
	_, err = e.Generator(DefaultX, DefaultY)
	require.NoError(t, err)
	base := e.g.NumNodes()

	for i := 0; i < 100; i++ {
		el := e.Mount("line")
		require.NoError(t, el.AddSeries(el.ID(), []Point{XY(float64(i), 1)}, DefaultX, DefaultY))
		require.NoError(t, el.AddReferenceLine(el.ID()+"/ref", AtX(Num(1)), DefaultX, DefaultY))
		points, err := e.Points(el.ID())
		require.NoError(t, err)
		el.Track(points.Subscribe(func([]Circle) {}))
		_, err = e.Lines(el.ID() + "/ref")
		require.NoError(t, err)
		e.Data().PointsOf(el.ID())
		el.Remove()
	}
	assert.Equal(t, base, e.g.NumNodes())
	assert.Empty(t, e.points)
	assert.Empty(t, e.lines)
	assert.Empty(t, e.data.points)
	assert.Len(t, e.paths, 1)

	// Removed axes release their scales too.
	for i := 0; i < 10; i++ {
		id := NewAxisID("tmp")
		require.NoError(t, e.AddAxis(id, Axis{Plane: X}))
		_, err := e.Generator(id, DefaultY)
		require.NoError(t, err)
		e.Data().ExtentOf(id)
		require.NoError(t, e.RemoveAxis(id))
	}
	assert.Equal(t, base, e.g.NumNodes())
	assert.Len(t, e.scales, 2)
	assert.Len(t, e.gens, 1)
}

func TestEngineBatch(t *testing.T) {
	e := New(Options{})
	e.SetSize(100, 100)
	sig, err := e.Scale(DefaultX)
	require.NoError(t, err)
	n := 0
	sig.Subscribe(func(*Scale) { n++ })
	require.Equal(t, 1, n)

	defs := []AxisDef{
		{NewAxisID("x2"), Axis{Plane: X}},
		{NewAxisID("y2"), Axis{Plane: Y, Scale: Logarithmic}},
		{NewAxisID("cat"), Axis{Plane: X, Scale: Ordinal, Values: Category}},
	}
	require.NoError(t, e.AddAxes(defs...))
	assert.Equal(t, 2, n, "adding several axes rebuilt the scale more than once")
	for _, d := range defs {
		a, ok := e.Axes().Axis(d.ID)
		require.True(t, ok)
		assert.Equal(t, d.Axis, a)
	}

	e.Batch(func() {
		e.SetSize(300, 300)
		e.AddSeries("a", []Point{XY(1, 1)}, DefaultX, DefaultY)
		e.RequestSpace(Bottom, 10)
	})
	assert.Equal(t, 3, n)
	assert.Equal(t, Range{0, 300}, mustScale(t, e, DefaultX).Range)
}

func TestEngineAddAxesAtomic(t *testing.T) {
	e := New(Options{})
	good := NewAxisID("good")
	err := e.AddAxes(AxisDef{good, Axis{Plane: X}}, AxisDef{NewAxisID("bad"), Axis{Scale: Linear, Values: Category}})
	assert.ErrorIs(t, err, ErrInvalidAxis)
	_, ok := e.Axes().Axis(good)
	assert.False(t, ok, "AddAxes applied part of a failed batch")

	err = e.AddAxes(AxisDef{Axis: Axis{Plane: X}})
	assert.ErrorIs(t, err, ErrInvalidAxis)
}

func TestEngineSeriesErrors(t *testing.T) {
	e := New(Options{})
	unknown := NewAxisID("unknown")

	err := e.AddSeries("a", nil, unknown, DefaultY)
	assert.ErrorIs(t, err, ErrUnknownAxis)
	var serr *SeriesError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "a", serr.Series)

	err = e.AddSeries("a", nil, DefaultY, DefaultY)
	assert.ErrorIs(t, err, ErrPlaneMismatch)

	err = e.AddReferenceLine("r", XY(1, 2), DefaultX, DefaultY)
	assert.ErrorIs(t, err, ErrNotReference)

	_, ok := e.Data().Series("a")
	assert.False(t, ok)

	_, err = e.Points("missing")
	assert.ErrorIs(t, err, ErrUnknownSeries)
	_, err = e.Path("missing")
	assert.ErrorIs(t, err, ErrUnknownSeries)

	require.NoError(t, e.AddSeries("a", []Point{XY(1, 1)}, DefaultX, DefaultY))
	_, err = e.Lines("a")
	assert.ErrorIs(t, err, ErrNotReference)
}

func TestEngineAxisLifecycle(t *testing.T) {
	e := New(Options{})
	e.SetSize(100, 100)
	id := NewAxisID("right")
	require.NoError(t, e.AddAxis(id, Axis{Plane: Y}))
	require.NoError(t, e.AddSeries("a", []Point{XY(1, 5)}, DefaultX, id))

	err := e.RemoveAxis(id)
	assert.ErrorIs(t, err, ErrAxisInUse)
	var aerr *AxisError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, id, aerr.Axis)

	// Moving a used axis to the other plane would break the series.
	err = e.AddAxis(id, Axis{Plane: X})
	assert.ErrorIs(t, err, ErrPlaneMismatch)

	ok, err := e.AddAxisIfAbsent(id, Axis{Plane: Y, Scale: Logarithmic})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, Linear, mustScale(t, e, id).Kind)

	sig, err := e.Scale(id)
	require.NoError(t, err)
	require.NoError(t, e.AddAxis(id, Axis{Plane: Y, Scale: Logarithmic}))
	assert.Equal(t, Logarithmic, reactive.Get(sig).Kind)

	e.DeleteSeries("a")
	require.NoError(t, e.RemoveAxis(id))
	_, err = sig.Value()
	assert.ErrorIs(t, err, reactive.ErrClosed)
	_, err = e.Scale(id)
	assert.ErrorIs(t, err, ErrUnknownAxis)
	assert.ErrorIs(t, e.RemoveAxis(id), ErrUnknownAxis)

	// Registering it again gives it a new scale.
	require.NoError(t, e.AddAxis(id, Axis{Plane: Y}))
	assert.Equal(t, Linear, mustScale(t, e, id).Kind)
}

func TestEngineAxisRange(t *testing.T) {
	e := New(Options{})
	e.SetSize(200, 100)
	_, err := e.RequestSpace(Left, 20)
	require.NoError(t, err)

	r, err := e.Axes().RangeOf(DefaultX)
	require.NoError(t, err)
	assert.Equal(t, Range{20, 180}, r)
	r, err = e.Axes().RangeOf(DefaultY)
	require.NoError(t, err)
	assert.Equal(t, Range{100, 0}, r)

	_, err = e.Axes().RangeOf(NewAxisID("nope"))
	assert.ErrorIs(t, err, ErrUnknownAxis)
}

func TestEngineReferenceLines(t *testing.T) {
	e := New(Options{})
	e.SetSize(200, 100)
	require.NoError(t, e.AddSeries("a", []Point{XY(0, 0), XY(10, 10)}, DefaultX, DefaultY))
	require.NoError(t, e.AddReferenceLine("v", AtX(Num(5)), DefaultX, DefaultY))
	require.NoError(t, e.AddReferenceLine("h", AtY(Num(10)), DefaultX, DefaultY))

	v, err := e.Lines("v")
	require.NoError(t, err)
	assert.Equal(t, []Segment{{100, 100, 100, 0}}, reactive.Get(v))

	h, err := e.Lines("h")
	require.NoError(t, err)
	assert.Equal(t, []Segment{{0, 0, 200, 0}}, reactive.Get(h))

	// A reference line outside the data widens the domain.
	require.NoError(t, e.AddReferenceLine("v", AtX(Num(20)), DefaultX, DefaultY))
	assert.Equal(t, []Segment{{200, 100, 200, 0}}, reactive.Get(v))
	assert.Equal(t, Extent{0, 20}, mustScale(t, e, DefaultX).Domain)
}

func TestEngineScaleKinds(t *testing.T) {
	e := New(Options{MaxTicks: 4})
	e.SetSize(300, 100)
	cat := NewAxisID("cat")
	lg := NewAxisID("log")
	require.NoError(t, e.AddAxes(
		AxisDef{cat, Axis{Plane: X, Scale: Ordinal, Values: Category}},
		AxisDef{lg, Axis{Plane: Y, Scale: Logarithmic}},
	))
	require.NoError(t, e.AddSeries("a", []Point{{Str("lo"), Num(0)}, {Str("mid"), Num(10)}, {Str("hi"), Num(1000)}}, cat, lg))

	x := mustScale(t, e, cat)
	assert.Equal(t, strs("lo", "mid", "hi"), x.Categories)
	assert.Equal(t, 150.0, x.Map(Str("mid")))

	y := mustScale(t, e, lg)
	assert.Equal(t, Extent{DefaultLogEpsilon, 1000}, y.Domain)
	assert.LessOrEqual(t, len(y.Ticks), 4)

	// The point at y=0 cannot be placed on a log scale.
	points, err := e.Points("a")
	require.NoError(t, err)
	_, err = points.Value()
	assert.ErrorIs(t, err, ErrUnmappable)
}

func TestEngineGenerator(t *testing.T) {
	e := New(Options{})
	_, err := e.Generator(DefaultX, NewAxisID("nope"))
	assert.ErrorIs(t, err, ErrUnknownAxis)

	g1, err := e.Generator(DefaultX, DefaultY)
	require.NoError(t, err)
	g2, err := e.Generator(DefaultX, DefaultY)
	require.NoError(t, err)
	assert.Same(t, g1, g2)
	assert.Equal(t, float64(DefaultPointRadius), reactive.Get(g1).Radius)
}

func TestEngineWriteDot(t *testing.T) {
	e := New(Options{})
	e.AddSeries("a", []Point{XY(1, 1)}, DefaultX, DefaultY)
	_, err := e.Path("a")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, e.WriteDot(&buf))
	out := buf.String()
	for _, name := range []string{"axes", "data", "scale default-x", "path a"} {
		assert.Contains(t, out, name)
	}
}
