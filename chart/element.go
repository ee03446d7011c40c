// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"

	"github.com/aclements/go-cartesian/reactive"
)

// An Element is a visual element mounted on an Engine. It records the
// series, margin reservations, and subscriptions it creates so that
// Remove can undo all of them.
type Element struct {
	e    *Engine
	id   string
	name string

	series  []string
	reserve []*Reservation
	subs    []*reactive.Subscription
	removed bool
}

// Mount returns a new Element named name. Each Element gets a unique
// ID, which is convenient as a series ID.
func (e *Engine) Mount(name string) *Element {
	e.elements++
	return &Element{e: e, id: fmt.Sprintf("%s#%d", name, e.elements), name: name}
}

// ID returns el's unique ID.
func (el *Element) ID() string { return el.id }

// Name returns the name el was mounted with.
func (el *Element) Name() string { return el.name }

// Removed reports whether Remove has been called.
func (el *Element) Removed() bool { return el.removed }

// AddSeries is like Engine.AddSeries, but the series is deleted when
// el is removed.
func (el *Element) AddSeries(id string, points []Point, x, y AxisID) error {
	if err := el.e.AddSeries(id, points, x, y); err != nil {
		return err
	}
	el.own(id)
	return nil
}

// AddReferenceLine is like Engine.AddReferenceLine, but the series is
// deleted when el is removed.
func (el *Element) AddReferenceLine(id string, p Point, x, y AxisID) error {
	if err := el.e.AddReferenceLine(id, p, x, y); err != nil {
		return err
	}
	el.own(id)
	return nil
}

func (el *Element) own(id string) {
	for _, s := range el.series {
		if s == id {
			return
		}
	}
	el.series = append(el.series, id)
}

// RequestSpace is like Engine.RequestSpace, but the reservation is
// released when el is removed.
func (el *Element) RequestSpace(side Side, amount float64) (*Reservation, error) {
	r, err := el.e.RequestSpace(side, amount)
	if err != nil {
		return nil, err
	}
	el.reserve = append(el.reserve, r)
	return r, nil
}

// Track arranges for s to be unsubscribed when el is removed.
func (el *Element) Track(s *reactive.Subscription) {
	el.subs = append(el.subs, s)
}

// Remove deletes el's series, releases its reservations, and cancels
// its subscriptions, as a single change. Calls after the first do
// nothing.
func (el *Element) Remove() {
	if el.removed {
		return
	}
	el.removed = true
	// Unsubscribe first so el observes none of its own teardown.
	for _, s := range el.subs {
		s.Unsubscribe()
	}
	el.e.Batch(func() {
		for _, id := range el.series {
			el.e.DeleteSeries(id)
		}
		for _, r := range el.reserve {
			r.Release()
		}
	})
	el.series, el.reserve, el.subs = nil, nil, nil
}
