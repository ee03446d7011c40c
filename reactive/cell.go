// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reactive

// A Signal is a read-only view of a node holding values of type T.
type Signal[T any] interface {
	Node

	// Value returns the node's current value, or an error
	// explaining why it has none.
	Value() (T, error)

	// Subscribe registers fn to be called with every new value of
	// the node. If the node already has a value, fn is called
	// with it immediately. fn is not told when the node loses its
	// value; use SubscribeErr for that.
	Subscribe(fn func(T)) *Subscription

	// SubscribeErr is like Subscribe, but fn is also called with
	// the zero T and an error whenever the node is recomputed
	// without a value because a derivation failed, and with
	// ErrClosed when the node is closed. fn is not called while the
	// node is only waiting for its inputs.
	SubscribeErr(fn func(T, error)) *Subscription
}

// A Cell is a source node whose value is set directly.
type Cell[T any] struct {
	n *node
}

// NewCell returns a Cell in g that has no value until Set is called.
func NewCell[T any](g *Graph, name string) *Cell[T] {
	n := &node{name: name}
	g.add(n)
	return &Cell[T]{n}
}

// NewCellOf returns a Cell in g with initial value v.
func NewCellOf[T any](g *Graph, name string, v T) *Cell[T] {
	c := NewCell[T](g, name)
	c.n.value, c.n.ready = v, true
	return c
}

func (c *Cell[T]) Name() string { return c.n.name }
func (c *Cell[T]) base() *node  { return c.n }

// Set replaces the cell's value and propagates the change.
func (c *Cell[T]) Set(v T) {
	c.n.value, c.n.ready, c.n.err = v, true, nil
	c.n.g.changed(c.n)
}

// Update sets the cell's value to f applied to its current value (or
// the zero T if it has none).
func (c *Cell[T]) Update(f func(T) T) {
	c.Set(f(c.Get()))
}

// Get returns the cell's value, or the zero T if it has none.
func (c *Cell[T]) Get() T {
	v, _ := c.Value()
	return v
}

func (c *Cell[T]) Value() (T, error) {
	return typed[T](c.n.get())
}

func (c *Cell[T]) Subscribe(fn func(T)) *Subscription {
	return subscribe(c.n, func(v T, _ error) { fn(v) }, false)
}

func (c *Cell[T]) SubscribeErr(fn func(T, error)) *Subscription {
	return subscribe(c.n, fn, true)
}

func typed[T any](v any, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	t, _ := v.(T)
	return t, nil
}
