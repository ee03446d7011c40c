// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reactive

// A Derived is a node whose value is computed from other nodes.
type Derived[T any] struct {
	n *node
}

// Derive returns a node in g computed by f from deps. f runs only
// when every dep has a value, so it may read them with Get. If f
// returns an error, the node has no value until a later
// recomputation succeeds, and the error is reported by Value.
//
// The node is computed immediately if its inputs are ready.
func Derive[T any](g *Graph, name string, deps []Node, f func() (T, error)) *Derived[T] {
	n := &node{
		name:    name,
		compute: func() (any, error) { return f() },
	}
	for _, d := range deps {
		n.deps = append(n.deps, d.base())
	}
	g.add(n)
	n.recompute()
	return &Derived[T]{n}
}

// Map returns a node in g holding f applied to a's value.
func Map[A, T any](g *Graph, name string, a Signal[A], f func(A) T) *Derived[T] {
	return Derive(g, name, []Node{a}, func() (T, error) {
		return f(Get(a)), nil
	})
}

// Combine2 returns a node in g computed from the latest values of a
// and b.
func Combine2[A, B, T any](g *Graph, name string, a Signal[A], b Signal[B], f func(A, B) (T, error)) *Derived[T] {
	return Derive(g, name, []Node{a, b}, func() (T, error) {
		return f(Get(a), Get(b))
	})
}

func (d *Derived[T]) Name() string { return d.n.name }
func (d *Derived[T]) base() *node  { return d.n }

func (d *Derived[T]) Value() (T, error) {
	return typed[T](d.n.get())
}

func (d *Derived[T]) Subscribe(fn func(T)) *Subscription {
	return subscribe(d.n, func(v T, _ error) { fn(v) }, false)
}

func (d *Derived[T]) SubscribeErr(fn func(T, error)) *Subscription {
	return subscribe(d.n, fn, true)
}

// Close removes d, and every node derived from it, from the graph.
// Their values report ErrClosed from then on, SubscribeErr callbacks
// receive ErrClosed once, and all subscriptions are cancelled.
// Closing a closed node does nothing.
func (d *Derived[T]) Close() {
	d.n.g.close(d.n)
}

// Closed reports whether d has been closed.
func (d *Derived[T]) Closed() bool { return d.n.closed }

// Get returns s's value, or the zero T if it has none.
func Get[T any](s Signal[T]) T {
	v, _ := s.Value()
	return v
}
