// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reactive

import "errors"

// A Node is a vertex of a Graph. Cells and Derived values are Nodes.
type Node interface {
	// Name returns the node's debugging name.
	Name() string

	base() *node
}

type node struct {
	g    *Graph
	id   int
	name string

	deps []*node // inputs, in declaration order
	outs []int   // dependents

	// compute derives the node's value from its inputs. It is nil
	// for source nodes.
	compute func() (any, error)

	value   any
	err     error // why value is unavailable; nil if ready
	ready   bool
	pending bool
	closed  bool

	subs []*Subscription
}

func (n *node) Name() string { return n.name }
func (n *node) base() *node  { return n }

// recompute refreshes a derived node from its inputs.
func (n *node) recompute() {
	for _, dep := range n.deps {
		if !dep.ready {
			n.value, n.ready = nil, false
			n.err = dep.err
			if n.err == nil {
				n.err = ErrNotReady
			}
			return
		}
	}
	v, err := n.compute()
	if err != nil {
		n.value, n.ready, n.err = nil, false, err
		n.g.log.Debug("reactive: derivation failed", "node", n.name, "err", err)
		return
	}
	n.value, n.ready, n.err = v, true, nil
}

// failed reports whether n lacks a value because of an error, as
// opposed to waiting for an input.
func (n *node) failed() bool {
	return !n.ready && n.err != nil && !errors.Is(n.err, ErrNotReady)
}

// emit delivers n's current value, or its error, to its subscribers.
// Nodes still waiting for inputs notify no one.
func (n *node) emit() {
	if len(n.subs) == 0 || !(n.ready || n.failed()) {
		return
	}
	subs := append([]*Subscription(nil), n.subs...)
	for _, s := range subs {
		if s.n != nil {
			s.deliver(n)
		}
	}
}

// subscribe registers fn. If errs is false, fn only receives values.
func (n *node) subscribe(fn func(any, error), errs bool) *Subscription {
	s := &Subscription{fn: fn, errs: errs}
	if n.closed {
		if errs {
			fn(nil, ErrClosed)
		}
		return s
	}
	s.n = n
	n.subs = append(n.subs, s)
	if n.ready || n.failed() {
		s.deliver(n)
	}
	return s
}

func subscribe[T any](n *node, fn func(T, error), errs bool) *Subscription {
	return n.subscribe(func(v any, err error) {
		t, _ := v.(T)
		fn(t, err)
	}, errs)
}

func (n *node) get() (any, error) {
	if !n.ready {
		if n.err != nil {
			return nil, n.err
		}
		return nil, ErrNotReady
	}
	return n.value, nil
}

// A Subscription is a registered callback on a Node.
type Subscription struct {
	n    *node
	fn   func(any, error)
	errs bool // deliver errors as well as values
}

func (s *Subscription) deliver(n *node) {
	switch {
	case n.ready:
		s.fn(n.value, nil)
	case s.errs:
		s.fn(nil, n.err)
	}
}

// Unsubscribe stops delivery to the subscription's callback. It is
// safe to call more than once.
func (s *Subscription) Unsubscribe() {
	n := s.n
	if n == nil {
		return
	}
	s.n = nil
	for i, o := range n.subs {
		if o == s {
			copy(n.subs[i:], n.subs[i+1:])
			n.subs[len(n.subs)-1] = nil
			n.subs = n.subs[:len(n.subs)-1]
			return
		}
	}
}
