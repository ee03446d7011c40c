// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reactive implements a push-driven dependency graph of
// values.
//
// A Graph holds source nodes (Cells), whose values are set directly,
// and derived nodes, whose values are computed from other nodes.
// Derived nodes have "all-of" semantics: a derived node has no value
// until every one of its inputs has a value, and after that it is
// recomputed whenever any input changes.
//
// Changes propagate synchronously in a deterministic topological
// order, so every derived node is recomputed at most once per change
// and subscribers never observe a node whose inputs are only
// partially updated. Batch coalesces several changes into a single
// propagation. Closing a derived node removes it and everything
// computed from it.
//
// A Graph is not safe for concurrent use.
package reactive

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aclements/go-cartesian/internal/graph"
)

// ErrNotReady is returned by Value for a node that does not have a
// value yet.
var ErrNotReady = errors.New("value not ready")

// ErrClosed is returned by Value for a node that has been closed.
var ErrClosed = errors.New("node closed")

// A Graph is a set of nodes connected by dependency edges.
type Graph struct {
	log   *slog.Logger
	nodes []*node

	// order is the cached topological order of nodes, or nil if a
	// node was added since it was computed.
	order []int

	depth    int     // Batch nesting depth
	flushing bool    // propagating changes
	pending  []*node // changed sources not yet propagated
}

// New returns an empty Graph. If log is nil, slog.Default() is used.
func New(log *slog.Logger) *Graph {
	if log == nil {
		log = slog.Default()
	}
	return &Graph{log: log}
}

// NumNodes returns the number of nodes in g. Together with Out, it
// makes g a graph.Graph whose edges point from inputs to dependents.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// Out returns the indexes of the nodes computed from node i.
func (g *Graph) Out(i int) []int {
	return g.nodes[i].outs
}

// Batch calls f and defers propagating any changes f makes until it
// returns. Batches may nest; changes propagate when the outermost
// batch completes.
func (g *Graph) Batch(f func()) {
	g.depth++
	func() {
		defer func() { g.depth-- }()
		f()
	}()
	if g.depth == 0 && !g.flushing {
		g.flush()
	}
}

// WriteDot writes the dependency graph of g to w in Graphviz format.
// Source nodes are drawn as boxes.
func (g *Graph) WriteDot(w io.Writer) error {
	d := graph.Dot{
		Name:  "reactive",
		Label: func(i int) string { return g.nodes[i].name },
		Shape: func(i int) string {
			if g.nodes[i].compute == nil {
				return "box"
			}
			return ""
		},
	}
	return d.Fprint(w, g)
}

func (g *Graph) add(n *node) {
	for _, dep := range n.deps {
		if dep.g != g {
			panic(fmt.Sprintf("reactive: node %q depends on %q from another graph", n.name, dep.name))
		}
		if dep.closed {
			panic(fmt.Sprintf("reactive: node %q depends on closed node %q", n.name, dep.name))
		}
	}
	n.g = g
	n.id = len(g.nodes)
	g.nodes = append(g.nodes, n)
	for _, dep := range n.deps {
		dep.outs = append(dep.outs, n.id)
	}
	g.order = nil
}

// close marks n and everything downstream of it closed, drops them
// from g, and then cancels their subscriptions.
func (g *Graph) close(n *node) {
	if n.closed {
		return
	}
	var dead []*node
	for _, id := range graph.PreOrder(g, n.id) {
		m := g.nodes[id]
		m.closed = true
		m.value, m.ready, m.err = nil, false, ErrClosed
		dead = append(dead, m)
	}
	g.compact()

	for _, m := range dead {
		subs := m.subs
		m.subs = nil
		for _, s := range subs {
			if s.n == nil {
				continue
			}
			s.n = nil
			if s.errs {
				s.fn(nil, ErrClosed)
			}
		}
	}
}

// compact removes closed nodes from g.nodes and renumbers the rest.
// A live node never depends on a closed one.
func (g *Graph) compact() {
	live := g.nodes[:0]
	for _, n := range g.nodes {
		if n.closed {
			continue
		}
		n.id = len(live)
		n.outs = n.outs[:0]
		live = append(live, n)
	}
	clear(g.nodes[len(live):])
	g.nodes = live
	for _, n := range live {
		for _, dep := range n.deps {
			dep.outs = append(dep.outs, n.id)
		}
	}
	g.order = nil
}

func (g *Graph) topo() []int {
	if g.order == nil {
		g.order = graph.TopoOrder(g)
	}
	return g.order
}

// changed records that source node n has a new value and propagates
// it unless a batch or another propagation is in progress.
func (g *Graph) changed(n *node) {
	if !n.pending {
		n.pending = true
		g.pending = append(g.pending, n)
	}
	if g.depth > 0 || g.flushing {
		return
	}
	g.flush()
}

// flush propagates pending changes until there are none. Changes made
// by subscribers while a propagation is running are picked up by the
// next round.
func (g *Graph) flush() {
	g.flushing = true
	defer func() { g.flushing = false }()

	for len(g.pending) > 0 {
		sources := g.pending
		g.pending = nil
		roots := make([]int, len(sources))
		for i, n := range sources {
			n.pending = false
			roots[i] = n.id
		}
		g.propagate(roots)
	}
}

// propagate recomputes every node downstream of roots in topological
// order and then notifies subscribers of the nodes that changed.
func (g *Graph) propagate(roots []int) {
	affected := make([]bool, len(g.nodes))
	for _, id := range graph.PreOrder(g, roots...) {
		affected[id] = true
	}

	var changed []*node
	for _, id := range g.topo() {
		if !affected[id] {
			continue
		}
		n := g.nodes[id]
		if n.compute != nil {
			n.recompute()
		}
		changed = append(changed, n)
	}
	for _, n := range changed {
		n.emit()
	}
}
