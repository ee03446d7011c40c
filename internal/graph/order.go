// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import "math/big"

// visitSet is a set of visited nodes. Small graphs stay on the stack.
type visitSet struct {
	words [1024 / 32]big.Word
	bits  big.Int
}

func (v *visitSet) init() *visitSet {
	v.bits.SetBits(v.words[:0])
	return v
}

func (v *visitSet) has(n int) bool {
	return v.bits.Bit(n) != 0
}

func (v *visitSet) add(n int) {
	v.bits.SetBit(&v.bits, n, 1)
}

// PreOrder returns the nodes of g reachable from any of roots,
// visited in pre-order. Roots are visited in the order given.
func PreOrder(g Graph, roots ...int) []int {
	var vs visitSet
	visited := vs.init()

	out := []int{}
	var visit func(n int)
	visit = func(n int) {
		out = append(out, n)
		visited.add(n)
		for _, succ := range g.Out(n) {
			if !visited.has(succ) {
				visit(succ)
			}
		}
	}
	for _, root := range roots {
		if !visited.has(root) {
			visit(root)
		}
	}

	return out
}

// PostOrder returns the nodes of g reachable from any of roots,
// visited in post-order. Roots are visited in the order given.
func PostOrder(g Graph, roots ...int) []int {
	var vs visitSet
	visited := vs.init()

	out := []int{}
	var visit func(n int)
	visit = func(n int) {
		visited.add(n)
		for _, succ := range g.Out(n) {
			if !visited.has(succ) {
				visit(succ)
			}
		}
		out = append(out, n)
	}
	for _, root := range roots {
		if !visited.has(root) {
			visit(root)
		}
	}

	return out
}

// TopoOrder returns every node of g in a topological order: each
// node appears before all of the nodes it points to. g must be
// acyclic. The order is deterministic: it is the reverse post-order
// of a traversal that starts from each node in increasing index
// order.
func TopoOrder(g Graph) []int {
	roots := make([]int, g.NumNodes())
	for i := range roots {
		roots[i] = i
	}
	return Reverse(PostOrder(g, roots...))
}

// Reverse reverses xs in place and returns the slice. This is useful
// in conjunction with PreOrder and PostOrder.
func Reverse(xs []int) []int {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
	return xs
}
