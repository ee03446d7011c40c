// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

// intGraph is an adjacency-list Graph: g[i] lists the successors of
// node i.
type intGraph [][]int

func (g intGraph) NumNodes() int   { return len(g) }
func (g intGraph) Out(i int) []int { return g[i] }

// graphCycle is the example graph from Muchnick, "Advanced Compiler
// Design & Implementation", figure 8.21. It contains the cycle 2->3->2.
var graphCycle = intGraph{
	0: {1},
	1: {2},
	2: {3, 4},
	3: {2},
	4: {5, 6},
	5: {7},
	6: {7},
	7: {},
}

// graphScales is shaped like a chart dependency graph: two cells
// (size 0, data 1) feed two axis ranges and an extent, which feed
// two scales and finally a generator.
var graphScales = intGraph{
	0: {2, 3},
	1: {4},
	2: {5},
	3: {6},
	4: {5, 6},
	5: {7},
	6: {7},
	7: {},
}
