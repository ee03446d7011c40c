// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graph orders and prints directed graphs whose nodes are
// numbered 0 through NumNodes()-1.
//
// Dependency graphs use the convention that an edge points from an
// input to a node computed from it, so a topological order is a valid
// evaluation order.
package graph

// Graph is a directed graph over densely numbered nodes.
type Graph interface {
	// NumNodes returns the number of nodes. Nodes are numbered
	// from 0.
	NumNodes() int

	// Out returns the successors of node i.
	Out(i int) []int
}
