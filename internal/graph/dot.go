// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Dot contains options for generating a Graphviz Dot graph from a
// Graph.
type Dot struct {
	// Name is the name given to the graph. Usually this can be
	// left blank.
	Name string

	// Label returns the string to use as a label for the given
	// node. If nil, nodes are labeled with their node numbers.
	Label func(node int) string

	// Shape returns the Graphviz shape for the given node, or ""
	// for the default shape. If nil, all nodes use the default.
	Shape func(node int) string
}

// Fprint writes the Dot form of g to w.
func (d Dot) Fprint(w io.Writer, g Graph) error {
	label := d.Label
	if label == nil {
		label = strconv.Itoa
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "digraph %s {\n", dotString(d.Name))
	for i := 0; i < g.NumNodes(); i++ {
		attrs := "label=" + dotString(label(i))
		if d.Shape != nil {
			if shape := d.Shape(i); shape != "" {
				attrs += ",shape=" + shape
			}
		}
		fmt.Fprintf(bw, "n%d [%s];\n", i, attrs)
		for _, out := range g.Out(i) {
			fmt.Fprintf(bw, "n%d -> n%d;\n", i, out)
		}
	}
	fmt.Fprintf(bw, "}\n")
	return bw.Flush()
}

// dotString returns s as a quoted dot string.
func dotString(s string) string {
	buf := []byte{'"'}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\\', '"', '{', '}', '<', '>', '|':
			buf = append(buf, '\\', s[i])
		default:
			buf = append(buf, s[i])
		}
	}
	buf = append(buf, '"')
	return string(buf)
}
