// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/aclements/go-gg/table"
	"gopkg.in/yaml.v3"

	"github.com/aclements/go-cartesian/chart"
	"github.com/aclements/go-cartesian/script"
)

// A printer writes query results, either as text tables or as a
// stream of YAML documents.
type printer struct {
	w   io.Writer
	enc *yaml.Encoder // nil for text output
}

func newPrinter(w io.Writer, asYAML bool) *printer {
	p := &printer{w: w}
	if asYAML {
		p.enc = yaml.NewEncoder(w)
		p.enc.SetIndent(2)
	}
	return p
}

// queryDoc is the YAML form of a query result.
type queryDoc struct {
	Line   int    `yaml:"line"`
	Query  string `yaml:"query"`
	Result any    `yaml:"result"`
}

// Print writes the result res of cmd.
func (p *printer) Print(cmd *script.Command, res any) error {
	if p.enc != nil {
		return p.enc.Encode(queryDoc{cmd.Line, cmd.String(), res})
	}

	fmt.Fprintf(p.w, "# %s\n", cmd)
	switch res := res.(type) {
	case *script.ScaleResult:
		fmt.Fprintf(p.w, "kind %s range [%g, %g]", res.Kind, res.Range[0], res.Range[1])
		if res.Domain != nil {
			fmt.Fprintf(p.w, " domain [%g, %g]", res.Domain.Min, res.Domain.Max)
		}
		fmt.Fprintln(p.w)
		return p.table(tickTable(res.Ticks))
	case []chart.Circle:
		return p.table(circleTable(res))
	case []chart.Segment:
		return p.table(segmentTable(res))
	case *script.PathResult:
		fmt.Fprintf(p.w, "d %s\n", res.D)
		return p.table(vertexTable(res.Vertices))
	case chart.Size:
		_, err := fmt.Fprintf(p.w, "%g×%g\n", res.Width, res.Height)
		return err
	case []string:
		if len(res) == 0 {
			res = []string{"(none)"}
		}
		_, err := fmt.Fprintln(p.w, strings.Join(res, " "))
		return err
	case chart.Margins:
		_, err := fmt.Fprintf(p.w, "top %g bottom %g left %g right %g\n", res.Top, res.Bottom, res.Left, res.Right)
		return err
	}
	_, err := fmt.Fprintln(p.w, res)
	return err
}

func (p *printer) table(tab *table.Table, rows int) error {
	if rows == 0 {
		_, err := fmt.Fprintln(p.w, "(none)")
		return err
	}
	table.Fprint(p.w, tab)
	return nil
}

// Close flushes any buffered YAML output.
func (p *printer) Close() error {
	if p.enc != nil {
		return p.enc.Close()
	}
	return nil
}

func tickTable(ticks []chart.Tick) (*table.Table, int) {
	vals := make([]string, len(ticks))
	pos := make([]float64, len(ticks))
	labels := make([]string, len(ticks))
	for i, t := range ticks {
		vals[i], pos[i], labels[i] = t.Value.String(), t.Pos, t.Label
	}
	return new(table.Builder).Add("value", vals).Add("pos", pos).Add("label", labels).Done(), len(ticks)
}

func circleTable(cs []chart.Circle) (*table.Table, int) {
	cx := make([]float64, len(cs))
	cy := make([]float64, len(cs))
	r := make([]float64, len(cs))
	for i, c := range cs {
		cx[i], cy[i], r[i] = c.CX, c.CY, c.R
	}
	return new(table.Builder).Add("cx", cx).Add("cy", cy).Add("r", r).Done(), len(cs)
}

func segmentTable(segs []chart.Segment) (*table.Table, int) {
	x1 := make([]float64, len(segs))
	y1 := make([]float64, len(segs))
	x2 := make([]float64, len(segs))
	y2 := make([]float64, len(segs))
	for i, s := range segs {
		x1[i], y1[i], x2[i], y2[i] = s.X1, s.Y1, s.X2, s.Y2
	}
	return new(table.Builder).Add("x1", x1).Add("y1", y1).Add("x2", x2).Add("y2", y2).Done(), len(segs)
}

func vertexTable(vs []chart.Vertex) (*table.Table, int) {
	x := make([]float64, len(vs))
	y := make([]float64, len(vs))
	for i, v := range vs {
		x[i], y[i] = v.X, v.Y
	}
	return new(table.Builder).Add("x", x).Add("y", y).Done(), len(vs)
}
