// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestPreOrder(t *testing.T) {
	po := PreOrder(graphCycle, 0)
	want := []int{0, 1, 2, 3, 4, 5, 7, 6}
	if !reflect.DeepEqual(want, po) {
		t.Errorf("want %v, got %v", want, po)
	}
}

func TestPreOrderRoots(t *testing.T) {
	// Only nodes downstream of data (1) are reachable.
	po := PreOrder(graphScales, 1)
	want := []int{1, 4, 5, 7, 6}
	if !reflect.DeepEqual(want, po) {
		t.Errorf("want %v, got %v", want, po)
	}

	po = PreOrder(graphScales, 3, 2)
	want = []int{3, 6, 7, 2, 5}
	if !reflect.DeepEqual(want, po) {
		t.Errorf("want %v, got %v", want, po)
	}
}

func TestPostOrder(t *testing.T) {
	po := PostOrder(graphCycle, 0)
	want := []int{3, 7, 5, 6, 4, 2, 1, 0}
	if !reflect.DeepEqual(want, po) {
		t.Errorf("want %v, got %v", want, po)
	}
}

func TestTopoOrder(t *testing.T) {
	order := TopoOrder(graphScales)
	want := []int{1, 4, 0, 3, 6, 2, 5, 7}
	if !reflect.DeepEqual(want, order) {
		t.Fatalf("want %v, got %v", want, order)
	}

	pos := make([]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	for i := range graphScales {
		for _, j := range graphScales.Out(i) {
			if pos[i] >= pos[j] {
				t.Errorf("edge %d->%d out of order in %v", i, j, order)
			}
		}
	}
}

func TestTopoOrderLarge(t *testing.T) {
	// A chain longer than the on-stack visit set.
	const n = 3000
	g := make(intGraph, n)
	for i := 0; i < n-1; i++ {
		g[i] = []int{i + 1}
	}
	order := TopoOrder(g)
	for i, x := range order {
		if i != x {
			t.Fatalf("order[%d] = %d", i, x)
		}
	}
}

func TestReverse(t *testing.T) {
	for _, test := range []struct {
		in, want []int
	}{
		{[]int{}, []int{}},
		{[]int{1}, []int{1}},
		{[]int{1, 2, 3}, []int{3, 2, 1}},
		{[]int{1, 2, 3, 4}, []int{4, 3, 2, 1}},
	} {
		got := Reverse(append([]int{}, test.in...))
		if !reflect.DeepEqual(test.want, got) {
			t.Errorf("Reverse(%v): want %v, got %v", test.in, test.want, got)
		}
	}
}

func TestDot(t *testing.T) {
	var buf bytes.Buffer
	d := Dot{
		Name:  "deps",
		Label: func(n int) string { return []string{"size", "scale \"x\""}[n] },
		Shape: func(n int) string {
			if n == 0 {
				return "box"
			}
			return ""
		},
	}
	if err := d.Fprint(&buf, intGraph{{1}, {}}); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		`digraph "deps" {`,
		`n0 [label="size",shape=box];`,
		`n0 -> n1;`,
		`n1 [label="scale \"x\""];`,
		`}`,
		``,
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("want:\n%s\ngot:\n%s", want, got)
	}
}
