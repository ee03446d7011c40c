// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package script

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/go-cartesian/chart"
)

func TestParse(t *testing.T) {
	src := `# a comment
size 200 100

  axis cats x ordinal category "Fruit basket"
series a cats - 'dragon fruit,3' pear,null
`
	cmds, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	want := []*Command{
		{Line: 2, Name: "size", Args: []string{"200", "100"}},
		{Line: 4, Name: "axis", Args: []string{"cats", "x", "ordinal", "category", "Fruit basket"}},
		{Line: 5, Name: "series", Args: []string{"a", "cats", "-", "dragon fruit,3", "pear,null"}},
	}
	assert.Equal(t, want, cmds)
	assert.Equal(t, "size 200 100", cmds[0].String())
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse(strings.NewReader("size 1 2\nseries 'unterminated\n"))
	var serr *SyntaxError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 2, serr.Line)
}

func TestReaderEOF(t *testing.T) {
	r := NewReader(strings.NewReader("\n# nothing\n"))
	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestParsePoint(t *testing.T) {
	for _, test := range []struct {
		in   string
		want chart.Point
	}{
		{"1,2", chart.XY(1, 2)},
		{"null,2.5", chart.AtY(chart.Num(2.5))},
		{"a,null", chart.AtX(chart.Str("a"))},
		{"x,y,3", chart.Point{X: chart.Str("x,y"), Y: chart.Num(3)}},
	} {
		got, err := ParsePoint(test.in)
		require.NoError(t, err)
		assert.Equal(t, test.want, got, "ParsePoint(%q)", test.in)
	}
	_, err := ParsePoint("12")
	assert.Error(t, err)
}
