// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package script reads and runs chart scripts.
//
// A chart script is a sequence of commands, one per line. Each line
// is split into words using shell quoting rules. Blank lines and lines
// starting with "#" are ignored. For example:
//
//	size 200 100
//	axis cats x ordinal category "Fruit"
//	series a cats - apple,3 pear,5 "dragon fruit",null
//	ref goal - - null,4
//	reserve legend right 40
//	scale cats
//	path a
//
// See Interp for the list of commands.
package script

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kballard/go-shellquote"
)

// A Command is a single line of a script.
type Command struct {
	// Line is the 1-based line number of the command.
	Line int

	Name string
	Args []string
}

func (c *Command) String() string {
	return shellquote.Join(append([]string{c.Name}, c.Args...)...)
}

// A SyntaxError is a line that could not be split into words.
type SyntaxError struct {
	Line int
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// A Reader reads commands from a script.
type Reader struct {
	s    *bufio.Scanner
	line int
}

// NewReader returns a Reader that reads from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{s: bufio.NewScanner(r)}
}

// Next returns the next command. At the end of the input it returns
// io.EOF.
func (r *Reader) Next() (*Command, error) {
	for r.s.Scan() {
		r.line++
		text := strings.TrimSpace(r.s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		words, err := shellquote.Split(text)
		if err != nil {
			return nil, &SyntaxError{r.line, err}
		}
		if len(words) == 0 {
			continue
		}
		return &Command{Line: r.line, Name: words[0], Args: words[1:]}, nil
	}
	if err := r.s.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// Parse reads all of the commands in r.
func Parse(r io.Reader) ([]*Command, error) {
	cmds := []*Command{}
	sr := NewReader(r)
	for {
		cmd, err := sr.Next()
		if err == io.EOF {
			return cmds, nil
		} else if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
}
