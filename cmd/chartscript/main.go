// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command chartscript runs chart scripts and prints the scales and
// geometry they query.
//
// Usage:
//
//	chartscript [flags] [scripts...]
//
// With no scripts, chartscript reads standard input. If standard
// input is a terminal, it prompts for commands and reports errors
// without exiting.
//
// For example,
//
//	size 200 100
//	series a - - 0,0 10,10
//	scale default-x
//	path a
//
// prints the x scale, with its ticks, and the path through series a.
// See package github.com/aclements/go-cartesian/script for the script
// language.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/aclements/go-cartesian/chart"
	"github.com/aclements/go-cartesian/script"
)

func main() {
	log.SetPrefix("chartscript: ")
	log.SetFlags(0)

	var (
		flagYAML   = flag.Bool("yaml", false, "print query results as YAML")
		flagDot    = flag.String("dot", "", "write the dependency graph to `file` in Graphviz format")
		flagTicks  = flag.Int("ticks", chart.DefaultMaxTicks, "at most `n` ticks on numeric axes")
		flagRadius = flag.Float64("radius", chart.DefaultPointRadius, "point marker `radius`")
		flagV      = flag.Bool("v", false, "log failed recomputations")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [scripts...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelWarn
	if *flagV {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	e := chart.New(chart.Options{
		Logger:      logger,
		MaxTicks:    *flagTicks,
		PointRadius: *flagRadius,
	})
	in := script.NewInterp(e)
	p := newPrinter(os.Stdout, *flagYAML)

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	for _, path := range paths {
		func() {
			f, name := os.Stdin, "<stdin>"
			if path != "-" {
				var err error
				f, err = os.Open(path)
				if err != nil {
					log.Fatal(err)
				}
				defer f.Close()
				name = path
			}
			interactive := path == "-" && terminal.IsTerminal(int(os.Stdin.Fd()))
			if err := run(in, f, name, p, interactive); err != nil {
				log.Fatal(err)
			}
		}()
	}
	if in.InBatch() {
		log.Fatal("begin without end")
	}
	if err := p.Close(); err != nil {
		log.Fatal(err)
	}

	if *flagDot != "" {
		writeFile(*flagDot, e.WriteDot)
	}
}

// run executes the script in r. If interactive is set, it prompts for
// each command on stderr and logs failed commands instead of
// stopping.
func run(in *script.Interp, r io.Reader, name string, p *printer, interactive bool) error {
	sr := script.NewReader(r)
	for {
		if interactive {
			fmt.Fprint(os.Stderr, "> ")
		}
		cmd, err := sr.Next()
		if err == io.EOF {
			if interactive {
				fmt.Fprintln(os.Stderr)
			}
			return nil
		}
		var serr *script.SyntaxError
		if err != nil && !errors.As(err, &serr) {
			return err
		}
		var res any
		if err == nil {
			res, err = in.Exec(cmd)
		}
		if err != nil {
			if !interactive {
				return fmt.Errorf("%s: %w", name, err)
			}
			log.Print(err)
			continue
		}
		if res != nil {
			if err := p.Print(cmd, res); err != nil {
				return err
			}
		}
	}
}

func writeFile(path string, write func(io.Writer) error) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	if err := write(f); err != nil {
		f.Close()
		log.Fatalf("writing %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
}
