package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/zephyrtronium/sciexpr"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb, mode string
		nl, echo, raw      bool
		depth              int
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&mode, "mode", "deg", "angle mode: deg, rad, or grad")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string with -raw")
	flag.IntVar(&depth, "depth", sciexpr.DefaultMaxDepth, "maximum nesting depth of expressions")
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&raw, "raw", false, "print results with -fmt instead of calculator display rounding")
	flag.Parse()
	if depth <= 0 {
		log.Fatalf("depth (%d) must be positive", depth)
	}
	am, err := sciexpr.ParseAngleMode(mode)
	if err != nil {
		log.Fatal(err)
	}

	var srcs []string
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		s, err := readexprs(f, nl)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
		srcs = append(srcs, s...)
	}
	srcs = append(srcs, flag.Args()...)

	ctx := sciexpr.NewContext(sciexpr.Angle(am), sciexpr.EvalDepth(depth))
	verb += "\n"
	for _, src := range srcs {
		a, err := sciexpr.Parse(sciexpr.Normalize(src), sciexpr.MaxDepth(depth))
		if err != nil {
			fmt.Println(err)
			continue
		}
		if echo {
			fmt.Printf("%v : ", a)
		}
		r, err := ctx.Eval(a)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if raw {
			fmt.Printf(verb, r)
			continue
		}
		fmt.Println(sciexpr.Format(r))
	}
}

// readexprs reads expressions from r. With nl, each non-blank line is an
// expression; otherwise the whole input is one.
func readexprs(r io.Reader, nl bool) ([]string, error) {
	if !nl {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return []string{strings.TrimSpace(string(b))}, nil
	}
	var v []string
	scan := bufio.NewScanner(r)
	for scan.Scan() {
		if s := strings.TrimSpace(scan.Text()); s != "" {
			v = append(v, s)
		}
	}
	return v, scan.Err()
}

// infile opens the input named by inname, or stdin if inname is "-" or std is
// set. It returns nil if there is no input to read.
func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		return in, nil
	case inname == "-", std:
		return io.NopCloser(bufio.NewReader(os.Stdin)), nil
	}
	return nil, nil
}
