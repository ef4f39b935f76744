package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/peterh/liner"

	"github.com/evaluants/arith"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb string
		with         [][2]string
		nl, echo     bool
		deg          bool
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (- for stdin)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.BoolVar(&deg, "deg", false, "measure angles in degrees")
	flag.Parse()

	var copts []arith.ContextOption
	if deg {
		copts = append(copts, arith.Degrees())
	}
	ctx := arith.NewContext(copts...)
	for _, d := range with {
		nm := d[0]
		vl := d[1]
		r, err := arith.EvalString(vl, copts...)
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		ctx.Set(nm, r)
	}

	if inname == "" && flag.NArg() == 0 {
		if err := prompt(ctx, verb, echo); err != nil {
			log.Fatal(err)
		}
		return
	}

	var ins []io.RuneScanner
	if inname != "" {
		f, err := infile(inname)
		if err != nil {
			log.Fatal(err)
		}
		ins = append(ins, f)
	}
	for _, arg := range flag.Args() {
		ins = append(ins, strings.NewReader(arg))
	}

	var opts []arith.ParseOption
	if nl {
		opts = append(opts, arith.StopOn('\n'))
	}
	var p []*arith.Expr
	for _, in := range ins {
		for {
			// First check whether we're done with the input.
			if _, _, err := in.ReadRune(); err != nil {
				if err == io.EOF {
					break
				}
				log.Fatal(err)
			}
			in.UnreadRune()
			a, err := arith.Parse(in, opts...)
			if err != nil {
				log.Fatal(err)
			}
			p = append(p, a)
		}
	}

	verb += "\n"
	for _, a := range p {
		if echo {
			fmt.Printf("%v : ", a)
		}
		r, err := a.Eval(ctx)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf(verb, r)
	}
}

func infile(inname string) (io.RuneScanner, error) {
	if inname == "-" {
		return bufio.NewReader(os.Stdin), nil
	}
	f, err := os.Open(inname)
	if err != nil {
		return nil, err
	}
	return bufio.NewReader(f), nil
}

var history = filepath.Join(xdg.DataHome, "arith", "history")

// prompt runs an interactive loop, evaluating each entered line against ctx.
func prompt(ctx *arith.Context, verb string, echo bool) error {
	line := liner.NewLiner()
	defer func() {
		if err := os.MkdirAll(filepath.Dir(history), os.ModePerm); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if f, err := os.Create(history); err == nil {
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		line.Close()
	}()

	if f, err := os.Open(history); err == nil {
		defer f.Close()
		if _, err := line.ReadHistory(f); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	verb += "\n"
	for {
		input, err := line.Prompt("> ")
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)
		a, err := arith.Parse(strings.NewReader(input))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if echo {
			fmt.Printf("%v : ", a)
		}
		r, err := a.Eval(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Printf(verb, r)
	}
}
