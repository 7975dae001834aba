package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	lsystem "github.com/viktordanov/plsystem"
	"github.com/viktordanov/plsystem/turtle"
)

const usage = `usage: plsystem [options] [grammar.yml]

options:
  -f FILE   grammar file (default grammar.yml)
  -n N      override the iteration count of every grammar
  -t        print the turtle command trace instead of the sentence
  -d        print the blake3 digest of each sentence
  -c FILE   write a growth chart to FILE
  -s ADDR   serve growth charts on ADDR
  -S        strict: fail on argument mismatches and bad literals
  -h        show this help
`

type options struct {
	file       string
	iterations int
	trace      bool
	digest     bool
	chart      string
	serve      string
	strict     bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix(color.YellowString("plsystem: "))

	opts, code := readFlags(os.Args)
	if code >= 0 {
		os.Exit(code)
	}
	if err := run(os.Stdout, opts); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("plsystem: %v", err))
		os.Exit(1)
	}
}

// readFlags returns an exit code, or -1 if plsystem should continue.
func readFlags(args []string) (options, int) {
	o := options{file: "grammar.yml", iterations: -1}
	opts, optind, err := getopt.Getopts(args, "f:n:tdc:s:Sh")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, usage)
		return o, 2
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'f':
			o.file = opt.Value
		case 'n':
			n, err := strconv.Atoi(opt.Value)
			if err != nil || n < 0 {
				fmt.Fprintln(os.Stderr, "invalid -n parameter")
				return o, 2
			}
			o.iterations = n
		case 't':
			o.trace = true
		case 'd':
			o.digest = true
		case 'c':
			o.chart = opt.Value
		case 's':
			o.serve = opt.Value
		case 'S':
			o.strict = true
		case 'h':
			fmt.Print(usage)
			return o, 0
		}
	}
	if rest := args[optind:]; len(rest) > 0 {
		o.file = rest[0]
	}
	return o, -1
}

func run(w io.Writer, o options) error {
	grammars, err := lsystem.LoadGrammars(o.file)
	if err != nil {
		return err
	}

	var growths []lsystem.Growth
	for _, g := range grammars {
		if o.strict {
			g.Strict = true
		}
		if o.iterations >= 0 {
			g.Iterations = o.iterations
		}
		it, err := g.Build()
		if err != nil {
			return err
		}

		sentence, err := it.Generate(g.Iterations)
		if err != nil {
			return err
		}
		if err := emit(w, g, sentence, o); err != nil {
			return err
		}

		if o.chart != "" || o.serve != "" {
			growth, err := lsystem.AnalyseGrowth(g.Name, it, g.Iterations)
			if err != nil {
				return err
			}
			growths = append(growths, growth)
		}
	}

	if o.chart != "" {
		if err := writeCharts(o.chart, growths); err != nil {
			return err
		}
	}
	if o.serve != "" {
		return lsystem.Serve(o.serve, growths)
	}
	return nil
}

func emit(w io.Writer, g *lsystem.Grammar, sentence string, o options) error {
	if g.Name != "" {
		fmt.Fprintln(w, color.CyanString("# %s", g.Name))
	}
	if o.trace {
		rec := turtle.NewRecorder()
		in := turtle.New(g.Angle, g.Step)
		if err := in.Draw(sentence, rec); err != nil {
			return err
		}
		if _, err := rec.WriteTo(w); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(w, sentence)
	}
	if o.digest {
		fmt.Fprintln(w, color.GreenString("blake3 %s", lsystem.Digest(sentence)))
	}
	return nil
}

func writeCharts(path string, growths []lsystem.Growth) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, g := range growths {
		if err := g.RenderChart(f); err != nil {
			return err
		}
	}
	return nil
}
