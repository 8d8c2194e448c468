// Command pegdump builds a PEG from a small text CFG description and
// optionally dumps Graphviz DOT for inspection.
package main

import (
	"fmt"
	"os"

	"github.com/pegrewrite/peg/peg"
	"github.com/pegrewrite/peg/cfg"
	"github.com/pegrewrite/peg/cmd/pegdump/textcfg"
)

const usage = `pegdump [-dot | -dot-all] <file>`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfgToggle := peg.Config{}
	path := os.Args[len(os.Args)-1]
	for _, arg := range os.Args[1 : len(os.Args)-1] {
		switch arg {
		case "-dot":
			cfgToggle.EmitDot = true
		case "-dot-all":
			cfgToggle.EmitDot = true
			cfgToggle.DrawAllNodes = true
		default:
			fmt.Println(usage)
			os.Exit(1)
		}
	}

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	source, err := textcfg.Parse(string(src))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	oracle, err := cfg.NewOracle(source)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fn, err := peg.Build(oracle, source.Name)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if errs := peg.WriteDot(fn, cfgToggle, "."); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
	}

	for _, n := range fn.Nodes() {
		if n.Kind() != peg.BlockKind || n.IsVirtualForward() {
			continue
		}
		if n.Child() != nil {
			fmt.Printf("%s: child = %s\n", n.Name(), n.Child().Name())
		} else {
			fmt.Printf("%s: (entry)\n", n.Name())
		}
	}
}
