package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cobra"

	aerr "github.com/alderlang/alder/error"
	"github.com/alderlang/alder/parser"
	"github.com/alderlang/alder/position"
	"github.com/alderlang/alder/render"
	"github.com/alderlang/alder/scanner"
	"github.com/alderlang/alder/syntax"
)

var parseFlags = struct {
	syntaxFile *string
	styleFile  *string
	parallel   *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse [file...]",
		Short:   "Parse source files and print their trees",
		Example: `  alder parse program.alder`,
		RunE:    runParse,
	}
	parseFlags.syntaxFile = cmd.Flags().StringP("syntax", "y", "", "syntax description file (default builtin)")
	parseFlags.styleFile = cmd.Flags().StringP("style", "s", "", "style description file (default builtin)")
	parseFlags.parallel = cmd.Flags().BoolP("parallel", "p", false, "parse the files concurrently, one session per file")
	rootCmd.AddCommand(cmd)
}

func loadConfiguration() (*syntax.Table, *render.Style, error) {
	table := syntax.Builtin()
	if *parseFlags.syntaxFile != "" {
		table = syntax.NewTable()
		errs := aerr.NewErrors(nil, os.Stderr)
		if err := table.ReadFile(*parseFlags.syntaxFile, position.NewRegistry(), errs); err != nil {
			return nil, nil, fmt.Errorf("cannot read the syntax file %s: %w", *parseFlags.syntaxFile, err)
		}
		if errs.Count() > 0 {
			return nil, nil, fmt.Errorf("%d errors in the syntax file %s", errs.Count(), *parseFlags.syntaxFile)
		}
	}

	style := render.Builtin()
	if *parseFlags.styleFile != "" {
		style = render.NewStyle()
		errs := aerr.NewErrors(nil, os.Stderr)
		if err := style.ReadFile(*parseFlags.styleFile, position.NewRegistry(), errs); err != nil {
			return nil, nil, fmt.Errorf("cannot read the style file %s: %w", *parseFlags.styleFile, err)
		}
		if errs.Count() > 0 {
			return nil, nil, fmt.Errorf("%d errors in the style file %s", errs.Count(), *parseFlags.styleFile)
		}
	}
	return table, style, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	table, style, err := loadConfiguration()
	if err != nil {
		return err
	}

	if *parseFlags.parallel && len(args) > 1 {
		return parseParallel(args, table, style)
	}
	return parseSequential(args, table, style)
}

// parseSequential parses every file through one shared position
// registry, the way a single session works.
func parseSequential(args []string, table *syntax.Table, style *render.Style) error {
	registry := position.NewRegistry()
	errs := aerr.NewErrors(registry, os.Stderr)

	if len(args) == 0 {
		parseOne(registry, table, style, errs, "<stdin>", os.Stdin, os.Stdout)
	}
	for _, name := range args {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		parseOne(registry, table, style, errs, name, f, os.Stdout)
		f.Close()
	}
	if n := errs.Count(); n > 0 {
		return fmt.Errorf("%d errors", n)
	}
	return nil
}

// parseParallel gives every file its own parse session and prints the
// results in argument order.
func parseParallel(args []string, table *syntax.Table, style *render.Style) error {
	pool, err := ants.NewPool(runtime.NumCPU())
	if err != nil {
		return err
	}
	defer pool.Release()

	type result struct {
		out      bytes.Buffer
		messages bytes.Buffer
		errors   int
	}
	results := make([]result, len(args))
	var wg sync.WaitGroup
	for i, name := range args {
		i, name := i, name
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			res := &results[i]
			f, err := os.Open(name)
			if err != nil {
				fmt.Fprintln(&res.messages, err)
				res.errors++
				return
			}
			defer f.Close()
			registry := position.NewRegistry()
			errs := aerr.NewErrors(registry, &res.messages)
			parseOne(registry, table.Clone(), style, errs, name, f, &res.out)
			res.errors = errs.Count()
		})
		if submitErr != nil {
			wg.Done()
			return submitErr
		}
	}
	wg.Wait()

	failed := 0
	for i := range results {
		io.Copy(os.Stderr, &results[i].messages)
		io.Copy(os.Stdout, &results[i].out)
		failed += results[i].errors
	}
	if failed > 0 {
		return fmt.Errorf("%d errors", failed)
	}
	return nil
}

func parseOne(registry *position.Registry, table *syntax.Table, style *render.Style,
	errs *aerr.Errors, name string, in io.Reader, out io.Writer) {
	scan := scanner.New(registry, table, errs)
	read, stream := scanner.ReadFrom(in)
	scan.OpenStream(name, read, stream)

	result, _ := parser.Parse(scan, table, errs)
	if result == nil {
		return
	}
	r := render.New(style, out)
	if err := r.Render(result); err != nil {
		errs.Errorf(result.Pos(), "cannot write the output: %v", err)
		return
	}
	fmt.Fprintln(out)
}
