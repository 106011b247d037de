package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	aerr "github.com/alderlang/alder/error"
	"github.com/alderlang/alder/position"
	"github.com/alderlang/alder/scanner"
)

// The scan command dumps the token stream of a file. It is a debugging
// aid for syntax descriptions: it shows how spellings classify under
// the loaded table.

func init() {
	cmd := &cobra.Command{
		Use:   "scan [file]",
		Short: "Tokenize a source file and dump the token stream",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	table, _, err := loadConfiguration()
	if err != nil {
		return err
	}

	registry := position.NewRegistry()
	errs := aerr.NewErrors(registry, os.Stderr)
	scan := scanner.New(registry, table, errs)
	if len(args) == 1 {
		if err := scan.OpenFile(args[0]); err != nil {
			return err
		}
		defer scan.Close()
	} else {
		read, stream := scanner.ReadFrom(os.Stdin)
		scan.OpenStream("<stdin>", read, stream)
	}

	for {
		tok := scan.Read()
		where := fmt.Sprintf("@%d", tok.Pos)
		if info, ok := registry.Info(tok.Pos); ok {
			where = fmt.Sprintf("%d:%d", info.Line, info.Column+1)
		}
		fmt.Printf("%-10s %-12v %q\n", where, tok.Kind, tok.Source)
		if tok.Kind == scanner.KindEOF {
			break
		}
	}
	if n := errs.Count(); n > 0 {
		return fmt.Errorf("%d errors", n)
	}
	return nil
}
