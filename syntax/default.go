package syntax

import (
	_ "embed"
	"io"
	"sync"

	aerr "github.com/alderlang/alder/error"
	"github.com/alderlang/alder/position"
)

//go:embed alder.syntax
var builtinSyntax string

var builtin struct {
	once  sync.Once
	table *Table
}

// Builtin returns the default syntax table compiled into the binary.
// The table is shared: callers that want to mutate it must Clone first.
func Builtin() *Table {
	builtin.once.Do(func() {
		t := NewTable()
		errs := aerr.NewErrors(nil, io.Discard)
		t.ReadString("<builtin>", builtinSyntax, position.NewRegistry(), errs)
		builtin.table = t
	})
	return builtin.table
}
