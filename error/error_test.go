package error

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alderlang/alder/tree"
	"go.uber.org/multierr"
)

func TestErrorfDisplaysImmediatelyAtTopLevel(t *testing.T) {
	var out strings.Builder
	errs := NewErrors(nil, &out)

	errs.Errorf(0, "unexpected %s", "token")
	assert.Equal(t, 1, errs.Count())
	assert.Contains(t, out.String(), "unexpected token")
}

func TestTreeVerb(t *testing.T) {
	var out strings.Builder
	errs := NewErrors(nil, &out)

	n := tree.NewInfix(0, tree.NewName(0, "+"), tree.NewNatural(0, 1), tree.NewNatural(0, 2))
	errs.Errorf(0, "cannot evaluate %t here", n)
	assert.Contains(t, out.String(), "cannot evaluate 1 + 2 here")
}

func TestContextsCommitAndClear(t *testing.T) {
	var out strings.Builder
	errs := NewErrors(nil, &out)

	ctx := errs.Save()
	errs.Errorf(0, "first")
	assert.Empty(t, out.String(), "saved diagnostics must not display")
	assert.Equal(t, 1, errs.Count())

	inner := errs.Save()
	errs.Errorf(0, "second")
	inner.Clear()
	assert.Equal(t, 1, errs.Count(), "cleared diagnostics disappear")

	ctx.Commit()
	assert.Equal(t, 1, errs.Count())
	assert.Contains(t, out.String(), "first")
	assert.NotContains(t, out.String(), "second")
}

func TestCommitIntoEnclosingContext(t *testing.T) {
	var out strings.Builder
	errs := NewErrors(nil, &out)

	outer := errs.Save()
	inner := errs.Save()
	errs.Errorf(0, "kept")
	inner.Commit()
	assert.Empty(t, out.String(), "commit into an enclosing context must not display")

	outer.Commit()
	assert.Contains(t, out.String(), "kept")
}

func TestErrFoldsDiagnostics(t *testing.T) {
	errs := NewErrors(nil, nil)
	require.NoError(t, errs.Err())

	errs.Errorf(0, "one")
	errs.Errorf(0, "two")
	err := errs.Err()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
}
