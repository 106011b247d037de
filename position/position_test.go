package position

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStepAdvances(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, Pos(0), r.Current())
	assert.Equal(t, Pos(0), r.Step())
	assert.Equal(t, Pos(1), r.Step())
	assert.Equal(t, Pos(2), r.Current())
}

func TestInfoMapsBackToLines(t *testing.T) {
	path := writeFile(t, "a.alder", "one\ntwo three\nfour\n")
	r := NewRegistry()
	start := r.OpenFile(path)
	require.Equal(t, Pos(0), start)

	tests := []struct {
		offset int
		line   int
		column int
		text   string
	}{
		{0, 1, 0, "one"},
		{2, 1, 2, "one"},
		{4, 2, 0, "two three"},
		{8, 2, 4, "two three"},
		{14, 3, 0, "four"},
	}
	for _, tt := range tests {
		info, ok := r.Info(Pos(tt.offset))
		require.True(t, ok, "offset %d", tt.offset)
		assert.Equal(t, tt.line, info.Line, "offset %d", tt.offset)
		assert.Equal(t, tt.column, info.Column, "offset %d", tt.offset)
		line, ok := info.SourceLine()
		require.True(t, ok)
		assert.Equal(t, tt.text, line, "offset %d", tt.offset)
	}
}

func TestSecondFileStartsAfterFirst(t *testing.T) {
	first := writeFile(t, "a.alder", "aaaa")
	second := writeFile(t, "b.alder", "bb\n")

	r := NewRegistry()
	r.OpenFile(first)
	for i := 0; i < 4; i++ {
		r.Step()
	}
	start := r.OpenFile(second)
	assert.Equal(t, Pos(4), start)

	info, ok := r.Info(start + 1)
	require.True(t, ok)
	assert.Equal(t, second, info.File)
	assert.Equal(t, 1, info.Line)
	assert.Equal(t, 1, info.Column)
}

func TestUnknownPosition(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Info(0)
	assert.False(t, ok, "no file registered")
}
