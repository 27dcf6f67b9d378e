package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pythia-lang/pythia/internal/parser"
)

func minVersionOf(t *testing.T, src string) string {
	t.Helper()
	program := parser.ParseModule(src)
	require.True(t, program.Valid(), "parse errors: %v", program.Errors)
	v := MinVersion(program.Syntax)
	return v.String()
}

func TestMinVersion(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		version string
	}{
		{"plain", "def f(a, b=1):\n    return a + b\n", "3.0.0"},
		{"walrus", "if (n := len(xs)) > 10:\n    pass\n", "3.8.0"},
		{"positional only", "def f(a, /, b):\n    pass\n", "3.8.0"},
		{"lambda positional only", "f = lambda a, /, b: a\n", "3.8.0"},
		{"relaxed decorator", "@buttons[0].clicked\ndef f():\n    pass\n", "3.9.0"},
		{"dotted decorator", "@app.route('/')\ndef f():\n    pass\n", "3.0.0"},
		{"match", "match x:\n    case _:\n        pass\n", "3.10.0"},
		{"except star", "try:\n    pass\nexcept* ValueError:\n    pass\n", "3.11.0"},
		{"type alias", "type Vector = list[float]\n", "3.12.0"},
		{"generic def", "def first[T](xs: list[T]) -> T:\n    return xs[0]\n", "3.12.0"},
		{"generic class", "class Box[T]:\n    pass\n", "3.12.0"},
		{"type param default", "class Box[T = int]:\n    pass\n", "3.13.0"},
		{"highest wins", "y = (x := 1)\nmatch x:\n    case _:\n        pass\n", "3.10.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.version, minVersionOf(t, tt.src))
		})
	}
}

func TestScanReportsEachOccurrence(t *testing.T) {
	src := "match a:\n    case _:\n        pass\nmatch b:\n    case _:\n        pass\n"
	program := parser.ParseModule(src)
	require.True(t, program.Valid(), "parse errors: %v", program.Errors)

	reqs := Scan(program.Syntax)
	require.Len(t, reqs, 2)
	for _, req := range reqs {
		assert.Equal(t, "match statement", req.Feature)
		assert.True(t, req.Version.Equal(Py310))
	}
	assert.Less(t, reqs[0].Range.Start, reqs[1].Range.Start, "requirements out of source order")
}

func TestCheck(t *testing.T) {
	src := "y = (x := 1)\nmatch x:\n    case _:\n        pass\n"
	program := parser.ParseModule(src)
	require.True(t, program.Valid(), "parse errors: %v", program.Errors)

	t.Run("target too old", func(t *testing.T) {
		failed := Check(program.Syntax, Py39)
		require.Len(t, failed, 1)
		assert.Equal(t, "match statement", failed[0].Feature)
	})
	t.Run("target satisfies", func(t *testing.T) {
		assert.Empty(t, Check(program.Syntax, Py310))
	})
	t.Run("nil target disables gate", func(t *testing.T) {
		assert.Empty(t, Check(program.Syntax, nil))
	})
}

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("3.10")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), v.Major())
	assert.Equal(t, uint64(10), v.Minor())

	_, err = ParseVersion("python3")
	assert.Error(t, err)
}
