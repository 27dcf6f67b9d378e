package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/pythia-lang/pythia/internal/cli"
)

func TestCollectFiles(t *testing.T) {
	cfg = cli.DefaultConfig()
	root := t.TempDir()
	write := func(rel string) {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x = 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("a.py")
	write("pkg/b.py")
	write("pkg/types.pyi")
	write("__pycache__/c.py")
	write("notes.txt")

	files, err := collectFiles([]string{root})
	if err != nil {
		t.Fatal(err)
	}
	var rel []string
	for _, f := range files {
		r, _ := filepath.Rel(root, f)
		rel = append(rel, filepath.ToSlash(r))
	}
	sort.Strings(rel)
	want := []string{"a.py", "pkg/b.py", "pkg/types.pyi"}
	if len(rel) != len(want) {
		t.Fatalf("files = %v, want %v", rel, want)
	}
	for i := range want {
		if rel[i] != want[i] {
			t.Fatalf("files = %v, want %v", rel, want)
		}
	}

	// explicit file argument bypasses the extension filter
	direct, err := collectFiles([]string{filepath.Join(root, "notes.txt")})
	if err != nil {
		t.Fatal(err)
	}
	if len(direct) != 1 {
		t.Fatalf("direct = %v, want one entry", direct)
	}
}

func TestOpensBlock(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"def f():", true},
		{"if x:  ", true},
		{"x = 1 + \\", true},
		{"x = 1", false},
		{"d[k:]", false},
	}
	for _, tt := range tests {
		if got := opensBlock(tt.line); got != tt.want {
			t.Errorf("opensBlock(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestEvalInputReportsEscapes(t *testing.T) {
	var out strings.Builder
	evalInput(&out, "%timeit f()\n", false)
	if !strings.Contains(out.String(), "escape %: timeit f()") {
		t.Errorf("output = %q, want escape report", out.String())
	}
}
