package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/pythia-lang/pythia/internal/compat"
	"github.com/pythia-lang/pythia/internal/parser"
	"github.com/pythia-lang/pythia/internal/source"
)

// Diagnostic is one rendered finding against a file.
type Diagnostic struct {
	File    string
	Pos     source.Position
	Range   source.Range
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%s: error: %s", d.File, d.Pos, d.Message)
}

// Diagnose parses one file's content and collects syntax diagnostics,
// plus version-gate findings when target is non-nil.
func Diagnose(name, content string, target *semver.Version) []Diagnostic {
	return FromProgram(name, content, parser.ParseModule(content), target)
}

// FromProgram renders an already-parsed program's diagnostics,
// applying the version gate when target is non-nil.
func FromProgram(name, content string, program *parser.Program, target *semver.Version) []Diagnostic {
	file := source.NewFile(name, content)

	var diags []Diagnostic
	for _, err := range program.Errors {
		diags = append(diags, Diagnostic{
			File:    name,
			Pos:     file.Position(err.Range.Start),
			Range:   err.Range,
			Message: err.Msg,
		})
	}
	for _, req := range compat.Check(program.Syntax, target) {
		diags = append(diags, Diagnostic{
			File:    name,
			Pos:     file.Position(req.Range.Start),
			Range:   req.Range,
			Message: fmt.Sprintf("%s requires Python %d.%d, target is %d.%d",
				req.Feature, req.Version.Major(), req.Version.Minor(),
				target.Major(), target.Minor()),
		})
	}
	return diags
}

// Render writes diagnostics with the offending line and a marker under
// the reported range.
func Render(w io.Writer, content string, diags []Diagnostic) {
	if len(diags) == 0 {
		return
	}
	file := source.NewFile(diags[0].File, content)
	for _, d := range diags {
		fmt.Fprintln(w, d)
		line := file.Line(d.Pos.Line)
		if line == "" {
			continue
		}
		fmt.Fprintf(w, "    %s\n", line)
		width := d.Range.Len()
		if width < 1 || d.Pos.Column-1+width > len(line) {
			width = 1
		}
		fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", d.Pos.Column-1), strings.Repeat("^", width))
	}
}
