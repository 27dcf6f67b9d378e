// Package source provides byte-offset ranges into Python source text
// and offset to line/column conversion for diagnostics rendering.
package source

import (
	"fmt"
	"sort"
	"strings"
)

// Range is a half-open byte-offset span [Start, End) into the source.
type Range struct {
	Start int
	End   int
}

// NewRange creates a range from start to end.
func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

// EmptyRange creates a zero-length range at the given offset.
func EmptyRange(offset int) Range {
	return Range{Start: offset, End: offset}
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty reports whether the range covers no bytes.
func (r Range) IsEmpty() bool {
	return r.Start >= r.End
}

// Contains reports whether the offset falls inside the range.
func (r Range) Contains(offset int) bool {
	return r.Start <= offset && offset < r.End
}

// Cover returns the smallest range enclosing both r and other.
func (r Range) Cover(other Range) Range {
	start := r.Start
	if other.Start < start {
		start = other.Start
	}
	end := r.End
	if other.End > end {
		end = other.End
	}
	return Range{Start: start, End: end}
}

// CoverOffset extends the range to include the given offset.
func (r Range) CoverOffset(offset int) Range {
	return r.Cover(EmptyRange(offset))
}

// AddStart returns the range with its start moved forward by n bytes.
func (r Range) AddStart(n int) Range {
	return Range{Start: r.Start + n, End: r.End}
}

// SubEnd returns the range with its end moved backward by n bytes.
func (r Range) SubEnd(n int) Range {
	return Range{Start: r.Start, End: r.End - n}
}

// String returns a string representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// Position is a 1-based line/column pair resolved from a byte offset.
type Position struct {
	Line   int
	Column int
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// File pairs source content with a precomputed line index so that byte
// offsets can be resolved to line/column pairs and ranges to text.
type File struct {
	Name    string
	Content string

	lineStarts []int
}

// NewFile creates a file and builds its line-start index.
func NewFile(name, content string) *File {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &File{Name: name, Content: content, lineStarts: starts}
}

// Slice returns the text covered by the range, clamped to the content.
func (f *File) Slice(r Range) string {
	start, end := r.Start, r.End
	if start < 0 {
		start = 0
	}
	if end > len(f.Content) {
		end = len(f.Content)
	}
	if start >= end {
		return ""
	}
	return f.Content[start:end]
}

// Position resolves a byte offset to a 1-based line/column pair.
// Columns count bytes, matching how ranges count.
func (f *File) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.Content) {
		offset = len(f.Content)
	}
	line := sort.Search(len(f.lineStarts), func(i int) bool {
		return f.lineStarts[i] > offset
	})
	return Position{Line: line, Column: offset - f.lineStarts[line-1] + 1}
}

// Line returns the text of a 1-based line without its newline.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.lineStarts) {
		return ""
	}
	start := f.lineStarts[n-1]
	end := len(f.Content)
	if n < len(f.lineStarts) {
		end = f.lineStarts[n] - 1
	}
	return strings.TrimSuffix(f.Content[start:end], "\r")
}

// LineCount returns the number of lines in the file.
func (f *File) LineCount() int {
	return len(f.lineStarts)
}
