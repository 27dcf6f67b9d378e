package source

import "testing"

func TestRangeCover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Range
		expected Range
	}{
		{"disjoint", NewRange(0, 3), NewRange(7, 9), NewRange(0, 9)},
		{"nested", NewRange(0, 10), NewRange(2, 4), NewRange(0, 10)},
		{"overlap", NewRange(3, 8), NewRange(5, 12), NewRange(3, 12)},
		{"empty right", NewRange(1, 5), EmptyRange(9), NewRange(1, 9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestRangeContains(t *testing.T) {
	r := NewRange(2, 5)
	if !r.Contains(2) || !r.Contains(4) {
		t.Error("expected start and interior offsets to be contained")
	}
	if r.Contains(5) {
		t.Error("end offset must be exclusive")
	}
	if EmptyRange(3).Contains(3) {
		t.Error("empty range contains nothing")
	}
}

func TestFilePosition(t *testing.T) {
	f := NewFile("test.py", "a = 1\nb = 2\n\nprint(a)\n")
	tests := []struct {
		offset   int
		expected Position
	}{
		{0, Position{1, 1}},
		{4, Position{1, 5}},
		{6, Position{2, 1}},
		{12, Position{3, 1}},
		{13, Position{4, 1}},
		{21, Position{4, 9}},
	}
	for _, tt := range tests {
		if got := f.Position(tt.offset); got != tt.expected {
			t.Errorf("Position(%d) = %v, want %v", tt.offset, got, tt.expected)
		}
	}
}

func TestFileSlice(t *testing.T) {
	f := NewFile("test.py", "x = y + z")
	if got := f.Slice(NewRange(4, 9)); got != "y + z" {
		t.Errorf("Slice = %q, want %q", got, "y + z")
	}
	if got := f.Slice(NewRange(4, 99)); got != "y + z" {
		t.Errorf("clamped Slice = %q, want %q", got, "y + z")
	}
	if got := f.Slice(EmptyRange(4)); got != "" {
		t.Errorf("empty Slice = %q, want empty", got)
	}
}

func TestFileLine(t *testing.T) {
	f := NewFile("test.py", "first\r\nsecond\nthird")
	if got := f.Line(1); got != "first" {
		t.Errorf("Line(1) = %q", got)
	}
	if got := f.Line(2); got != "second" {
		t.Errorf("Line(2) = %q", got)
	}
	if got := f.Line(3); got != "third" {
		t.Errorf("Line(3) = %q", got)
	}
	if got := f.Line(4); got != "" {
		t.Errorf("Line(4) = %q, want empty", got)
	}
	if f.LineCount() != 3 {
		t.Errorf("LineCount = %d, want 3", f.LineCount())
	}
}
