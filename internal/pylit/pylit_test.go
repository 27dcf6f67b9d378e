package pylit

import "testing"

func TestDecodeString(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		isBytes  bool
	}{
		{"plain single", `'hello'`, "hello", false},
		{"plain double", `"hello"`, "hello", false},
		{"triple", `'''a\nb'''`, "a\nb", false},
		{"escape newline", `"a\nb"`, "a\nb", false},
		{"escape tab and quote", `"\t\""`, "\t\"", false},
		{"hex escape", `"\x41"`, "A", false},
		{"octal escape", `"\101"`, "A", false},
		{"unicode escape", `"\u00e9"`, "é", false},
		{"long unicode escape", `"\U0001F600"`, "😀", false},
		{"unknown escape kept", `"\q"`, `\q`, false},
		{"raw", `r"\n"`, `\n`, false},
		{"bytes", `b"ab\x00"`, "ab\x00", true},
		{"raw bytes", `rb"\n"`, `\n`, true},
		{"bytes keeps unicode escape", `b"\u00e9"`, `\u00e9`, true},
		{"line continuation", "\"a\\\nb\"", "ab", false},
		{"legacy u prefix", `u"x"`, "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, isBytes, err := DecodeString(tt.raw)
			if err != nil {
				t.Fatalf("DecodeString(%q) error: %v", tt.raw, err)
			}
			if value != tt.expected {
				t.Errorf("DecodeString(%q) = %q, want %q", tt.raw, value, tt.expected)
			}
			if isBytes != tt.isBytes {
				t.Errorf("DecodeString(%q) isBytes = %v, want %v", tt.raw, isBytes, tt.isBytes)
			}
		})
	}
}

func TestDecodeStringErrors(t *testing.T) {
	for _, raw := range []string{`"\x4"`, `"\u00"`, `"\U00110000"`, `z"x"`} {
		if _, _, err := DecodeString(raw); err == nil {
			t.Errorf("DecodeString(%q) should fail", raw)
		}
	}
}

func TestDecodeFStringText(t *testing.T) {
	got, err := DecodeFStringText(`a{{b}}c\n`, false)
	if err != nil {
		t.Fatal(err)
	}
	if got != "a{b}c\n" {
		t.Errorf("got %q", got)
	}
	got, err = DecodeFStringText(`x\n{{`, true)
	if err != nil {
		t.Fatal(err)
	}
	if got != `x\n{` {
		t.Errorf("raw mode got %q", got)
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		lit      string
		expected float64
	}{
		{"1.5", 1.5},
		{"1_000.5", 1000.5},
		{"1e3", 1000},
		{".5", 0.5},
		{"2.", 2},
	}
	for _, tt := range tests {
		got, err := ParseFloat(tt.lit)
		if err != nil {
			t.Errorf("ParseFloat(%q) error: %v", tt.lit, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseFloat(%q) = %v, want %v", tt.lit, got, tt.expected)
		}
	}
}

func TestParseImaginary(t *testing.T) {
	got, err := ParseImaginary("2.5j")
	if err != nil || got != 2.5 {
		t.Errorf("ParseImaginary(2.5j) = %v, %v", got, err)
	}
	if _, err := ParseImaginary("2.5"); err == nil {
		t.Error("missing suffix should fail")
	}
}

func TestNormalizeInt(t *testing.T) {
	if got := NormalizeInt("1_000_000"); got != "1000000" {
		t.Errorf("NormalizeInt = %q", got)
	}
	if got := NormalizeInt("0xFF_FF"); got != "0xFFFF" {
		t.Errorf("NormalizeInt = %q", got)
	}
}
