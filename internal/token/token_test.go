package token

import (
	"testing"

	"github.com/pythia-lang/pythia/internal/source"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident    string
		expected Kind
	}{
		{"if", KwIf},
		{"lambda", KwLambda},
		{"match", KwMatch},
		{"type", KwType},
		{"foo", Name},
		{"If", Name},
		{"async", KwAsync},
	}
	for _, tt := range tests {
		if got := LookupIdent(tt.ident); got != tt.expected {
			t.Errorf("LookupIdent(%q) = %v, want %v", tt.ident, got, tt.expected)
		}
	}
}

func TestSoftKeywords(t *testing.T) {
	for _, k := range []Kind{KwMatch, KwCase, KwType} {
		if !k.IsSoftKeyword() || !k.IsKeyword() {
			t.Errorf("%v should be a soft keyword", k)
		}
	}
	if KwIf.IsSoftKeyword() {
		t.Error("'if' is not a soft keyword")
	}
	if Name.IsKeyword() {
		t.Error("names are not keywords")
	}
}

func TestSetOperations(t *testing.T) {
	s := NewSet(Comma, Rpar, KwIn)
	for _, k := range []Kind{Comma, Rpar, KwIn} {
		if !s.Contains(k) {
			t.Errorf("set should contain %v", k)
		}
	}
	if s.Contains(Colon) {
		t.Error("set should not contain ':'")
	}

	u := s.Union(NewSet(Colon, Newline))
	if !u.Contains(Colon) || !u.Contains(Comma) {
		t.Error("union missing members")
	}

	r := u.Remove(Comma)
	if r.Contains(Comma) {
		t.Error("remove left member behind")
	}
	if !r.Contains(Rpar) {
		t.Error("remove dropped unrelated member")
	}
}

func TestSetCoversAllKinds(t *testing.T) {
	// Every kind must fit in the two-word bitset.
	if kindCount > 128 {
		t.Fatalf("kindCount = %d exceeds bitset capacity", kindCount)
	}
	last := kindCount - 1
	s := NewSet(last)
	if !s.Contains(last) {
		t.Errorf("highest kind %v not representable", last)
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: Name, Range: source.NewRange(0, 3), Lit: "foo"}
	if got := tok.String(); got != `name("foo")@0..3` {
		t.Errorf("Token.String() = %q", got)
	}
	colon := Token{Kind: Colon, Range: source.NewRange(3, 4)}
	if got := colon.String(); got != "':'@3..4" {
		t.Errorf("Token.String() = %q", got)
	}
}
