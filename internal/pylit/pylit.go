// Package pylit decodes Python literal source text: string and bytes
// escapes, f-string text runs, and numeric literals. The parser hands
// it raw token text and receives decoded values or positioned errors.
package pylit

import (
	"fmt"
	"strconv"
	"strings"
)

// Error is a decode failure at a byte offset relative to the start of
// the raw literal text.
type Error struct {
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (at offset %d)", e.Msg, e.Offset)
}

// Flags describes a string literal's prefix.
type Flags struct {
	Raw     bool
	Bytes   bool
	FString bool
}

// SplitPrefix separates the prefix letters of a string literal from
// the quoted remainder.
func SplitPrefix(raw string) (Flags, string, error) {
	var f Flags
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case 'r', 'R':
			f.Raw = true
		case 'b', 'B':
			f.Bytes = true
		case 'f', 'F':
			f.FString = true
		case 'u', 'U':
			// legacy prefix, no effect
		case '\'', '"':
			return f, raw[i:], nil
		default:
			return f, "", &Error{Offset: i, Msg: "invalid string prefix"}
		}
	}
	return f, "", &Error{Offset: 0, Msg: "string literal has no quotes"}
}

// unquote strips matching quotes (single or triple) from the literal
// body. Unterminated literals are the lexer's concern; here a missing
// closer is clamped.
func unquote(s string) (string, error) {
	if len(s) == 0 {
		return "", &Error{Offset: 0, Msg: "empty string literal"}
	}
	q := s[0]
	if q != '\'' && q != '"' {
		return "", &Error{Offset: 0, Msg: "string literal has no quotes"}
	}
	if len(s) >= 6 && s[1] == q && s[2] == q {
		body := s[3:]
		if strings.HasSuffix(body, string([]byte{q, q, q})) {
			body = body[:len(body)-3]
		}
		return body, nil
	}
	body := s[1:]
	if len(body) > 0 && body[len(body)-1] == q {
		body = body[:len(body)-1]
	}
	return body, nil
}

// DecodeString decodes a complete string or bytes literal including
// its prefix and quotes. isBytes reports a bytes literal.
func DecodeString(raw string) (value string, isBytes bool, err error) {
	flags, rest, err := SplitPrefix(raw)
	if err != nil {
		return "", false, err
	}
	body, err := unquote(rest)
	if err != nil {
		return "", false, err
	}
	if flags.Raw {
		return body, flags.Bytes, nil
	}
	decoded, err := DecodeEscapes(body, flags.Bytes)
	return decoded, flags.Bytes, err
}

// DecodeEscapes resolves backslash escapes in a (non-raw) literal
// body. Unknown escapes keep their backslash, matching the runtime's
// lenient handling. In bytes mode, \u, \U and \N escapes stay literal.
func DecodeEscapes(body string, bytesMode bool) (string, error) {
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(body) {
			b.WriteByte('\\')
			break
		}
		esc := body[i+1]
		switch esc {
		case '\n':
			i += 2 // line continuation
		case '\\', '\'', '"':
			b.WriteByte(esc)
			i += 2
		case 'a':
			b.WriteByte('\a')
			i += 2
		case 'b':
			b.WriteByte('\b')
			i += 2
		case 'f':
			b.WriteByte('\f')
			i += 2
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'v':
			b.WriteByte('\v')
			i += 2
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i + 1
			val := 0
			for j < len(body) && j < i+4 && body[j] >= '0' && body[j] <= '7' {
				val = val*8 + int(body[j]-'0')
				j++
			}
			if val > 0xFF {
				return "", &Error{Offset: i, Msg: "octal escape value out of range"}
			}
			b.WriteByte(byte(val))
			i = j
		case 'x':
			if i+4 > len(body) {
				return "", &Error{Offset: i, Msg: "truncated \\x escape"}
			}
			val, perr := strconv.ParseUint(body[i+2:i+4], 16, 8)
			if perr != nil {
				return "", &Error{Offset: i, Msg: "invalid \\x escape"}
			}
			b.WriteByte(byte(val))
			i += 4
		case 'u', 'U', 'N':
			if bytesMode {
				b.WriteByte('\\')
				b.WriteByte(esc)
				i += 2
				break
			}
			switch esc {
			case 'u':
				if i+6 > len(body) {
					return "", &Error{Offset: i, Msg: "truncated \\u escape"}
				}
				val, perr := strconv.ParseUint(body[i+2:i+6], 16, 32)
				if perr != nil {
					return "", &Error{Offset: i, Msg: "invalid \\u escape"}
				}
				b.WriteRune(rune(val))
				i += 6
			case 'U':
				if i+10 > len(body) {
					return "", &Error{Offset: i, Msg: "truncated \\U escape"}
				}
				val, perr := strconv.ParseUint(body[i+2:i+10], 16, 32)
				if perr != nil || val > 0x10FFFF {
					return "", &Error{Offset: i, Msg: "invalid \\U escape"}
				}
				b.WriteRune(rune(val))
				i += 10
			case 'N':
				// Named escapes need the Unicode name table; keep the
				// source spelling.
				b.WriteString("\\N")
				i += 2
			}
		default:
			b.WriteByte('\\')
			b.WriteByte(esc)
			i += 2
		}
	}
	return b.String(), nil
}

// DecodeFStringText decodes a literal text run of an f-string:
// doubled braces collapse and, unless raw, escapes resolve.
func DecodeFStringText(text string, raw bool) (string, error) {
	text = strings.ReplaceAll(text, "{{", "{")
	text = strings.ReplaceAll(text, "}}", "}")
	if raw {
		return text, nil
	}
	return DecodeEscapes(text, false)
}

// ParseFloat decodes a float literal, tolerating digit-group
// underscores.
func ParseFloat(lit string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(lit, "_", ""), 64)
	if err != nil {
		return 0, &Error{Offset: 0, Msg: "invalid float literal"}
	}
	return v, nil
}

// ParseImaginary decodes an imaginary literal (trailing j/J) to its
// imaginary magnitude.
func ParseImaginary(lit string) (float64, error) {
	trimmed := strings.TrimRight(lit, "jJ")
	if trimmed == lit {
		return 0, &Error{Offset: len(lit), Msg: "imaginary literal missing 'j' suffix"}
	}
	return ParseFloat(trimmed)
}

// NormalizeInt strips digit-group underscores from an integer literal,
// keeping the base prefix. The digits themselves stay as written so
// arbitrary precision survives.
func NormalizeInt(lit string) string {
	return strings.ReplaceAll(lit, "_", "")
}
