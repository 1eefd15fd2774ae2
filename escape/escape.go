/*
Package escape converts between raw n-gram characters and their textual,
backslash-escaped form used in pattern files and in labels.

Escapes understood by Decode:

	\\          backslash
	\s          space
	\t \n \r    tab, newline, carriage return
	\xHH        character with hex code HH
	\uHHHH      character with hex code HHHH
	\UHHHHHHHH  character with hex code HHHHHHHH

Printable ASCII characters other than backslash need no escaping. Encode
produces the shortest of these forms and writes a leading or trailing space
as \s, so that labels remain unambiguous when printed in columns.
*/
package escape

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrMalformed is returned (wrapped) by Decode for illegal escape sequences.
var ErrMalformed = errors.New("malformed escape sequence")

// Decode interprets the escape sequences in text and returns the raw characters.
func Decode(text string) ([]rune, error) {
	out := make([]rune, 0, utf8.RuneCountInString(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			return nil, fmt.Errorf("%w: invalid UTF-8 at offset %d", ErrMalformed, i)
		}
		i += size
		if r != '\\' {
			out = append(out, r)
			continue
		}
		if i >= len(text) {
			return nil, fmt.Errorf("%w: dangling backslash", ErrMalformed)
		}
		esc := text[i]
		i++
		switch esc {
		case '\\':
			out = append(out, '\\')
		case 's':
			out = append(out, ' ')
		case 't':
			out = append(out, '\t')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 'x', 'u', 'U':
			n := hexDigits(esc)
			if i+n > len(text) {
				return nil, fmt.Errorf("%w: \\%c needs %d hex digits", ErrMalformed, esc, n)
			}
			v, err := strconv.ParseUint(text[i:i+n], 16, 32)
			if err != nil || !utf8.ValidRune(rune(v)) {
				return nil, fmt.Errorf("%w: bad hex code %q", ErrMalformed, text[i:i+n])
			}
			out = append(out, rune(v))
			i += n
		default:
			return nil, fmt.Errorf("%w: unknown escape \\%c", ErrMalformed, esc)
		}
	}
	return out, nil
}

func hexDigits(esc byte) int {
	switch esc {
	case 'x':
		return 2
	case 'u':
		return 4
	}
	return 8
}

// Encode returns the textual form of pattern. Decode(Encode(p)) yields p
// if all characters of p are valid; an invalid one is written as \ufffd.
func Encode(pattern []rune) string {
	var b strings.Builder
	b.Grow(len(pattern))
	last := len(pattern) - 1
	for i, r := range pattern {
		if !utf8.ValidRune(r) {
			r = utf8.RuneError
		}
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == ' ' && (i == 0 || i == last):
			b.WriteString(`\s`)
		case r >= 0x20 && r <= 0x7E:
			b.WriteRune(r)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r <= 0xFF:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r <= 0xFFFF:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	return b.String()
}

// EncodeString is Encode for a string argument.
func EncodeString(s string) string {
	return Encode([]rune(s))
}
