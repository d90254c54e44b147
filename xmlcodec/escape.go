/*
NAME
  escape.go

DESCRIPTION
  escape.go implements the XML string escaping and unescaping rules: the
  writer escapes only &, <, > (quotes are left unescaped in element text);
  the reader additionally accepts &quot;, &apos;, and numeric character
  references.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package xmlcodec

import (
	"strconv"
	"strings"
)

// escaper implements the writer's minimal escape set: & < > only. Quotes are
// left unescaped inside element text.
var escaper = strings.NewReplacer(
	`&`, `&amp;`,
	`<`, `&lt;`,
	`>`, `&gt;`,
)

// EscapeText escapes s for safe placement inside XML element text.
func EscapeText(s string) string {
	return escaper.Replace(s)
}

// UnescapeText decodes XML entity references in s: the five named entities
// and both forms of numeric character reference (&#N; and &#xHEX;).
func UnescapeText(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '&' {
			b.WriteByte(s[i])
			i++
			continue
		}
		end := strings.IndexByte(s[i:], ';')
		if end < 0 {
			return "", ErrMalformedXML
		}
		entity := s[i+1 : i+end]
		switch entity {
		case "amp":
			b.WriteByte('&')
		case "lt":
			b.WriteByte('<')
		case "gt":
			b.WriteByte('>')
		case "quot":
			b.WriteByte('"')
		case "apos":
			b.WriteByte('\'')
		default:
			r, err := decodeNumericRef(entity)
			if err != nil {
				return "", err
			}
			if err := validateCodePoint(r); err != nil {
				return "", err
			}
			b.WriteRune(r)
		}
		i += end + 1
	}
	return b.String(), nil
}

// decodeNumericRef decodes the body of a numeric character reference, e.g.
// "#65" or "#x41", excluding the leading '&' and trailing ';'.
func decodeNumericRef(body string) (rune, error) {
	if len(body) < 2 || body[0] != '#' {
		return 0, ErrMalformedXML
	}
	digits := body[1:]
	base := 10
	if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
		base = 16
		digits = digits[1:]
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, ErrMalformedXML
	}
	return rune(v), nil
}
