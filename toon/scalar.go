package toon

import (
	"math"
	"strconv"
	"strings"
)

// reservedWords are literals that must always be quoted when they occur
// as a string value, so the decoder does not mistake them for the
// typed literal of the same spelling.
var reservedWords = map[string]bool{"null": true, "true": true, "false": true}

// needsQuoting reports whether s must be wrapped in double quotes to
// round-trip unambiguously as a string, per §4.1.
func needsQuoting(s string, delim byte) bool {
	if s == "" {
		return true
	}
	if reservedWords[s] {
		return true
	}
	if looksNumeric(s) {
		return true
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == delim, c == ':', c == '{', c == '}', c == '[', c == ']', c == '"', c == '\\':
			return true
		case c < 0x20 || c == 0x7f:
			return true
		}
	}
	return false
}

// looksNumeric reports whether s would be parsed back as an Int or
// Float by parseUnquoted, meaning it must be quoted to stay a Str.
func looksNumeric(s string) bool {
	if _, ok := parseInt(s); ok {
		return true
	}
	if _, ok := parseFloatStrict(s); ok {
		return true
	}
	return false
}

// encodeScalar renders a scalar Value as its unquoted-or-quoted text.
func encodeScalar(v Value, delim byte) string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.boolVal {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.intVal, 10)
	case KindFloat:
		return encodeFloat(v.floatVal)
	case KindStr:
		if needsQuoting(v.strVal, delim) {
			return quoteString(v.strVal)
		}
		return v.strVal
	default:
		return ""
	}
}

func encodeFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// An integral float keeps a fraction so it decodes as a Float, not an Int.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func unquoteString(s string) (string, bool) {
	var sb strings.Builder
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(s[i+1])
			}
			i += 2
			continue
		}
		sb.WriteByte(c)
		i++
	}
	return sb.String(), true
}

func parseInt(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	// Reject leading-zero forms like "01" (but allow "0" and "-0").
	t := s
	if t[0] == '-' {
		t = t[1:]
	}
	if len(t) > 1 && t[0] == '0' {
		return 0, false
	}
	return v, true
}

func parseFloatStrict(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	hasDigit := false
	hasDotOrExp := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c == '.' || c == 'e' || c == 'E':
			hasDotOrExp = true
		case c == '+' || c == '-':
			// only valid at start or right after an exponent marker
		default:
			return 0, false
		}
	}
	if !hasDigit || !hasDotOrExp {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseUnquoted classifies a bare token per the precedence in §4.1:
// null, true, false, integer, float, else raw string.
func parseUnquoted(tok string) Value {
	switch tok {
	case "null":
		return Null()
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if v, ok := parseInt(tok); ok {
		return Int(v)
	}
	if v, ok := parseFloatStrict(tok); ok {
		return Float(v)
	}
	return Str(tok)
}
