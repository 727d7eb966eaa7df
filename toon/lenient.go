package toon

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// LenientResult is the outcome of DecodeLenient: a best-effort Value
// plus every diagnostic recorded along the way, in occurrence order.
type LenientResult struct {
	Value       Value
	Diagnostics []Diagnostic
}

// Err folds Diagnostics into a single error via go-multierror, for
// callers that want to treat any diagnostic as fatal without walking
// the slice themselves. It returns nil when there are no diagnostics.
func (r LenientResult) Err() error {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	var merr *multierror.Error
	for _, d := range r.Diagnostics {
		merr = multierror.Append(merr, fmt.Errorf("%s", d.String()))
	}
	return merr.ErrorOrNil()
}

// DecodeLenient parses text using the same grammar as Decode but never
// aborts: every violation is recorded as a Diagnostic and parsing
// resynchronises, per §4.5.
func DecodeLenient(text string) LenientResult {
	p := newParser(text, ',', false)
	p.tolerant = true
	p.skipWS()
	if p.atEnd() {
		p.diag(ErrEmptyInput, p.position(), "no non-whitespace input")
		return LenientResult{Value: Null(), Diagnostics: p.diags}
	}
	v := p.parseValueLenient()
	p.skipWS()
	if !p.atEnd() {
		p.diag(ErrUnexpectedTrailing, p.position(), "content after root value")
	}
	return LenientResult{Value: v, Diagnostics: p.diags}
}

func (p *parser) parseValueLenient() Value {
	p.skipWS()
	c, ok := p.peek()
	if !ok {
		p.diag(ErrUnexpectedEnd, p.position(), "expected a value")
		return Null()
	}
	switch c {
	case '{':
		return p.parseObjectLenient()
	case '[':
		return p.parseListLenient()
	case '"':
		start := p.pos
		s, err := p.parseQuotedString()
		if err != nil {
			// Keep the text up to the line end as the string's value.
			p.diag(ErrUnterminatedString, p.position(), "missing closing quote")
			s, _ = unquoteString(strings.TrimSuffix(string(p.data[start+1:p.pos]), "\r"))
			p.resyncToLineEnd()
			return Str(s)
		}
		return Str(s)
	default:
		tok := p.readToken()
		if tok == "" {
			p.diag(ErrUnexpectedEnd, p.position(), "expected a value")
			p.advance()
			return Null()
		}
		return parseUnquoted(tok)
	}
}

// resyncToLineEnd advances past the rest of the current line,
// consuming the terminating newline if present. It is the lenient
// decoder's universal "give up on this token, try the next line"
// recovery step.
func (p *parser) resyncToLineEnd() {
	for {
		c, ok := p.peek()
		if !ok {
			return
		}
		if c == '\n' {
			p.advance()
			return
		}
		p.advance()
	}
}

func (p *parser) parseObjectLenient() Value {
	p.advance() // '{'
	p.skipWS()
	var fields []Field
	for {
		c, ok := p.peek()
		if !ok {
			p.diag(ErrUnexpectedEnd, p.position(), "unterminated object")
			break
		}
		if c == '}' {
			p.advance()
			break
		}
		key, err := p.parseKey()
		if err != nil {
			p.diag(ErrExpectedCharacter, p.position(), "expected an object key")
			p.resyncToLineEnd()
			p.skipWS()
			continue
		}
		var val Value
		if c2, ok := p.peek(); ok && c2 == '[' {
			val = p.parseListLenient()
		} else {
			p.skipWS()
			if c2, ok := p.peek(); !ok || c2 != ':' {
				p.diag(ErrExpectedCharacter, p.position(), "expected ':' after key %q", key)
			} else {
				p.advance()
			}
			p.skipWS()
			val = p.parseValueLenient()
		}
		fields = append(fields, F(key, val))
		p.skipWS()
	}
	return Object(fields...)
}

func (p *parser) parseListLenient() Value {
	p.advance() // '['
	p.skipWS()

	declared, unknown, err := p.parseLengthToken()
	if err != nil {
		p.diag(ErrInvalidArrayLength, p.position(), "malformed array length")
		declared, unknown = 0, true
	} else if declared == 0 && !unknown && p.isEmptyListLiteral() {
		return List()
	}
	p.skipWS()

	var cols []string
	if c, ok := p.peek(); ok && c == '{' {
		cols, err = p.parseTabularHeader()
		if err != nil {
			p.diag(ErrUnexpectedEnd, p.position(), "malformed tabular header")
			cols = nil
		}
		p.skipWS()
	}

	if c, ok := p.peek(); !ok || c != ':' {
		p.diag(ErrExpectedCharacter, p.position(), "expected ':' after list header")
	} else {
		p.advance()
	}
	p.skipWS()

	var elems []Value
	if cols != nil {
		for unknown || len(elems) < declared {
			c, ok := p.peek()
			if !ok || c == '}' || c == ']' {
				break
			}
			row := p.parseTabularRowLenient(cols)
			elems = append(elems, row)
			p.skipWS()
		}
	} else {
		for unknown || len(elems) < declared {
			c, ok := p.peek()
			if !ok || c == '}' || c == ']' {
				break
			}
			elems = append(elems, p.parseValueLenient())
			p.skipWS()
		}
	}

	if !unknown && len(elems) != declared {
		p.diag(ErrLengthMismatch, p.position(), "declared length %d, actual %d", declared, len(elems))
	}
	return List(elems...)
}

func (p *parser) parseTabularRowLenient(cols []string) Value {
	fields := make([]Field, 0, len(cols))
	for i, col := range cols {
		c, ok := p.peek()
		if !ok || c == '\n' || c == '\r' {
			p.diag(ErrRowArityMismatch, p.position(), "row missing cell for column %q", col)
			fields = append(fields, F(col, Null()))
			continue
		}
		start := p.pos
		cell, err := p.parseCell()
		if err != nil {
			p.diag(ErrUnterminatedString, p.position(), "unterminated quoted cell")
			s, _ := unquoteString(strings.TrimSuffix(string(p.data[start+1:p.pos]), "\r"))
			cell = Str(s)
		}
		fields = append(fields, F(col, cell))
		if i < len(cols)-1 {
			if c2, ok := p.peek(); ok && c2 == p.delim {
				p.advance()
			}
		}
	}
	// Discard any extra cells beyond the declared columns.
	for {
		c, ok := p.peek()
		if !ok || c == '\n' || c == '\r' {
			break
		}
		if c == p.delim {
			p.advance()
			if _, err := p.parseCell(); err != nil {
				p.resyncToLineEnd()
				return Object(fields...)
			}
			p.diag(ErrRowArityMismatch, p.position(), "extra cell discarded")
			continue
		}
		break
	}
	p.resyncToLineEnd()
	return Object(fields...)
}
