package toon

import (
	"strconv"
	"strings"
)

// Decode parses a complete TOON document in strict mode: the first
// grammar violation aborts parsing and is returned as a *DecodeError.
func Decode(text string) (Value, error) {
	p := newParser(text, ',', false)
	p.skipWS()
	if p.atEnd() {
		return Value{}, newDecodeError(ErrEmptyInput, p.position(), "no non-whitespace input")
	}
	v, err := p.parseValue()
	if err != nil {
		return Value{}, err
	}
	p.skipWS()
	if !p.atEnd() {
		return Value{}, newDecodeError(ErrUnexpectedTrailing, p.position(), "content after root value")
	}
	return v, nil
}

// parser is the shared recursive-descent core used by Decode and
// DecodeLenient (see lenient.go), and by the streaming row reader for
// header parsing (see stream_decode.go).
type parser struct {
	data   []byte
	pos    int
	line   int
	column int
	delim  byte

	// allowUnknownLength permits the "[-]" streaming length token.
	// Batch strict/lenient decoding forbids it; streaming row readers
	// enable it.
	allowUnknownLength bool

	// tolerant marks a parser built by DecodeLenient. The resynchronising
	// productions live in lenient.go as separate *Lenient methods; the
	// strict methods here do not consult this field.
	tolerant bool
	diags    []Diagnostic
}

func (p *parser) diag(kind ErrorKind, pos position, format string, args ...any) {
	p.diags = append(p.diags, newDiagnostic(kind, pos, format, args...))
}

func newParser(text string, delim byte, allowUnknownLength bool) *parser {
	return &parser{data: []byte(text), line: 1, column: 1, delim: delim, allowUnknownLength: allowUnknownLength}
}

func (p *parser) atEnd() bool { return p.pos >= len(p.data) }

func (p *parser) position() position {
	return position{offset: p.pos, line: p.line, column: p.column}
}

func (p *parser) peek() (byte, bool) {
	if p.atEnd() {
		return 0, false
	}
	return p.data[p.pos], true
}

func (p *parser) advance() (byte, bool) {
	if p.atEnd() {
		return 0, false
	}
	c := p.data[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
		p.column = 1
	} else {
		p.column++
	}
	return c, true
}

func (p *parser) skipWS() {
	for {
		c, ok := p.peek()
		if !ok {
			return
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			p.advance()
			continue
		}
		return
	}
}

func (p *parser) expect(c byte) error {
	got, ok := p.peek()
	if !ok {
		return newDecodeError(ErrUnexpectedEnd, p.position(), "expected '%c'", c)
	}
	if got != c {
		return newDecodeError(ErrExpectedCharacter, p.position(), "expected '%c', got '%c'", c, got)
	}
	p.advance()
	return nil
}

// isScalarStop reports whether c terminates an unquoted scalar token or
// tabular cell, per §4.4 production 2: a line break, ':', '}', ']', or
// the active delimiter. Object keys are scanned by parseKey instead.
func (p *parser) isScalarStop(c byte) bool {
	switch c {
	case '\n', '\r', ':', '}', ']':
		return true
	}
	return c == p.delim
}

func (p *parser) readToken() string {
	start := p.pos
	for {
		c, ok := p.peek()
		if !ok || p.isScalarStop(c) {
			break
		}
		p.advance()
	}
	return strings.TrimRight(string(p.data[start:p.pos]), " \t")
}

func (p *parser) parseValue() (Value, error) {
	p.skipWS()
	c, ok := p.peek()
	if !ok {
		return Value{}, newDecodeError(ErrUnexpectedEnd, p.position(), "expected a value")
	}
	switch c {
	case '{':
		return p.parseObject()
	case '[':
		return p.parseList()
	case '"':
		s, err := p.parseQuotedString()
		if err != nil {
			return Value{}, err
		}
		return Str(s), nil
	default:
		tok := p.readToken()
		if tok == "" {
			return Value{}, newDecodeError(ErrUnexpectedEnd, p.position(), "expected a value")
		}
		return parseUnquoted(tok), nil
	}
}

// parseKey scans an object key up to the next ':', newline, or '['.
// The '[' stop lets a list-valued field's header glue directly onto
// its key with no intervening colon, e.g. `employees[2]{name,role}:`
// (see §8 scenario 6) — the colon that terminates the header is
// consumed by parseList, not here.
func (p *parser) parseKey() (string, error) {
	start := p.pos
	startPos := p.position()
	for {
		c, ok := p.peek()
		if !ok || c == ':' || c == '\n' || c == '\r' || c == '[' {
			break
		}
		p.advance()
	}
	key := strings.TrimSpace(string(p.data[start:p.pos]))
	if key == "" {
		return "", newDecodeError(ErrExpectedCharacter, startPos, "expected an object key")
	}
	return key, nil
}

func (p *parser) parseObject() (Value, error) {
	startPos := p.position()
	p.advance() // '{'
	p.skipWS()
	var fields []Field
	for {
		c, ok := p.peek()
		if !ok {
			return Value{}, newDecodeError(ErrUnexpectedEnd, startPos, "unterminated object")
		}
		if c == '}' {
			p.advance()
			break
		}
		key, err := p.parseKey()
		if err != nil {
			return Value{}, err
		}
		var val Value
		if c, ok := p.peek(); ok && c == '[' {
			val, err = p.parseList()
			if err != nil {
				return Value{}, err
			}
		} else {
			p.skipWS()
			if err := p.expect(':'); err != nil {
				return Value{}, err
			}
			p.skipWS()
			val, err = p.parseValue()
			if err != nil {
				return Value{}, err
			}
		}
		fields = append(fields, F(key, val))
		p.skipWS()
	}
	return Object(fields...), nil
}

func (p *parser) parseLengthToken() (n int, unknown bool, err error) {
	c, ok := p.peek()
	if !ok {
		return 0, false, newDecodeError(ErrUnexpectedEnd, p.position(), "expected array length")
	}
	if c == '-' {
		if !p.allowUnknownLength {
			return 0, false, newDecodeError(ErrInvalidArrayLength, p.position(), "unknown length '[-]' is only valid in streaming mode")
		}
		p.advance()
		if err := p.expect(']'); err != nil {
			return 0, false, err
		}
		return 0, true, nil
	}
	start := p.pos
	for {
		c, ok := p.peek()
		if !ok || c < '0' || c > '9' {
			break
		}
		p.advance()
	}
	if p.pos == start {
		return 0, false, newDecodeError(ErrInvalidArrayLength, p.position(), "expected digits")
	}
	n, convErr := strconv.Atoi(string(p.data[start:p.pos]))
	if convErr != nil {
		return 0, false, newDecodeError(ErrInvalidArrayLength, p.position(), "length overflow")
	}
	if err := p.expect(']'); err != nil {
		return 0, false, err
	}
	return n, false, nil
}

func (p *parser) parseTabularHeader() ([]string, error) {
	p.advance() // '{'
	var cols []string
	for {
		start := p.pos
		for {
			c, ok := p.peek()
			if !ok {
				return nil, newDecodeError(ErrUnexpectedEnd, p.position(), "unterminated tabular header")
			}
			if c == p.delim || c == '}' {
				break
			}
			p.advance()
		}
		cols = append(cols, strings.TrimSpace(string(p.data[start:p.pos])))
		c, _ := p.peek()
		if c == p.delim {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect('}'); err != nil {
		return nil, err
	}
	return cols, nil
}

func (p *parser) parseList() (Value, error) {
	startPos := p.position()
	p.advance() // '['
	p.skipWS()
	n, unknown, err := p.parseLengthToken()
	if err != nil {
		return Value{}, err
	}
	if n == 0 && !unknown && p.isEmptyListLiteral() {
		return List(), nil
	}
	p.skipWS()
	var cols []string
	if c, ok := p.peek(); ok && c == '{' {
		cols, err = p.parseTabularHeader()
		if err != nil {
			return Value{}, err
		}
		p.skipWS()
	}
	if err := p.expect(':'); err != nil {
		return Value{}, err
	}
	p.skipWS()

	if unknown {
		// Reached only by a parser built with allowUnknownLength. Decode
		// and DecodeLenient never build one, and RowStream reads its
		// header without calling parseList.
		return Value{}, newDecodeError(ErrInvalidArrayLength, startPos, "unknown-length list cannot be read as a single value")
	}

	if cols != nil {
		elems := make([]Value, 0, n)
		for i := 0; i < n; i++ {
			p.skipWS()
			if p.atEnd() {
				return Value{}, newDecodeError(ErrUnexpectedEnd, p.position(), "declared %d rows, got %d", n, i)
			}
			row, err := p.parseTabularRow(cols)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, row)
		}
		return List(elems...), nil
	}

	elems := make([]Value, 0, n)
	for i := 0; i < n; i++ {
		p.skipWS()
		v, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
	return List(elems...), nil
}

// isEmptyListLiteral reports whether the "[0]" just read is the bare
// empty-list literal the encoder emits, i.e. it is followed (after
// spaces or tabs) by neither a tabular header nor a ':'.
func (p *parser) isEmptyListLiteral() bool {
	j := p.pos
	for j < len(p.data) && (p.data[j] == ' ' || p.data[j] == '\t') {
		j++
	}
	return j == len(p.data) || (p.data[j] != ':' && p.data[j] != '{')
}

func (p *parser) parseCell() (Value, error) {
	c, ok := p.peek()
	if ok && c == '"' {
		s, err := p.parseQuotedString()
		if err != nil {
			return Value{}, err
		}
		return Str(s), nil
	}
	tok := p.readToken()
	return parseUnquoted(tok), nil
}

func (p *parser) parseTabularRow(cols []string) (Value, error) {
	fields := make([]Field, 0, len(cols))
	for i, col := range cols {
		cell, err := p.parseCell()
		if err != nil {
			return Value{}, err
		}
		fields = append(fields, F(col, cell))
		if i < len(cols)-1 {
			if err := p.expect(p.delim); err != nil {
				return Value{}, err
			}
		}
	}
	return Object(fields...), nil
}

func (p *parser) parseQuotedString() (string, error) {
	startPos := p.position()
	p.advance() // opening quote
	start := p.pos
	for {
		c, ok := p.peek()
		if !ok || c == '\n' {
			return "", newDecodeError(ErrUnterminatedString, startPos, "missing closing quote")
		}
		if c == '\\' {
			p.advance()
			if _, ok := p.peek(); !ok {
				return "", newDecodeError(ErrUnterminatedString, startPos, "missing closing quote")
			}
			p.advance()
			continue
		}
		if c == '"' {
			break
		}
		p.advance()
	}
	raw := string(p.data[start:p.pos])
	p.advance() // closing quote
	unescaped, _ := unquoteString(raw)
	return unescaped, nil
}
