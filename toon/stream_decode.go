package toon

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// RowStream pulls one row at a time from a tabular or regular-list
// TOON document, per §4.7. It reads the header eagerly at
// construction and discards per-row state between calls to Next,
// holding only the column schema and the underlying reader.
type RowStream struct {
	r        *bufio.Reader
	delim    byte
	cols     []string
	tabular  bool
	declared int
	unknown  bool
	read     int
	done     bool
	err      error
}

// NewRowStream parses the list header from r and returns a RowStream
// ready to yield rows. It accepts both the declared-length "[N]" form
// and the unknown-length "[-]" streaming form.
func NewRowStream(r io.Reader, opts ...Option) (*RowStream, error) {
	o := resolveOptions(opts)
	br := bufio.NewReader(r)
	headerLine, err := br.ReadString('\n')
	if headerLine == "" && err != nil {
		return nil, err
	}

	p := newParser(headerLine, o.Delimiter, true)
	p.skipWS()
	if err := p.expect('['); err != nil {
		return nil, err
	}
	p.skipWS()
	n, unknown, err := p.parseLengthToken()
	if err != nil {
		return nil, err
	}
	p.skipWS()
	var cols []string
	if c, ok := p.peek(); ok && c == '{' {
		cols, err = p.parseTabularHeader()
		if err != nil {
			return nil, err
		}
		p.skipWS()
	}
	if err := p.expect(':'); err != nil {
		return nil, err
	}

	return &RowStream{r: br, delim: o.Delimiter, cols: cols, tabular: cols != nil, declared: n, unknown: unknown}, nil
}

// Next returns the next row, or ok=false when the stream is exhausted.
// A non-nil error means the stream ended abnormally (malformed row, or
// fewer rows than a declared length promised).
func (rs *RowStream) Next() (Value, bool, error) {
	if rs.done {
		return Value{}, false, rs.err
	}
	if !rs.unknown && rs.read >= rs.declared {
		rs.done = true
		return Value{}, false, nil
	}

	line, err := rs.r.ReadString('\n')
	// Blank lines inside a declared-length list are skipped, not rows.
	for !rs.unknown && line != "" && strings.TrimSpace(line) == "" {
		if err != nil {
			line = ""
			break
		}
		line, err = rs.r.ReadString('\n')
	}
	if line == "" {
		rs.done = true
		if err == io.EOF {
			if !rs.unknown && rs.read != rs.declared {
				rs.err = newDecodeError(ErrUnexpectedEnd, position{}, "declared %d rows, got %d", rs.declared, rs.read)
				return Value{}, false, rs.err
			}
			return Value{}, false, nil
		}
		rs.err = err
		return Value{}, false, err
	}

	trimmed := strings.TrimRight(line, "\r\n")
	if rs.unknown && strings.TrimSpace(trimmed) == "" {
		rs.done = true
		return Value{}, false, nil
	}

	p := newParser(trimmed, rs.delim, false)
	p.skipWS()
	var v Value
	if rs.tabular {
		v, err = p.parseTabularRow(rs.cols)
	} else {
		v, err = p.parseValue()
	}
	if err != nil {
		rs.done = true
		rs.err = err
		return Value{}, false, err
	}
	rs.read++
	return v, true, nil
}

// Rows adapts a RowStream into a range-over-func sequence of
// (Value, error) pairs, stopping at the first error.
func Rows(r io.Reader, opts ...Option) iter.Seq2[Value, error] {
	return func(yield func(Value, error) bool) {
		rs, err := NewRowStream(r, opts...)
		if err != nil {
			yield(Value{}, err)
			return
		}
		for {
			v, ok, err := rs.Next()
			if err != nil {
				yield(Value{}, err)
				return
			}
			if !ok {
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}
