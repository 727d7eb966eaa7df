package toon

import (
	"bytes"
	"io"
	"iter"
	"strings"
)

// StreamEncoder writes a TOON list one item at a time without
// buffering the whole sequence. It peeks up to two items to decide
// between tabular and regular-list shape before committing to a
// header, per §4.6.
type StreamEncoder struct {
	w       io.Writer
	opts    EncodeOptions
	peeked  []Value
	decided bool
	tabular bool
	cols    []string
	err     error
}

// NewStreamEncoder wraps w, ready to accept items via Encode.
func NewStreamEncoder(w io.Writer, opts ...Option) *StreamEncoder {
	return &StreamEncoder{w: w, opts: resolveOptions(opts)}
}

// Encode appends v to the streamed list. The first call (or the first
// two, while shape is undecided) may be buffered internally; callers
// must call Close to flush a sequence shorter than two items.
func (e *StreamEncoder) Encode(v Value) error {
	if e.err != nil {
		return e.err
	}
	if e.decided {
		return e.writeRow(v)
	}
	e.peeked = append(e.peeked, v)
	if len(e.peeked) < 2 {
		return nil
	}
	return e.flushPeeked()
}

// Close finalises the stream, flushing any buffered peek items (for
// sequences of zero or one elements) and writing the header if no
// item ever arrived.
func (e *StreamEncoder) Close() error {
	if e.err != nil {
		return e.err
	}
	if !e.decided {
		return e.flushPeeked()
	}
	return nil
}

func (e *StreamEncoder) flushPeeked() error {
	e.decided = true
	if cols, ok := tabularColumns(e.peeked); ok {
		e.tabular = true
		e.cols = cols
	}
	if err := e.writeHeader(); err != nil {
		e.err = err
		return err
	}
	for _, v := range e.peeked {
		if err := e.writeRow(v); err != nil {
			e.err = err
			return err
		}
	}
	e.peeked = nil
	return nil
}

func (e *StreamEncoder) writeHeader() error {
	var sb strings.Builder
	sb.WriteString("[-]")
	if e.tabular {
		sb.WriteByte('{')
		for i, c := range e.cols {
			if i > 0 {
				sb.WriteByte(e.opts.Delimiter)
			}
			sb.WriteString(c)
		}
		sb.WriteByte('}')
	}
	sb.WriteString(":\n")
	_, err := io.WriteString(e.w, sb.String())
	return err
}

func (e *StreamEncoder) writeRow(v Value) error {
	var sb strings.Builder
	sb.WriteString(e.opts.Indent)
	if e.tabular {
		for i, c := range e.cols {
			if i > 0 {
				sb.WriteByte(e.opts.Delimiter)
			}
			sb.WriteString(encodeScalar(v.Get(c), e.opts.Delimiter))
		}
	} else {
		enc := &encoder{sb: &sb, opts: e.opts}
		enc.emit(v, 1)
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(e.w, sb.String())
	return err
}

// StreamEncode adapts items through a StreamEncoder and yields each
// flushed chunk of output text, for callers who prefer range-over-func
// to an io.Writer sink.
func StreamEncode(items iter.Seq[Value], opts ...Option) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		var buf bytes.Buffer
		enc := NewStreamEncoder(&buf, opts...)

		emit := func() bool {
			if buf.Len() == 0 {
				return true
			}
			chunk := buf.String()
			buf.Reset()
			return yield(chunk, nil)
		}

		for v := range items {
			if err := enc.Encode(v); err != nil {
				yield("", err)
				return
			}
			if !emit() {
				return
			}
		}
		if err := enc.Close(); err != nil {
			yield("", err)
			return
		}
		emit()
	}
}
