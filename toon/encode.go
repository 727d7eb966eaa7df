package toon

import "strings"

// Encode renders v as a TOON document using the given options, which
// default to DefaultEncodeOptions when none are supplied. Encoding a
// well-formed Value never fails; the only possible error path is
// reserved for FromGo-constructed trees that rejected an unsupported
// Go type before reaching here.
func Encode(v Value, opts ...Option) string {
	o := resolveOptions(opts)
	var sb strings.Builder
	e := &encoder{sb: &sb, opts: o}
	e.emit(v, 0)
	return sb.String()
}

type encoder struct {
	sb   *strings.Builder
	opts EncodeOptions
}

func (e *encoder) indent(depth int) {
	for i := 0; i < depth; i++ {
		e.sb.WriteString(e.opts.Indent)
	}
}

func (e *encoder) emit(v Value, depth int) {
	switch v.kind {
	case KindList:
		e.emitList(v.listVal, depth)
	case KindObject:
		e.emitObject(v.objVal, depth)
	default:
		e.sb.WriteString(encodeScalar(v, e.opts.Delimiter))
	}
}

func (e *encoder) emitObject(fields []Field, depth int) {
	if len(fields) == 0 {
		e.sb.WriteString("{}")
		return
	}
	keys := sortedKeys(fields)
	defer releaseKeySlice(keys)

	e.sb.WriteString("{\n")
	for _, k := range keys {
		val := fieldByKey(fields, k)
		e.indent(depth + 1)
		e.sb.WriteString(k)
		switch val.kind {
		case KindList:
			// The list's own header glues directly onto the key, with
			// no intervening colon: "employees[2]{name,role}:". A
			// non-empty list's last row already ends in "\n"; only the
			// empty-list literal "[0]" needs one added here.
			e.emit(val, depth+1)
			if len(val.listVal) == 0 {
				e.sb.WriteString("\n")
			}
		case KindObject:
			e.sb.WriteString(": ")
			e.emit(val, depth+1)
			e.sb.WriteString("\n")
		default:
			e.sb.WriteString(": ")
			e.sb.WriteString(encodeScalar(val, e.opts.Delimiter))
			e.sb.WriteString("\n")
		}
	}
	e.indent(depth)
	e.sb.WriteString("}")
}

func fieldByKey(fields []Field, key string) Value {
	for _, f := range fields {
		if f.Key == key {
			return f.Value
		}
	}
	return Value{}
}

func (e *encoder) emitList(elems []Value, depth int) {
	if len(elems) == 0 {
		e.sb.WriteString("[0]")
		return
	}
	sh, cols := classify(Value{kind: KindList, listVal: elems})
	switch sh {
	case shapeTabular:
		e.emitTabular(elems, cols, depth)
	default:
		e.emitRegularList(elems, depth)
	}
}

func (e *encoder) emitRegularList(elems []Value, depth int) {
	e.writeLengthHeader(len(elems))
	e.sb.WriteString(":\n")
	for _, el := range elems {
		e.indent(depth + 1)
		e.emit(el, depth+1)
		e.sb.WriteString("\n")
	}
}

func (e *encoder) writeLengthHeader(n int) {
	e.sb.WriteByte('[')
	if e.opts.LengthMarker {
		e.sb.WriteString(itoa(n))
	}
	e.sb.WriteByte(']')
}

func (e *encoder) emitTabular(elems []Value, cols []string, depth int) {
	e.sb.WriteByte('[')
	e.sb.WriteString(itoa(len(elems)))
	e.sb.WriteString("]{")
	for i, c := range cols {
		if i > 0 {
			e.sb.WriteByte(e.opts.Delimiter)
		}
		e.sb.WriteString(c)
	}
	e.sb.WriteString("}:\n")
	for _, el := range elems {
		e.indent(depth + 1)
		for i, c := range cols {
			if i > 0 {
				e.sb.WriteByte(e.opts.Delimiter)
			}
			cell := el.Get(c)
			e.sb.WriteString(encodeScalar(cell, e.opts.Delimiter))
		}
		e.sb.WriteString("\n")
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
