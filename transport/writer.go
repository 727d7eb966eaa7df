package transport

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Writer writes TS1 frames to an io.Writer.
//
//	@frame{v=1 sid=N seq=N kind=K len=N [crc=X] [flags=X] [final=true]}\n
//	<payload bytes>\n
type Writer struct {
	w          io.Writer
	withCRC    bool
	compressed bool
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithCRC enables computing and attaching a CRC-32 to every frame that
// has a non-empty payload.
func WithCRC() WriterOption {
	return func(w *Writer) { w.withCRC = true }
}

// WithGzip gzip-compresses every non-empty frame payload (via
// github.com/klauspost/compress/gzip) and sets FlagCompressed so the
// reader knows to decompress before handing the payload to the codec.
func WithGzip() WriterOption {
	return func(w *Writer) { w.compressed = true }
}

// NewWriter creates a TS1 frame writer over w.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	writer := &Writer{w: w}
	for _, opt := range opts {
		opt(writer)
	}
	return writer
}

// WriteFrame writes a single frame, compressing and/or checksumming
// its payload according to the writer's options.
func (w *Writer) WriteFrame(f *Frame) error {
	payload := f.Payload
	flags := f.Flags
	if w.compressed && len(payload) > 0 {
		compressed, err := gzipCompress(payload)
		if err != nil {
			return errors.Wrap(err, "transport: compress payload")
		}
		payload = compressed
		flags |= FlagCompressed
	}

	var header strings.Builder
	header.WriteString("@frame{v=")
	if f.Version == 0 {
		header.WriteByte('1')
	} else {
		header.WriteString(strconv.Itoa(int(f.Version)))
	}
	header.WriteString(" sid=")
	header.WriteString(strconv.FormatUint(f.SID, 10))
	header.WriteString(" seq=")
	header.WriteString(strconv.FormatUint(f.Seq, 10))
	header.WriteString(" kind=")
	header.WriteString(f.Kind.String())
	header.WriteString(" len=")
	header.WriteString(strconv.Itoa(len(payload)))

	crc := f.CRC
	if crc == nil && w.withCRC && len(payload) > 0 {
		computed := ComputeCRC(payload)
		crc = &computed
	}
	if crc != nil {
		header.WriteString(" crc=")
		header.WriteString(fmt.Sprintf("%08x", *crc))
	}
	if flags != 0 {
		header.WriteString(" flags=")
		header.WriteString(fmt.Sprintf("%x", uint8(flags)))
	}
	if f.Final || flags&FlagFinal != 0 {
		header.WriteString(" final=true")
	}
	header.WriteString("}\n")

	if _, err := io.WriteString(w.w, header.String()); err != nil {
		return errors.Wrap(err, "transport: write header")
	}
	if len(payload) > 0 {
		if _, err := w.w.Write(payload); err != nil {
			return errors.Wrap(err, "transport: write payload")
		}
	}
	if _, err := io.WriteString(w.w, "\n"); err != nil {
		return errors.Wrap(err, "transport: write trailing newline")
	}
	return nil
}

// WriteDoc writes a complete TOON document as a doc frame.
func (w *Writer) WriteDoc(sid, seq uint64, payload []byte) error {
	return w.WriteFrame(&Frame{Version: Version, SID: sid, Seq: seq, Kind: KindDoc, Payload: payload})
}

// WriteRow writes a single streamed row.
func (w *Writer) WriteRow(sid, seq uint64, payload []byte) error {
	return w.WriteFrame(&Frame{Version: Version, SID: sid, Seq: seq, Kind: KindRow, Payload: payload})
}

// WriteUI writes a UI event frame (see events.go).
func (w *Writer) WriteUI(sid, seq uint64, payload []byte) error {
	return w.WriteFrame(&Frame{Version: Version, SID: sid, Seq: seq, Kind: KindUI, Payload: payload})
}

// WriteAck writes an acknowledgement frame.
func (w *Writer) WriteAck(sid, seq uint64) error {
	return w.WriteFrame(&Frame{Version: Version, SID: sid, Seq: seq, Kind: KindAck})
}

// WriteErr writes an error event frame.
func (w *Writer) WriteErr(sid, seq uint64, payload []byte) error {
	return w.WriteFrame(&Frame{Version: Version, SID: sid, Seq: seq, Kind: KindErr, Payload: payload})
}

// WriteFinal writes the closing frame for a SID.
func (w *Writer) WriteFinal(sid, seq uint64, kind FrameKind, payload []byte) error {
	return w.WriteFrame(&Frame{Version: Version, SID: sid, Seq: seq, Kind: kind, Payload: payload, Final: true})
}

func gzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
