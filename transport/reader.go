package transport

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Reader reads TS1 frames from an io.Reader.
type Reader struct {
	r          *bufio.Reader
	maxPayload int
	verifyCRC  bool
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithMaxPayload overrides the default 64 MiB payload ceiling.
func WithMaxPayload(max int) ReaderOption {
	return func(r *Reader) { r.maxPayload = max }
}

// WithoutCRCVerification disables CRC checking (enabled by default
// whenever a frame carries a crc= field).
func WithoutCRCVerification() ReaderOption {
	return func(r *Reader) { r.verifyCRC = false }
}

// NewReader creates a TS1 frame reader over r.
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	reader := &Reader{r: bufio.NewReader(r), maxPayload: MaxPayloadSize, verifyCRC: true}
	for _, opt := range opts {
		opt(reader)
	}
	return reader
}

// Next reads and returns the next frame, decompressing its payload if
// FlagCompressed is set. It returns io.EOF when no more frames remain.
func (r *Reader) Next() (*Frame, error) {
	headerLine, err := r.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && headerLine == "" {
			return nil, io.EOF
		}
		return nil, errors.Wrap(err, "transport: read header")
	}

	frame, payloadLen, err := parseHeader(headerLine)
	if err != nil {
		return nil, err
	}
	if payloadLen > r.maxPayload {
		return nil, &ParseError{Reason: "payload too large", Offset: -1}
	}

	if payloadLen > 0 {
		frame.Payload = make([]byte, payloadLen)
		if _, err := io.ReadFull(r.r, frame.Payload); err != nil {
			return nil, errors.Wrap(err, "transport: read payload")
		}
	} else {
		frame.Payload = nil
	}

	if b, err := r.r.ReadByte(); err == nil && b != '\n' {
		r.r.UnreadByte()
	}

	if r.verifyCRC && frame.CRC != nil && !VerifyCRC(frame.Payload, *frame.CRC) {
		return nil, &CRCMismatchError{Expected: *frame.CRC, Got: ComputeCRC(frame.Payload)}
	}

	if frame.IsCompressed() && len(frame.Payload) > 0 {
		decompressed, err := gzipDecompress(frame.Payload)
		if err != nil {
			return nil, errors.Wrap(err, "transport: decompress payload")
		}
		frame.Payload = decompressed
	}

	return frame, nil
}

func parseHeader(line string) (*Frame, int, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "@frame{") {
		return nil, 0, &ParseError{Reason: "expected @frame{", Offset: 0}
	}
	endIdx := strings.LastIndex(line, "}")
	if endIdx < 0 {
		return nil, 0, &ParseError{Reason: "missing closing }", Offset: len(line)}
	}
	content := line[len("@frame{"):endIdx]

	frame := &Frame{Version: 1}
	var payloadLen int
	for _, pair := range tokenize(content) {
		eqIdx := strings.Index(pair, "=")
		if eqIdx < 0 {
			continue
		}
		key, val := pair[:eqIdx], pair[eqIdx+1:]
		switch key {
		case "v":
			v, err := strconv.ParseUint(val, 10, 8)
			if err != nil {
				return nil, 0, &ParseError{Reason: "invalid version", Offset: -1}
			}
			frame.Version = uint8(v)
		case "sid":
			sid, err := strconv.ParseUint(val, 10, 64)
			if err != nil {
				return nil, 0, &ParseError{Reason: "invalid sid", Offset: -1}
			}
			frame.SID = sid
		case "seq":
			seq, err := strconv.ParseUint(val, 10, 64)
			if err != nil {
				return nil, 0, &ParseError{Reason: "invalid seq", Offset: -1}
			}
			frame.Seq = seq
		case "kind":
			kind, ok := ParseKind(val)
			if !ok {
				return nil, 0, &ParseError{Reason: "invalid kind: " + val, Offset: -1}
			}
			frame.Kind = kind
		case "len":
			l, err := strconv.ParseUint(val, 10, 32)
			if err != nil {
				return nil, 0, &ParseError{Reason: "invalid len", Offset: -1}
			}
			payloadLen = int(l)
		case "crc":
			crc, ok := parseCRC(val)
			if !ok {
				return nil, 0, &ParseError{Reason: "invalid crc: " + val, Offset: -1}
			}
			frame.CRC = &crc
		case "flags":
			fl, err := strconv.ParseUint(val, 16, 8)
			if err == nil {
				frame.Flags = Flags(fl)
			}
		case "final":
			frame.Final = val == "true" || val == "1"
		}
	}
	return frame, payloadLen, nil
}

func tokenize(s string) []string {
	var tokens []string
	var cur bytes.Buffer
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inQuote = !inQuote
			cur.WriteByte(c)
		case (c == ' ' || c == ',' || c == '\t') && !inQuote:
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

func parseCRC(val string) (uint32, bool) {
	val = strings.TrimPrefix(val, "crc32:")
	if len(val) != 8 {
		return 0, false
	}
	v, err := strconv.ParseUint(val, 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

func gzipDecompress(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// ReadAll reads every remaining frame until EOF.
func (r *Reader) ReadAll() ([]*Frame, error) {
	var frames []*Frame
	for {
		f, err := r.Next()
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}
		frames = append(frames, f)
	}
}
