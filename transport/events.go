package transport

import (
	"time"

	"github.com/google/uuid"

	"github.com/elminson/toon/toon"
)

// NewSessionID returns a fresh correlation ID for a transport
// session. The CLI attaches it to every log line of a `stream`
// subcommand; the event constructors below do not carry it.
func NewSessionID() string {
	return uuid.NewString()
}

// ProgressEvent builds a UI event payload reporting fractional
// completion, encoded as a TOON object.
func ProgressEvent(pct float64, msg string) toon.Value {
	return toon.Object(
		toon.F("type", toon.Str("progress")),
		toon.F("pct", toon.Float(pct)),
		toon.F("msg", toon.Str(msg)),
	)
}

// LogEvent builds a UI event payload for a leveled log line.
func LogEvent(level, msg string) toon.Value {
	return toon.Object(
		toon.F("type", toon.Str("log")),
		toon.F("level", toon.Str(level)),
		toon.F("msg", toon.Str(msg)),
		toon.F("ts", toon.Str(time.Now().UTC().Format(time.RFC3339))),
	)
}

// MetricEvent builds a UI event payload for a numeric metric.
func MetricEvent(name string, value float64, unit string) toon.Value {
	fields := []toon.Field{
		toon.F("type", toon.Str("metric")),
		toon.F("name", toon.Str(name)),
		toon.F("value", toon.Float(value)),
	}
	if unit != "" {
		fields = append(fields, toon.F("unit", toon.Str(unit)))
	}
	return toon.Object(fields...)
}

// ErrorEvent builds an error event payload for kind=err frames.
func ErrorEvent(code, msg string, sid, seq uint64) toon.Value {
	return toon.Object(
		toon.F("code", toon.Str(code)),
		toon.F("msg", toon.Str(msg)),
		toon.F("sid", toon.Int(int64(sid))),
		toon.F("seq", toon.Int(int64(seq))),
	)
}

// EmitEvent encodes a UI/error event Value as TOON bytes, ready for a
// Writer.WriteUI/WriteErr payload.
func EmitEvent(v toon.Value) []byte {
	return []byte(toon.Encode(v))
}
