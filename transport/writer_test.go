package transport

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriterMinimalFrame(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	err := w.WriteFrame(&Frame{Version: 1, SID: 0, Seq: 0, Kind: KindDoc, Payload: []byte("{}")})
	if err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}

	got := buf.String()
	want := "@frame{v=1 sid=0 seq=0 kind=doc len=2}\n{}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriterWithCRC(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithCRC())

	payload := []byte("[1]:\n  1\n")
	if err := w.WriteRow(1, 5, payload); err != nil {
		t.Fatalf("WriteRow failed: %v", err)
	}
	if !strings.Contains(buf.String(), "crc=") {
		t.Errorf("expected crc= in output: %s", buf.String())
	}
}

func TestWriterReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithCRC())
	if err := w.WriteDoc(1, 1, []byte("{a: 1}")); err != nil {
		t.Fatalf("WriteDoc failed: %v", err)
	}
	if err := w.WriteFinal(1, 2, KindAck, nil); err != nil {
		t.Fatalf("WriteFinal failed: %v", err)
	}

	r := NewReader(&buf)
	f1, err := r.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if f1.Kind != KindDoc || string(f1.Payload) != "{a: 1}" {
		t.Errorf("got frame %+v", f1)
	}

	f2, err := r.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if !f2.IsFinal() {
		t.Errorf("expected final frame, got %+v", f2)
	}
}

func TestWriterReaderGzipRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithGzip(), WithCRC())
	payload := []byte("[2]{a,b}:\n  1,2\n  3,4\n")
	if err := w.WriteDoc(1, 1, payload); err != nil {
		t.Fatalf("WriteDoc failed: %v", err)
	}

	r := NewReader(&buf)
	f, err := r.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if string(f.Payload) != string(payload) {
		t.Errorf("got %q, want %q", f.Payload, payload)
	}
}

func TestReaderDetectsCRCMismatch(t *testing.T) {
	bad := "@frame{v=1 sid=1 seq=1 kind=doc len=2 crc=deadbeef}\n{}\n"
	r := NewReader(strings.NewReader(bad))
	_, err := r.Next()
	if err == nil {
		t.Fatal("expected a CRC mismatch error")
	}
	if _, ok := err.(*CRCMismatchError); !ok {
		t.Errorf("got %T, want *CRCMismatchError", err)
	}
}
