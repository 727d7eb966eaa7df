package transport

import "testing"

func TestCursorObserveMonotonic(t *testing.T) {
	c := NewCursor()
	if err := c.Observe(&Frame{SID: 1, Seq: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Observe(&Frame{SID: 1, Seq: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Observe(&Frame{SID: 1, Seq: 2}); err == nil {
		t.Fatal("expected a sequence error on duplicate seq")
	}
	if err := c.Observe(&Frame{SID: 1, Seq: 10}); err == nil {
		t.Fatal("expected a sequence error on a gap")
	}
}

func TestCursorAckAndPending(t *testing.T) {
	c := NewCursor()
	_ = c.Observe(&Frame{SID: 1, Seq: 1})
	_ = c.Observe(&Frame{SID: 1, Seq: 2})
	_ = c.Observe(&Frame{SID: 1, Seq: 3})

	c.Ack(1, 1)
	pending := c.PendingAcks(1)
	if len(pending) != 2 || pending[0] != 2 || pending[1] != 3 {
		t.Errorf("got pending %v, want [2 3]", pending)
	}
}

func TestCursorNeedsResync(t *testing.T) {
	c := NewCursor()
	if !c.NeedsResync(1) {
		t.Error("unseen SID should need resync")
	}
	c.SetStateHash(1, [32]byte{1})
	if c.NeedsResync(1) {
		t.Error("SID with state should not need resync")
	}
}

func TestCursorFinalFlag(t *testing.T) {
	c := NewCursor()
	_ = c.Observe(&Frame{SID: 1, Seq: 1, Final: true})
	state := c.GetReadOnly(1)
	if !state.Final {
		t.Error("expected Final to be set")
	}
}
