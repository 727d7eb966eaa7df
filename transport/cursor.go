package transport

import "sync"

// Cursor tracks per-SID delivery state for one side of a TS1
// connection: the last sequence seen, the last one acknowledged, and
// the content hash of the most recently applied document (for resync
// decisions after a reconnect).
type Cursor struct {
	mu      sync.RWMutex
	streams map[uint64]*SIDState
}

// SIDState holds state for a single stream ID.
type SIDState struct {
	SID       uint64
	LastSeq   uint64
	LastAcked uint64
	StateHash [32]byte
	HasState  bool
	Final     bool
}

// NewCursor creates an empty Cursor.
func NewCursor() *Cursor {
	return &Cursor{streams: make(map[uint64]*SIDState)}
}

// Get returns the state for sid, creating it on first access.
func (c *Cursor) Get(sid uint64) *SIDState {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.streams[sid]
	if !ok {
		s = &SIDState{SID: sid}
		c.streams[sid] = s
	}
	return s
}

// GetReadOnly returns the state for sid without creating it.
func (c *Cursor) GetReadOnly(sid uint64) *SIDState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.streams[sid]
}

// Delete drops all tracked state for sid.
func (c *Cursor) Delete(sid uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.streams, sid)
}

// AllSIDs returns every tracked stream ID.
func (c *Cursor) AllSIDs() []uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sids := make([]uint64, 0, len(c.streams))
	for sid := range c.streams {
		sids = append(sids, sid)
	}
	return sids
}

// Observe applies a frame's sequence number to the cursor, returning
// a *SequenceError if it breaks monotonic, gap-free ordering.
func (c *Cursor) Observe(f *Frame) error {
	state := c.Get(f.SID)
	if f.Seq != 0 {
		if f.Seq <= state.LastSeq {
			return &SequenceError{SID: f.SID, Expected: state.LastSeq + 1, Got: f.Seq}
		}
		if state.LastSeq > 0 && f.Seq != state.LastSeq+1 {
			return &SequenceError{SID: f.SID, Expected: state.LastSeq + 1, Got: f.Seq}
		}
	}
	state.LastSeq = f.Seq
	if f.IsFinal() {
		state.Final = true
	}
	return nil
}

// SetStateHash records the content hash of the document currently
// applied for sid, usually via transport.StateHash on the decoded
// toon.Value.
func (c *Cursor) SetStateHash(sid uint64, hash [32]byte) {
	state := c.Get(sid)
	state.StateHash = hash
	state.HasState = true
}

// Ack marks seq as acknowledged for sid.
func (c *Cursor) Ack(sid, seq uint64) {
	state := c.Get(sid)
	if seq > state.LastAcked {
		state.LastAcked = seq
	}
}

// PendingAcks returns the sequence numbers seen but not yet
// acknowledged for sid.
func (c *Cursor) PendingAcks(sid uint64) []uint64 {
	state := c.GetReadOnly(sid)
	if state == nil || state.LastSeq <= state.LastAcked {
		return nil
	}
	pending := make([]uint64, 0, state.LastSeq-state.LastAcked)
	for seq := state.LastAcked + 1; seq <= state.LastSeq; seq++ {
		pending = append(pending, seq)
	}
	return pending
}

// NeedsResync reports whether sid has no recorded state and therefore
// requires a fresh doc frame before any row frames can be applied.
func (c *Cursor) NeedsResync(sid uint64) bool {
	state := c.GetReadOnly(sid)
	return state == nil || !state.HasState
}
