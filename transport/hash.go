package transport

import (
	"crypto/sha256"
	"hash/crc32"

	"github.com/elminson/toon/toon"
)

// StateHash computes sha256(Encode(value)): a content hash of a
// document's canonical TOON form. Because Encode is deterministic
// (§4.3), two equal values always hash identically regardless of how
// they were constructed.
func StateHash(value toon.Value) [32]byte {
	return sha256.Sum256([]byte(toon.Encode(value)))
}

var crcTable = crc32.MakeTable(crc32.IEEE)

// ComputeCRC computes the CRC-32 IEEE checksum of a frame payload, for
// the per-frame integrity check Writer/Reader attach under WithCRC.
func ComputeCRC(data []byte) uint32 {
	return crc32.Checksum(data, crcTable)
}

// VerifyCRC reports whether a frame payload's checksum matches the one
// carried in its header line.
func VerifyCRC(data []byte, expected uint32) bool {
	return ComputeCRC(data) == expected
}

// StateHashBytes hashes raw bytes directly, for callers who already
// hold canonical text.
func StateHashBytes(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// HashToHex renders a hash as lowercase hex.
func HashToHex(h [32]byte) string {
	const hextable = "0123456789abcdef"
	var buf [64]byte
	for i, b := range h {
		buf[i*2] = hextable[b>>4]
		buf[i*2+1] = hextable[b&0x0f]
	}
	return string(buf[:])
}

// HexToHash parses a 64-character hex string back into a hash.
func HexToHash(s string) ([32]byte, bool) {
	var h [32]byte
	if len(s) != 64 {
		return h, false
	}
	for i := 0; i < 32; i++ {
		hi := hexDigit(s[i*2])
		lo := hexDigit(s[i*2+1])
		if hi < 0 || lo < 0 {
			return h, false
		}
		h[i] = byte(hi<<4 | lo)
	}
	return h, true
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c - 'a' + 10)
	case c >= 'A' && c <= 'F':
		return int(c - 'A' + 10)
	default:
		return -1
	}
}
