// Package toon implements Token-Oriented Object Notation: a
// human-readable, indentation-sensitive text format for structured
// data that trades JSON's per-line punctuation for an indentation and
// length-marker grammar, tabular rows for uniform lists of records,
// and lexicographic key ordering for deterministic output.
//
// Encode renders a Value deterministically. Decode parses a document
// strictly, failing fast on the first grammar violation. DecodeLenient
// parses the same grammar but never aborts, recording every violation
// as a Diagnostic and recovering to produce a best-effort Value.
// StreamEncoder and RowStream provide bounded-memory variants for
// encoding from, and decoding into, a row-at-a-time pipeline.
package toon
