package toon

// EncodeOptions configures the deterministic encoder. The zero value is
// not valid on its own; use DefaultEncodeOptions or WithXxx functional
// options layered over it.
type EncodeOptions struct {
	// Indent is the string prepended per nesting level.
	Indent string

	// Delimiter separates fields in tabular rows.
	Delimiter byte

	// LengthMarker controls whether a regular (non-tabular) list header
	// carries its element count: "[3]:" when true, "[]:" when false.
	// Tabular and streaming headers always carry their length token;
	// this only thins out the common case of a plain list of scalars.
	LengthMarker bool
}

// DefaultEncodeOptions returns the canonical defaults: two-space
// indent, comma delimiter, length markers on.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Indent:       "  ",
		Delimiter:    ',',
		LengthMarker: true,
	}
}

// Option mutates an EncodeOptions in place, following the functional
// options idiom.
type Option func(*EncodeOptions)

// WithIndent overrides the per-level indentation string.
func WithIndent(indent string) Option {
	return func(o *EncodeOptions) { o.Indent = indent }
}

// WithDelimiter overrides the tabular cell delimiter.
func WithDelimiter(delim byte) Option {
	return func(o *EncodeOptions) { o.Delimiter = delim }
}

// WithLengthMarkers toggles whether regular list headers carry their
// element count. Disabling it produces shorter, write-only output:
// this package's decoders expect the count and will reject it.
func WithLengthMarkers(enabled bool) Option {
	return func(o *EncodeOptions) { o.LengthMarker = enabled }
}

// resolveOptions applies opts over the defaults and returns the result.
func resolveOptions(opts []Option) EncodeOptions {
	o := DefaultEncodeOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
