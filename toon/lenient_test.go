package toon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeLenientTotality(t *testing.T) {
	inputs := []string{
		"",
		"{",
		"[3]:\n  1\n  2",
		"[2]{a,b}:\n  1,2\n  3",
		`{name: "unterminated`,
		"not even close to valid [[[{{{",
		"[2]{a,b}:\n  1,2,3\n  4,5",
	}
	for _, in := range inputs {
		in := in
		t.Run(in, func(t *testing.T) {
			require.NotPanics(t, func() {
				_ = DecodeLenient(in)
			})
		})
	}
}

func TestDecodeLenientRecordsLengthMismatch(t *testing.T) {
	res := DecodeLenient("[3]:\n  1\n  2")
	elems, err := res.Value.AsList()
	require.NoError(t, err)
	require.Len(t, elems, 2)
	require.NotEmpty(t, res.Diagnostics)

	found := false
	for _, d := range res.Diagnostics {
		if d.Kind == ErrLengthMismatch {
			found = true
		}
	}
	require.True(t, found, "expected a LengthMismatch diagnostic, got %v", res.Diagnostics)
}

func TestDecodeLenientRowArityMismatch(t *testing.T) {
	res := DecodeLenient("[2]{a,b}:\n  1,2\n  3")
	require.NotEmpty(t, res.Diagnostics)
	elems, err := res.Value.AsList()
	require.NoError(t, err)
	require.Len(t, elems, 2)
	require.True(t, elems[1].Get("b").IsNull())
}

func TestLenientResultErrFoldsDiagnostics(t *testing.T) {
	res := DecodeLenient("[3]:\n  1\n  2")
	err := res.Err()
	require.Error(t, err)

	clean := DecodeLenient("[1]:\n  1")
	require.Nil(t, clean.Err())
}

func TestDecodeLenientValidInputMatchesStrict(t *testing.T) {
	text := "{\n  a: 1\n  b: 2\n}"
	strict, err := Decode(text)
	require.NoError(t, err)

	lenient := DecodeLenient(text)
	require.Empty(t, lenient.Diagnostics)
	require.Equal(t, Encode(strict), Encode(lenient.Value))
}
