package toon

import "testing"

func TestEncodeScalars(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want string
	}{
		{"null", Null(), "null"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"int", Int(42), "42"},
		{"negative int", Int(-7), "-7"},
		{"float", Float(3.5), "3.5"},
		{"nan becomes null", Float(nan()), "null"},
		{"plain string", Str("hello"), "hello"},
		{"numeric-looking string quoted", Str("123"), `"123"`},
		{"reserved word quoted", Str("null"), `"null"`},
		{"empty string quoted", Str(""), `""`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Encode(c.v)
			if got != c.want {
				t.Errorf("Encode(%v) = %q, want %q", c.v, got, c.want)
			}
		})
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestEncodeEmptyComposites(t *testing.T) {
	if got := Encode(List()); got != "[0]" {
		t.Errorf("empty list: got %q", got)
	}
	if got := Encode(Object()); got != "{}" {
		t.Errorf("empty object: got %q", got)
	}
}

func TestEncodeObjectSortsKeys(t *testing.T) {
	v := Object(F("name", Str("John")), F("age", Int(30)))
	want := "{\n  age: 30\n  name: John\n}"
	if got := Encode(v); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeRegularList(t *testing.T) {
	v := List(Int(1), Int(2), Int(3))
	want := "[3]:\n  1\n  2\n  3\n"
	if got := Encode(v); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeRegularListWithoutLengthMarker(t *testing.T) {
	v := List(Int(1), Int(2), Int(3))
	want := "[]:\n  1\n  2\n  3\n"
	if got := Encode(v, WithLengthMarkers(false)); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeTabular(t *testing.T) {
	v := List(
		Object(F("sku", Str("A1")), F("qty", Int(2)), F("price", Float(9.99))),
		Object(F("sku", Str("B2")), F("qty", Int(1)), F("price", Float(14.5))),
	)
	want := "[2]{price,qty,sku}:\n  9.99,2,A1\n  14.5,1,B2\n"
	if got := Encode(v); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	v := Object(
		F("b", List(Int(1), Int(2))),
		F("a", Object(F("z", Str("z")), F("y", Str("y")))),
	)
	first := Encode(v)
	second := Encode(v)
	if first != second {
		t.Errorf("encode is not deterministic:\n%s\nvs\n%s", first, second)
	}
}

func TestEncodeIdempotentAfterDecode(t *testing.T) {
	v := List(
		Object(F("name", Str("Product, A")), F("desc", Str("line\nbreak"))),
	)
	once := Encode(v)
	decoded, err := Decode(once)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	twice := Encode(decoded)
	if once != twice {
		t.Errorf("not idempotent:\n%s\nvs\n%s", once, twice)
	}
}
