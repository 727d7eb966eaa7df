package toon

import "testing"

func TestDecodeScenarios(t *testing.T) {
	t.Run("primitive", func(t *testing.T) {
		v, err := Decode("42")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		i, _ := v.AsInt()
		if i != 42 {
			t.Errorf("got %d, want 42", i)
		}
	})

	t.Run("object of two fields", func(t *testing.T) {
		text := "{\n  name: John\n  age: 30\n}"
		v, err := Decode(text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		age, _ := v.Get("age").AsInt()
		name, _ := v.Get("name").AsStr()
		if age != 30 || name != "John" {
			t.Errorf("got age=%d name=%q", age, name)
		}
	})

	t.Run("simple list", func(t *testing.T) {
		v, err := Decode("[3]:\n  1\n  2\n  3")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		elems, _ := v.AsList()
		if len(elems) != 3 {
			t.Fatalf("got %d elements, want 3", len(elems))
		}
	})

	t.Run("tabular list", func(t *testing.T) {
		text := "[2]{sku,qty,price}:\n  A1,2,9.99\n  B2,1,14.5"
		v, err := Decode(text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		elems, _ := v.AsList()
		if len(elems) != 2 {
			t.Fatalf("got %d rows, want 2", len(elems))
		}
		sku, _ := elems[0].Get("sku").AsStr()
		if sku != "A1" {
			t.Errorf("got sku=%q", sku)
		}
	})

	t.Run("quoted cells", func(t *testing.T) {
		text := "[1]{name,desc}:\n  \"Product, A\",\"line\\nbreak\""
		v, err := Decode(text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		elems, _ := v.AsList()
		name, _ := elems[0].Get("name").AsStr()
		desc, _ := elems[0].Get("desc").AsStr()
		if name != "Product, A" {
			t.Errorf("got name=%q", name)
		}
		if desc != "line\nbreak" {
			t.Errorf("got desc=%q", desc)
		}
	})
}

func TestDecodeBoundaryCases(t *testing.T) {
	if _, err := Decode(""); err == nil {
		t.Error("expected EmptyInput error")
	} else if de, ok := err.(*DecodeError); !ok || de.Kind != ErrEmptyInput {
		t.Errorf("got %v, want ErrEmptyInput", err)
	}

	if v, err := Decode("[0]:"); err != nil || v.Len() != 0 {
		t.Errorf("got v=%v err=%v, want empty list", v, err)
	}

	if v, err := Decode("{}"); err != nil || v.Kind() != KindObject || v.Len() != 0 {
		t.Errorf("got v=%v err=%v, want empty object", v, err)
	}

	if v, err := Decode(`""`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	} else if s, _ := v.AsStr(); s != "" {
		t.Errorf("got %q, want empty string", s)
	}

	if v, err := Decode(`"123"`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	} else if s, _ := v.AsStr(); s != "123" {
		t.Errorf("got %q, want \"123\"", s)
	}

	if v, err := Decode(`"null"`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	} else if s, _ := v.AsStr(); s != "null" {
		t.Errorf("got %q, want \"null\"", s)
	}
}

func TestDecodeTrailingContentFails(t *testing.T) {
	_, err := Decode("{} trailing")
	if err == nil {
		t.Fatal("expected UnexpectedTrailing error")
	}
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != ErrUnexpectedTrailing {
		t.Errorf("got %v, want ErrUnexpectedTrailing", err)
	}
}

func TestDecodeStrictRejectsUnknownLength(t *testing.T) {
	_, err := Decode("[-]:\n  1")
	if err == nil {
		t.Fatal("expected error for [-] in batch mode")
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	v := Object(
		F("company", Str("Acme Corp")),
		F("employees", List(
			Object(F("name", Str("Alice")), F("role", Str("Engineer"))),
			Object(F("name", Str("Bob")), F("role", Str("Designer"))),
		)),
	)
	// The list header glues directly onto its key, with no colon
	// between them: "employees[2]{name,role}:", not "employees: [2]...".
	want := "{\n  company: Acme Corp\n  employees[2]{name,role}:\n    Alice,Engineer\n    Bob,Designer\n}"
	text := Encode(v)
	if text != want {
		t.Errorf("got:\n%s\nwant:\n%s", text, want)
	}
	decoded, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode failed: %v\ntext:\n%s", err, text)
	}
	reencoded := Encode(decoded)
	if reencoded != text {
		t.Errorf("round-trip mismatch:\nfirst:\n%s\nsecond:\n%s", text, reencoded)
	}
}

func TestDecodeKeyWithGluedListHeader(t *testing.T) {
	text := "{\n  company: Acme Corp\n  employees[2]{name,role}:\n    Alice,Engineer\n    Bob,Designer\n}"
	v, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	company, _ := v.Get("company").AsStr()
	if company != "Acme Corp" {
		t.Errorf("got company=%q", company)
	}
	employees, _ := v.Get("employees").AsList()
	if len(employees) != 2 {
		t.Fatalf("got %d employees, want 2", len(employees))
	}
	name, _ := employees[0].Get("name").AsStr()
	if name != "Alice" {
		t.Errorf("got employees[0].name=%q", name)
	}
}
