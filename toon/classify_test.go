package toon

import "testing"

func TestClassifyTabularSingleElement(t *testing.T) {
	v := List(Object(F("a", Int(1)), F("b", Int(2))))
	sh, cols := classify(v)
	if sh != shapeTabular {
		t.Errorf("got shape %v, want Tabular", sh)
	}
	if len(cols) != 2 || cols[0] != "a" || cols[1] != "b" {
		t.Errorf("got cols %v", cols)
	}
}

func TestClassifyMissingKeyFallsBackToRegular(t *testing.T) {
	v := List(
		Object(F("a", Int(1)), F("b", Int(2))),
		Object(F("a", Int(3))),
	)
	sh, _ := classify(v)
	if sh != shapeRegularList {
		t.Errorf("got shape %v, want RegularList", sh)
	}
}

func TestClassifyNestedValueFallsBackToRegular(t *testing.T) {
	v := List(
		Object(F("a", List(Int(1)))),
		Object(F("a", List(Int(2)))),
	)
	sh, _ := classify(v)
	if sh != shapeRegularList {
		t.Errorf("got shape %v, want RegularList (nested composite field)", sh)
	}
}

func TestClassifyEmptyList(t *testing.T) {
	sh, _ := classify(List())
	if sh != shapeRegularList {
		t.Errorf("got shape %v for empty list", sh)
	}
}

func TestClassifySafety(t *testing.T) {
	v := List(
		Object(F("x", Int(1)), F("y", Str("a"))),
		Object(F("x", Int(2)), F("y", Str("b"))),
	)
	sh, cols := classify(v)
	if sh != shapeTabular {
		t.Fatalf("got shape %v, want Tabular", sh)
	}
	elems, _ := v.AsList()
	for _, e := range elems {
		for _, c := range cols {
			cell := e.Get(c)
			if !cell.IsScalar() {
				t.Errorf("column %q is not scalar in element %v", c, e)
			}
		}
	}
}
