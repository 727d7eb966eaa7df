package toon

import "sort"

// shape is the structural classification of a composite Value, per §4.2.
type shape uint8

const (
	shapeObject shape = iota
	shapeTabular
	shapeRegularList
)

// classify inspects a composite Value and returns its shape plus, for
// Tabular shape, the canonical (sorted) column keys.
func classify(v Value) (shape, []string) {
	if v.kind == KindObject {
		return shapeObject, nil
	}
	if v.kind != KindList {
		return shapeRegularList, nil
	}
	if len(v.listVal) == 0 {
		return shapeRegularList, nil
	}
	cols, ok := tabularColumns(v.listVal)
	if !ok {
		return shapeRegularList, nil
	}
	return shapeTabular, cols
}

// tabularColumns returns the sorted key set shared by every element of
// elems if all elements are objects with an identical key set and
// every field is a scalar. Otherwise it returns ok=false.
func tabularColumns(elems []Value) (cols []string, ok bool) {
	if len(elems) == 0 {
		return nil, false
	}
	first, isObj := firstKeySet(elems[0])
	if !isObj {
		return nil, false
	}
	for _, e := range elems {
		keys, isObj := firstKeySet(e)
		if !isObj || len(keys) != len(first) {
			return nil, false
		}
		for _, k := range keys {
			if !containsStr(first, k) {
				return nil, false
			}
		}
	}
	sorted := append([]string(nil), first...)
	sort.Strings(sorted)
	return sorted, true
}

func firstKeySet(v Value) ([]string, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	keys := make([]string, 0, len(v.objVal))
	for _, f := range v.objVal {
		if !f.Value.IsScalar() {
			return nil, false
		}
		keys = append(keys, f.Key)
	}
	return keys, true
}

func containsStr(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// sortedKeys returns the lexicographically sorted keys of an object
// value, drawing the scratch slice from the shared pool (see pool.go).
func sortedKeys(fields []Field) []string {
	keys := acquireKeySlice(len(fields))
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	sort.Strings(keys)
	return keys
}
