package opts

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func exampleRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(DefaultConverters(),
		Define("LIKE", IntType(1, 0, 10, 99)),
		Define("SUBSCRIBE", BoolType(false)),
		Define("TESTENUM", EnumType([]forkOption{bruh1, bruh2, bruh3}, bruh1)),
	)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return r
}

func TestRegistryOrderAndLookup(t *testing.T) {
	r := exampleRegistry(t)
	if r.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", r.Len())
	}
	if got := strings.Join(r.Names(), ","); got != "LIKE,SUBSCRIBE,TESTENUM" {
		t.Fatalf("order not preserved: %s", got)
	}
	entry, ok := r.Lookup("SUBSCRIBE")
	if !ok || entry.Descriptor.Kind() != KindBool {
		t.Fatalf("lookup failed: %+v ok=%t", entry, ok)
	}
	if r.IndexOf("TESTENUM") != 2 || r.IndexOf("missing") != -1 {
		t.Fatalf("unexpected IndexOf results")
	}
	if r.At(0).Name != "LIKE" {
		t.Fatalf("At(0) = %q", r.At(0).Name)
	}
}

func TestRegistryNameWidth(t *testing.T) {
	r := exampleRegistry(t)
	// longest name is SUBSCRIBE/TESTENUM (9 and 8): 9 - 1 + 8
	if r.NameWidth() != 16 {
		t.Fatalf("expected name column 16, got %d", r.NameWidth())
	}
}

func TestRegistryConstructionFailures(t *testing.T) {
	type celsius float64
	cases := []struct {
		name    string
		entries []Entry
		want    error
	}{
		{"empty", nil, ErrEmptyRegistry},
		{"duplicate", []Entry{Define("A", BoolType(false)), Define("A", BoolType(true))}, ErrDuplicateOption},
		{"blank name", []Entry{Define("  ", BoolType(false))}, ErrInvalidDescriptor},
		{"nil descriptor", []Entry{Define("A", nil)}, ErrInvalidDescriptor},
		{"missing codec", []Entry{Define("T", CustomType(celsius(1), func(_ Events, v celsius) (celsius, bool) { return v, false }))}, ErrMissingCodec},
		{"nil fallback", []Entry{Define("P", CustomType[*int](nil, func(_ Events, v *int) (*int, bool) { return v, false }))}, ErrNilFallback},
		{"enum without variants", []Entry{Define("E", EnumType[forkOption](nil, bruh1))}, ErrInvalidDescriptor},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRegistry(DefaultConverters(), tc.entries...)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestMustRegistryPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MustRegistry(DefaultConverters())
}

func TestRegistrySchema(t *testing.T) {
	r := exampleRegistry(t)
	doc := r.Schema()
	if doc.Format != SchemaFormatDescriptors {
		t.Fatalf("unexpected format %q", doc.Format)
	}
	fields, ok := doc.Document.([]FieldDescriptor)
	if !ok || len(fields) != 3 {
		t.Fatalf("unexpected document %#v", doc.Document)
	}
	like := fields[0]
	if like.Path != "LIKE" || like.Kind != "int" || like.Fallback != "99" || like.Bounds == nil || like.Bounds.Max != 10 {
		t.Fatalf("unexpected LIKE field %+v", like)
	}
	if enum := fields[2]; enum.Kind != "enum" || enum.Fallback != "BRUH1" || len(enum.Variants) != 3 {
		t.Fatalf("unexpected TESTENUM field %+v", enum)
	}
	if _, err := json.Marshal(doc); err != nil {
		t.Fatalf("schema should marshal: %v", err)
	}
}
