package opts

import (
	"reflect"
	"testing"
)

func TestDefaultConverters(t *testing.T) {
	c := DefaultConverters()

	b, ok := Lookup[bool](c)
	if !ok {
		t.Fatalf("bool codec missing")
	}
	if b.Encode(true) != "true" || b.Encode(false) != "false" {
		t.Fatalf("unexpected bool encoding")
	}
	if _, ok := b.Decode("yes"); ok {
		t.Fatalf("bool decode should reject non canonical input")
	}

	i, ok := Lookup[int](c)
	if !ok {
		t.Fatalf("int codec missing")
	}
	if v, ok := i.Decode("-42"); !ok || v != -42 {
		t.Fatalf("int decode: %d ok=%t", v, ok)
	}
	if _, ok := i.Decode("4.2"); ok {
		t.Fatalf("int decode should reject floats")
	}

	s, ok := Lookup[string](c)
	if !ok || s.Encode("a b") != "a b" {
		t.Fatalf("string codec should be identity")
	}
}

func TestRegisterAndLookupCustomType(t *testing.T) {
	type celsius float64
	c := NewConverters()
	if _, ok := Lookup[celsius](c); ok {
		t.Fatalf("empty registry should not resolve")
	}
	err := Register(c, Codec[celsius]{
		Encode: func(v celsius) string { return "c" },
		Decode: func(string) (celsius, bool) { return 1, true },
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !c.Has(reflect.TypeOf(celsius(0))) {
		t.Fatalf("Has should report registered type")
	}
	if _, ok := Lookup[float64](c); ok {
		t.Fatalf("named type must not alias its underlying type")
	}
	clone := c.Clone()
	if _, ok := Lookup[celsius](clone); !ok {
		t.Fatalf("clone should carry codecs")
	}
}

func TestRegisterRejectsIncompleteCodec(t *testing.T) {
	if err := Register(NewConverters(), Codec[int]{Encode: func(int) string { return "" }}); err == nil {
		t.Fatalf("expected error for missing Decode")
	}
	if err := Register[int](nil, IntCodec()); err == nil {
		t.Fatalf("expected error for nil registry")
	}
}

func TestEnumCodecNotFound(t *testing.T) {
	codec := EnumCodec([]string{"RED", "BLUE"}, func(s string) string { return s })
	if v, ok := codec.Decode("GREEN"); ok || v != "" {
		t.Fatalf("expected not found, got %q ok=%t", v, ok)
	}
}
