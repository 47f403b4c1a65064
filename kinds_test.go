package opts

import (
	"math"
	"testing"
)

type forkOption int

const (
	bruh1 forkOption = iota
	bruh2
	bruh3
)

func (f forkOption) String() string {
	switch f {
	case bruh1:
		return "BRUH1"
	case bruh2:
		return "BRUH2"
	case bruh3:
		return "BRUH3"
	}
	return "UNKNOWN"
}

var (
	increase = Events{Increase: true}
	decrease = Events{Decrease: true}
	none     = Events{}
)

func TestIntTypeStepsAndClamps(t *testing.T) {
	d := IntType(2, 0, 10, 5)

	if v, changed := d.Mutate(increase, 5); !changed || v != 7 {
		t.Fatalf("increase: got %d changed=%t", v, changed)
	}
	if v, changed := d.Mutate(decrease, 5); !changed || v != 3 {
		t.Fatalf("decrease: got %d changed=%t", v, changed)
	}
	if _, changed := d.Mutate(none, 5); changed {
		t.Fatalf("no events must report no-change")
	}

	v := 5
	for i := 0; i < 20; i++ {
		v, _ = d.Mutate(increase, v)
		if v > 10 {
			t.Fatalf("value escaped max: %d", v)
		}
	}
	if v != 10 {
		t.Fatalf("expected to settle at max, got %d", v)
	}
	for i := 0; i < 20; i++ {
		v, _ = d.Mutate(decrease, v)
		if v < 0 {
			t.Fatalf("value escaped min: %d", v)
		}
	}
	if v != 0 {
		t.Fatalf("expected to settle at min, got %d", v)
	}
}

func TestIntTypeReclampsOutOfRangeFallback(t *testing.T) {
	d := IntType(1, 0, 10, 99)
	if d.FallbackValue() != 99 {
		t.Fatalf("fallback must be kept as declared, got %d", d.FallbackValue())
	}
	if v, _ := d.Mutate(increase, d.FallbackValue()); v != 10 {
		t.Fatalf("expected clamp(100,0,10)=10, got %d", v)
	}
}

func TestIntTypeSaturatesAtIntLimits(t *testing.T) {
	d := IntType(1, 0, 10, 5)
	if v, _ := d.Mutate(increase, math.MaxInt); v != 10 {
		t.Fatalf("increase from MaxInt: expected 10, got %d", v)
	}
	if v, _ := d.Mutate(decrease, math.MinInt); v != 0 {
		t.Fatalf("decrease from MinInt: expected 0, got %d", v)
	}

	wide := IntType(math.MaxInt, -10, 10, 0)
	if v, _ := wide.Mutate(increase, 5); v != 10 {
		t.Fatalf("huge step increase: expected 10, got %d", v)
	}
	if v, _ := wide.Mutate(decrease, -5); v != -10 {
		t.Fatalf("huge step decrease: expected -10, got %d", v)
	}
}

func TestIntTypeInvertedRange(t *testing.T) {
	d := IntType(1, 10, 0, 5)
	bounds, ok := d.Bounds()
	if !ok || bounds.Min != 0 || bounds.Max != 10 {
		t.Fatalf("expected normalised bounds, got %+v ok=%t", bounds, ok)
	}
	if v, _ := d.Mutate(increase, 10); v != 10 {
		t.Fatalf("inverted range must still clamp at 10, got %d", v)
	}
	if v, _ := d.Mutate(decrease, 0); v != 0 {
		t.Fatalf("inverted range must still clamp at 0, got %d", v)
	}
}

func TestBoolTypeEitherControlToggles(t *testing.T) {
	d := BoolType(false)
	if v, changed := d.Mutate(increase, false); !changed || !v {
		t.Fatalf("increase should flip false->true")
	}
	if v, changed := d.Mutate(decrease, false); !changed || !v {
		t.Fatalf("decrease should flip false->true")
	}
	if v, changed := d.Mutate(decrease, true); !changed || v {
		t.Fatalf("decrease should flip true->false")
	}
	if v, changed := d.Mutate(Events{Increase: true, Decrease: true}, true); !changed || v {
		t.Fatalf("both controls in one tick flip once")
	}
	if _, changed := d.Mutate(Events{SelectDown: true}, true); changed {
		t.Fatalf("selection events must not toggle")
	}
}

func TestEnumTypeWraps(t *testing.T) {
	d := EnumType([]forkOption{bruh1, bruh2, bruh3}, bruh1)

	if v, _ := d.Mutate(increase, bruh3); v != bruh1 {
		t.Fatalf("increase from last should wrap to first, got %v", v)
	}
	if v, _ := d.Mutate(decrease, bruh1); v != bruh3 {
		t.Fatalf("decrease from first should wrap to last, got %v", v)
	}
	if v, _ := d.Mutate(increase, bruh1); v != bruh2 {
		t.Fatalf("expected BRUH2, got %v", v)
	}
	if _, changed := d.Mutate(none, bruh2); changed {
		t.Fatalf("no events must report no-change")
	}
	if got := d.Variants(); len(got) != 3 || got[2] != "BRUH3" {
		t.Fatalf("unexpected variants %v", got)
	}
}

func TestEnumTypeUnknownCurrent(t *testing.T) {
	d := EnumType([]forkOption{bruh1, bruh2}, bruh1)
	if v, _ := d.Mutate(increase, bruh3); v != bruh1 {
		t.Fatalf("unknown value should move to first on increase, got %v", v)
	}
	if v, _ := d.Mutate(decrease, bruh3); v != bruh2 {
		t.Fatalf("unknown value should move to last on decrease, got %v", v)
	}
}

func TestEnumCodecByName(t *testing.T) {
	d := EnumType([]forkOption{bruh1, bruh2, bruh3}, bruh1)
	raw, err := d.Encode(nil, bruh2)
	if err != nil || raw != "BRUH2" {
		t.Fatalf("encode: %q %v", raw, err)
	}
	if v, ok := d.Decode(nil, "BRUH3"); !ok || v != bruh3 {
		t.Fatalf("decode: %v ok=%t", v, ok)
	}
	if _, ok := d.Decode(nil, "bruh3"); ok {
		t.Fatalf("names are case sensitive")
	}
}

func TestDescriptorOverrides(t *testing.T) {
	upper := Codec[bool]{
		Encode: func(v bool) string {
			if v {
				return "YES"
			}
			return "NO"
		},
		Decode: func(s string) (bool, bool) {
			switch s {
			case "YES":
				return true, true
			case "NO":
				return false, true
			}
			return false, false
		},
	}
	onlyUp := func(ev Events, current bool) (bool, bool) {
		if ev.Increase {
			return true, true
		}
		return current, false
	}
	d := BoolType(false, WithCodec(upper), WithMutator[bool](onlyUp), WithLabel[bool]("Subscribe"))

	if raw, _ := d.Encode(DefaultConverters(), true); raw != "YES" {
		t.Fatalf("codec override not used: %q", raw)
	}
	if _, changed := d.Mutate(decrease, true); changed {
		t.Fatalf("mutator override not used")
	}
	if d.Label() != "Subscribe" {
		t.Fatalf("label not applied")
	}
}

func TestCustomTypeRequiresMutator(t *testing.T) {
	d := CustomType[string]("x", nil)
	if err := d.Bind(DefaultConverters()); err == nil {
		t.Fatalf("expected bind failure for custom type without mutator")
	}
}

func TestMutateValueErasure(t *testing.T) {
	var d Descriptor = IntType(1, 0, 3, 0)
	next, changed := d.MutateValue(increase, 2)
	if !changed || next.(int) != 3 {
		t.Fatalf("got %v changed=%t", next, changed)
	}
	if _, changed := d.MutateValue(increase, "2"); changed {
		t.Fatalf("wrong dynamic type must be no-change")
	}
	if d.Kind() != KindInt || d.Kind().String() != "int" {
		t.Fatalf("unexpected kind %v", d.Kind())
	}
}

func TestRoundTripLaw(t *testing.T) {
	conv := DefaultConverters()
	ints := IntType(1, -5, 5, 0)
	for _, v := range []int{-5, 0, 3, 1 << 20} {
		raw, err := ints.Encode(conv, v)
		if err != nil {
			t.Fatalf("encode %d: %v", v, err)
		}
		if got, ok := ints.Decode(conv, raw); !ok || got != v {
			t.Fatalf("int round trip %d -> %q -> %d", v, raw, got)
		}
	}
	bools := BoolType(false)
	for _, v := range []bool{true, false} {
		raw, _ := bools.Encode(conv, v)
		if got, ok := bools.Decode(conv, raw); !ok || got != v {
			t.Fatalf("bool round trip %t", v)
		}
	}
	enums := EnumType([]forkOption{bruh1, bruh2, bruh3}, bruh1)
	for _, v := range []forkOption{bruh1, bruh2, bruh3} {
		raw, _ := enums.Encode(conv, v)
		if got, ok := enums.Decode(conv, raw); !ok || got != v {
			t.Fatalf("enum round trip %v", v)
		}
	}
}
