package opts

import (
	"fmt"
	"reflect"
)

// Descriptor is the type-erased view of a TypeDescriptor used by the registry,
// the store and the menu. Only TypeDescriptor implements it, so the set of
// value kinds stays closed.
type Descriptor interface {
	Kind() Kind
	Type() reflect.Type
	Label() string
	Fallback() any
	// Bind verifies that a codec is available for the descriptor's type.
	Bind(c *Converters) error
	EncodeValue(c *Converters, v any) (string, error)
	DecodeValue(c *Converters, raw string) (any, bool)
	MutateValue(ev Events, current any) (any, bool)

	field(name string, c *Converters) FieldDescriptor
}

// TypeDescriptor declares the fallback, mutate rule and optional codec of one
// option. Values are immutable once constructed.
type TypeDescriptor[T any] struct {
	kind     Kind
	fallback T
	mutate   Mutator[T]
	codec    *Codec[T]
	label    string
	bounds   *IntBounds
	variants []string
	invalid  error
}

// IntBounds describes a bounded integer descriptor.
type IntBounds struct {
	Step int `json:"step"`
	Min  int `json:"min"`
	Max  int `json:"max"`
}

// DescriptorOption customises a descriptor at construction.
type DescriptorOption[T any] func(*TypeDescriptor[T])

// WithMutator replaces the generated mutate rule.
func WithMutator[T any](m Mutator[T]) DescriptorOption[T] {
	return func(d *TypeDescriptor[T]) {
		if m != nil {
			d.mutate = m
		}
	}
}

// WithCodec replaces the codec that would otherwise come from the converter
// registry (or, for enums, the generated name codec).
func WithCodec[T any](codec Codec[T]) DescriptorOption[T] {
	return func(d *TypeDescriptor[T]) {
		if !codec.valid() {
			d.invalid = fmt.Errorf("%w: codec override must provide Encode and Decode", ErrInvalidDescriptor)
			return
		}
		c := codec
		d.codec = &c
	}
}

// WithLabel attaches a human readable label, used by schema output.
func WithLabel[T any](label string) DescriptorOption[T] {
	return func(d *TypeDescriptor[T]) {
		d.label = label
	}
}

func newDescriptor[T any](kind Kind, fallback T, mutate Mutator[T], opts []DescriptorOption[T]) *TypeDescriptor[T] {
	d := &TypeDescriptor[T]{kind: kind, fallback: fallback, mutate: mutate}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Kind implements Descriptor.
func (d *TypeDescriptor[T]) Kind() Kind { return d.kind }

// Type implements Descriptor.
func (d *TypeDescriptor[T]) Type() reflect.Type { return typeOf[T]() }

// Label implements Descriptor.
func (d *TypeDescriptor[T]) Label() string { return d.label }

// Fallback implements Descriptor.
func (d *TypeDescriptor[T]) Fallback() any { return d.fallback }

// FallbackValue returns the typed fallback.
func (d *TypeDescriptor[T]) FallbackValue() T { return d.fallback }

// Bounds returns the integer bounds for KindInt descriptors.
func (d *TypeDescriptor[T]) Bounds() (IntBounds, bool) {
	if d.bounds == nil {
		return IntBounds{}, false
	}
	return *d.bounds, true
}

// Variants returns the declared variant names for KindEnum descriptors.
func (d *TypeDescriptor[T]) Variants() []string {
	return append([]string(nil), d.variants...)
}

// Mutate applies the mutate rule. A descriptor without a rule never changes.
func (d *TypeDescriptor[T]) Mutate(ev Events, current T) (T, bool) {
	if d.mutate == nil {
		return current, false
	}
	return d.mutate(ev, current)
}

// Codec resolves the codec for the descriptor: the override when present,
// otherwise the converter registered for T.
func (d *TypeDescriptor[T]) Codec(c *Converters) (Codec[T], bool) {
	if d.codec != nil {
		return *d.codec, true
	}
	return Lookup[T](c)
}

// Encode converts v to its persisted form.
func (d *TypeDescriptor[T]) Encode(c *Converters, v T) (string, error) {
	codec, ok := d.Codec(c)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingCodec, d.Type())
	}
	return codec.Encode(v), nil
}

// Decode parses raw. ok=false means raw could not be interpreted.
func (d *TypeDescriptor[T]) Decode(c *Converters, raw string) (T, bool) {
	codec, ok := d.Codec(c)
	if !ok {
		var zero T
		return zero, false
	}
	return codec.Decode(raw)
}

// Bind implements Descriptor.
func (d *TypeDescriptor[T]) Bind(c *Converters) error {
	if d.invalid != nil {
		return d.invalid
	}
	if isNil(d.fallback) {
		return ErrNilFallback
	}
	if _, ok := d.Codec(c); !ok {
		return fmt.Errorf("%w: %s", ErrMissingCodec, d.Type())
	}
	return nil
}

// EncodeValue implements Descriptor.
func (d *TypeDescriptor[T]) EncodeValue(c *Converters, v any) (string, error) {
	typed, ok := v.(T)
	if !ok {
		return "", fmt.Errorf("opts: value of type %T is not %s", v, d.Type())
	}
	return d.Encode(c, typed)
}

// DecodeValue implements Descriptor.
func (d *TypeDescriptor[T]) DecodeValue(c *Converters, raw string) (any, bool) {
	v, ok := d.Decode(c, raw)
	if !ok {
		return nil, false
	}
	return v, true
}

// MutateValue implements Descriptor. A current value of the wrong type is
// treated as no-change.
func (d *TypeDescriptor[T]) MutateValue(ev Events, current any) (any, bool) {
	typed, ok := current.(T)
	if !ok {
		return nil, false
	}
	next, changed := d.Mutate(ev, typed)
	if !changed {
		return nil, false
	}
	return next, true
}

func (d *TypeDescriptor[T]) field(name string, c *Converters) FieldDescriptor {
	f := FieldDescriptor{
		Path:     name,
		Type:     d.Type().String(),
		Kind:     d.kind.String(),
		Label:    d.label,
		Bounds:   d.bounds,
		Variants: d.Variants(),
	}
	if encoded, err := d.Encode(c, d.fallback); err == nil {
		f.Fallback = encoded
	}
	return f
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
