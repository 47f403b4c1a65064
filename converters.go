package opts

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"
)

// Converters maps a Go value type to the Codec used to persist it. A registry
// is passed explicitly to the components that need it; there is no process
// wide instance.
type Converters struct {
	mu     sync.RWMutex
	codecs map[reflect.Type]any
}

// NewConverters constructs an empty registry.
func NewConverters() *Converters {
	return &Converters{codecs: make(map[reflect.Type]any)}
}

// DefaultConverters returns a registry preloaded with codecs for bool
// ("true"/"false"), int (decimal), string (identity) and float64.
func DefaultConverters() *Converters {
	c := NewConverters()
	_ = Register(c, BoolCodec())
	_ = Register(c, IntCodec())
	_ = Register(c, StringCodec())
	_ = Register(c, Codec[float64]{
		Encode: func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) },
		Decode: func(s string) (float64, bool) {
			v, err := strconv.ParseFloat(s, 64)
			return v, err == nil
		},
	})
	return c
}

// Register stores codec for T, replacing any previous codec for the type.
func Register[T any](c *Converters, codec Codec[T]) error {
	if c == nil {
		return fmt.Errorf("opts: converter registry is nil")
	}
	if !codec.valid() {
		return fmt.Errorf("opts: codec for %s must provide Encode and Decode", typeOf[T]())
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.codecs == nil {
		c.codecs = make(map[reflect.Type]any)
	}
	c.codecs[typeOf[T]()] = codec
	return nil
}

// Lookup returns the codec registered for T.
func Lookup[T any](c *Converters) (Codec[T], bool) {
	if c == nil {
		return Codec[T]{}, false
	}
	c.mu.RLock()
	raw, ok := c.codecs[typeOf[T]()]
	c.mu.RUnlock()
	if !ok {
		return Codec[T]{}, false
	}
	codec, ok := raw.(Codec[T])
	return codec, ok
}

// Has reports whether a codec exists for t.
func (c *Converters) Has(t reflect.Type) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.codecs[t]
	return ok
}

// Clone returns a shallow copy of the registry.
func (c *Converters) Clone() *Converters {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	clone := &Converters{codecs: make(map[reflect.Type]any, len(c.codecs))}
	for t, codec := range c.codecs {
		clone.codecs[t] = codec
	}
	return clone
}

// BoolCodec encodes booleans as "true" and "false".
func BoolCodec() Codec[bool] {
	return Codec[bool]{
		Encode: strconv.FormatBool,
		Decode: func(s string) (bool, bool) {
			switch s {
			case "true":
				return true, true
			case "false":
				return false, true
			}
			return false, false
		},
	}
}

// IntCodec encodes integers in decimal.
func IntCodec() Codec[int] {
	return Codec[int]{
		Encode: strconv.Itoa,
		Decode: func(s string) (int, bool) {
			v, err := strconv.Atoi(s)
			return v, err == nil
		},
	}
}

// StringCodec is the identity codec.
func StringCodec() Codec[string] {
	return Codec[string]{
		Encode: func(s string) string { return s },
		Decode: func(s string) (string, bool) { return s, true },
	}
}

// EnumCodec builds a name based codec over an ordered variant list. Encode
// returns the variant's name; Decode scans the variants in order and reports
// ok=false when no name matches.
func EnumCodec[E comparable](variants []E, name func(E) string) Codec[E] {
	list := append([]E(nil), variants...)
	return Codec[E]{
		Encode: name,
		Decode: func(s string) (E, bool) {
			for _, v := range list {
				if name(v) == s {
					return v, true
				}
			}
			var zero E
			return zero, false
		},
	}
}
