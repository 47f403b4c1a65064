package opts

import (
	"fmt"

	"github.com/goliatone/go-options-menu/internal/textutil"
)

// IntType declares a bounded integer option. An increase event moves the value
// by +step and a decrease event by -step, clamped to [min, max]; min and max
// may be given in either order. The fallback is returned as-is until the first
// mutation, even when it lies outside the range.
func IntType(step, min, max, fallback int, opts ...DescriptorOption[int]) *TypeDescriptor[int] {
	bounds := IntBounds{Step: step, Min: min, Max: max}
	if bounds.Min > bounds.Max {
		bounds.Min, bounds.Max = bounds.Max, bounds.Min
	}
	d := newDescriptor(KindInt, fallback, func(ev Events, current int) (int, bool) {
		switch {
		case ev.Increase:
			return textutil.Clamp(textutil.AddSat(current, step), min, max), true
		case ev.Decrease:
			return textutil.Clamp(textutil.SubSat(current, step), min, max), true
		default:
			return current, false
		}
	}, opts)
	d.bounds = &bounds
	return d
}

// BoolType declares a flag option. Both the increase and the decrease control
// flip the value.
func BoolType(fallback bool, opts ...DescriptorOption[bool]) *TypeDescriptor[bool] {
	return newDescriptor(KindBool, fallback, func(ev Events, current bool) (bool, bool) {
		if ev.Increase || ev.Decrease {
			return !current, true
		}
		return current, false
	}, opts)
}

// Variant is satisfied by enum-like types: comparable values whose String
// method returns the declared variant name.
type Variant interface {
	comparable
	fmt.Stringer
}

// EnumType declares an option over a fixed, ordered list of variants. Increase
// advances to the next variant and decrease retreats, both wrapping at the
// ends. The generated codec persists variant names. A value that is not in the
// list moves to the first (increase) or last (decrease) variant.
func EnumType[E Variant](variants []E, fallback E, opts ...DescriptorOption[E]) *TypeDescriptor[E] {
	list := append([]E(nil), variants...)
	names := make([]string, len(list))
	for i, v := range list {
		names[i] = v.String()
	}

	mutate := func(ev Events, current E) (E, bool) {
		if len(list) == 0 || (!ev.Increase && !ev.Decrease) {
			return current, false
		}
		idx := -1
		for i, v := range list {
			if v == current {
				idx = i
				break
			}
		}
		if idx < 0 {
			if ev.Increase {
				return list[0], true
			}
			return list[len(list)-1], true
		}
		if ev.Increase {
			return list[textutil.Wrap(idx, 1, len(list))], true
		}
		return list[textutil.Wrap(idx, -1, len(list))], true
	}

	generated := EnumCodec(list, func(v E) string { return v.String() })
	d := &TypeDescriptor[E]{kind: KindEnum, fallback: fallback, mutate: mutate, codec: &generated}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	d.variants = names
	if len(list) == 0 {
		d.invalid = fmt.Errorf("%w: enum %T declares no variants", ErrInvalidDescriptor, fallback)
	}
	return d
}

// CustomType declares an option of any type with a caller supplied mutate
// rule. The codec comes from the converter registry unless WithCodec is given.
func CustomType[T any](fallback T, mutate Mutator[T], opts ...DescriptorOption[T]) *TypeDescriptor[T] {
	d := newDescriptor(KindCustom, fallback, mutate, opts)
	if d.mutate == nil {
		d.invalid = fmt.Errorf("%w: custom option %T needs a mutate rule", ErrInvalidDescriptor, fallback)
	}
	return d
}
