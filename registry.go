package opts

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-options-menu/internal/textutil"
)

// Entry binds an option name to its descriptor.
type Entry struct {
	Name       string
	Descriptor Descriptor
}

// Define pairs name with d.
func Define(name string, d Descriptor) Entry {
	return Entry{Name: name, Descriptor: d}
}

// Registry is the fixed, ordered catalog of options for one configuration
// domain. Iteration order is declaration order and defines menu order.
type Registry struct {
	entries    []Entry
	index      map[string]int
	nameWidth  int
	converters *Converters
}

// NewRegistry validates entries against converters and freezes them. It fails
// when the registry is empty, a name is blank or repeated, a fallback is nil,
// or no codec exists for a descriptor's type.
func NewRegistry(converters *Converters, entries ...Entry) (*Registry, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyRegistry
	}
	r := &Registry{
		entries:    make([]Entry, 0, len(entries)),
		index:      make(map[string]int, len(entries)),
		converters: converters.Clone(),
	}
	longest := 0
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, configError(entry.Name, "name", fmt.Errorf("%w: option name must not be empty", ErrInvalidDescriptor))
		}
		if _, exists := r.index[name]; exists {
			return nil, configError(name, "name", ErrDuplicateOption)
		}
		if entry.Descriptor == nil {
			return nil, configError(name, "descriptor", fmt.Errorf("%w: descriptor is nil", ErrInvalidDescriptor))
		}
		if err := entry.Descriptor.Bind(r.converters); err != nil {
			return nil, configError(name, "bind", err)
		}
		r.index[name] = len(r.entries)
		r.entries = append(r.entries, Entry{Name: name, Descriptor: entry.Descriptor})
		longest = max(longest, textutil.Width(name))
	}
	r.nameWidth = textutil.NameColumn(longest)
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error. It suits package level
// registry declarations.
func MustRegistry(converters *Converters, entries ...Entry) *Registry {
	r, err := NewRegistry(converters, entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of options.
func (r *Registry) Len() int {
	return len(r.entries)
}

// At returns the entry at position i.
func (r *Registry) At(i int) Entry {
	return r.entries[i]
}

// Lookup finds an entry by name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	i, ok := r.index[name]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// IndexOf returns the menu position of name, or -1.
func (r *Registry) IndexOf(name string) int {
	if i, ok := r.index[name]; ok {
		return i
	}
	return -1
}

// Names returns the option names in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.entries))
	for i, entry := range r.entries {
		names[i] = entry.Name
	}
	return names
}

// NameWidth is the reserved name column width computed at construction.
func (r *Registry) NameWidth() int {
	return r.nameWidth
}

// Converters returns the converter registry the options were validated
// against.
func (r *Registry) Converters() *Converters {
	return r.converters
}
