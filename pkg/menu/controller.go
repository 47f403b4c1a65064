// Package menu drives a scrolling option editor over a Registry and a Store.
// One call to HandleInput is one tick: move the selection, mutate the
// selected option and commit the result. Render produces the visible window.
package menu

import (
	"context"
	"errors"
	"fmt"

	opts "github.com/goliatone/go-options-menu"
	"github.com/goliatone/go-options-menu/internal/textutil"
	"github.com/goliatone/go-options-menu/pkg/state"
)

// Controller holds the selection state. It is not safe for concurrent use;
// the store it wraps is.
type Controller struct {
	registry *opts.Registry
	store    *state.Store
	cfg      Config
	selected int
}

// New binds registry to store. Every descriptor must have a codec in the
// store's converter registry.
func New(registry *opts.Registry, store *state.Store, cfg Config) (*Controller, error) {
	if registry == nil || registry.Len() == 0 {
		return nil, opts.ErrEmptyRegistry
	}
	if store == nil {
		return nil, errors.New("menu: store is required")
	}
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	for i := 0; i < registry.Len(); i++ {
		entry := registry.At(i)
		if err := entry.Descriptor.Bind(store.Converters()); err != nil {
			return nil, fmt.Errorf("menu: option %q: %w", entry.Name, err)
		}
	}
	return &Controller{registry: registry, store: store, cfg: cfg}, nil
}

// Config returns the effective render configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Selected returns the index of the highlighted option.
func (c *Controller) Selected() int {
	return c.selected
}

// SelectedOption returns the highlighted registry entry.
func (c *Controller) SelectedOption() opts.Entry {
	return c.registry.At(c.selected)
}

// HandleInput applies one tick of edge events. Selection moves first and
// clamps at both ends; then the selected option's mutate rule runs against
// its resolved value and any result is committed. An empty event set is a
// no-op. changed reports whether the selection moved or a value was committed.
func (c *Controller) HandleInput(ctx context.Context, ev opts.Events) (changed bool, err error) {
	if !ev.Any() {
		return false, nil
	}
	last := c.registry.Len() - 1
	before := c.selected
	if ev.SelectUp {
		c.selected = textutil.Clamp(c.selected-1, 0, last)
	}
	if ev.SelectDown {
		c.selected = textutil.Clamp(c.selected+1, 0, last)
	}
	changed = c.selected != before

	entry := c.registry.At(c.selected)
	current := c.store.ResolveValue(entry.Name, entry.Descriptor)
	next, ok := entry.Descriptor.MutateValue(ev, current)
	if !ok {
		return changed, nil
	}
	if err := c.store.CommitValue(ctx, entry.Name, entry.Descriptor, next); err != nil {
		return changed, fmt.Errorf("menu: %w", err)
	}
	return true, nil
}

// Render returns Window lines centered on the selection. Slots outside the
// registry are empty strings. Each option line is a one-column marker ('>'
// when selected), the name left-justified in the registry's name column and
// the value centered in the remaining width. The selected value is shown as
// "< value >".
func (c *Controller) Render() []string {
	lines := make([]string, c.cfg.Window)
	base := c.selected - (c.cfg.Window-1)/2
	for i := range lines {
		lines[i] = c.renderLine(base + i)
	}
	return lines
}

func (c *Controller) renderLine(index int) string {
	if index < 0 || index >= c.registry.Len() {
		return ""
	}
	entry := c.registry.At(index)
	value := c.displayValue(entry)
	marker := " "
	if index == c.selected {
		marker = ">"
		value = "< " + value + " >"
	}
	nameWidth := c.registry.NameWidth()
	return marker + textutil.PadRight(entry.Name, nameWidth) + textutil.Center(value, c.cfg.Width-nameWidth)
}

func (c *Controller) displayValue(entry opts.Entry) string {
	v := c.store.ResolveValue(entry.Name, entry.Descriptor)
	text, err := entry.Descriptor.EncodeValue(c.store.Converters(), v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return text
}

// Close issues the final save. It runs even when ctx is already cancelled so
// a shutdown signal does not discard the session's edits.
func (c *Controller) Close(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return c.store.Save(context.WithoutCancel(ctx))
}
