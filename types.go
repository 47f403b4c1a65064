package opts

import (
	"reflect"
	"time"
)

// Events is the set of edge events observed during one tick. Each field is true
// only on the tick its logical button transitioned to pressed.
type Events struct {
	SelectUp   bool
	SelectDown bool
	Increase   bool
	Decrease   bool
}

// Any reports whether at least one edge fired.
func (e Events) Any() bool {
	return e.SelectUp || e.SelectDown || e.Increase || e.Decrease
}

// Kind identifies the closed set of value kinds a descriptor can carry.
type Kind int

const (
	// KindCustom covers caller supplied types with their own mutate rule.
	KindCustom Kind = iota
	// KindBool is a flag toggled by either value control.
	KindBool
	// KindInt is a bounded integer stepped by the value controls.
	KindInt
	// KindEnum cycles through a fixed, ordered list of variants.
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindEnum:
		return "enum"
	default:
		return "custom"
	}
}

// Codec converts a typed value to and from its persisted string form. Decode
// reports ok=false when the input cannot be interpreted; it never panics.
type Codec[T any] struct {
	Encode func(T) string
	Decode func(string) (T, bool)
}

func (c Codec[T]) valid() bool {
	return c.Encode != nil && c.Decode != nil
}

// Mutator computes the next value of an option from the tick's edge events.
// It returns changed=false (the no-change sentinel) when the value should stay
// as it is. Mutators must be pure: the same events and current value always
// produce the same result.
type Mutator[T any] func(ev Events, current T) (next T, changed bool)

// SchemaFormat identifies the representation a schema document encodes.
type SchemaFormat string

const (
	// SchemaFormatDescriptors represents the flattened field descriptors.
	SchemaFormatDescriptors SchemaFormat = "descriptors"
	// SchemaFormatOpenAPI represents an OpenAPI document describing the
	// persisted options object.
	SchemaFormatOpenAPI SchemaFormat = "openapi"
)

// SchemaDocument encapsulates a generated schema output alongside its format
// identifier. Document is always JSON-serialisable.
type SchemaDocument struct {
	Format   SchemaFormat `json:"format"`
	Document any          `json:"document"`
}

// RuleContext carries inputs needed when evaluating a mutate rule expression.
type RuleContext struct {
	Option   string
	Value    any
	Events   Events
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

func (ctx RuleContext) withDefaultNow() RuleContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) withDefaults() RuleContext {
	return ctx.withDefaultNow().withDefaultMaps()
}

func (ctx RuleContext) optionLabel() string {
	if ctx.Option != "" {
		return ctx.Option
	}
	return "unknown"
}

// bindings returns the variables every engine exposes to rule expressions.
func (ctx RuleContext) bindings() map[string]any {
	return map[string]any{
		"value":       ctx.Value,
		"option":      ctx.Option,
		"increase":    ctx.Events.Increase,
		"decrease":    ctx.Events.Decrease,
		"select_up":   ctx.Events.SelectUp,
		"select_down": ctx.Events.SelectDown,
		"now":         ctx.timestamp(),
		"args":        ctx.Args,
		"metadata":    ctx.Metadata,
	}
}

// Evaluator executes expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
