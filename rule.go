package opts

import (
	"fmt"
	"math"
	"reflect"
	"time"
)

// RuleOption configures a rule mutator.
type RuleOption func(*ruleConfig)

type ruleConfig struct {
	option string
	args   map[string]any
	logger EvaluatorLogger
}

// WithRuleOption names the option the rule belongs to. The name is exposed to
// the expression as `option` and recorded on errors and log events.
func WithRuleOption(name string) RuleOption {
	return func(cfg *ruleConfig) {
		cfg.option = name
	}
}

// WithRuleArgs exposes static arguments to the expression as `args`.
func WithRuleArgs(args map[string]any) RuleOption {
	return func(cfg *ruleConfig) {
		cfg.args = copyArgs(args)
	}
}

// RuleMutator compiles expression once and returns a Mutator that evaluates it
// whenever an edge fires. The expression sees `value`, `increase`, `decrease`,
// `select_up`, `select_down`, `option`, `now` and `args`. A nil result, an
// evaluation error, or a result that cannot be converted to T is treated as
// no-change; errors are reported through the rule logger.
//
// When evaluator is nil the expr-lang engine is used with DefaultFunctions.
func RuleMutator[T any](evaluator Evaluator, expression string, opts ...RuleOption) (Mutator[T], error) {
	cfg := ruleConfig{logger: noopEvaluatorLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if evaluator == nil {
		evaluator = NewExprEvaluator(ExprWithFunctionRegistry(DefaultFunctions()))
	}
	rule, err := evaluator.Compile(expression)
	if err != nil {
		return nil, wrapEvaluationError(evaluatorEngineName(evaluator), expression, cfg.option, err)
	}
	engine := evaluatorEngineName(evaluator)

	return func(ev Events, current T) (T, bool) {
		if !ev.Any() {
			return current, false
		}
		ctx := RuleContext{
			Option: cfg.option,
			Value:  current,
			Events: ev,
			Args:   cfg.args,
		}.withDefaults()

		start := time.Now()
		result, evalErr := rule.Evaluate(ctx)
		next, changed := current, false
		if evalErr == nil && result != nil {
			var ok bool
			next, ok = convertResult[T](result)
			if ok {
				changed = true
			} else {
				next = current
				evalErr = fmt.Errorf("%w: got %T, want %s", ErrRuleResultMismatch, result, typeOf[T]())
			}
		}
		evalErr = wrapEvaluationError(engine, expression, ctx.optionLabel(), evalErr)
		cfg.logger.LogEvaluation(EvaluatorLogEvent{
			Engine:   engine,
			Expr:     expression,
			Option:   ctx.optionLabel(),
			Changed:  changed,
			Duration: time.Since(start),
			Err:      evalErr,
		})
		return next, changed
	}, nil
}

// convertResult maps an engine result onto T. Engines disagree on numeric
// widths (expr yields int, CEL int64, goja int64 or float64), so numeric
// results are converted when the value is integral and fits.
func convertResult[T any](result any) (T, bool) {
	var zero T
	if typed, ok := result.(T); ok {
		return typed, true
	}
	target := typeOf[T]()
	rv := reflect.ValueOf(result)
	switch target.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := toInt64(result)
		if !ok {
			return zero, false
		}
		out := reflect.New(target).Elem()
		if out.OverflowInt(n) {
			return zero, false
		}
		out.SetInt(n)
		return out.Interface().(T), true
	case reflect.Float32, reflect.Float64:
		f, ok := toFloat64(result)
		if !ok {
			return zero, false
		}
		out := reflect.New(target).Elem()
		out.SetFloat(f)
		return out.Interface().(T), true
	}
	if rv.Type().ConvertibleTo(target) && rv.Kind() == target.Kind() {
		return rv.Convert(target).Interface().(T), true
	}
	return zero, false
}

func toInt(value any) (int, bool) {
	n, ok := toInt64(value)
	if !ok || n > math.MaxInt || n < math.MinInt {
		return 0, false
	}
	return int(n), true
}

func toInt64(value any) (int64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

func toFloat64(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func copyArgs(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch fmt.Sprintf("%T", e) {
	case "*opts.exprEvaluator":
		return "expr"
	case "*opts.celEvaluator":
		return "cel"
	case "*opts.jsEvaluator":
		return "js"
	default:
		return "custom"
	}
}
