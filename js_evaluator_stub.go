//go:build !js_eval

package opts

// NewJSEvaluator is unavailable without the js_eval build tag. It returns nil,
// which RuleMutator replaces with the expr engine.
func NewJSEvaluator(opts ...JSEvaluatorOption) Evaluator {
	_ = applyJSEvaluatorOptions(opts)
	return nil
}

// JSEvaluatorAvailable reports whether the binary was built with the js_eval
// tag.
func JSEvaluatorAvailable() bool {
	return false
}
