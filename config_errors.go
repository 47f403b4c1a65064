package opts

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyRegistry      = errors.New("opts: registry must declare at least one option")
	ErrDuplicateOption    = errors.New("opts: duplicate option name")
	ErrMissingCodec       = errors.New("opts: no codec for option type")
	ErrNilFallback        = errors.New("opts: option fallback is nil")
	ErrInvalidDescriptor  = errors.New("opts: invalid descriptor")
	ErrRuleResultMismatch = errors.New("opts: rule result does not match option type")
)

// ConfigError reports a registry construction failure for one option.
type ConfigError struct {
	Option string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "<nil>"
	}
	option := e.Option
	if option == "" {
		option = "<unnamed>"
	}
	if e.Reason == "" {
		return fmt.Sprintf("opts: option %s: %v", option, e.Err)
	}
	return fmt.Sprintf("opts: option %s: %s: %v", option, e.Reason, e.Err)
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func configError(option, reason string, err error) error {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		if cfgErr.Option == "" {
			cfgErr.Option = option
		}
		return cfgErr
	}
	return &ConfigError{Option: option, Reason: reason, Err: err}
}
