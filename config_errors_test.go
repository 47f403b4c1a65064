package opts

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigErrorUnwrapsSentinel(t *testing.T) {
	err := configError("LIKE", "codec", ErrMissingCodec)

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %T", err)
	}
	if cfgErr.Option != "LIKE" {
		t.Fatalf("expected option LIKE, got %q", cfgErr.Option)
	}
	if !errors.Is(err, ErrMissingCodec) {
		t.Fatalf("expected ErrMissingCodec in chain")
	}
	if !strings.Contains(err.Error(), "LIKE") {
		t.Fatalf("message should name the option: %q", err.Error())
	}
}

func TestConfigErrorKeepsExistingOption(t *testing.T) {
	existing := &ConfigError{Err: ErrNilFallback}
	err := configError("B", "fallback", existing)
	if err != existing {
		t.Fatalf("expected existing error to be returned")
	}
	if existing.Option != "B" {
		t.Fatalf("expected option to be filled, got %q", existing.Option)
	}
}
