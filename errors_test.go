package fil

import (
	"errors"
	"testing"
)

func TestErrors(t *testing.T) {
	// Verify all errors are defined and distinct
	errs := []error{
		ErrUnknownSuffix,
		ErrInvalidPayload,
		ErrMalformed,
		ErrUnrepresentable,
		ErrUnsupportedOption,
		ErrUnavailable,
	}

	for i, err := range errs {
		if err == nil {
			t.Errorf("error at index %d is nil", i)
		}
	}

	seen := make(map[string]int)
	for i, err := range errs {
		msg := err.Error()
		if prev, ok := seen[msg]; ok {
			t.Errorf("error at index %d has same message as index %d: %q", i, prev, msg)
		}
		seen[msg] = i
	}
}

func TestErrorsWrapOneSentinel(t *testing.T) {
	// Every failure from the public surface matches exactly one
	// sentinel, so errors.Is dispatch stays unambiguous.
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unknown suffix", mustErr(t, func() error { _, e := Read("x.xml"); return e }), ErrUnknownSuffix},
		{"invalid payload", validateTOML([]any{1}), ErrInvalidPayload},
		{"unsupported option", Write([]any{1}, "x.jl", WithIndent(2)), ErrUnsupportedOption},
	}

	sentinels := []error{
		ErrUnknownSuffix,
		ErrInvalidPayload,
		ErrMalformed,
		ErrUnrepresentable,
		ErrUnsupportedOption,
		ErrUnavailable,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := 0
			for _, s := range sentinels {
				if errors.Is(tt.err, s) {
					matches++
				}
			}
			if matches != 1 || !errors.Is(tt.err, tt.want) {
				t.Errorf("err %v matches %d sentinels, want exactly %v", tt.err, matches, tt.want)
			}
		})
	}
}

func mustErr(t *testing.T, f func() error) error {
	t.Helper()
	err := f()
	if err == nil {
		t.Fatal("expected an error")
	}
	return err
}
