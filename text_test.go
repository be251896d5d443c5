package fil

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestTextRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"simple", "hello world"},
		{"empty", ""},
		{"multiline", "line one\nline two\n"},
		{"unicode", "日本語テキスト"},
		{"no trailing newline", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := encodeText(&buf, tt.in, codecOptions{}); err != nil {
				t.Fatal(err)
			}
			v, err := decodeText(&buf, codecOptions{})
			if err != nil {
				t.Fatal(err)
			}
			if v != tt.in {
				t.Errorf("round trip = %q, want %q", v, tt.in)
			}
		})
	}
}

func TestTextBytesPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := encodeText(&buf, []byte("raw bytes"), codecOptions{}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "raw bytes" {
		t.Errorf("encode = %q", buf.String())
	}
}

func TestValidateText(t *testing.T) {
	tests := []struct {
		name string
		in   any
		ok   bool
	}{
		{"string", "fine", true},
		{"bytes", []byte("fine"), true},
		{"int", 5, false},
		{"map", NewMap(), false},
		{"list", []any{"a"}, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateText(tt.in)
			if tt.ok && err != nil {
				t.Errorf("validateText = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidPayload) {
				t.Errorf("validateText = %v, want ErrInvalidPayload", err)
			}
		})
	}
}

func TestDecodeTextEmpty(t *testing.T) {
	v, err := decodeText(strings.NewReader(""), codecOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if v != "" {
		t.Errorf("decode(empty) = %q, want empty string", v)
	}
}
