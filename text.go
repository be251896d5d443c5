// Plain text: the file's bytes as one string, no parsing either way.
package fil

import (
	"fmt"
	"io"
)

func validateText(v any) error {
	if _, ok := v.(string); !ok {
		if _, ok := v.([]byte); ok {
			return nil
		}
		return fmt.Errorf("%w: text requires a string, got %T", ErrInvalidPayload, v)
	}
	return nil
}

func decodeText(r io.Reader, _ codecOptions) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: text: %w", ErrMalformed, err)
	}
	return string(data), nil
}

func encodeText(w io.Writer, v any, _ codecOptions) error {
	var data []byte
	switch t := v.(type) {
	case string:
		data = []byte(t)
	case []byte:
		data = t
	default:
		return fmt.Errorf("%w: text requires a string, got %T", ErrInvalidPayload, v)
	}
	_, err := w.Write(data)
	return err
}
