// JSON codec.
//
// Decoding walks the token stream instead of unmarshaling into a native
// map, so object member order survives into *Map. Numbers become int64
// when the literal is integral and float64 otherwise, which keeps values
// comparable across formats after a round trip.
package fil

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
)

func decodeJSON(r io.Reader, _ codecOptions) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeTokens(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: json: %w", ErrMalformed, err)
	}
	// A document is one value; trailing tokens mean concatenated JSON,
	// which belongs in a .jsonl file.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: json: trailing data after document", ErrMalformed)
	}
	return v, nil
}

func encodeJSON(w io.Writer, v any, o codecOptions) error {
	n, err := normalize(v)
	if err != nil {
		return err
	}
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: json: %w", ErrUnrepresentable, err)
	}
	if o.hasIndent && o.indent > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", strings.Repeat(" ", o.indent)); err != nil {
			return fmt.Errorf("%w: json: %w", ErrMalformed, err)
		}
		data = buf.Bytes()
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// decodeTokens consumes exactly one JSON value from the decoder.
func decodeTokens(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFrom(dec, tok)
}

func decodeFrom(dec *json.Decoder, tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %v, want string", keyTok)
				}
				v, err := decodeTokens(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, v)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return m, nil
		case '[':
			out := []any{}
			for dec.More() {
				v, err := decodeTokens(dec)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return out, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case json.Number:
		return numberValue(t)
	default:
		// string, bool or nil
		return t, nil
	}
}

// numberValue picks int64 for integral literals, float64 for the rest.
func numberValue(n json.Number) (any, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
	}
	return n.Float64()
}

// MarshalJSON writes the map's members in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the map's contents with the decoded object.
func (m *Map) UnmarshalJSON(data []byte) error {
	v, err := decodeJSONBytes(data)
	if err != nil {
		return err
	}
	obj, ok := v.(*Map)
	if !ok {
		return fmt.Errorf("%w: json: %T is not an object", ErrMalformed, v)
	}
	*m = *obj
	return nil
}

func decodeJSONBytes(data []byte) (any, error) {
	return decodeJSON(bytes.NewReader(data), codecOptions{})
}
