// YAML codec, restricted to the safe subset.
//
// gopkg.in/yaml.v2 never constructs arbitrary types on load, and encoding
// goes through normalize first, so neither direction can smuggle native
// objects. Mappings decode through yaml.MapSlice to preserve key order.
package fil

import (
	"bytes"
	"fmt"
	"io"

	yaml "gopkg.in/yaml.v2"
)

// yamlNode decodes any YAML value while keeping mapping order: it tries a
// MapSlice, then a sequence of nodes, then a plain scalar. Once the decoder
// sees a MapSlice target, nested generic mappings decode as MapSlice too.
type yamlNode struct {
	v any
}

func (n *yamlNode) UnmarshalYAML(unmarshal func(any) error) error {
	var ms yaml.MapSlice
	if err := unmarshal(&ms); err == nil {
		v, err := fromMapSlice(ms)
		if err != nil {
			return err
		}
		n.v = v
		return nil
	}

	var seq []yamlNode
	if err := unmarshal(&seq); err == nil {
		out := make([]any, len(seq))
		for i, e := range seq {
			out[i] = e.v
		}
		n.v = out
		return nil
	}

	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	sv, err := fromYAML(v)
	if err != nil {
		return err
	}
	n.v = sv
	return nil
}

func decodeYAML(r io.Reader, _ codecOptions) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		// YAML defines the empty document as null.
		return nil, nil
	}
	var n yamlNode
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("%w: yaml: %w", ErrMalformed, err)
	}
	return n.v, nil
}

func encodeYAML(w io.Writer, v any, _ codecOptions) error {
	n, err := normalize(v)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(toMapSlice(n)); err != nil {
		enc.Close()
		return fmt.Errorf("%w: yaml: %w", ErrUnrepresentable, err)
	}
	return enc.Close()
}

// fromMapSlice converts an ordered yaml mapping into a *Map.
func fromMapSlice(ms yaml.MapSlice) (*Map, error) {
	m := NewMap()
	for _, item := range ms {
		key, err := keyString(item.Key)
		if err != nil {
			return nil, fmt.Errorf("%w: yaml: %w", ErrMalformed, err)
		}
		v, err := fromYAML(item.Value)
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
	}
	return m, nil
}

// fromYAML converts a decoded yaml value into the closed value set.
func fromYAML(v any) (any, error) {
	switch t := v.(type) {
	case nil, bool, string, int64, float64:
		return t, nil
	case int:
		return int64(t), nil
	case uint64:
		return normalize(t)
	case yaml.MapSlice:
		return fromMapSlice(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			ev, err := fromYAML(e)
			if err != nil {
				return nil, err
			}
			out[i] = ev
		}
		return out, nil
	case map[any]any:
		// Only reachable for mappings the node walker never targeted;
		// normalize orders them by sorted key.
		return normalize(t)
	}
	return normalize(v)
}

// toMapSlice converts a value tree into what yaml.v2 encodes with ordered
// keys. Input is already normalized, so only *Map and []any need walking.
func toMapSlice(v any) any {
	switch t := v.(type) {
	case *Map:
		ms := make(yaml.MapSlice, 0, t.Len())
		for _, k := range t.keys {
			ms = append(ms, yaml.MapItem{Key: k, Value: toMapSlice(t.vals[k])})
		}
		return ms
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = toMapSlice(e)
		}
		return out
	}
	return v
}
