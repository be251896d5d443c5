// Generic value model shared by every format.
//
// Decoders produce values from a closed set: nil, bool, int64, float64,
// string, []any, *Map, plus time.Time for TOML datetimes. Encoders accept
// arbitrary native Go values and normalize them into that set before
// serializing, so callers can pass map[string]any, int, []string and so on
// without ceremony.
package fil

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"
)

// Map is a string-keyed mapping that preserves insertion order. It is the
// mapping type produced by every decoder, so a decode/encode round trip
// keeps the document's key order.
type Map struct {
	keys []string
	vals map[string]any
}

// NewMap returns an empty ordered map.
func NewMap() *Map {
	return &Map{vals: make(map[string]any)}
}

// Set stores v under key. A new key is appended after all existing keys;
// setting an existing key keeps its position.
func (m *Map) Set(key string, v any) {
	if m.vals == nil {
		m.vals = make(map[string]any)
	}
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Delete removes key, preserving the order of the remaining keys.
func (m *Map) Delete(key string) {
	if _, ok := m.vals[key]; !ok {
		return
	}
	delete(m.vals, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of keys.
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// normalize converts an arbitrary Go value into the closed value set.
// Unordered native maps are ordered by sorted key so output is
// deterministic. Values outside the set (funcs, channels, structs) are
// rejected with ErrUnrepresentable.
func normalize(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool, string, int64, float64:
		return t, nil
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case uint:
		return int64(t), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return float64(t), nil
		}
		return int64(t), nil
	case float32:
		return float64(t), nil
	case []byte:
		return string(t), nil
	case time.Time:
		return t, nil
	case *Map:
		out := NewMap()
		for _, k := range t.keys {
			nv, err := normalize(t.vals[k])
			if err != nil {
				return nil, err
			}
			out.Set(k, nv)
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			nv, err := normalize(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	case reflect.Map:
		out := NewMap()
		keys := make([]string, 0, rv.Len())
		byKey := make(map[string]any, rv.Len())
		for _, k := range rv.MapKeys() {
			name, err := keyString(k.Interface())
			if err != nil {
				return nil, err
			}
			keys = append(keys, name)
			byKey[name] = rv.MapIndex(k).Interface()
		}
		sort.Strings(keys)
		for _, k := range keys {
			nv, err := normalize(byKey[k])
			if err != nil {
				return nil, err
			}
			out.Set(k, nv)
		}
		return out, nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return normalize(rv.Elem().Interface())
	}

	return nil, fmt.Errorf("%w: %T", ErrUnrepresentable, v)
}

// keyString renders a scalar mapping key as a string. Composite keys have
// no equivalent in the string-keyed model and are rejected.
func keyString(k any) (string, error) {
	switch t := k.(type) {
	case string:
		return t, nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(t), nil
	case float32, float64:
		return fmt.Sprint(t), nil
	}
	return "", fmt.Errorf("%w: mapping key %T", ErrUnrepresentable, k)
}

// denormalize converts a value tree into plain Go containers
// (map[string]any, []any) for encoders that cannot see *Map. Key order is
// lost; only the TOML encoder uses this, and it orders keys itself.
func denormalize(v any) any {
	switch t := v.(type) {
	case *Map:
		out := make(map[string]any, t.Len())
		for _, k := range t.keys {
			out[k] = denormalize(t.vals[k])
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = denormalize(e)
		}
		return out
	}
	return v
}
