// TOML codec.
//
// TOML documents are mappings by definition, so the validator rejects
// anything that does not normalize to *Map before any file is touched.
// Decoding restores document key order from toml.MetaData; encoding goes
// through plain maps and lets the library order keys, since TOML is
// order-insensitive.
package fil

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

func validateTOML(v any) error {
	n, err := normalize(v)
	if err != nil {
		return err
	}
	if _, ok := n.(*Map); !ok {
		return fmt.Errorf("%w: toml requires a mapping at top level, got %T", ErrInvalidPayload, v)
	}
	return nil
}

func decodeTOML(r io.Reader, _ codecOptions) (any, error) {
	var raw map[string]any
	md, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, fmt.Errorf("%w: toml: %w", ErrMalformed, err)
	}
	return orderTOML(raw, md.Keys()), nil
}

func encodeTOML(w io.Writer, v any, o codecOptions) error {
	n, err := normalize(v)
	if err != nil {
		return err
	}
	m, ok := n.(*Map)
	if !ok {
		return fmt.Errorf("%w: toml requires a mapping at top level, got %T", ErrInvalidPayload, v)
	}
	enc := toml.NewEncoder(w)
	if o.hasIndent {
		enc.Indent = strings.Repeat(" ", o.indent)
	}
	if err := enc.Encode(denormalize(m)); err != nil {
		return fmt.Errorf("%w: toml: %w", ErrUnrepresentable, err)
	}
	return nil
}

// orderTOML rebuilds the decoded tree as ordered maps. MetaData.Keys lists
// every defined key path in document order; the first appearance of each
// path fixes the position of that key within its parent.
func orderTOML(raw map[string]any, keys []toml.Key) *Map {
	const sep = "\x00"
	order := make(map[string][]string)
	seen := make(map[string]bool)
	for _, k := range keys {
		path := []string(k)
		for i := range path {
			prefix := strings.Join(path[:i], sep)
			full := strings.Join(path[:i+1], sep)
			if !seen[full] {
				seen[full] = true
				order[prefix] = append(order[prefix], path[i])
			}
		}
	}

	var build func(prefix string, m map[string]any) *Map
	var convert func(prefix string, v any) any

	convert = func(prefix string, v any) any {
		switch t := v.(type) {
		case map[string]any:
			return build(prefix, t)
		case []map[string]any:
			// Array of tables: every element shares the path, so the
			// recorded order covers the union of their keys.
			out := make([]any, len(t))
			for i, e := range t {
				out[i] = build(prefix, e)
			}
			return out
		case []any:
			out := make([]any, len(t))
			for i, e := range t {
				out[i] = convert(prefix, e)
			}
			return out
		}
		return v
	}

	build = func(prefix string, m map[string]any) *Map {
		out := NewMap()
		for _, name := range order[prefix] {
			v, ok := m[name]
			if !ok {
				continue
			}
			child := name
			if prefix != "" {
				child = prefix + sep + name
			}
			out.Set(name, convert(child, v))
		}
		// Keys the metadata did not record (e.g. inside inline values)
		// still have to survive; sorted order is the fallback.
		if out.Len() < len(m) {
			rest := make([]string, 0, len(m)-out.Len())
			for name := range m {
				if _, ok := out.Get(name); !ok {
					rest = append(rest, name)
				}
			}
			sort.Strings(rest)
			for _, name := range rest {
				child := name
				if prefix != "" {
					child = prefix + sep + name
				}
				out.Set(name, convert(child, m[name]))
			}
		}
		return out
	}

	return build("", raw)
}
