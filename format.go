// Format and compression descriptors, and the static suffix registries.
//
// Both registries are built once at init and never mutated. Formats claim
// disjoint suffix sets, and compression suffixes never collide with format
// suffixes; init panics on a violation since the tables are compiled in.
package fil

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// codecOptions carries the per-call knobs a codec can honor.
type codecOptions struct {
	indent    int
	hasIndent bool
	skipBlank bool
}

// Format describes one serialization format: the suffixes it claims, its
// payload validator, and its codec. A Format with a nil Decode or Encode is
// registered but unavailable; using it fails eagerly with ErrUnavailable.
type Format struct {
	Name        string
	Suffixes    []string
	Safe        bool // atomic write unless overridden
	AllowIndent bool

	Validate func(any) error // nil accepts any payload
	Decode   func(io.Reader, codecOptions) (any, error)
	Encode   func(io.Writer, any, codecOptions) error
}

// Compression describes one compression scheme as a pair of stream
// wrappers, one per direction.
type Compression struct {
	Name     string
	Suffixes []string
	Reader   func(io.Reader) (io.ReadCloser, error)
	Writer   func(io.Writer) (io.WriteCloser, error)
}

var formatList = []*Format{
	{
		Name:        "json",
		Suffixes:    []string{".json"},
		Safe:        true,
		AllowIndent: true,
		Decode:      decodeJSON,
		Encode:      encodeJSON,
	},
	{
		Name:        "toml",
		Suffixes:    []string{".toml"},
		Safe:        true,
		AllowIndent: true,
		Validate:    validateTOML,
		Decode:      decodeTOML,
		Encode:      encodeTOML,
	},
	{
		Name:        "yaml",
		Suffixes:    []string{".yaml", ".yml"},
		Safe:        true,
		AllowIndent: true, // accepted for uniformity; yaml.v2 controls its own layout
		Decode:      decodeYAML,
		Encode:      encodeYAML,
	},
	{
		Name:        "text",
		Suffixes:    []string{".txt"},
		Safe:        true,
		AllowIndent: true,
		Validate:    validateText,
		Decode:      decodeText,
		Encode:      encodeText,
	},
	{
		Name:     "jsonl",
		Suffixes: []string{".jl", ".jsonl", ".jsonlines"},
		Validate: validateJSONL,
		Decode:   decodeJSONL,
		Encode:   encodeJSONL,
	},
}

var compressionList = []*Compression{
	{Name: "gzip", Suffixes: []string{".gz", ".gzip"}, Reader: gzipReader, Writer: gzipWriter},
	{Name: "bzip2", Suffixes: []string{".bz", ".bz2"}, Reader: bzip2Reader, Writer: bzip2Writer},
	{Name: "zstd", Suffixes: []string{".zst", ".zstd"}, Reader: zstdReader, Writer: zstdWriter},
}

var (
	formats      = make(map[string]*Format)
	compressions = make(map[string]*Compression)
)

func init() {
	for _, f := range formatList {
		if len(f.Suffixes) == 0 {
			panic("fil: format " + f.Name + " claims no suffix")
		}
		for _, s := range f.Suffixes {
			if _, dup := formats[s]; dup {
				panic("fil: duplicate format suffix " + s)
			}
			formats[s] = f
		}
	}
	for _, c := range compressionList {
		for _, s := range c.Suffixes {
			if _, dup := compressions[s]; dup {
				panic("fil: duplicate compression suffix " + s)
			}
			if _, dup := formats[s]; dup {
				panic("fil: compression suffix collides with format: " + s)
			}
			compressions[s] = c
		}
	}
}

// FormatFor returns the format registered for a suffix such as ".json".
func FormatFor(suffix string) (*Format, error) {
	f, ok := formats[strings.ToLower(suffix)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSuffix, suffix)
	}
	return f, nil
}

// CompressionFor returns the compression registered for a suffix such as
// ".gz", or nil if the suffix names no compression scheme.
func CompressionFor(suffix string) *Compression {
	return compressions[strings.ToLower(suffix)]
}

// resolve maps a path to its format and optional compression. The final
// suffix is tried as a compression suffix first; if it matches, the format
// suffix is the one before it ("data.jsonl.gz" is gzip-compressed jsonl).
func resolve(path string) (*Format, *Compression, error) {
	ext := filepath.Ext(path)
	var comp *Compression
	if c := CompressionFor(ext); c != nil {
		comp = c
		ext = filepath.Ext(strings.TrimSuffix(path, ext))
	}
	f, err := FormatFor(ext)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownSuffix, path)
	}
	return f, comp, nil
}
