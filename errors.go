// Package fil reads and writes JSON, TOML, YAML, JSON Lines and plain text
// files, choosing the format from the file suffix. A trailing compression
// suffix (.gz, .bz2, .zst) is handled transparently on both sides.
//
// Reading returns generic structured data: mappings decode into *Map, which
// preserves key order, so a file read and written back keeps its shape.
// JSON Lines files decode lazily into a *Records stream instead of a single
// value.
//
//	v, err := fil.Read("config.yaml")
//
//	err := fil.Write(v, "config.json.gz", fil.WithIndent(2))
//
// Writes are atomic by default (temp file then rename), except for JSON
// Lines where a partial file after a failure is considered useful output.
package fil

import "errors"

// Sentinel errors for programmatic handling. Callers use errors.Is; every
// error returned by Read and Write wraps exactly one of these, with the
// format name and underlying cause appended.
var (
	ErrUnknownSuffix     = errors.New("unrecognized file suffix")
	ErrInvalidPayload    = errors.New("payload does not match format")
	ErrMalformed         = errors.New("malformed input")
	ErrUnrepresentable   = errors.New("value not representable in format")
	ErrUnsupportedOption = errors.New("option not supported by format")
	ErrUnavailable       = errors.New("format has no codec bound")
)
