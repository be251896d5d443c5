// Read side of the dispatcher: resolve suffixes, open, unwrap compression,
// delegate to the format's decoder.
package fil

import (
	"fmt"
	"io"
	"os"
)

// Read decodes the file at path according to its suffix.
//
// The result is nil, bool, int64, float64, string, []any or *Map. JSON
// Lines files instead return a *Records stream that the caller
// must exhaust or close. With WithFallback, a missing file yields the
// fallback value instead of an error.
func Read(path string, opts ...Option) (any, error) {
	o := newOptions(opts)

	format, comp, err := resolve(path)
	if err != nil {
		return nil, err
	}
	if err := checkDecodable(format); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && o.hasFallback {
			return o.fallback, nil
		}
		return nil, err
	}

	var src io.Reader = file
	closers := []io.Closer{file}
	if comp != nil {
		dec, err := comp.Reader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, comp.Name, err)
		}
		src = dec
		closers = []io.Closer{dec, file}
	}

	v, err := format.Decode(src, o.codec)
	if err != nil {
		closeAll(closers)
		return nil, err
	}

	// A Records stream owns the handles until it is drained or closed;
	// everything else is fully decoded, so release them now.
	if rec, ok := v.(*Records); ok {
		rec.closers = closers
		return rec, nil
	}
	if err := closeAll(closers); err != nil {
		return nil, err
	}
	return v, nil
}

// checkDecodable fails eagerly for a format registered without a decoder,
// before any file is opened.
func checkDecodable(f *Format) error {
	if f.Decode == nil {
		return fmt.Errorf("%w: %s has no decoder", ErrUnavailable, f.Name)
	}
	return nil
}

func closeAll(closers []io.Closer) error {
	var first error
	for _, c := range closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
