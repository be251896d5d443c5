// Write side of the dispatcher.
//
// The payload is validated before the destination is touched, so a shape
// error never leaves a file behind. Atomic writes go through renameio's
// temp-file-then-rename; the destination either gets the complete output
// or keeps its previous contents. Direct writes (the JSON Lines default)
// may leave a partial file on failure, which is intentional: a half
// written line file still tells you how far the producer got.
package fil

import (
	"fmt"
	"io"
	"os"

	"github.com/google/renameio/v2"
)

// Write encodes data to the file at path according to its suffix.
func Write(data any, path string, opts ...Option) error {
	o := newOptions(opts)

	format, comp, err := resolve(path)
	if err != nil {
		return err
	}
	if err := checkEncodable(format); err != nil {
		return err
	}
	if o.codec.hasIndent && !format.AllowIndent {
		return fmt.Errorf("%w: indent is not allowed for %s", ErrUnsupportedOption, format.Name)
	}
	if format.Validate != nil {
		if err := format.Validate(data); err != nil {
			return err
		}
	}

	atomic := format.Safe
	if o.hasSafe {
		atomic = o.safe
	}
	if atomic {
		return writeAtomic(data, path, format, comp, o.codec)
	}
	return writeDirect(data, path, format, comp, o.codec)
}

func checkEncodable(f *Format) error {
	if f.Encode == nil {
		return fmt.Errorf("%w: %s has no encoder", ErrUnavailable, f.Name)
	}
	return nil
}

func writeAtomic(data any, path string, format *Format, comp *Compression, co codecOptions) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return err
	}
	// Cleanup removes the temp file on any failure path and is a no-op
	// once the rename has happened.
	defer pending.Cleanup()

	if err := encodeTo(pending, data, format, comp, co); err != nil {
		return err
	}
	return pending.CloseAtomicallyReplace()
}

func writeDirect(data any, path string, format *Format, comp *Compression, co codecOptions) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodeTo(file, data, format, comp, co); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// encodeTo runs the codec against dst, inserting the compression writer
// when the path asked for one. The compressor must be closed before the
// caller commits dst, or the trailer never gets flushed.
func encodeTo(dst io.Writer, data any, format *Format, comp *Compression, co codecOptions) error {
	out := dst
	var cw io.WriteCloser
	if comp != nil {
		var err error
		cw, err = comp.Writer(dst)
		if err != nil {
			return err
		}
		out = cw
	}
	if err := format.Encode(out, data, co); err != nil {
		if cw != nil {
			cw.Close()
		}
		return err
	}
	if cw != nil {
		return cw.Close()
	}
	return nil
}
