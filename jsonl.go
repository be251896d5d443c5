// JSON Lines codec: one JSON value per line.
//
// Reading is lazy. Decode hands back a *Records stream and the file stays
// open until the stream is exhausted or closed, so line k of a huge file
// costs k lines of work, and a syntax error on line k surfaces only when
// the caller gets there.
package fil

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"iter"
	"reflect"

	json "github.com/goccy/go-json"
)

// Line-oriented scanning mirrors the limits used for record files: start
// small, allow single lines up to 16MB.
const (
	scanBuffer  = 64 * 1024
	maxLineSize = 16 * 1024 * 1024
)

// Records is a forward-only stream of decoded JSON Lines values.
//
// The caller must either consume the stream until Next returns false or
// call Close; until then Records holds the underlying file (and any
// decompressor) open. A Records is not restartable; re-reading means
// calling Read again.
//
//	recs := v.(*fil.Records)
//	defer recs.Close()
//	for recs.Next() {
//	    use(recs.Value())
//	}
//	if err := recs.Err(); err != nil { ... }
type Records struct {
	scanner   *bufio.Scanner
	closers   []io.Closer
	cur       any
	err       error
	line      int
	skipBlank bool
	done      bool
}

func newRecords(r io.Reader, skipBlank bool) *Records {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, scanBuffer), maxLineSize)
	return &Records{scanner: s, skipBlank: skipBlank}
}

// Next advances to the next record. It returns false at end of input or on
// the first error; check Err afterwards to tell the two apart. Reaching
// either state releases the underlying file.
func (r *Records) Next() bool {
	if r.done {
		return false
	}
	for r.scanner.Scan() {
		r.line++
		line := r.scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			if r.skipBlank {
				continue
			}
			r.err = fmt.Errorf("%w: jsonl: blank line %d", ErrMalformed, r.line)
			r.stop()
			return false
		}
		v, err := decodeJSONBytes(line)
		if err != nil {
			r.err = fmt.Errorf("jsonl: line %d: %w", r.line, err)
			r.stop()
			return false
		}
		r.cur = v
		return true
	}
	if err := r.scanner.Err(); err != nil {
		r.err = fmt.Errorf("%w: jsonl: line %d: %w", ErrMalformed, r.line+1, err)
	}
	r.stop()
	return false
}

// Value returns the record produced by the last successful Next.
func (r *Records) Value() any {
	return r.cur
}

// Err returns the error that terminated the stream, if any.
func (r *Records) Err() error {
	return r.err
}

// Close releases the underlying file early. Safe to call at any point and
// more than once; Next returns false afterwards.
func (r *Records) Close() error {
	if r.done {
		return nil
	}
	return r.stop()
}

// All returns a range-over-func iterator over the remaining records. The
// stream closes itself when the loop finishes or breaks early; check Err
// after the loop.
func (r *Records) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		defer r.Close()
		for r.Next() {
			if !yield(r.cur) {
				return
			}
		}
	}
}

func (r *Records) stop() error {
	r.done = true
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	r.closers = nil
	return first
}

func validateJSONL(v any) error {
	switch v.(type) {
	case *Records, iter.Seq[any], func(func(any) bool):
		return nil
	case string, []byte, *Map:
		return fmt.Errorf("%w: JSON Lines data must be iterable and not a mapping or string, got %T", ErrInvalidPayload, v)
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return nil
	}
	return fmt.Errorf("%w: JSON Lines data must be iterable and not a mapping or string, got %T", ErrInvalidPayload, v)
}

func decodeJSONL(r io.Reader, o codecOptions) (any, error) {
	return newRecords(r, o.skipBlank), nil
}

func encodeJSONL(w io.Writer, v any, _ codecOptions) error {
	emit := func(rec any) error {
		n, err := normalize(rec)
		if err != nil {
			return err
		}
		data, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("%w: jsonl: %w", ErrUnrepresentable, err)
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		_, err = io.WriteString(w, "\n")
		return err
	}

	switch t := v.(type) {
	case *Records:
		defer t.Close()
		for t.Next() {
			if err := emit(t.Value()); err != nil {
				return err
			}
		}
		return t.Err()
	case iter.Seq[any]:
		for rec := range t {
			if err := emit(rec); err != nil {
				return err
			}
		}
		return nil
	case func(func(any) bool):
		for rec := range iter.Seq[any](t) {
			if err := emit(rec); err != nil {
				return err
			}
		}
		return nil
	}

	rv := reflect.ValueOf(v)
	for i := 0; i < rv.Len(); i++ {
		if err := emit(rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}
