package fil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadFallback(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	v, err := Read(missing, WithFallback("none"))
	if err != nil {
		t.Fatalf("Read with fallback: %v", err)
	}
	if v != "none" {
		t.Errorf("Read = %v, want none", v)
	}
}

func TestReadMissingWithoutFallback(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	_, err := Read(missing)
	if !os.IsNotExist(err) {
		t.Errorf("Read = %v, want not-exist error", err)
	}
}

func TestReadFallbackOnlyCoversMissingFiles(t *testing.T) {
	// A present-but-broken file must still fail, fallback or not.
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{oops"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Read(path, WithFallback("none"))
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Read = %v, want ErrMalformed", err)
	}
}

func TestReadUnknownSuffix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xml")
	os.WriteFile(path, []byte("<x/>"), 0o644)

	_, err := Read(path)
	if !errors.Is(err, ErrUnknownSuffix) {
		t.Errorf("Read = %v, want ErrUnknownSuffix", err)
	}
}

func TestReadCorruptCompression(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json.gz")
	os.WriteFile(path, []byte("definitely not gzip"), 0o644)

	_, err := Read(path)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Read = %v, want ErrMalformed", err)
	}
}

func TestReadUnavailableFormat(t *testing.T) {
	f := &Format{Name: "stub", Suffixes: []string{".stub"}}
	if f.Decode != nil {
		t.Fatal("stub should have no decoder")
	}
	// The registry is static, so exercise the dispatch check directly:
	// an unbound format fails eagerly, before the file is opened.
	if err := checkDecodable(f); !errors.Is(err, ErrUnavailable) {
		t.Errorf("checkDecodable = %v, want ErrUnavailable", err)
	}
}

func TestReadJSONLinesLazy(t *testing.T) {
	// The decode error on a later line must not prevent reading earlier
	// lines through Read's public surface.
	path := filepath.Join(t.TempDir(), "data.jsonl")
	content := "{\"ok\": 1}\n{\"ok\": 2}\nbroken line\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	recs := v.(*Records)
	defer recs.Close()

	var n int
	for recs.Next() {
		n++
	}
	if n != 2 {
		t.Errorf("consumed %d records, want 2", n)
	}
	if err := recs.Err(); !errors.Is(err, ErrMalformed) {
		t.Errorf("Err() = %v, want ErrMalformed", err)
	}
}

func TestReadJSONLinesSkipBlank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.jsonl")
	os.WriteFile(path, []byte("1\n\n2\n"), 0o644)

	v, err := Read(path, WithSkipBlank())
	if err != nil {
		t.Fatal(err)
	}
	recs := v.(*Records)
	var got []any
	for recs.Next() {
		got = append(got, recs.Value())
	}
	if err := recs.Err(); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("records = %v, want two", got)
	}
}

func TestReadTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	os.WriteFile(path, []byte("hello\n"), 0o644)

	v, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if v != "hello\n" {
		t.Errorf("Read = %q, want hello\\n", v)
	}
}
