package fil

import (
	"path/filepath"
	"strconv"
	"testing"
)

func benchPayload() *Map {
	m := NewMap()
	for i := 0; i < 50; i++ {
		m.Set("key"+strconv.Itoa(i), int64(i))
	}
	return m
}

func BenchmarkWriteJSON(b *testing.B) {
	path := filepath.Join(b.TempDir(), "bench.json")
	payload := benchPayload()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Write(payload, path)
	}
}

func BenchmarkReadJSON(b *testing.B) {
	path := filepath.Join(b.TempDir(), "bench.json")
	Write(benchPayload(), path)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Read(path)
	}
}

func BenchmarkWriteJSONGzip(b *testing.B) {
	path := filepath.Join(b.TempDir(), "bench.json.gz")
	payload := benchPayload()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Write(payload, path)
	}
}

func BenchmarkReadJSONLinesFirstRecord(b *testing.B) {
	// Laziness check in benchmark form: pulling one record out of a
	// large file should not scale with file size.
	path := filepath.Join(b.TempDir(), "bench.jsonl")
	records := make([]any, 10000)
	for i := range records {
		records[i] = int64(i)
	}
	Write(records, path)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v, _ := Read(path)
		recs := v.(*Records)
		recs.Next()
		recs.Close()
	}
}
