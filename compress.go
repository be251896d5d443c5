// Compression stream adaptors.
//
// Each scheme is a pair of wrappers: one turns a raw reader into a
// decompressing reader, the other turns a raw writer into a compressing
// writer. Codecs never know whether they are talking to a compressed
// stream, and JSON Lines keeps its streaming guarantee because every
// wrapper here works incrementally.
//
// gzip and zstd come from klauspost/compress. bzip2 needs dsnet/compress
// because the standard library only decompresses it.
package fil

import (
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

func gzipReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func gzipWriter(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriter(w), nil
}

func bzip2Reader(r io.Reader) (io.ReadCloser, error) {
	return bzip2.NewReader(r, nil)
}

func bzip2Writer(w io.Writer) (io.WriteCloser, error) {
	return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
}

func zstdReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}

func zstdWriter(w io.Writer) (io.WriteCloser, error) {
	// SpeedFastest: files written here are small documents; encode
	// latency matters more than the marginal ratio gain.
	return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
}
