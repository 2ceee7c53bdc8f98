// internal/input/open.go
package input

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies a stream codec.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
	LZ4
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	}
	return "none"
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// CompressionFromName maps a file or object name suffix to a codec.
func CompressionFromName(name string) Compression {
	switch {
	case strings.HasSuffix(name, ".gz"):
		return Gzip
	case strings.HasSuffix(name, ".zst"):
		return Zstd
	case strings.HasSuffix(name, ".lz4"):
		return LZ4
	}
	return None
}

// sniff detects the codec by magic number, falling back to the name suffix.
func sniff(br *bufio.Reader, name string) Compression {
	sig, _ := br.Peek(4)
	switch {
	case bytes.HasPrefix(sig, gzipMagic):
		return Gzip
	case bytes.HasPrefix(sig, zstdMagic):
		return Zstd
	case bytes.HasPrefix(sig, lz4Magic):
		return LZ4
	}
	if len(sig) == 0 {
		// Empty stream: nothing to decode.
		return None
	}
	return CompressionFromName(name)
}

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// decode wraps raw with the decoder its content (or name) calls for.
// Closing the result closes raw.
func decode(raw io.ReadCloser, name string) (io.ReadCloser, error) {
	br := bufio.NewReaderSize(raw, 64<<10)
	switch sniff(br, name) {
	case Gzip:
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = raw.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, raw}}, nil
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			_ = raw.Close()
			return nil, err
		}
		zc := zr.IOReadCloser()
		return &multiReadCloser{Reader: zc, closers: []io.Closer{zc, raw}}, nil
	case LZ4:
		return &multiReadCloser{Reader: lz4.NewReader(br), closers: []io.Closer{raw}}, nil
	}
	return &multiReadCloser{Reader: br, closers: []io.Closer{raw}}, nil
}
