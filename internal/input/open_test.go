package input

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plain = "uniprotkb:A\tuniprotkb:B\tscore1\nA\tB\tscore1\n"

func compress(t *testing.T, c Compression, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	var w io.WriteCloser
	switch c {
	case Gzip:
		w = gzip.NewWriter(&buf)
	case Zstd:
		zw, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		w = zw
	case LZ4:
		w = lz4.NewWriter(&buf)
	default:
		return []byte(data)
	}
	_, err := io.WriteString(w, data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func readAll(t *testing.T, s interface {
	Open(context.Context) (io.ReadCloser, error)
}) string {
	t.Helper()
	rc, err := s.Open(context.Background())
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}

func TestFileSourceDecodes(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		c    Compression
	}{
		{"plain.mitab", None},
		{"in.mitab.gz", Gzip},
		{"in.mitab.zst", Zstd},
		{"in.mitab.lz4", LZ4},
		// magic number wins over a missing or wrong suffix
		{"gzip-nosuffix.mitab", Gzip},
		{"zstd-nosuffix.mitab", Zstd},
		{"lz4-nosuffix.txt", LZ4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := filepath.Join(dir, c.name)
			require.NoError(t, os.WriteFile(p, compress(t, c.c, plain), 0o644))
			assert.Equal(t, plain, readAll(t, FileSource{Path: p}))
		})
	}
}

func TestEmptyCompressedName(t *testing.T) {
	p := filepath.Join(t.TempDir(), "empty.mitab.gz")
	require.NoError(t, os.WriteFile(p, nil, 0o644))
	assert.Equal(t, "", readAll(t, FileSource{Path: p}))
}

func TestCorruptGzipHeader(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.mitab.gz")
	require.NoError(t, os.WriteFile(p, []byte("not gzip at all\n"), 0o644))
	_, err := FileSource{Path: p}.Open(context.Background())
	require.Error(t, err)
}

func TestReaderSource(t *testing.T) {
	s := ReaderSource{Label: "<stdin>", R: bytes.NewReader(compress(t, Gzip, plain))}
	assert.Equal(t, "<stdin>", s.Name())
	assert.Equal(t, plain, readAll(t, s))
}

func TestCompressionFromName(t *testing.T) {
	assert.Equal(t, Gzip, CompressionFromName("a.mitab.gz"))
	assert.Equal(t, Zstd, CompressionFromName("a.zst"))
	assert.Equal(t, LZ4, CompressionFromName("s3/key.lz4"))
	assert.Equal(t, None, CompressionFromName("a.mitab"))
	assert.Equal(t, "gzip", Gzip.String())
	assert.Equal(t, "none", None.String())
}

func TestSniffShortStream(t *testing.T) {
	rc, err := decode(io.NopCloser(strings.NewReader("A")), "x")
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "A", string(b))
}
