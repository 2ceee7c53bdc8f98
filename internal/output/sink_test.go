package output

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lines = "uniprotkb:A\tuniprotkb:B\tscore1\nC\tD\tscore2\n"

func writeSink(t *testing.T, name string) {
	t.Helper()
	s, err := Create(name, nil)
	require.NoError(t, err)
	_, err = io.WriteString(s, lines)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestCreatePlainTruncates(t *testing.T) {
	p := filepath.Join(t.TempDir(), "merged.mitab")
	require.NoError(t, os.WriteFile(p, []byte("stale content that is longer than the new one\n\n\n\n\n\n"), 0o644))
	writeSink(t, p)
	got, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, lines, string(got))
}

func TestCreateCompressed(t *testing.T) {
	dir := t.TempDir()
	decoders := map[string]func(io.Reader) (io.Reader, error){
		"out.mitab.gz": func(r io.Reader) (io.Reader, error) { return gzip.NewReader(r) },
		"out.mitab.zst": func(r io.Reader) (io.Reader, error) {
			d, err := zstd.NewReader(r)
			return d, err
		},
		"out.mitab.lz4": func(r io.Reader) (io.Reader, error) { return lz4.NewReader(r), nil },
	}
	for name, dec := range decoders {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(dir, name)
			writeSink(t, p)
			raw, err := os.ReadFile(p)
			require.NoError(t, err)
			r, err := dec(bytes.NewReader(raw))
			require.NoError(t, err)
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, lines, string(got))
		})
	}
}

func TestCreateStdout(t *testing.T) {
	var buf bytes.Buffer
	s, err := Create(StdoutName, &buf)
	require.NoError(t, err)
	assert.Equal(t, "<stdout>", s.Name())
	_, err = s.WriteString(lines)
	require.NoError(t, err)
	assert.Zero(t, buf.Len(), "buffered until Close")
	require.NoError(t, s.Close())
	assert.Equal(t, lines, buf.String())
}

func TestCreateBadDir(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "missing", "out.mitab"), nil)
	require.Error(t, err)
}

func TestIsBrokenPipe(t *testing.T) {
	assert.True(t, IsBrokenPipe(syscall.EPIPE))
	assert.True(t, IsBrokenPipe(io.ErrClosedPipe))
	assert.False(t, IsBrokenPipe(io.EOF))
	assert.False(t, IsBrokenPipe(nil))
}
